package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/storynest/quiz-service/internal/llm"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/types"
)

// CallLogRepo persists LLM provider call records. It satisfies
// llm.CallSink so it can be plugged straight into the logging decorator.
type CallLogRepo interface {
	llm.CallSink

	// Recent returns the most recent call records, newest first.
	Recent(ctx context.Context, limit int) ([]types.ProviderCallLog, error)
}

type callLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCallLogRepo(db *gorm.DB, baseLog *logger.Logger) CallLogRepo {
	return &callLogRepo{db: db, log: baseLog.With("repo", "CallLogRepo")}
}

func (r *callLogRepo) RecordCall(ctx context.Context, rec llm.CallRecord) error {
	row := types.ProviderCallLog{
		Provider:     rec.Provider,
		Model:        rec.Model,
		Purpose:      rec.Purpose,
		LatencyMs:    rec.LatencyMs,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		Success:      rec.Success,
		ErrorMessage: rec.ErrorMessage,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *callLogRepo) Recent(ctx context.Context, limit int) ([]types.ProviderCallLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []types.ProviderCallLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
