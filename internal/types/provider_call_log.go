package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderCallLog records one LLM provider request for cost and latency
// analytics. Written best-effort by the llm logging decorator.
type ProviderCallLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Provider     string    `gorm:"column:provider;not null;index" json:"provider"`
	Model        string    `gorm:"column:model" json:"model"`
	Purpose      string    `gorm:"column:purpose;index" json:"purpose"`
	LatencyMs    int64     `gorm:"column:latency_ms" json:"latency_ms"`
	InputTokens  int       `gorm:"column:input_tokens" json:"input_tokens"`
	OutputTokens int       `gorm:"column:output_tokens" json:"output_tokens"`
	Success      bool      `gorm:"column:success" json:"success"`
	ErrorMessage string    `gorm:"column:error_message" json:"error_message"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

func (ProviderCallLog) TableName() string { return "provider_call_log" }

func (l *ProviderCallLog) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
