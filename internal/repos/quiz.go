package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// QuizRepo persists quiz documents. One quiz per book.
type QuizRepo interface {
	// GetByBookID returns the quiz for a book, or ErrNotFound.
	GetByBookID(ctx context.Context, bookID uuid.UUID) (*types.Quiz, error)

	// GetOrCreate returns the quiz for a book, creating an empty document
	// on first use.
	GetOrCreate(ctx context.Context, bookID uuid.UUID) (*types.Quiz, error)

	// Save writes the whole document back. Concurrent savers are
	// last-write-wins; there is no optimistic locking.
	Save(ctx context.Context, quiz *types.Quiz) error

	// DeleteByBookID purges the cached quiz for a book.
	DeleteByBookID(ctx context.Context, bookID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) GetByBookID(ctx context.Context, bookID uuid.UUID) (*types.Quiz, error) {
	var quiz types.Quiz
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetOrCreate(ctx context.Context, bookID uuid.UUID) (*types.Quiz, error) {
	quiz, err := r.GetByBookID(ctx, bookID)
	if err == nil {
		return quiz, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	fresh := &types.Quiz{BookID: bookID}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// A concurrent creator may have won the unique index race.
		if existing, getErr := r.GetByBookID(ctx, bookID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	r.log.Debug("created quiz document", "book_id", bookID)
	return fresh, nil
}

func (r *quizRepo) Save(ctx context.Context, quiz *types.Quiz) error {
	return r.db.WithContext(ctx).Save(quiz).Error
}

func (r *quizRepo) DeleteByBookID(ctx context.Context, bookID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&types.Quiz{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
