package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/types"
)

// BookRepo persists story books and their pages.
type BookRepo interface {
	// Create stores a book together with its pages.
	Create(ctx context.Context, book *types.Book) error

	// GetByID returns a book with pages preloaded, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*types.Book, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return &bookRepo{db: db, log: baseLog.With("repo", "BookRepo")}
}

func (r *bookRepo) Create(ctx context.Context, book *types.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Book, error) {
	var book types.Book
	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("page_number ASC")
		}).
		First(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}
