package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/storynest/quiz-service/internal/apierr"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/repos"
	"github.com/storynest/quiz-service/internal/types"
)

const (
	CodeMissingTitle = "missing_title"
	CodeMissingPages = "missing_pages"
)

// PageInput is one page of story text in the ingestion payload.
type PageInput struct {
	PageNumber int      `json:"pageNumber"`
	TextBoxes  []string `json:"textBoxes"`
}

// BookInput is the ingestion payload for a story book.
type BookInput struct {
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	AgeRange string      `json:"ageRange"`
	Pages    []PageInput `json:"pages"`
}

// BookService ingests and serves the minimal story records the quiz
// subsystem needs.
type BookService interface {
	Create(ctx context.Context, in BookInput) (*types.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Book, error)
}

type bookService struct {
	repo repos.BookRepo
	log  *logger.Logger
}

func NewBookService(repo repos.BookRepo, baseLog *logger.Logger) BookService {
	return &bookService{repo: repo, log: baseLog.With("service", "BookService")}
}

func (s *bookService) Create(ctx context.Context, in BookInput) (*types.Book, error) {
	if in.Title == "" {
		return nil, apierr.BadRequest(CodeMissingTitle, "title is required")
	}
	if len(in.Pages) == 0 {
		return nil, apierr.BadRequest(CodeMissingPages, "at least one page is required")
	}

	book := &types.Book{
		Title:    in.Title,
		Author:   in.Author,
		AgeRange: in.AgeRange,
	}
	for _, p := range in.Pages {
		raw, err := json.Marshal(p.TextBoxes)
		if err != nil {
			return nil, err
		}
		book.Pages = append(book.Pages, types.Page{
			PageNumber: p.PageNumber,
			TextBoxes:  datatypes.JSON(raw),
		})
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	s.log.Info("book ingested", "book_id", book.ID, "pages", len(book.Pages))
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*types.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, apierr.NotFound(CodeBookNotFound, "book %s not found", id)
	}
	return book, err
}
