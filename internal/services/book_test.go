package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/storynest/quiz-service/internal/db"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/repos"
)

func newBookTestService(t *testing.T) BookService {
	t.Helper()

	dbSvc, err := db.New(":memory:", logger.NewNop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := dbSvc.AutoMigrateAll(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewBookService(repos.NewBookRepo(dbSvc.DB(), logger.NewNop()), logger.NewNop())
}

func TestBookService_CreateAndGet(t *testing.T) {
	svc := newBookTestService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, BookInput{
		Title:    "Milo and the Tiny Boat",
		Author:   "J. Reader",
		AgeRange: "6-8",
		Pages: []PageInput{
			{PageNumber: 1, TextBoxes: []string{"Milo found a tiny boat.", "[excited] It was red!"}},
			{PageNumber: 2, TextBoxes: []string{"He sailed it across the pond."}},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := svc.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(loaded.Pages))
	}

	story, err := loaded.StoryText()
	if err != nil {
		t.Fatal(err)
	}
	want := "Milo found a tiny boat. [excited] It was red! He sailed it across the pond."
	if story != want {
		t.Errorf("story text wrong:\n got %q\nwant %q", story, want)
	}
}

func TestBookService_CreateValidation(t *testing.T) {
	svc := newBookTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, BookInput{Pages: []PageInput{{PageNumber: 1}}})
	assertServiceError(t, err, 400, CodeMissingTitle)

	_, err = svc.Create(ctx, BookInput{Title: "No Pages"})
	assertServiceError(t, err, 400, CodeMissingPages)
}

func TestBookService_GetMissing(t *testing.T) {
	svc := newBookTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assertServiceError(t, err, 404, CodeBookNotFound)
}
