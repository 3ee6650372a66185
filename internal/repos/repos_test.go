package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/storynest/quiz-service/internal/db"
	"github.com/storynest/quiz-service/internal/llm"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/quizgen"
	"github.com/storynest/quiz-service/internal/types"
)

func testDB(t *testing.T) *db.Service {
	t.Helper()
	svc, err := db.New(":memory:", logger.NewNop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return svc
}

func TestQuizRepo_GetOrCreate(t *testing.T) {
	svc := testDB(t)
	repo := NewQuizRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()
	bookID := uuid.New()

	if _, err := repo.GetByBookID(ctx, bookID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	first, err := repo.GetOrCreate(ctx, bookID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatal("quiz ID not assigned")
	}

	second, err := repo.GetOrCreate(ctx, bookID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("GetOrCreate created a second document: %s vs %s", first.ID, second.ID)
	}
}

func TestQuizRepo_SaveRoundTrip(t *testing.T) {
	svc := testDB(t)
	repo := NewQuizRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()
	bookID := uuid.New()

	quiz, err := repo.GetOrCreate(ctx, bookID)
	if err != nil {
		t.Fatal(err)
	}

	questions := []quizgen.Question{{
		QuestionText: "What did Milo find?",
		Options: []quizgen.Option{
			{Text: "A boat", IsCorrect: true}, {Text: "A kite"}, {Text: "A drum"}, {Text: "A hat"},
		},
	}}
	if err := quiz.SetQuestionsForAge(quizgen.Group6to8, 1, questions); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, quiz); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := loaded.QuestionsForAge(quizgen.Group6to8, 1)
	if err != nil || !ok {
		t.Fatalf("expected cached set after reload: ok=%t err=%v", ok, err)
	}
	if got[0].QuestionText != "What did Milo find?" {
		t.Errorf("questions did not survive the round trip: %q", got[0].QuestionText)
	}
}

func TestQuizRepo_LastWriteWins(t *testing.T) {
	svc := testDB(t)
	repo := NewQuizRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()
	bookID := uuid.New()

	if _, err := repo.GetOrCreate(ctx, bookID); err != nil {
		t.Fatal(err)
	}

	// Two writers load the same document and save conflicting content for
	// the same key. The second save must fully replace the first.
	a, err := repo.GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatal(err)
	}
	b, err := repo.GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatal(err)
	}

	qa := []quizgen.Question{{QuestionText: "writer a", Options: []quizgen.Option{
		{Text: "a", IsCorrect: true}, {Text: "b"}, {Text: "c"}, {Text: "d"},
	}}}
	qb := []quizgen.Question{{QuestionText: "writer b", Options: []quizgen.Option{
		{Text: "a", IsCorrect: true}, {Text: "b"}, {Text: "c"}, {Text: "d"},
	}}}

	if err := a.SetQuestionsForAge(quizgen.Group6to8, 1, qa); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := b.SetQuestionsForAge(quizgen.Group6to8, 1, qb); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.GetByBookID(ctx, bookID)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := loaded.QuestionsForAge(quizgen.Group6to8, 1)
	if err != nil || !ok {
		t.Fatalf("expected cached set: ok=%t err=%v", ok, err)
	}
	if got[0].QuestionText != "writer b" {
		t.Errorf("expected the later writer to win, got %q", got[0].QuestionText)
	}
}

func TestQuizRepo_Delete(t *testing.T) {
	svc := testDB(t)
	repo := NewQuizRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()
	bookID := uuid.New()

	if err := repo.DeleteByBookID(ctx, bookID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing quiz, got %v", err)
	}

	if _, err := repo.GetOrCreate(ctx, bookID); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteByBookID(ctx, bookID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByBookID(ctx, bookID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("quiz still present after delete: %v", err)
	}
}

func TestBookRepo_CreateAndGet(t *testing.T) {
	svc := testDB(t)
	repo := NewBookRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()

	book := &types.Book{
		Title:  "Milo and the Tiny Boat",
		Author: "J. Reader",
		Pages: []types.Page{
			{PageNumber: 2, TextBoxes: datatypes.JSON(`["Page two."]`)},
			{PageNumber: 1, TextBoxes: datatypes.JSON(`["Page one."]`)},
		},
	}
	if err := repo.Create(ctx, book); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.GetByID(ctx, book.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Title != book.Title {
		t.Errorf("title lost: %q", loaded.Title)
	}
	if len(loaded.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(loaded.Pages))
	}
	if loaded.Pages[0].PageNumber != 1 {
		t.Errorf("pages not preloaded in reading order: first is page %d", loaded.Pages[0].PageNumber)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing book, got %v", err)
	}
}

func TestCallLogRepo_RecordAndRecent(t *testing.T) {
	svc := testDB(t)
	repo := NewCallLogRepo(svc.DB(), logger.NewNop())
	ctx := context.Background()

	records := []llm.CallRecord{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-full", LatencyMs: 812, InputTokens: 900, OutputTokens: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz-first", LatencyMs: 301, Success: false, ErrorMessage: "rate limited"},
	}
	for _, rec := range records {
		if err := repo.RecordCall(ctx, rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	rows, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Provider == "gemini" && row.Success {
			t.Error("failure flag lost")
		}
	}
}
