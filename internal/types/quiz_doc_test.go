package types

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/storynest/quiz-service/internal/quizgen"
)

func sampleQuestions(text string) []quizgen.Question {
	return []quizgen.Question{
		{
			QuestionText: text,
			Options: []quizgen.Option{
				{Text: "a", IsCorrect: true},
				{Text: "b"},
				{Text: "c"},
				{Text: "d"},
			},
		},
	}
}

func TestQuiz_SetAndGetQuestions(t *testing.T) {
	var q Quiz

	if _, ok, err := q.QuestionsForAge(quizgen.Group6to8, 1); err != nil || ok {
		t.Fatalf("empty quiz should miss: ok=%t err=%v", ok, err)
	}

	if err := q.SetQuestionsForAge(quizgen.Group6to8, 1, sampleQuestions("q1")); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := q.QuestionsForAge(quizgen.Group6to8, 1)
	if err != nil || !ok {
		t.Fatalf("expected hit: ok=%t err=%v", ok, err)
	}
	if got[0].QuestionText != "q1" {
		t.Errorf("wrong questions returned: %q", got[0].QuestionText)
	}

	// Other keys still miss.
	if _, ok, _ := q.QuestionsForAge(quizgen.Group6to8, 2); ok {
		t.Error("attempt 2 should miss")
	}
	if _, ok, _ := q.QuestionsForAge(quizgen.Group3to5, 1); ok {
		t.Error("other group should miss")
	}
}

func TestQuiz_SetQuestionsReplacesExisting(t *testing.T) {
	var q Quiz

	if err := q.SetQuestionsForAge(quizgen.Group9to12, 1, sampleQuestions("old")); err != nil {
		t.Fatal(err)
	}
	if err := q.SetQuestionsForAge(quizgen.Group9to12, 1, sampleQuestions("new")); err != nil {
		t.Fatal(err)
	}

	got, ok, err := q.QuestionsForAge(quizgen.Group9to12, 1)
	if err != nil || !ok {
		t.Fatalf("expected hit: ok=%t err=%v", ok, err)
	}
	if got[0].QuestionText != "new" {
		t.Errorf("replacement did not win: %q", got[0].QuestionText)
	}

	buckets, err := q.Buckets()
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 1 || len(buckets[0].Attempts) != 1 {
		t.Errorf("replace should not grow the document: %+v", buckets)
	}
}

func TestQuiz_CachedAgeGroups(t *testing.T) {
	var q Quiz

	if err := q.SetQuestionsForAge(quizgen.Group9to12, 2, sampleQuestions("a")); err != nil {
		t.Fatal(err)
	}
	if err := q.SetQuestionsForAge(quizgen.Group9to12, 1, sampleQuestions("b")); err != nil {
		t.Fatal(err)
	}
	if err := q.SetQuestionsForAge(quizgen.Group3to5, 1, sampleQuestions("c")); err != nil {
		t.Fatal(err)
	}

	groups, err := q.CachedAgeGroups()
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Canonical bucket order, attempt numbers sorted.
	if groups[0].AgeGroup != quizgen.Group3to5 {
		t.Errorf("expected %q first, got %q", quizgen.Group3to5, groups[0].AgeGroup)
	}
	if groups[1].AgeGroup != quizgen.Group9to12 {
		t.Errorf("expected %q second, got %q", quizgen.Group9to12, groups[1].AgeGroup)
	}
	if len(groups[1].AttemptNumbers) != 2 || groups[1].AttemptNumbers[0] != 1 || groups[1].AttemptNumbers[1] != 2 {
		t.Errorf("attempt numbers not sorted: %v", groups[1].AttemptNumbers)
	}
}

func TestQuiz_AttemptHistory(t *testing.T) {
	var q Quiz
	alice := uuid.New()
	bob := uuid.New()

	recs := []QuizAttempt{
		{UserID: alice, Score: 4, CoinsEarned: 40, AttemptNumber: 1, SubmittedAt: time.Now().UTC()},
		{UserID: bob, Score: 6, CoinsEarned: 60, AttemptNumber: 1, SubmittedAt: time.Now().UTC()},
		{UserID: alice, Score: 5, CoinsEarned: 50, AttemptNumber: 2, SubmittedAt: time.Now().UTC()},
	}
	for _, rec := range recs {
		if err := q.AppendAttempt(rec); err != nil {
			t.Fatal(err)
		}
	}

	all, err := q.AttemptRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].Score != 4 || all[2].Score != 5 {
		t.Error("append order lost")
	}

	n, err := q.UserAttemptCount(alice)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 attempts for alice, got %d", n)
	}

	n, err = q.UserAttemptCount(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected 0 attempts for a stranger, got %d", n)
	}
}
