package quizgen

import (
	"encoding/json"
	"testing"
)

func TestNormalizeQuestions_AlternateFieldNames(t *testing.T) {
	raw := json.RawMessage(`[{
		"question": "What did Milo find?",
		"options": [
			{"answer": "A boat", "isCorrect": true},
			{"answer": "A kite", "isCorrect": false},
			{"answer": "A drum", "isCorrect": false},
			{"answer": "A hat", "isCorrect": false}
		]
	}]`)

	qs, err := NormalizeQuestions(raw, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].QuestionText != "What did Milo find?" {
		t.Errorf("question text not reconciled: %q", qs[0].QuestionText)
	}
	if qs[0].Options[0].Text != "A boat" {
		t.Errorf("option text not reconciled: %q", qs[0].Options[0].Text)
	}
	if !qs[0].Options[0].IsCorrect {
		t.Error("correct flag lost")
	}
}

func TestNormalizeQuestions_TruncatesOversizedArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"questionText": "q1", "options": [{"text": "a", "isCorrect": true}]},
		{"questionText": "q2", "options": [{"text": "a", "isCorrect": true}]},
		{"questionText": "q3", "options": [{"text": "a", "isCorrect": true}]}
	]`)

	qs, err := NormalizeQuestions(raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].QuestionText != "q2" {
		t.Errorf("truncation kept the wrong items: %q", qs[1].QuestionText)
	}
}

func TestNormalizeQuestions_TooFew(t *testing.T) {
	raw := json.RawMessage(`[{"questionText": "q1", "options": [{"text": "a", "isCorrect": true}]}]`)
	if _, err := NormalizeQuestions(raw, 6); err == nil {
		t.Fatal("expected an error for too few questions")
	}
}

func TestNormalizeQuestions_BareObject(t *testing.T) {
	raw := json.RawMessage(`{"questionText": "q1", "options": [{"text": "a", "isCorrect": true}]}`)
	qs, err := NormalizeQuestions(raw, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || qs[0].QuestionText != "q1" {
		t.Fatalf("bare object not accepted: %+v", qs)
	}
}

func TestNormalizeQuestions_MissingText(t *testing.T) {
	raw := json.RawMessage(`[{"options": [{"text": "a", "isCorrect": true}]}]`)
	if _, err := NormalizeQuestions(raw, 1); err == nil {
		t.Fatal("expected an error for missing question text")
	}
}

func TestNormalizeQuestions_EmptyOptions(t *testing.T) {
	raw := json.RawMessage(`[{"questionText": "q1", "options": []}]`)
	if _, err := NormalizeQuestions(raw, 1); err == nil {
		t.Fatal("expected an error for an empty option list")
	}
}
