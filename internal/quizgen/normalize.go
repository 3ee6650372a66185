package quizgen

import (
	"encoding/json"
	"fmt"
)

// rawQuestion mirrors the shapes different models actually emit. Field
// names drift between providers ("question" vs "questionText", "answer"
// vs "text"), so everything is optional here and reconciled below.
type rawQuestion struct {
	QuestionText string      `json:"questionText"`
	Question     string      `json:"question"`
	Options      []rawOption `json:"options"`
}

type rawOption struct {
	Text      string `json:"text"`
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"isCorrect"`
}

// NormalizeQuestions turns extracted JSON into exactly want questions.
// It accepts a bare object for want == 1, truncates oversized arrays, and
// reconciles alternate field names. Structural problems (too few items,
// empty option lists) are errors; the orchestrator treats them as a
// provider failure and moves on.
func NormalizeQuestions(raw json.RawMessage, want int) ([]Question, error) {
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}

	if len(items) < want {
		return nil, fmt.Errorf("expected %d questions, got %d", want, len(items))
	}
	if len(items) > want {
		items = items[:want]
	}

	out := make([]Question, 0, want)
	for i, item := range items {
		q, err := normalizeOne(item)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func decodeItems(raw json.RawMessage) ([]rawQuestion, error) {
	var items []rawQuestion
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	// A single bare object is fine for the first-question path.
	var single rawQuestion
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("response is neither a question array nor a question object: %w", err)
	}
	return []rawQuestion{single}, nil
}

func normalizeOne(item rawQuestion) (Question, error) {
	text := item.QuestionText
	if text == "" {
		text = item.Question
	}
	if text == "" {
		return Question{}, fmt.Errorf("missing question text")
	}
	if len(item.Options) == 0 {
		return Question{}, fmt.Errorf("empty option list")
	}

	opts := make([]Option, 0, len(item.Options))
	for _, o := range item.Options {
		optText := o.Text
		if optText == "" {
			optText = o.Answer
		}
		opts = append(opts, Option{Text: optText, IsCorrect: o.IsCorrect})
	}

	return Question{QuestionText: text, Options: opts}, nil
}
