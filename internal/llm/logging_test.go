package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/storynest/quiz-service/internal/logger"
)

type memorySink struct {
	records []CallRecord
	err     error
}

func (s *memorySink) RecordCall(_ context.Context, rec CallRecord) error {
	s.records = append(s.records, rec)
	return s.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	sink := &memorySink{}
	inner := NewMockProvider(MockResponse{
		Text:  "[]",
		Usage: Usage{InputTokens: 120, OutputTokens: 40},
	})
	p := WithLogging(inner, sink, logger.NewNop())

	ctx := WithPurpose(context.Background(), "quiz-full")
	resp, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != "[]" {
		t.Errorf("response altered by decorator: %q", resp.Text)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	rec := sink.records[0]
	if !rec.Success {
		t.Error("success not recorded")
	}
	if rec.Purpose != "quiz-full" {
		t.Errorf("purpose lost: %q", rec.Purpose)
	}
	if rec.Provider != "mock" {
		t.Errorf("provider lost: %q", rec.Provider)
	}
	if rec.InputTokens != 120 || rec.OutputTokens != 40 {
		t.Errorf("token counts lost: %d/%d", rec.InputTokens, rec.OutputTokens)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	sink := &memorySink{}
	inner := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	p := WithLogging(inner, sink, logger.NewNop())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected the inner error to surface")
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Success {
		t.Error("failure recorded as success")
	}
	if rec.ErrorMessage == "" {
		t.Error("error message not recorded")
	}
}

func TestLoggingProvider_SinkErrorIsAbsorbed(t *testing.T) {
	sink := &memorySink{err: errors.New("insert failed")}
	inner := NewMockProvider(MockResponse{Text: "[]"})
	p := WithLogging(inner, sink, logger.NewNop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("sink failure leaked into the request: %v", err)
	}
}

func TestLoggingProvider_NilSink(t *testing.T) {
	inner := NewMockProvider(MockResponse{Text: "[]"})
	p := WithLogging(inner, nil, logger.NewNop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate with nil sink: %v", err)
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "" {
		t.Errorf("expected empty purpose, got %q", got)
	}
}
