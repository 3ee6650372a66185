package llm

import (
	"context"
	"time"

	"github.com/storynest/quiz-service/internal/logger"
)

// CallRecord captures one provider request for analytics.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
}

// CallSink receives call records. The repos package provides a persistent
// implementation; tests can use an in-memory one.
type CallSink interface {
	RecordCall(ctx context.Context, rec CallRecord) error
}

// LoggingProvider is a decorator that records every provider request.
type LoggingProvider struct {
	inner Provider
	sink  CallSink
	log   *logger.Logger
}

// WithLogging wraps a Provider with call recording. sink may be nil, in
// which case calls are only logged.
func WithLogging(p Provider, sink CallSink, log *logger.Logger) Provider {
	return &LoggingProvider{
		inner: p,
		sink:  sink,
		log:   log.With("provider", p.Name(), "model", p.ModelID()),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:  l.inner.Name(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
		l.log.Warn("provider call failed", "purpose", purpose, "latency_ms", rec.LatencyMs, "error", err)
	} else {
		l.log.Debug("provider call ok", "purpose", purpose, "latency_ms", rec.LatencyMs,
			"input_tokens", rec.InputTokens, "output_tokens", rec.OutputTokens)
	}

	// Recording is best-effort; a failed insert never fails the request.
	if l.sink != nil {
		if sinkErr := l.sink.RecordCall(ctx, rec); sinkErr != nil {
			l.log.Warn("failed to record provider call", "error", sinkErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) Name() string { return l.inner.Name() }

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
