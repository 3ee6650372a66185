package quizgen

import (
	"context"

	"github.com/storynest/quiz-service/internal/llm"
	"github.com/storynest/quiz-service/internal/logger"
)

// Config controls generation behavior.
type Config struct {
	// MaxTokens is the token budget for a full question set.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// GenerateInput identifies what to generate questions for.
type GenerateInput struct {
	Age           int
	AttemptNumber int
	StoryText     string
}

// FallbackSource is the Source value reported when static content was
// served instead of provider output.
const FallbackSource = "fallback"

// Result is a validated question set plus where it came from.
type Result struct {
	Questions []Question

	// Source is the provider name, or FallbackSource.
	Source string
}

// Orchestrator walks the provider chain in priority order and falls back
// to static content when the chain is exhausted. It never returns an
// error for generation itself: the quiz endpoint always has something
// playable to serve.
type Orchestrator struct {
	chain []llm.Provider
	cfg   Config
	log   *logger.Logger
}

// NewOrchestrator creates an Orchestrator over the given provider chain.
func NewOrchestrator(chain []llm.Provider, cfg Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		chain: chain,
		cfg:   cfg,
		log:   log.With("component", "quizgen"),
	}
}

// GenerateFull produces the standard 6-question set.
func (o *Orchestrator) GenerateFull(ctx context.Context, in GenerateInput) Result {
	ctx = llm.WithPurpose(ctx, "quiz-full")
	prompt := PromptInput{Age: in.Age, AttemptNumber: in.AttemptNumber, StoryText: in.StoryText}

	if res, ok := o.tryChain(ctx, prompt, FullQuestionCount); ok {
		return res
	}
	return Result{Questions: FallbackQuestions(in.AttemptNumber), Source: FallbackSource}
}

// GenerateFirst produces a single question for the latency-optimized
// staged path. The client shows it immediately and then requests the rest.
func (o *Orchestrator) GenerateFirst(ctx context.Context, in GenerateInput) Result {
	ctx = llm.WithPurpose(ctx, "quiz-first")
	prompt := PromptInput{Age: in.Age, AttemptNumber: in.AttemptNumber, StoryText: in.StoryText}

	if res, ok := o.tryChain(ctx, prompt, FirstQuestionCount); ok {
		return res
	}
	return Result{Questions: FallbackQuestions(in.AttemptNumber)[:FirstQuestionCount], Source: FallbackSource}
}

// GenerateRemaining produces the five questions that complete a staged
// quiz, steering the model away from the already-served first question.
func (o *Orchestrator) GenerateRemaining(ctx context.Context, in GenerateInput, first Question) Result {
	ctx = llm.WithPurpose(ctx, "quiz-remaining")
	prompt := PromptInput{
		Age:           in.Age,
		AttemptNumber: in.AttemptNumber,
		StoryText:     in.StoryText,
		AvoidQuestion: first.QuestionText,
	}

	if res, ok := o.tryChain(ctx, prompt, RemainingQuestionCount); ok {
		return res
	}
	return Result{Questions: FallbackQuestions(in.AttemptNumber)[FirstQuestionCount:], Source: FallbackSource}
}

// tryChain runs providers in order, short-circuiting on the first result
// that extracts, normalizes, and validates. Provider failures are logged
// and absorbed, never surfaced.
func (o *Orchestrator) tryChain(ctx context.Context, prompt PromptInput, count int) (Result, bool) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(prompt, count)},
		},
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}

	for _, p := range o.chain {
		questions, err := o.tryProvider(ctx, p, req, count)
		if err != nil {
			o.log.Warn("provider failed, trying next", "provider", p.Name(), "error", err)
			continue
		}
		return Result{Questions: questions, Source: p.Name()}, true
	}
	return Result{}, false
}

func (o *Orchestrator) tryProvider(ctx context.Context, p llm.Provider, req llm.Request, count int) ([]Question, error) {
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSON(resp.Text)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Text: resp.Text, Err: err}
	}

	questions, err := NormalizeQuestions(raw, count)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Text: resp.Text, Err: err}
	}

	if err := ValidateQuestions(questions); err != nil {
		return nil, &llm.ErrInvalidResponse{Text: resp.Text, Err: err}
	}

	return questions, nil
}
