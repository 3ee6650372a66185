package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/storynest/quiz-service/internal/apierr"
	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/quizgen"
	"github.com/storynest/quiz-service/internal/repos"
	"github.com/storynest/quiz-service/internal/types"
)

// Error codes the handlers translate into response bodies. A 404 carrying
// CodeNeedsGeneration tells the client to call a generate endpoint.
const (
	CodeNeedsGeneration  = "needs_generation"
	CodeBookNotFound     = "book_not_found"
	CodeQuizNotFound     = "quiz_not_found"
	CodeInvalidAttempt   = "invalid_attempt"
	CodeMalformedAnswers = "malformed_answers"
	CodeAttemptLimit     = "attempt_limit"
)

// QuizPayload is a question set ready to serve.
type QuizPayload struct {
	BookID        uuid.UUID          `json:"bookId"`
	AgeGroup      quizgen.AgeGroup   `json:"ageGroup"`
	AttemptNumber int                `json:"attemptNumber"`
	Questions     []quizgen.Question `json:"questions"`
	Source        string             `json:"source,omitempty"`
	Cached        bool               `json:"cached"`
}

// FirstQuestionPayload is the staged-generation fast path response.
type FirstQuestionPayload struct {
	BookID                  uuid.UUID        `json:"bookId"`
	AgeGroup                quizgen.AgeGroup `json:"ageGroup"`
	AttemptNumber           int              `json:"attemptNumber"`
	Question                quizgen.Question `json:"question"`
	NeedsRemainingQuestions bool             `json:"needsRemainingQuestions"`
	Source                  string           `json:"source,omitempty"`
}

// SubmitInput is one user's answer sheet: the chosen option index per
// question, in question order.
type SubmitInput struct {
	UserID        uuid.UUID
	Answers       []int
	Age           int
	AttemptNumber int
}

// AnswerResult is the per-question correctness breakdown.
type AnswerResult struct {
	QuestionIndex  int  `json:"questionIndex"`
	SubmittedIndex int  `json:"submittedIndex"`
	CorrectIndex   int  `json:"correctIndex"`
	Correct        bool `json:"correct"`
}

// SubmitResult reports the score for one submission.
type SubmitResult struct {
	Score             int            `json:"score"`
	TotalQuestions    int            `json:"totalQuestions"`
	CoinsEarned       int            `json:"coinsEarned"`
	AttemptNumber     int            `json:"attemptNumber"`
	AttemptCount      int            `json:"attemptCount"`
	AttemptsRemaining int            `json:"attemptsRemaining"`
	Breakdown         []AnswerResult `json:"breakdown"`
}

// AttemptStatus reports a user's quiz eligibility for a book.
type AttemptStatus struct {
	BookID            uuid.UUID `json:"bookId"`
	UserID            uuid.UUID `json:"userId"`
	AttemptCount      int       `json:"attemptCount"`
	AttemptsRemaining int       `json:"attemptsRemaining"`
	CanAttempt        bool      `json:"canAttempt"`
}

// Generator is the slice of the quizgen orchestrator the service needs.
type Generator interface {
	GenerateFull(ctx context.Context, in quizgen.GenerateInput) quizgen.Result
	GenerateFirst(ctx context.Context, in quizgen.GenerateInput) quizgen.Result
	GenerateRemaining(ctx context.Context, in quizgen.GenerateInput, first quizgen.Question) quizgen.Result
}

// QuizService implements the quiz cache, generation, and scoring flows.
type QuizService interface {
	GenerateFull(ctx context.Context, bookID uuid.UUID, age, attempt int) (*QuizPayload, error)
	GenerateFirst(ctx context.Context, bookID uuid.UUID, age, attempt int) (*FirstQuestionPayload, error)
	GenerateRemaining(ctx context.Context, bookID uuid.UUID, age, attempt int, first quizgen.Question) (*QuizPayload, error)
	GetCached(ctx context.Context, bookID uuid.UUID, age, attempt int) (*QuizPayload, error)
	Submit(ctx context.Context, bookID uuid.UUID, in SubmitInput) (*SubmitResult, error)
	AttemptStatus(ctx context.Context, bookID, userID uuid.UUID) (*AttemptStatus, error)
	Clear(ctx context.Context, bookID uuid.UUID) error
	AgeGroups(ctx context.Context, bookID uuid.UUID) ([]types.AgeGroupSummary, error)
}

type quizService struct {
	quizRepo repos.QuizRepo
	bookRepo repos.BookRepo
	gen      Generator
	log      *logger.Logger
	now      func() time.Time
}

func NewQuizService(quizRepo repos.QuizRepo, bookRepo repos.BookRepo, gen Generator, baseLog *logger.Logger) QuizService {
	return &quizService{
		quizRepo: quizRepo,
		bookRepo: bookRepo,
		gen:      gen,
		log:      baseLog.With("service", "QuizService"),
		now:      time.Now,
	}
}

func (s *quizService) GenerateFull(ctx context.Context, bookID uuid.UUID, age, attempt int) (*QuizPayload, error) {
	if !quizgen.ValidAttempt(attempt) {
		return nil, apierr.BadRequest(CodeInvalidAttempt, "attemptNumber must be 1 or 2, got %d", attempt)
	}
	group, _ := quizgen.BucketAge(age)

	quiz, err := s.quizRepo.GetOrCreate(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if cached, ok, err := quiz.QuestionsForAge(group, attempt); err != nil {
		return nil, err
	} else if ok {
		return &QuizPayload{
			BookID:        bookID,
			AgeGroup:      group,
			AttemptNumber: attempt,
			Questions:     cached,
			Cached:        true,
		}, nil
	}

	story, err := s.storyText(ctx, bookID)
	if err != nil {
		return nil, err
	}

	res := s.gen.GenerateFull(ctx, quizgen.GenerateInput{
		Age:           age,
		AttemptNumber: attempt,
		StoryText:     story,
	})

	if err := s.persistQuestions(ctx, quiz, group, attempt, res.Questions); err != nil {
		return nil, err
	}
	s.log.Info("generated quiz", "book_id", bookID, "age_group", group, "attempt", attempt, "source", res.Source)

	return &QuizPayload{
		BookID:        bookID,
		AgeGroup:      group,
		AttemptNumber: attempt,
		Questions:     res.Questions,
		Source:        res.Source,
	}, nil
}

func (s *quizService) GenerateFirst(ctx context.Context, bookID uuid.UUID, age, attempt int) (*FirstQuestionPayload, error) {
	if !quizgen.ValidAttempt(attempt) {
		return nil, apierr.BadRequest(CodeInvalidAttempt, "attemptNumber must be 1 or 2, got %d", attempt)
	}
	group, _ := quizgen.BucketAge(age)

	quiz, err := s.quizRepo.GetOrCreate(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// A cached full set short-circuits the staged path entirely.
	if cached, ok, err := quiz.QuestionsForAge(group, attempt); err != nil {
		return nil, err
	} else if ok && len(cached) > 0 {
		return &FirstQuestionPayload{
			BookID:                  bookID,
			AgeGroup:                group,
			AttemptNumber:           attempt,
			Question:                cached[0],
			NeedsRemainingQuestions: false,
		}, nil
	}

	story, err := s.storyText(ctx, bookID)
	if err != nil {
		return nil, err
	}

	res := s.gen.GenerateFirst(ctx, quizgen.GenerateInput{
		Age:           age,
		AttemptNumber: attempt,
		StoryText:     story,
	})

	// Nothing is persisted yet; the merge happens when the client asks
	// for the remaining questions.
	return &FirstQuestionPayload{
		BookID:                  bookID,
		AgeGroup:                group,
		AttemptNumber:           attempt,
		Question:                res.Questions[0],
		NeedsRemainingQuestions: true,
		Source:                  res.Source,
	}, nil
}

func (s *quizService) GenerateRemaining(ctx context.Context, bookID uuid.UUID, age, attempt int, first quizgen.Question) (*QuizPayload, error) {
	if !quizgen.ValidAttempt(attempt) {
		return nil, apierr.BadRequest(CodeInvalidAttempt, "attemptNumber must be 1 or 2, got %d", attempt)
	}
	if err := quizgen.ValidateQuestions([]quizgen.Question{first}); err != nil {
		return nil, apierr.BadRequest(CodeMalformedAnswers, "firstQuestion is malformed: %v", err)
	}
	group, _ := quizgen.BucketAge(age)

	quiz, err := s.quizRepo.GetOrCreate(ctx, bookID)
	if err != nil {
		return nil, err
	}

	story, err := s.storyText(ctx, bookID)
	if err != nil {
		return nil, err
	}

	res := s.gen.GenerateRemaining(ctx, quizgen.GenerateInput{
		Age:           age,
		AttemptNumber: attempt,
		StoryText:     story,
	}, first)

	merged := append([]quizgen.Question{first}, res.Questions...)
	if err := s.persistQuestions(ctx, quiz, group, attempt, merged); err != nil {
		return nil, err
	}
	s.log.Info("merged staged quiz", "book_id", bookID, "age_group", group, "attempt", attempt, "source", res.Source)

	return &QuizPayload{
		BookID:        bookID,
		AgeGroup:      group,
		AttemptNumber: attempt,
		Questions:     merged,
		Source:        res.Source,
	}, nil
}

func (s *quizService) GetCached(ctx context.Context, bookID uuid.UUID, age, attempt int) (*QuizPayload, error) {
	if !quizgen.ValidAttempt(attempt) {
		return nil, apierr.BadRequest(CodeInvalidAttempt, "attemptNumber must be 1 or 2, got %d", attempt)
	}
	group, _ := quizgen.BucketAge(age)

	quiz, err := s.quizRepo.GetByBookID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, apierr.NotFound(CodeNeedsGeneration, "no quiz for book %s", bookID)
	}
	if err != nil {
		return nil, err
	}

	cached, ok, err := quiz.QuestionsForAge(group, attempt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound(CodeNeedsGeneration, "no cached questions for age group %s attempt %d", group, attempt)
	}

	return &QuizPayload{
		BookID:        bookID,
		AgeGroup:      group,
		AttemptNumber: attempt,
		Questions:     cached,
		Cached:        true,
	}, nil
}

func (s *quizService) Submit(ctx context.Context, bookID uuid.UUID, in SubmitInput) (*SubmitResult, error) {
	if !quizgen.ValidAttempt(in.AttemptNumber) {
		return nil, apierr.BadRequest(CodeInvalidAttempt, "attemptNumber must be 1 or 2, got %d", in.AttemptNumber)
	}
	group, _ := quizgen.BucketAge(in.Age)

	quiz, err := s.quizRepo.GetByBookID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, apierr.NotFound(CodeNeedsGeneration, "no quiz for book %s", bookID)
	}
	if err != nil {
		return nil, err
	}

	questions, ok, err := quiz.QuestionsForAge(group, in.AttemptNumber)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound(CodeNeedsGeneration, "no cached questions for age group %s attempt %d", group, in.AttemptNumber)
	}

	if len(in.Answers) != len(questions) {
		return nil, apierr.BadRequest(CodeMalformedAnswers, "expected %d answers, got %d", len(questions), len(in.Answers))
	}

	priorCount, err := quiz.UserAttemptCount(in.UserID)
	if err != nil {
		return nil, err
	}
	if priorCount >= quizgen.MaxAttempts {
		return nil, apierr.BadRequest(CodeAttemptLimit, "user %s has used all %d attempts", in.UserID, quizgen.MaxAttempts)
	}

	breakdown := make([]AnswerResult, len(questions))
	correctCount := 0
	for i, q := range questions {
		correctIdx := q.CorrectIndex()
		got := in.Answers[i]
		hit := got == correctIdx
		if hit {
			correctCount++
		}
		breakdown[i] = AnswerResult{
			QuestionIndex:  i,
			SubmittedIndex: got,
			CorrectIndex:   correctIdx,
			Correct:        hit,
		}
	}

	coins := correctCount * quizgen.CoinsPerCorrectAnswer

	rec := types.QuizAttempt{
		UserID:        in.UserID,
		Score:         correctCount,
		CoinsEarned:   coins,
		AttemptNumber: in.AttemptNumber,
		SubmittedAt:   s.now(),
	}
	if err := quiz.AppendAttempt(rec); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Save(ctx, quiz); err != nil {
		return nil, err
	}

	newCount := priorCount + 1
	s.log.Info("quiz submitted", "book_id", bookID, "user_id", in.UserID,
		"score", correctCount, "coins", coins, "attempt_count", newCount)

	return &SubmitResult{
		Score:             correctCount,
		TotalQuestions:    len(questions),
		CoinsEarned:       coins,
		AttemptNumber:     in.AttemptNumber,
		AttemptCount:      newCount,
		AttemptsRemaining: quizgen.MaxAttempts - newCount,
		Breakdown:         breakdown,
	}, nil
}

func (s *quizService) AttemptStatus(ctx context.Context, bookID, userID uuid.UUID) (*AttemptStatus, error) {
	status := &AttemptStatus{
		BookID:            bookID,
		UserID:            userID,
		AttemptsRemaining: quizgen.MaxAttempts,
		CanAttempt:        true,
	}

	quiz, err := s.quizRepo.GetByBookID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		// No quiz yet means no attempts used.
		return status, nil
	}
	if err != nil {
		return nil, err
	}

	count, err := quiz.UserAttemptCount(userID)
	if err != nil {
		return nil, err
	}

	status.AttemptCount = count
	status.AttemptsRemaining = quizgen.MaxAttempts - count
	if status.AttemptsRemaining < 0 {
		status.AttemptsRemaining = 0
	}
	status.CanAttempt = count < quizgen.MaxAttempts
	return status, nil
}

func (s *quizService) Clear(ctx context.Context, bookID uuid.UUID) error {
	err := s.quizRepo.DeleteByBookID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		return apierr.NotFound(CodeQuizNotFound, "no quiz for book %s", bookID)
	}
	return err
}

func (s *quizService) AgeGroups(ctx context.Context, bookID uuid.UUID) ([]types.AgeGroupSummary, error) {
	quiz, err := s.quizRepo.GetByBookID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, apierr.NotFound(CodeQuizNotFound, "no quiz for book %s", bookID)
	}
	if err != nil {
		return nil, err
	}
	summaries, err := quiz.CachedAgeGroups()
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []types.AgeGroupSummary{}
	}
	return summaries, nil
}

// storyText loads the book and assembles its story text for prompting.
func (s *quizService) storyText(ctx context.Context, bookID uuid.UUID) (string, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if errors.Is(err, repos.ErrNotFound) {
		return "", apierr.NotFound(CodeBookNotFound, "book %s not found", bookID)
	}
	if err != nil {
		return "", err
	}
	return book.StoryText()
}

// persistQuestions upserts a question set and saves the document.
// Racing writers for the same key are last-write-wins.
func (s *quizService) persistQuestions(ctx context.Context, quiz *types.Quiz, group quizgen.AgeGroup, attempt int, questions []quizgen.Question) error {
	if err := quiz.SetQuestionsForAge(group, attempt, questions); err != nil {
		return err
	}
	return s.quizRepo.Save(ctx, quiz)
}
