package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/quizgen"
	"github.com/storynest/quiz-service/internal/services"
)

type QuizHandler struct {
	log     *logger.Logger
	quizSvc services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizSvc services.QuizService) *QuizHandler {
	return &QuizHandler{
		log:     log.With("handler", "QuizHandler"),
		quizSvc: quizSvc,
	}
}

type generateRequest struct {
	BookID        string `json:"bookId"`
	Age           int    `json:"age"`
	AttemptNumber int    `json:"attemptNumber"`
}

// normalize applies the default attempt number and parses the book ID.
func (r *generateRequest) normalize() (uuid.UUID, int, error) {
	if r.BookID == "" {
		return uuid.Nil, 0, fmt.Errorf("bookId is required")
	}
	id, err := uuid.Parse(r.BookID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("bookId is not a valid id: %v", err)
	}
	attempt := r.AttemptNumber
	if attempt == 0 {
		attempt = 1
	}
	return id, attempt, nil
}

// POST /quiz/generate
// Full 6-question set, cached or freshly generated.
func (h *QuizHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	bookID, attempt, err := req.normalize()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_fields", err)
		return
	}

	payload, err := h.quizSvc.GenerateFull(c.Request.Context(), bookID, req.Age, attempt)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, payload)
}

// POST /quiz/generate-first
// Single question for the staged fast path.
func (h *QuizHandler) GenerateFirst(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	bookID, attempt, err := req.normalize()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_fields", err)
		return
	}

	payload, err := h.quizSvc.GenerateFirst(c.Request.Context(), bookID, req.Age, attempt)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, payload)
}

type generateRemainingRequest struct {
	generateRequest
	FirstQuestion quizgen.Question `json:"firstQuestion"`
}

// POST /quiz/generate-remaining
// Remaining five questions, merged with the first and persisted.
func (h *QuizHandler) GenerateRemaining(c *gin.Context) {
	var req generateRemainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	bookID, attempt, err := req.normalize()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_fields", err)
		return
	}
	if req.FirstQuestion.QuestionText == "" {
		RespondError(c, http.StatusBadRequest, "missing_fields", fmt.Errorf("firstQuestion is required"))
		return
	}

	payload, err := h.quizSvc.GenerateRemaining(c.Request.Context(), bookID, req.Age, attempt, req.FirstQuestion)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, payload)
}

// GET /quiz/:bookId?age=&attemptNumber=
// Cached retrieval; 404 with needsGeneration: true on miss.
func (h *QuizHandler) Get(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("bookId is not a valid id: %v", err))
		return
	}

	age := queryInt(c, "age", 0)
	attempt := queryInt(c, "attemptNumber", 1)

	payload, err := h.quizSvc.GetCached(c.Request.Context(), bookID, age, attempt)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, payload)
}

type submitRequest struct {
	UserID        string `json:"userId"`
	Answers       []int  `json:"answers"`
	Age           int    `json:"age"`
	AttemptNumber int    `json:"attemptNumber"`
}

// POST /quiz/:bookId/submit
// Score the answer sheet, award coins, record the attempt.
func (h *QuizHandler) Submit(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("bookId is not a valid id: %v", err))
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_fields", fmt.Errorf("userId is not a valid id: %v", err))
		return
	}
	if req.Answers == nil {
		RespondError(c, http.StatusBadRequest, "malformed_answers", fmt.Errorf("answers array is required"))
		return
	}
	attempt := req.AttemptNumber
	if attempt == 0 {
		attempt = 1
	}

	result, err := h.quizSvc.Submit(c.Request.Context(), bookID, services.SubmitInput{
		UserID:        userID,
		Answers:       req.Answers,
		Age:           req.Age,
		AttemptNumber: attempt,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /quiz/:bookId/attempts/:userId
// Attempt count and remaining eligibility.
func (h *QuizHandler) Attempts(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("bookId is not a valid id: %v", err))
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("userId is not a valid id: %v", err))
		return
	}

	status, err := h.quizSvc.AttemptStatus(c.Request.Context(), bookID, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, status)
}

// DELETE /quiz/:bookId/clear
// Purge the cached quiz so it can be regenerated.
func (h *QuizHandler) Clear(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("bookId is not a valid id: %v", err))
		return
	}

	if err := h.quizSvc.Clear(c.Request.Context(), bookID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"cleared": true, "bookId": bookID})
}

// GET /quiz/:bookId/age-groups
// Which age buckets have cached content.
func (h *QuizHandler) AgeGroups(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("bookId is not a valid id: %v", err))
		return
	}

	groups, err := h.quizSvc.AgeGroups(c.Request.Context(), bookID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"bookId": bookID, "ageGroups": groups})
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
