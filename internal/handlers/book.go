package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storynest/quiz-service/internal/logger"
	"github.com/storynest/quiz-service/internal/services"
)

type BookHandler struct {
	log     *logger.Logger
	bookSvc services.BookService
}

func NewBookHandler(log *logger.Logger, bookSvc services.BookService) *BookHandler {
	return &BookHandler{
		log:     log.With("handler", "BookHandler"),
		bookSvc: bookSvc,
	}
}

// POST /books
// Ingest a story book with its pages.
func (h *BookHandler) Create(c *gin.Context) {
	var in services.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	book, err := h.bookSvc.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, book)
}

// GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("id is not a valid id: %v", err))
		return
	}

	book, err := h.bookSvc.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}
