package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storynest/quiz-service/internal/apierr"
	"github.com/storynest/quiz-service/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`

	// NeedsGeneration is set on 404s that a generate call would resolve.
	NeedsGeneration bool `json:"needsGeneration,omitempty"`
}

// RespondError writes an explicit status/code error.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: code},
	})
}

// RespondServiceError translates a service error into a response using the
// apierr taxonomy; anything untyped becomes a 500.
func RespondServiceError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	code := apierr.CodeOf(err)
	c.JSON(status, ErrorEnvelope{
		Error:           APIError{Message: err.Error(), Code: code},
		NeedsGeneration: status == http.StatusNotFound && code == services.CodeNeedsGeneration,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
