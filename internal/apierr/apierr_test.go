package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	if got := StatusOf(NotFound("gone", "nothing here")); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
	if got := StatusOf(BadRequest("bad", "nope")); got != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", got)
	}
	if got := StatusOf(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("untyped errors default to 500, got %d", got)
	}

	wrapped := fmt.Errorf("outer: %w", NotFound("gone", "nothing here"))
	if got := StatusOf(wrapped); got != http.StatusNotFound {
		t.Errorf("wrapped error lost its status: %d", got)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(BadRequest("invalid_attempt", "bad attempt")); got != "invalid_attempt" {
		t.Errorf("expected invalid_attempt, got %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("untyped errors have no code, got %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := BadRequest("invalid_attempt", "attemptNumber must be 1 or 2, got %d", 7)
	if err.Error() != "attemptNumber must be 1 or 2, got 7" {
		t.Errorf("message lost: %q", err.Error())
	}

	bare := &Error{Status: http.StatusTeapot}
	if bare.Error() == "" {
		t.Error("an Error without a cause still needs a message")
	}
}
