package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil, "fallback"))
	assert.Equal(t, "Lead title is required", UserMessage(NewApplicationError("Lead title is required", nil), "fallback"))
	assert.Equal(t, "Failed to fetch leads", UserMessage(fmt.Errorf("dial: %w", ErrTransport), "Failed to fetch leads"))
	assert.Equal(t, "Record not found", UserMessage(ErrNotFound, "fallback"))
	assert.Equal(t, "fallback", UserMessage(NewApplicationError("", nil), "fallback"))
	assert.Equal(t, "Token expired", UserMessage(ErrTokenExpired, "fallback"))
	assert.Equal(t, "Unauthorized", UserMessage(fmt.Errorf("mw: %w", ErrInvalidToken), "fallback"))
	assert.Equal(t, "Access denied", UserMessage(ErrForbidden, "fallback"))
}

func TestApplicationError_FirstFieldErrors(t *testing.T) {
	err := NewApplicationError("Validation failed", map[string][]string{
		"lead_Title":         {"The title field is required.", "second"},
		"lead_Contact_Email": {"Invalid email"},
		"empty":              {},
	})

	got := err.FirstFieldErrors()
	assert.Equal(t, map[string]string{
		"lead_Title":         "The title field is required.",
		"lead_Contact_Email": "Invalid email",
	}, got)
	assert.Nil(t, NewApplicationError("x", nil).FirstFieldErrors())
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("lead: %w", ErrNotFound)))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(ErrSessionNotFound))
	assert.Equal(t, http.StatusForbidden, StatusCode(ErrPasswordChangeFirst))
	assert.Equal(t, http.StatusBadGateway, StatusCode(fmt.Errorf("post: %w", ErrTransport)))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(NewApplicationError("bad", nil)))
	assert.Equal(t, http.StatusTeapot, StatusCode(NewHttpError(http.StatusTeapot, "tea", nil, nil)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("boom")))
}
