package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	appErr := NewForbiddenError("NOT_SELLER", "Only the seller may modify this listing")
	assert.Same(t, appErr, FromError(appErr))

	// Unexpected errors are masked behind a generic 500.
	converted := FromError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, converted.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.NotContains(t, converted.Message, "connection refused")

	assert.Nil(t, FromError(nil))
}

func TestStatusAndCodeExtraction(t *testing.T) {
	err := NewNotFoundError("ROOM_NOT_FOUND", "Chat room not found")
	assert.Equal(t, http.StatusNotFound, GetStatusCode(err))
	assert.Equal(t, "ROOM_NOT_FOUND", GetErrorCode(err))

	plain := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(plain))
	assert.Equal(t, "INTERNAL_ERROR", GetErrorCode(plain))
}

func TestErrorHandlerEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app-error", func(c *gin.Context) {
		c.Error(NewBadRequestError("EMPTY_CONTENT", "Message content cannot be empty"))
	})
	r.GET("/plain-error", func(c *gin.Context) {
		c.Error(errors.New("pq: duplicate key value violates unique constraint"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/app-error", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_CONTENT")

	// Internal detail never reaches the response body.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/plain-error", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "duplicate key")
}

func TestRecoveryWithLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RecoveryWithLogger())
	r.GET("/panic", func(c *gin.Context) {
		panic("something went very wrong")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SERVER_ERROR")
}
