package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "campusbooks/backend/pkg/errors"
	"campusbooks/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(logger.New(logger.Config{Level: "error"}), RateLimiterOptions{
		Limit:          1,
		Burst:          3,
		ExpiryDuration: time.Hour,
		KeyFunc:        func(c *gin.Context) string { return "fixed-key" },
	})

	r := gin.New()
	r.Use(apperrors.ErrorHandler())
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	// The burst passes, then requests are rejected.
	assert.Equal(t, []int{200, 200, 200, 429, 429}, statuses)
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(logger.New(logger.Config{Level: "error"}), RateLimiterOptions{
		Limit:          1,
		Burst:          1,
		ExpiryDuration: time.Hour,
		KeyFunc:        func(c *gin.Context) string { return c.GetHeader("X-Client") },
	})

	r := gin.New()
	r.Use(apperrors.ErrorHandler())
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(key string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Client", key)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	// A different client still has its own bucket.
	assert.Equal(t, http.StatusOK, do("b"))
}
