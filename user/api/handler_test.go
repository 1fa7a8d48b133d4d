package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusbooks/backend/pkg/errors"
	"campusbooks/backend/pkg/session"
	"campusbooks/backend/user/models"
	"campusbooks/backend/user/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAccounts struct {
	byEmail map[string]*models.Account
	nextID  uint
}

func (s *stubAccounts) UpsertByEmail(email, name, image string) (*models.Account, error) {
	if a, ok := s.byEmail[email]; ok {
		a.Name = name
		a.Image = image
		return a, nil
	}
	s.nextID++
	a := &models.Account{ID: s.nextID, Email: email, Name: name, Image: image}
	s.byEmail[email] = a
	return a, nil
}

func (s *stubAccounts) GetByEmail(email string) (*models.Account, error) {
	if a, ok := s.byEmail[email]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccounts) GetByID(id uint) (*models.Account, error) {
	for _, a := range s.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccounts) UpdateUniversity(email string, university *string) (*models.Account, error) {
	a, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	a.University = university
	return a, nil
}

func newProfileStack() (*gin.Engine, *session.Verifier) {
	gin.SetMode(gin.TestMode)

	directory := service.NewDirectory(&stubAccounts{byEmail: make(map[string]*models.Account)}, nil)
	handler := NewProfileHandler(directory)
	verifier := session.NewVerifier("test-secret", "")

	engine := gin.New()
	engine.Use(errors.ErrorHandler())
	authed := engine.Group("/api/v1", session.Middleware(verifier), ResolveAccount(directory))
	authed.GET("/user/me", handler.Me)
	authed.PUT("/user/profile", handler.UpdateProfile)

	return engine, verifier
}

func TestMeCreatesAccountOnFirstRequest(t *testing.T) {
	engine, verifier := newProfileStack()
	token, err := verifier.Sign(session.Identity{Email: "alice@example.edu", Name: "Alice"}, time.Hour)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var account models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.NotZero(t, account.ID)
	assert.Equal(t, "alice@example.edu", account.Email)
	assert.Nil(t, account.University)
}

func TestUpdateProfile(t *testing.T) {
	engine, verifier := newProfileStack()
	token, err := verifier.Sign(session.Identity{Email: "alice@example.edu", Name: "Alice"}, time.Hour)
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"university": "National Taiwan University"})
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/user/profile", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "profile updated")
	assert.Contains(t, w.Body.String(), "National Taiwan University")
}

func TestProfileRequiresToken(t *testing.T) {
	engine, _ := newProfileStack()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}
