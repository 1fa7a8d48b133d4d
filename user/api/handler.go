package api

import (
	"net/http"

	"campusbooks/backend/pkg/errors"
	"campusbooks/backend/user/models"
	"campusbooks/backend/user/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	directory *service.Directory
}

func NewProfileHandler(directory *service.Directory) *ProfileHandler {
	return &ProfileHandler{directory: directory}
}

// Me returns the caller's own account.
func (h *ProfileHandler) Me(c *gin.Context) {
	account, ok := AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateProfile updates the caller's affiliated institution.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	account, ok := AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid request body"))
		return
	}

	updated, err := h.directory.UpdateUniversity(account.Email, req.University)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "user": updated})
}
