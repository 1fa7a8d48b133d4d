package api

import (
	"net/http"
	"strconv"

	"campusbooks/backend/book/models"
	"campusbooks/backend/book/service"
	"campusbooks/backend/pkg/errors"
	userapi "campusbooks/backend/user/api"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	service *service.BookService
	lookup  *service.LookupClient
}

func NewBookHandler(service *service.BookService, lookup *service.LookupClient) *BookHandler {
	return &BookHandler{service: service, lookup: lookup}
}

// CreateBook lists a new book for sale.
func (h *BookHandler) CreateBook(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid request body"))
		return
	}

	book, err := h.service.CreateBook(account.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// ListBooks returns every listing, newest first.
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// SearchBooks returns listings matching the q parameter.
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.service.SearchBooks(c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns one listing.
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	book, err := h.service.GetBook(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// MyBooks returns the caller's own listings.
func (h *BookHandler) MyBooks(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	books, err := h.service.MyBooks(account.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// UpdateStatus marks a listing sold or back on sale.
func (h *BookHandler) UpdateStatus(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid request body"))
		return
	}

	book, err := h.service.UpdateStatus(account.ID, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a listing.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteBook(account.ID, id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}

// Lookup resolves an ISBN to book metadata via the external lookup service.
func (h *BookHandler) Lookup(c *gin.Context) {
	meta, err := h.lookup.LookupISBN(c.Request.Context(), c.Query("isbn"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewBadRequestError("INVALID_ID", "Invalid book ID")
	}
	return uint(id), nil
}
