package service

import (
	"errors"

	"campusbooks/backend/book/models"
	"campusbooks/backend/book/repository"
	apperrors "campusbooks/backend/pkg/errors"

	"gorm.io/gorm"
)

type BookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// CreateBook lists a new book for the given seller.
func (s *BookService) CreateBook(sellerID uint, req *models.CreateBookRequest) (*models.Book, error) {
	noteStatus := req.NoteStatus
	if noteStatus == "" {
		noteStatus = "Not specified by seller"
	}

	book := &models.Book{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Authors:       req.Authors,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Condition:     req.Condition,
		NoteStatus:    noteStatus,
		CourseName:    req.CourseName,
		Professor:     req.Professor,
		Status:        models.StatusOnSale,
		SellerID:      sellerID,
	}
	if err := s.repo.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook returns a single listing.
func (s *BookService) GetBook(id uint) (*models.Book, error) {
	book, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("BOOK_NOT_FOUND", "Book not found")
		}
		return nil, err
	}
	return book, nil
}

// ListBooks returns all listings, newest first.
func (s *BookService) ListBooks() ([]models.Book, error) {
	return s.repo.ListAll()
}

// SearchBooks returns listings matching the query. An empty query returns
// an empty result rather than every listing.
func (s *BookService) SearchBooks(query string) ([]models.Book, error) {
	if query == "" {
		return []models.Book{}, nil
	}
	return s.repo.Search(query)
}

// MyBooks returns the caller's own listings.
func (s *BookService) MyBooks(sellerID uint) ([]models.Book, error) {
	return s.repo.ListBySeller(sellerID)
}

// UpdateStatus marks a listing sold or back on sale. Only the seller may do
// this.
func (s *BookService) UpdateStatus(callerID, id uint, status string) (*models.Book, error) {
	if status != models.StatusOnSale && status != models.StatusSold {
		return nil, apperrors.NewBadRequestError("INVALID_STATUS", "Status must be ON_SALE or SOLD")
	}

	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}
	if book.SellerID != callerID {
		return nil, apperrors.NewForbiddenError("NOT_SELLER", "Only the seller may modify this listing")
	}

	return s.repo.UpdateStatus(id, status)
}

// DeleteBook removes a listing. Only the seller may do this.
func (s *BookService) DeleteBook(callerID, id uint) error {
	book, err := s.GetBook(id)
	if err != nil {
		return err
	}
	if book.SellerID != callerID {
		return apperrors.NewForbiddenError("NOT_SELLER", "Only the seller may delete this listing")
	}
	return s.repo.Delete(id)
}
