package service

import (
	"sort"
	"strings"
	"testing"

	"campusbooks/backend/book/models"
	apperrors "campusbooks/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBookRepository keeps listings in memory.
type fakeBookRepository struct {
	books  map[uint]*models.Book
	nextID uint
}

func newFakeBooks() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[uint]*models.Book)}
}

func (f *fakeBookRepository) Create(book *models.Book) error {
	f.nextID++
	book.ID = f.nextID
	f.books[book.ID] = book
	return nil
}

func (f *fakeBookRepository) GetByID(id uint) (*models.Book, error) {
	if b, ok := f.books[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepository) all() []models.Book {
	books := make([]models.Book, 0, len(f.books))
	for _, b := range f.books {
		books = append(books, *b)
	}
	// Newest first, matching the repository ordering.
	sort.Slice(books, func(i, j int) bool { return books[i].ID > books[j].ID })
	return books
}

func (f *fakeBookRepository) ListAll() ([]models.Book, error) {
	return f.all(), nil
}

func (f *fakeBookRepository) ListBySeller(sellerID uint) ([]models.Book, error) {
	books := []models.Book{}
	for _, b := range f.all() {
		if b.SellerID == sellerID {
			books = append(books, b)
		}
	}
	return books, nil
}

func (f *fakeBookRepository) Search(query string) ([]models.Book, error) {
	q := strings.ToLower(query)
	books := []models.Book{}
	for _, b := range f.all() {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.CourseName), q) ||
			strings.Contains(strings.ToLower(b.Professor), q) {
			books = append(books, b)
		}
	}
	return books, nil
}

func (f *fakeBookRepository) UpdateStatus(id uint, status string) (*models.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepository) Delete(id uint) error {
	delete(f.books, id)
	return nil
}

func TestCreateBookDefaults(t *testing.T) {
	svc := NewBookService(newFakeBooks())

	book, err := svc.CreateBook(1, &models.CreateBookRequest{
		Title: "Linear Algebra Done Right",
		Price: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnSale, book.Status)
	assert.Equal(t, "Not specified by seller", book.NoteStatus)
	assert.Equal(t, uint(1), book.SellerID)

	book, err = svc.CreateBook(1, &models.CreateBookRequest{
		Title:      "Organic Chemistry",
		Price:      800,
		NoteStatus: "Some highlighting",
	})
	require.NoError(t, err)
	assert.Equal(t, "Some highlighting", book.NoteStatus)
}

func TestGetBookNotFound(t *testing.T) {
	svc := NewBookService(newFakeBooks())

	_, err := svc.GetBook(42)
	require.Error(t, err)
	assert.Equal(t, "BOOK_NOT_FOUND", apperrors.GetErrorCode(err))
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}

func TestSearchBooks(t *testing.T) {
	repo := newFakeBooks()
	svc := NewBookService(repo)

	_, err := svc.CreateBook(1, &models.CreateBookRequest{Title: "Calculus Early Transcendentals", CourseName: "MATH 101", Professor: "Dr. Lin", Price: 900})
	require.NoError(t, err)
	_, err = svc.CreateBook(2, &models.CreateBookRequest{Title: "Microeconomics", CourseName: "ECON 200", Professor: "Dr. Calvo", Price: 700})
	require.NoError(t, err)

	// Matches across title, course name and professor, case-insensitively.
	results, err := svc.SearchBooks("calculus")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Calculus Early Transcendentals", results[0].Title)

	results, err = svc.SearchBooks("econ")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = svc.SearchBooks("dr.")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Empty query returns nothing, not everything.
	results, err = svc.SearchBooks("")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMyBooks(t *testing.T) {
	svc := NewBookService(newFakeBooks())

	_, err := svc.CreateBook(1, &models.CreateBookRequest{Title: "Book A", Price: 100})
	require.NoError(t, err)
	_, err = svc.CreateBook(2, &models.CreateBookRequest{Title: "Book B", Price: 200})
	require.NoError(t, err)

	mine, err := svc.MyBooks(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Book A", mine[0].Title)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewBookService(newFakeBooks())
	book, err := svc.CreateBook(1, &models.CreateBookRequest{Title: "Book A", Price: 100})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(1, book.ID, models.StatusSold)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, updated.Status)

	// Back on sale works too.
	updated, err = svc.UpdateStatus(1, book.ID, models.StatusOnSale)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnSale, updated.Status)

	_, err = svc.UpdateStatus(1, book.ID, "DELETED")
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATUS", apperrors.GetErrorCode(err))

	// Someone other than the seller gets a forbidden error.
	_, err = svc.UpdateStatus(2, book.ID, models.StatusSold)
	require.Error(t, err)
	assert.Equal(t, "NOT_SELLER", apperrors.GetErrorCode(err))
	assert.Equal(t, 403, apperrors.GetStatusCode(err))

	_, err = svc.UpdateStatus(1, 999, models.StatusSold)
	assert.Equal(t, "BOOK_NOT_FOUND", apperrors.GetErrorCode(err))
}

func TestDeleteBook(t *testing.T) {
	repo := newFakeBooks()
	svc := NewBookService(repo)
	book, err := svc.CreateBook(1, &models.CreateBookRequest{Title: "Book A", Price: 100})
	require.NoError(t, err)

	err = svc.DeleteBook(2, book.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_SELLER", apperrors.GetErrorCode(err))

	require.NoError(t, svc.DeleteBook(1, book.ID))
	_, err = svc.GetBook(book.ID)
	assert.Equal(t, "BOOK_NOT_FOUND", apperrors.GetErrorCode(err))
}
