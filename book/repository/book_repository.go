package repository

import (
	"campusbooks/backend/book/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id uint) (*models.Book, error)
	ListAll() ([]models.Book, error)
	ListBySeller(sellerID uint) ([]models.Book, error)
	Search(query string) ([]models.Book, error)
	UpdateStatus(id uint, status string) (*models.Book, error)
	Delete(id uint) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) ListAll() ([]models.Book, error) {
	var books []models.Book
	err := r.db.Order("created_at DESC").Find(&books).Error
	if books == nil {
		books = []models.Book{}
	}
	return books, err
}

func (r *GormBookRepository) ListBySeller(sellerID uint) ([]models.Book, error) {
	var books []models.Book
	err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&books).Error
	if books == nil {
		books = []models.Book{}
	}
	return books, err
}

// Search matches the query case-insensitively against title, course name
// and professor, newest listings first.
func (r *GormBookRepository) Search(query string) ([]models.Book, error) {
	var books []models.Book
	pattern := "%" + query + "%"
	err := r.db.
		Where("title ILIKE ? OR course_name ILIKE ? OR professor ILIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&books).Error
	if books == nil {
		books = []models.Book{}
	}
	return books, err
}

func (r *GormBookRepository) UpdateStatus(id uint, status string) (*models.Book, error) {
	if err := r.db.Model(&models.Book{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *GormBookRepository) Delete(id uint) error {
	return r.db.Delete(&models.Book{}, id).Error
}
