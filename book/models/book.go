package models

import (
	"time"
)

// Listing status values.
const (
	StatusOnSale = "ON_SALE"
	StatusSold   = "SOLD"
)

// Book is a used-textbook listing.
type Book struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	ISBN          string   `gorm:"index" json:"isbn"`
	Title         string   `json:"title"`
	Authors       []string `gorm:"serializer:json" json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"coverUrl"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Condition     string   `json:"condition"`
	NoteStatus    string   `json:"noteStatus"`
	CourseName    string   `json:"courseName"`
	Professor     string   `json:"professor"`
	Status        string   `gorm:"default:ON_SALE" json:"status"`
	SellerID      uint     `gorm:"index" json:"sellerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBookRequest is the body for listing a book.
type CreateBookRequest struct {
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title" binding:"required"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"coverUrl"`
	Price         float64  `json:"price" binding:"required"`
	OriginalPrice *float64 `json:"originalPrice"`
	Condition     string   `json:"condition"`
	NoteStatus    string   `json:"noteStatus"`
	CourseName    string   `json:"courseName"`
	Professor     string   `json:"professor"`
}

// UpdateStatusRequest is the body for marking a listing sold or back on
// sale.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Metadata is the external book-metadata lookup result for an ISBN.
type Metadata struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	Thumbnail     string   `json:"thumbnail"`
}
