package repository

import (
	"campusbooks/backend/user/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	UpsertByEmail(email, name, image string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetByID(id uint) (*models.Account, error)
	UpdateUniversity(email string, university *string) (*models.Account, error)
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// UpsertByEmail creates the account on first sign-in, or refreshes the
// provider-supplied name and image on subsequent ones. The unique email
// index makes concurrent first sign-ins converge on a single row.
func (r *GormAccountRepository) UpsertByEmail(email, name, image string) (*models.Account, error) {
	account := models.Account{Email: email, Name: name, Image: image}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image"}),
	}).Create(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return r.GetByEmail(email)
	}
	return &account, nil
}

func (r *GormAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GormAccountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GormAccountRepository) UpdateUniversity(email string, university *string) (*models.Account, error) {
	err := r.db.Model(&models.Account{}).
		Where("email = ?", email).
		Update("university", university).Error
	if err != nil {
		return nil, err
	}
	return r.GetByEmail(email)
}
