package service

import (
	"encoding/json"
	"fmt"
	"time"

	"campusbooks/backend/shared/redis"
	"campusbooks/backend/user/models"
	"campusbooks/backend/user/repository"
)

const emailCacheTTL = 10 * time.Minute

// Directory resolves authenticated identities to canonical accounts. The
// email claim from the session is the only trusted key; any account ID a
// client supplies is ignored in favor of this lookup.
type Directory struct {
	repo  repository.AccountRepository
	cache *redis.Client
}

// NewDirectory creates a directory backed by the given repository. The cache
// is optional; a nil client disables caching.
func NewDirectory(repo repository.AccountRepository, cache *redis.Client) *Directory {
	return &Directory{repo: repo, cache: cache}
}

// Resolve returns the account for the asserted identity, creating it on
// first sign-in.
func (d *Directory) Resolve(email, name, image string) (*models.Account, error) {
	if account, ok := d.fromCache(email); ok {
		return account, nil
	}

	account, err := d.repo.UpsertByEmail(email, name, image)
	if err != nil {
		return nil, err
	}

	d.toCache(account)
	return account, nil
}

// GetByID returns the account with the given internal identifier.
func (d *Directory) GetByID(id uint) (*models.Account, error) {
	return d.repo.GetByID(id)
}

// UpdateUniversity sets or clears the caller's affiliated institution.
func (d *Directory) UpdateUniversity(email, university string) (*models.Account, error) {
	var value *string
	if university != "" {
		value = &university
	}

	account, err := d.repo.UpdateUniversity(email, value)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		_ = d.cache.Del(cacheKey(email))
	}
	return account, nil
}

func (d *Directory) fromCache(email string) (*models.Account, bool) {
	if d.cache == nil {
		return nil, false
	}
	cached, err := d.cache.Get(cacheKey(email))
	if err != nil || cached == "" {
		return nil, false
	}
	var account models.Account
	if err := json.Unmarshal([]byte(cached), &account); err != nil {
		return nil, false
	}
	return &account, true
}

func (d *Directory) toCache(account *models.Account) {
	if d.cache == nil {
		return
	}
	if data, err := json.Marshal(account); err == nil {
		_ = d.cache.Set(cacheKey(account.Email), data, emailCacheTTL)
	}
}

func cacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}
