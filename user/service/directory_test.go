package service

import (
	"testing"

	"campusbooks/backend/user/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryAccountRepository struct {
	byEmail map[string]*models.Account
	nextID  uint
}

func newMemoryAccounts() *memoryAccountRepository {
	return &memoryAccountRepository{byEmail: make(map[string]*models.Account)}
}

func (m *memoryAccountRepository) UpsertByEmail(email, name, image string) (*models.Account, error) {
	if a, ok := m.byEmail[email]; ok {
		a.Name = name
		a.Image = image
		return a, nil
	}
	m.nextID++
	a := &models.Account{ID: m.nextID, Email: email, Name: name, Image: image}
	m.byEmail[email] = a
	return a, nil
}

func (m *memoryAccountRepository) GetByEmail(email string) (*models.Account, error) {
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryAccountRepository) GetByID(id uint) (*models.Account, error) {
	for _, a := range m.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryAccountRepository) UpdateUniversity(email string, university *string) (*models.Account, error) {
	a, err := m.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	a.University = university
	return a, nil
}

func TestResolveCreatesAccountOnFirstSignIn(t *testing.T) {
	directory := NewDirectory(newMemoryAccounts(), nil)

	account, err := directory.Resolve("alice@example.edu", "Alice", "http://img/alice.png")
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, "alice@example.edu", account.Email)

	// Resolving again keeps the same account but refreshes provider fields.
	again, err := directory.Resolve("alice@example.edu", "Alice Chen", "http://img/alice2.png")
	require.NoError(t, err)
	assert.Equal(t, account.ID, again.ID)
	assert.Equal(t, "Alice Chen", again.Name)
	assert.Equal(t, "http://img/alice2.png", again.Image)
}

func TestUpdateUniversity(t *testing.T) {
	repo := newMemoryAccounts()
	directory := NewDirectory(repo, nil)

	_, err := directory.Resolve("alice@example.edu", "Alice", "")
	require.NoError(t, err)

	account, err := directory.UpdateUniversity("alice@example.edu", "National Taiwan University")
	require.NoError(t, err)
	require.NotNil(t, account.University)
	assert.Equal(t, "National Taiwan University", *account.University)

	// Empty string clears the field.
	account, err = directory.UpdateUniversity("alice@example.edu", "")
	require.NoError(t, err)
	assert.Nil(t, account.University)
}

func TestPublicAccountHidesEmail(t *testing.T) {
	account := models.Account{ID: 3, Email: "bob@example.edu", Name: "Bob", Image: "http://img/bob.png"}
	public := account.Public()
	assert.Equal(t, uint(3), public.ID)
	assert.Equal(t, "Bob", public.Name)
	assert.Equal(t, "http://img/bob.png", public.Image)
}
