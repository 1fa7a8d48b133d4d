package repository

import (
	"errors"
	"time"

	"campusbooks/backend/chat/models"
	usermodels "campusbooks/backend/user/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	FindOrCreateRoom(caller, counterpart *usermodels.Account) (*models.ChatRoom, bool, error)
	GetRoom(id uint) (*models.ChatRoom, error)
	AppendMessage(roomID, senderID uint, content string) (*models.ChatMessage, error)
	ListMessages(roomID uint) ([]models.ChatMessage, error)
	ListRoomsForAccount(accountID uint) ([]models.ChatRoom, error)
	LastMessage(roomID uint) (*models.ChatMessage, error)
}

type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindOrCreateRoom returns the single room for the unordered account pair,
// creating it when absent. The unique index on pair_key closes the race
// between two concurrent first contacts: the loser's insert fails and it
// re-reads the winner's row.
func (r *GormChatRepository) FindOrCreateRoom(caller, counterpart *usermodels.Account) (*models.ChatRoom, bool, error) {
	key := models.PairKey(caller.ID, counterpart.ID)

	var room models.ChatRoom
	err := r.db.Preload("Participants").Where("pair_key = ?", key).First(&room).Error
	if err == nil {
		return &room, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	room = models.ChatRoom{PairKey: key}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return tx.Model(&room).Association("Participants").Append(caller, counterpart)
	})
	if err != nil {
		// Lost the creation race: the other caller's row satisfies the
		// lookup.
		var existing models.ChatRoom
		if rerr := r.db.Preload("Participants").Where("pair_key = ?", key).First(&existing).Error; rerr == nil {
			return &existing, false, nil
		}
		return nil, false, err
	}

	room.Participants = []usermodels.Account{*caller, *counterpart}
	return &room, true, nil
}

func (r *GormChatRepository) GetRoom(id uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.Preload("Participants").First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AppendMessage inserts the message and bumps the room's last-activity
// timestamp in one transaction, so a message never exists without its
// ordering effect on the room list.
func (r *GormChatRepository) AppendMessage(roomID, senderID uint, content string) (*models.ChatMessage, error) {
	message := models.ChatMessage{
		ChatRoomID: roomID,
		SenderID:   senderID,
		Content:    content,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.ChatRoom{}).
			Where("id = ?", roomID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	if err := r.db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns the room's full history, oldest first.
func (r *GormChatRepository) ListMessages(roomID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Preload("Sender").
		Where("chat_room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, err
}

// ListRoomsForAccount returns the rooms the account participates in, most
// recently active first.
func (r *GormChatRepository) ListRoomsForAccount(accountID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.Preload("Participants").
		Joins("JOIN chat_room_participants crp ON crp.chat_room_id = chat_rooms.id").
		Where("crp.account_id = ?", accountID).
		Order("chat_rooms.updated_at DESC").
		Find(&rooms).Error
	if rooms == nil {
		rooms = []models.ChatRoom{}
	}
	return rooms, err
}

// LastMessage returns the newest message in a room, or nil when the room is
// empty.
func (r *GormChatRepository) LastMessage(roomID uint) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := r.db.Preload("Sender").
		Where("chat_room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}
