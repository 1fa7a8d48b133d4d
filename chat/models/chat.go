package models

import (
	"fmt"
	"time"

	usermodels "campusbooks/backend/user/models"
)

// ChatRoom is a persistent two-party conversation. PairKey is the canonical
// sorted participant pair; its unique index guarantees at most one room per
// pair even under concurrent first contact.
type ChatRoom struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	PairKey      string               `gorm:"uniqueIndex;size:64" json:"-"`
	Participants []usermodels.Account `gorm:"many2many:chat_room_participants" json:"participants,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"` // last activity, bumped on every message
}

// HasParticipant reports whether the account is a member of the room.
func (r *ChatRoom) HasParticipant(accountID uint) bool {
	for _, p := range r.Participants {
		if p.ID == accountID {
			return true
		}
	}
	return false
}

// ChatMessage is one message in a room. Messages are immutable; there is no
// edit or delete path.
type ChatMessage struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	ChatRoomID uint               `gorm:"index" json:"chatRoomId"`
	SenderID   uint               `gorm:"index" json:"senderId"`
	Sender     usermodels.Account `gorm:"foreignKey:SenderID" json:"-"`
	Content    string             `json:"content"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// PairKey returns the canonical key for an unordered account pair.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// StartConversationRequest is the body for opening (or re-opening) a
// conversation with another account. AlwaysSendMessage controls whether the
// optional first message is also sent when the room already exists.
type StartConversationRequest struct {
	CounterpartID     uint   `json:"counterpartId"`
	Message           string `json:"message"`
	AlwaysSendMessage bool   `json:"alwaysSendMessage"`
}

// SendMessageRequest is the body for appending a message to a room.
type SendMessageRequest struct {
	ChatRoomID uint   `json:"chatRoomId"`
	Content    string `json:"content"`
}

// MessageResponse is the wire form of a message.
type MessageResponse struct {
	ID        uint                     `json:"id"`
	Content   string                   `json:"content"`
	CreatedAt time.Time                `json:"createdAt"`
	Sender    usermodels.PublicAccount `json:"sender"`
}

// ToResponse converts a message to its wire form.
func (m *ChatMessage) ToResponse() MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Sender:    m.Sender.Public(),
	}
}

// RoomResponse is the wire form of a room in the caller's room list.
type RoomResponse struct {
	ID           uint                       `json:"id"`
	Participants []usermodels.PublicAccount `json:"participants"`
	LastMessage  *MessageResponse           `json:"lastMessage,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}
