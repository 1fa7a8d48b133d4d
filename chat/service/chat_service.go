package service

import (
	"errors"
	"strings"

	"campusbooks/backend/chat/models"
	"campusbooks/backend/chat/repository"
	apperrors "campusbooks/backend/pkg/errors"
	userrepo "campusbooks/backend/user/repository"

	"gorm.io/gorm"
)

// Domain errors surfaced by the chat service.
var (
	ErrMissingCounterpart = apperrors.NewBadRequestError("MISSING_COUNTERPART", "Counterpart ID is required")
	ErrSelfContact        = apperrors.NewBadRequestError("SELF_CONTACT", "Cannot start a conversation with yourself")
	ErrEmptyContent       = apperrors.NewBadRequestError("EMPTY_CONTENT", "Message content cannot be empty")
	ErrRoomNotFound       = apperrors.NewNotFoundError("ROOM_NOT_FOUND", "Chat room not found")
	ErrNotParticipant     = apperrors.NewForbiddenError("NOT_PARTICIPANT", "You are not a participant of this room")
	ErrUnknownCounterpart = apperrors.NewNotFoundError("COUNTERPART_NOT_FOUND", "Counterpart account not found")
)

type ChatService struct {
	rooms    repository.ChatRepository
	accounts userrepo.AccountRepository
}

func NewChatService(rooms repository.ChatRepository, accounts userrepo.AccountRepository) *ChatService {
	return &ChatService{rooms: rooms, accounts: accounts}
}

// StartConversation returns the single room for the caller/counterpart pair,
// creating it on first contact. A non-empty first message is sent when the
// room was just created, or unconditionally when alwaysSend is set.
func (s *ChatService) StartConversation(callerID, counterpartID uint, firstMessage string, alwaysSend bool) (*models.ChatRoom, bool, error) {
	if counterpartID == 0 {
		return nil, false, ErrMissingCounterpart
	}
	if callerID == counterpartID {
		return nil, false, ErrSelfContact
	}

	caller, err := s.accounts.GetByID(callerID)
	if err != nil {
		return nil, false, err
	}

	counterpart, err := s.accounts.GetByID(counterpartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUnknownCounterpart
		}
		return nil, false, err
	}

	room, created, err := s.rooms.FindOrCreateRoom(caller, counterpart)
	if err != nil {
		return nil, false, err
	}

	if strings.TrimSpace(firstMessage) != "" && (created || alwaysSend) {
		if _, err := s.rooms.AppendMessage(room.ID, callerID, firstMessage); err != nil {
			return nil, false, err
		}
	}

	return room, created, nil
}

// Authorize checks that the caller may read or write the room. Every
// room-scoped operation reached from a request boundary goes through this.
func (s *ChatService) Authorize(callerID, roomID uint) (*models.ChatRoom, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.HasParticipant(callerID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}

// SendMessage appends a message to a room the caller participates in.
func (s *ChatService) SendMessage(callerID, roomID uint, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.Authorize(callerID, roomID); err != nil {
		return nil, err
	}
	return s.rooms.AppendMessage(roomID, callerID, content)
}

// History returns the room's messages, oldest first.
func (s *ChatService) History(callerID, roomID uint) ([]models.ChatMessage, error) {
	if _, err := s.Authorize(callerID, roomID); err != nil {
		return nil, err
	}
	return s.rooms.ListMessages(roomID)
}

// Rooms returns the caller's rooms ordered by last activity, each with its
// most recent message as a preview.
func (s *ChatService) Rooms(callerID uint) ([]models.RoomResponse, error) {
	rooms, err := s.rooms.ListRoomsForAccount(callerID)
	if err != nil {
		return nil, err
	}

	result := make([]models.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp := models.RoomResponse{
			ID:        room.ID,
			CreatedAt: room.CreatedAt,
			UpdatedAt: room.UpdatedAt,
		}
		for _, p := range room.Participants {
			resp.Participants = append(resp.Participants, p.Public())
		}
		last, err := s.rooms.LastMessage(room.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			preview := last.ToResponse()
			resp.LastMessage = &preview
		}
		result = append(result, resp)
	}
	return result, nil
}
