package api

import (
	"context"
	"net/http"
	"strconv"

	"campusbooks/backend/chat/models"
	"campusbooks/backend/chat/service"
	"campusbooks/backend/pkg/errors"
	userapi "campusbooks/backend/user/api"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type ChatHandler struct {
	service      *service.ChatService
	messagesSent metric.Int64Counter
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	meter := otel.Meter("campusbooks/chat")
	counter, _ := meter.Int64Counter("chat_messages_sent_total",
		metric.WithDescription("Number of chat messages accepted"))
	return &ChatHandler{service: svc, messagesSent: counter}
}

// StartConversation opens (or returns) the room between the caller and a
// counterpart, optionally sending a first message.
func (h *ChatHandler) StartConversation(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	var req models.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid request body"))
		return
	}

	room, _, err := h.service.StartConversation(account.ID, req.CounterpartID, req.Message, req.AlwaysSendMessage)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chatRoomId": room.ID})
}

// ListRooms returns the caller's conversations, most recently active first.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	rooms, err := h.service.Rooms(account.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListMessages returns a room's history, oldest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewBadRequestError("INVALID_ID", "Invalid room ID"))
		return
	}

	messages, err := h.service.History(account.ID, uint(roomID))
	if err != nil {
		c.Error(err)
		return
	}

	result := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, messages[i].ToResponse())
	}
	c.JSON(http.StatusOK, result)
}

// SendMessage appends a message to a room.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	account, ok := userapi.AccountFrom(c)
	if !ok {
		c.Error(errors.NewUnauthorizedError("UNAUTHENTICATED", "No authenticated identity"))
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewBadRequestError("INVALID_REQUEST", "Invalid request body"))
		return
	}

	message, err := h.service.SendMessage(account.ID, req.ChatRoomID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	h.messagesSent.Add(context.Background(), 1)
	c.JSON(http.StatusCreated, message.ToResponse())
}
