// Package poll implements the client side of the chat protocol: a thin HTTP
// API client and a timer-driven session that keeps a local message list
// eventually consistent with the server without a persistent connection.
package poll

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender identifies the author of a message on the wire.
type Sender struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Message is the wire form of a chat message.
type Message struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Sender    Sender    `json:"sender"`
}

// APIError is a structured error response from the chat API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api: %d [%s] %s", e.StatusCode, e.Code, e.Message)
}

// Client is a minimal HTTP client for the chat endpoints. It performs no
// retries; transient failures are handled by the polling session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a chat API client authenticating with the given session
// token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListMessages fetches a room's full history, oldest first.
func (c *Client) ListMessages(ctx context.Context, roomID uint) ([]Message, error) {
	url := fmt.Sprintf("%s/api/v1/rooms/%d/messages", c.baseURL, roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var messages []Message
	if err := c.do(req, http.StatusOK, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage appends a message to a room and returns the stored message.
func (c *Client) SendMessage(ctx context.Context, roomID uint, content string) (Message, error) {
	body, err := json.Marshal(map[string]interface{}{
		"chatRoomId": roomID,
		"content":    content,
	})
	if err != nil {
		return Message{}, err
	}

	url := c.baseURL + "/api/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Message{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var message Message
	if err := c.do(req, http.StatusCreated, &message); err != nil {
		return Message{}, err
	}
	return message, nil
}

func (c *Client) do(req *http.Request, wantStatus int, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
