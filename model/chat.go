// model/chat.go
package model

import "time"

type ChatSender string

const (
	ChatFromUser  ChatSender = "USER"
	ChatFromAdmin ChatSender = "ADMIN"
)

// ChatMessage is one support-chat message. The widget polls with the last
// message id it has seen.
type ChatMessage struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Sender    ChatSender `json:"sender"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

// SendChatReq posts one message into the user's support thread.
// swagger:model SendChatReq
type SendChatReq struct {
	Body string `json:"body" validate:"required,max=2000"`
}
