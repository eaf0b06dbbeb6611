package chatsvc

import (
	"context"
	"errors"
	"strings"

	"sewabarang/model"
)

var ErrEmptyBody = errors.New("empty message body")

const pollLimit = 100

type Repo interface {
	Insert(ctx context.Context, m *model.ChatMessage) (int64, error)
	ListSince(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error)
}

type Service interface {
	// Send stores one message in the user's support thread.
	Send(ctx context.Context, userID int64, sender model.ChatSender, body string) (int64, error)

	// Poll returns messages after afterID, oldest first. Delivery is
	// at-least-stored; the widget re-polls with the last id it rendered.
	Poll(ctx context.Context, userID, afterID int64) ([]model.ChatMessage, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Send(ctx context.Context, userID int64, sender model.ChatSender, body string) (int64, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0, ErrEmptyBody
	}
	return s.r.Insert(ctx, &model.ChatMessage{
		UserID: userID,
		Sender: sender,
		Body:   body,
	})
}

func (s *service) Poll(ctx context.Context, userID, afterID int64) ([]model.ChatMessage, error) {
	return s.r.ListSince(ctx, userID, afterID, pollLimit)
}
