// service/chat/chat_service_test.go
package chatsvc_test

import (
	"context"
	"testing"

	"sewabarang/model"
	chatsvc "sewabarang/service/chat"
)

type repoMock struct {
	insertFn func(ctx context.Context, m *model.ChatMessage) (int64, error)
	listFn   func(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error)
}

func (m *repoMock) Insert(ctx context.Context, msg *model.ChatMessage) (int64, error) {
	return m.insertFn(ctx, msg)
}
func (m *repoMock) ListSince(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error) {
	return m.listFn(ctx, userID, afterID, limit)
}

func TestSend_TrimsAndStores(t *testing.T) {
	var got *model.ChatMessage
	m := &repoMock{insertFn: func(ctx context.Context, msg *model.ChatMessage) (int64, error) {
		got = msg
		return 5, nil
	}}
	s := chatsvc.New(m)

	id, err := s.Send(context.Background(), 7, model.ChatFromUser, "  halo, barang belum sampai  ")
	if err != nil || id != 5 {
		t.Fatalf("got id=%v err=%v; want 5 nil", id, err)
	}
	if got.Body != "halo, barang belum sampai" {
		t.Fatalf("body not trimmed: %q", got.Body)
	}
	if got.Sender != model.ChatFromUser {
		t.Fatalf("sender = %s; want USER", got.Sender)
	}
}

func TestSend_EmptyBody(t *testing.T) {
	s := chatsvc.New(&repoMock{})
	if _, err := s.Send(context.Background(), 7, model.ChatFromUser, "   "); err == nil {
		t.Fatal("expected error for blank body")
	}
}

func TestPoll_PassesCursor(t *testing.T) {
	m := &repoMock{listFn: func(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error) {
		if userID != 7 || afterID != 120 {
			t.Fatalf("unexpected args: user=%d after=%d", userID, afterID)
		}
		if limit <= 0 {
			t.Fatalf("limit must be positive, got %d", limit)
		}
		return []model.ChatMessage{{ID: 121}}, nil
	}}
	s := chatsvc.New(m)

	msgs, err := s.Poll(context.Background(), 7, 120)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("got %v %v; want one message", msgs, err)
	}
}
