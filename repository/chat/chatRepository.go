package chatrepo

import (
	"context"
	"database/sql"

	"sewabarang/model"
)

type Repo interface {
	Insert(ctx context.Context, m *model.ChatMessage) (int64, error)
	// ListSince returns messages in the user's thread with id > afterID,
	// oldest first. The widget polls with the last id it rendered.
	ListSince(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, m *model.ChatMessage) (int64, error) {
	const q = `
INSERT INTO chat_messages (user_id, sender, body)
VALUES ($1,$2,$3)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, m.UserID, m.Sender, m.Body).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ListSince(ctx context.Context, userID, afterID int64, limit int) ([]model.ChatMessage, error) {
	const q = `
	SELECT id, user_id, sender, body, created_at
	FROM chat_messages
	WHERE user_id = $1
	AND id > $2
	ORDER BY id
	LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, userID, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
