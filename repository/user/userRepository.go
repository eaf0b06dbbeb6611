package userrepo

import (
	"context"
	"database/sql"

	"sewabarang/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, u *model.User) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (first_name, last_name, email, username, password_hash, role)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
	SELECT id, first_name, last_name, email, username,
	       COALESCE(no_hp,''), COALESCE(alamat,''), role, password_hash, created_at
	FROM users
	WHERE email = $1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.Phone, &u.Address, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
	SELECT id, first_name, last_name, email, username,
	       COALESCE(no_hp,''), COALESCE(alamat,''), role, password_hash, created_at
	FROM users
	WHERE id = $1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.Phone, &u.Address, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) UpdateProfile(ctx context.Context, u *model.User) error {
	const q = `
	UPDATE users
	SET first_name = $2,
		last_name = $3,
		no_hp = $4,
		alamat = $5
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.FirstName, u.LastName, u.Phone, u.Address)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
