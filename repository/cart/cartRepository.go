package cartrepo

import (
	"context"
	"database/sql"

	"sewabarang/model"
)

type Repo interface {
	Add(ctx context.Context, item *model.CartItem) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Get(ctx context.Context, id int64) (*model.CartItem, error)
	Update(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Add(ctx context.Context, item *model.CartItem) (int64, error) {
	const q = `
INSERT INTO cart_items (user_id, data_barang_id, durasi, tambah_tv,
                        metode_pengiriman, start_date)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		item.UserID, item.ProductID, item.Duration, item.AddTV,
		item.DeliveryMethod, item.StartDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	const q = `
	SELECT c.id, c.user_id, c.data_barang_id, b.nama_barang,
	       c.durasi, c.tambah_tv, c.metode_pengiriman, c.start_date, c.created_at
	FROM cart_items c
	JOIN data_barang b ON b.id = c.data_barang_id
	WHERE c.user_id = $1
	ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.ProductName,
			&it.Duration, &it.AddTV, &it.DeliveryMethod, &it.StartDate, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.CartItem, error) {
	const q = `
	SELECT id, user_id, data_barang_id, durasi, tambah_tv,
	       metode_pengiriman, start_date, created_at
	FROM cart_items
	WHERE id = $1`
	var it model.CartItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Duration, &it.AddTV,
		&it.DeliveryMethod, &it.StartDate, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) Update(ctx context.Context, item *model.CartItem) error {
	const q = `
	UPDATE cart_items
	SET durasi = $2,
		tambah_tv = $3,
		metode_pengiriman = $4,
		start_date = $5
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		item.ID, item.Duration, item.AddTV, item.DeliveryMethod, item.StartDate,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM cart_items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) DeleteByUser(ctx context.Context, userID int64) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
