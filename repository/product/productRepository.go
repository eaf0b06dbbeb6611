package productrepo

import (
	"context"
	"database/sql"
	"errors"

	"sewabarang/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Product) (int64, error)
	List(ctx context.Context) ([]model.Product, error)
	Detail(ctx context.Context, id int64) (*model.Product, error)
	AddStock(ctx context.Context, id int64, n int64) error

	// ReserveStock decrements stock inside tx, guarded so it never goes
	// negative. Returns false when there was not enough stock.
	ReserveStock(ctx context.Context, tx *sql.Tx, id, n int64) (bool, error)
	RestoreStock(ctx context.Context, tx *sql.Tx, id, n int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, p *model.Product) (int64, error) {
	const q = `
INSERT INTO data_barang (nama_barang, kategori, deskripsi, gambar,
                         price_12_jam, price_1_hari, price_2_hari, jumlah_barang)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.Name, p.Category, p.Description, p.ImageURL,
		p.Price12Hours, p.Price1Day, p.Price2Days, p.Stock,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) List(ctx context.Context) ([]model.Product, error) {
	const q = `
	SELECT id, nama_barang, kategori, deskripsi, COALESCE(gambar,''),
	       price_12_jam, price_1_hari, price_2_hari, jumlah_barang, created_at
	FROM data_barang
	ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL,
			&p.Price12Hours, &p.Price1Day, &p.Price2Days, &p.Stock, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Product, error) {
	const q = `
	SELECT id, nama_barang, kategori, deskripsi, COALESCE(gambar,''),
	       price_12_jam, price_1_hari, price_2_hari, jumlah_barang, created_at
	FROM data_barang
	WHERE id = $1`
	var p model.Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL,
		&p.Price12Hours, &p.Price1Day, &p.Price2Days, &p.Stock, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) AddStock(ctx context.Context, id int64, n int64) error {
	if n <= 0 {
		return errors.New("n must be > 0")
	}
	const q = `
	UPDATE data_barang
	SET jumlah_barang = jumlah_barang + $2
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, n)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ReserveStock(ctx context.Context, tx *sql.Tx, id, n int64) (bool, error) {
	// Guard: only decrement if sufficient.
	const q = `
	UPDATE data_barang
	SET jumlah_barang = jumlah_barang - $2
	WHERE id = $1
	AND jumlah_barang >= $2`
	res, err := tx.ExecContext(ctx, q, id, n)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) RestoreStock(ctx context.Context, tx *sql.Tx, id, n int64) error {
	const q = `
	UPDATE data_barang
	SET jumlah_barang = jumlah_barang + $2
	WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, n)
	return err
}
