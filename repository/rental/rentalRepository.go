// repository/rental/repo.go
package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"sewabarang/model"
)

type HistoryRow struct {
	RentalID    int64      `json:"rental_id"`
	ProductID   int64      `json:"data_barang_id"`
	ProductName string     `json:"nama_barang"`
	Duration    string     `json:"durasi"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	TotalPrice  int64      `json:"total_price"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) (int64, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)

	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Rental, error)
	Activate(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
	Cancel(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)

	// ListOverdueActive returns ACTIVE rentals whose end time passed cutoff,
	// for the sweeper.
	ListOverdueActive(ctx context.Context, cutoff time.Time) ([]model.Rental, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) (int64, error) {
	const q = `
		INSERT INTO rentals (user_id, data_barang_id, durasi, tambah_tv,
		                     metode_pengiriman, lokasi_pengantaran, jumlah,
		                     start_date, end_date, end_time, total_price, status,
		                     xendit_invoice_id, payment_link)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, q,
		m.UserID, m.ProductID, m.Duration, m.AddTV,
		m.DeliveryMethod, m.DeliveryAddress, m.Quantity,
		m.StartDate, m.EndDate, m.EndTime, m.TotalPrice, m.Status,
		m.XenditInvoiceID, m.PaymentLink,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT id, user_id, data_barang_id, durasi, jumlah, status
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	var m model.Rental
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(
		&m.ID, &m.UserID, &m.ProductID, &m.Duration, &m.Quantity, &m.Status,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkReturned reports false when the rental was no longer ACTIVE, so the
// caller knows someone else already closed it and stock must not be restored
// a second time.
func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	const q = `
		UPDATE rentals
		SET status = 'RETURNED',
			returned_at = NOW()
		WHERE id = $1
		AND status = 'ACTIVE'`
	res, err := tx.ExecContext(ctx, q, rentalID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = `
			SELECT
			r.id             AS rental_id,
			r.data_barang_id AS data_barang_id,
			b.nama_barang    AS nama_barang,
			r.durasi         AS durasi,
			r.start_date     AS start_date,
			r.end_date       AS end_date,
			r.total_price    AS total_price,
			r.status         AS status,
			r.created_at     AS created_at,
			r.returned_at    AS returned_at
			FROM rentals r
			JOIN data_barang b ON b.id = r.data_barang_id
			WHERE r.user_id = $1
			ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.RentalID, &h.ProductID, &h.ProductName, &h.Duration,
			&h.StartDate, &h.EndDate, &h.TotalPrice, &h.Status,
			&h.CreatedAt, &h.ReturnedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Rental, error) {
	const q = `
		SELECT id, user_id, data_barang_id, jumlah, total_price, status
		FROM rentals
		WHERE xendit_invoice_id = $1`
	var m model.Rental
	err := r.db.QueryRowContext(ctx, q, invoiceID).Scan(
		&m.ID, &m.UserID, &m.ProductID, &m.Quantity, &m.TotalPrice, &m.Status,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Activate reports false when the rental already left BOOKED; callback
// retries hit this path.
func (r *repo) Activate(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	const q = `
		UPDATE rentals
		SET status = 'ACTIVE',
			paid_at = NOW()
		WHERE id = $1
		AND status = 'BOOKED'`
	res, err := tx.ExecContext(ctx, q, rentalID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// Cancel reports false when the rental already left BOOKED.
func (r *repo) Cancel(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	const q = `
		UPDATE rentals
		SET status = 'CANCELED'
		WHERE id = $1
		AND status = 'BOOKED'`
	res, err := tx.ExecContext(ctx, q, rentalID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListOverdueActive(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
	const q = `
		SELECT id, user_id, data_barang_id, jumlah
		FROM rentals
		WHERE status = 'ACTIVE'
		AND end_time IS NOT NULL
		AND end_time < $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := rows.Scan(&m.ID, &m.UserID, &m.ProductID, &m.Quantity); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
