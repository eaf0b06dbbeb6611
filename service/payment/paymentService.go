package paymentsvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sewabarang/model"
	xenditrepo "sewabarang/repository/xendit"
)

type Service interface {
	HandleXendit(ctx context.Context, callbackToken string, raw []byte) error
}

type RentalRepo interface {
	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Rental, error)
	Activate(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
	Cancel(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
}

type ProductRepo interface {
	RestoreStock(ctx context.Context, tx *sql.Tx, id, n int64) error
}

type service struct {
	db *sql.DB
	x  xenditrepo.Repo
	r  RentalRepo
	p  ProductRepo
}

func New(db *sql.DB, x xenditrepo.Repo, r RentalRepo, p ProductRepo) Service {
	return &service{db: db, x: x, r: r, p: p}
}

type xInvoiceEvent struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ExternalID string `json:"external_id"`
}

func (s *service) HandleXendit(ctx context.Context, callbackToken string, raw []byte) error {
	if err := s.x.VerifyCallbackToken(callbackToken); err != nil {
		return err
	}

	var ev xInvoiceEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.ID == "" || ev.Status == "" {
		return errors.New("missing invoice fields")
	}
	switch ev.Status {
	case "PAID":
		return s.onPaid(ctx, ev)
	case "EXPIRED":
		return s.onExpired(ctx, ev)
	default:
		return nil
	}
}

func (s *service) onPaid(ctx context.Context, ev xInvoiceEvent) (err error) {
	rec, err := s.r.FindByInvoiceID(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("invoice not mapped to a rental: %w", err)
	}
	// Xendit retries callbacks; anything past BOOKED is already handled.
	if rec.Status != model.RentalBooked {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.r.Activate(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if !ok {
		// a concurrent callback beat us to it
		_ = tx.Rollback()
		return nil
	}
	return tx.Commit()
}

func (s *service) onExpired(ctx context.Context, ev xInvoiceEvent) (err error) {
	rec, err := s.r.FindByInvoiceID(ctx, ev.ID)
	if err != nil {
		return fmt.Errorf("invoice not mapped to a rental: %w", err)
	}
	if rec.Status != model.RentalBooked {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The status read above ran outside the tx, so two retried callbacks can
	// both see BOOKED. Only the one whose guarded update lands may restore
	// stock; the loser backs off without touching jumlah_barang.
	ok, err := s.r.Cancel(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if !ok {
		_ = tx.Rollback()
		return nil
	}
	if err = s.p.RestoreStock(ctx, tx, rec.ProductID, rec.Quantity); err != nil {
		return err
	}
	return tx.Commit()
}
