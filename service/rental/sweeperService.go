package rentalsvc

import (
	"context"
	"database/sql"
	"time"

	"sewabarang/model"
)

// Sweeper closes out ACTIVE rentals whose end time has passed, restoring
// stock. Run from a ticker in main.
type Sweeper interface {
	ReleaseOverdue(ctx context.Context) (int64, error)
}

type SweepRepo interface {
	ListOverdueActive(ctx context.Context, cutoff time.Time) ([]model.Rental, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
}

type sweeper struct {
	db *sql.DB
	r  SweepRepo
	p  ProductRepo
}

func NewSweeper(db *sql.DB, r SweepRepo, p ProductRepo) Sweeper {
	return &sweeper{db: db, r: r, p: p}
}

func (s *sweeper) ReleaseOverdue(ctx context.Context) (int64, error) {
	overdue, err := s.r.ListOverdueActive(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	var released int64
	for _, rec := range overdue {
		done, err := s.releaseOne(ctx, rec)
		if err != nil {
			// keep sweeping; the next tick retries this rental
			continue
		}
		if done {
			released++
		}
	}
	return released, nil
}

func (s *sweeper) releaseOne(ctx context.Context, rec model.Rental) (done bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The listing ran outside this tx; the guarded update decides whether
	// the rental is still ours to close. A user return racing the sweep
	// makes it miss, and stock stays untouched.
	ok, err := s.r.MarkReturned(ctx, tx, rec.ID)
	if err != nil {
		return false, err
	}
	if !ok {
		_ = tx.Rollback()
		return false, nil
	}
	if err = s.p.RestoreStock(ctx, tx, rec.ProductID, rec.Quantity); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
