// service/rental/sweeper_service_test.go
package rentalsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"sewabarang/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type sweepRepoMock struct {
	listFn func(ctx context.Context, cutoff time.Time) ([]model.Rental, error)
	markFn func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
}

func (m *sweepRepoMock) ListOverdueActive(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
	return m.listFn(ctx, cutoff)
}
func (m *sweepRepoMock) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	return m.markFn(ctx, tx, rentalID)
}

func TestReleaseOverdue_RestoresEachRental(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	p := &productMock{}
	r := &sweepRepoMock{
		listFn: func(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
			return []model.Rental{
				{ID: 1, ProductID: 7, Quantity: 1},
				{ID: 2, ProductID: 8, Quantity: 2},
			}, nil
		},
		markFn: func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
			return true, nil
		},
	}
	sw := NewSweeper(db, r, p)

	released, err := sw.ReleaseOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), released)
	require.Equal(t, 2, p.restores)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseOverdue_SkipsRentalReturnedMidSweep(t *testing.T) {
	// The overdue listing runs outside the per-rental tx. A user return
	// landing in between makes the guarded update miss, and the sweep must
	// not restore that rental's stock again.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	p := &productMock{}
	r := &sweepRepoMock{
		listFn: func(ctx context.Context, cutoff time.Time) ([]model.Rental, error) {
			return []model.Rental{
				{ID: 1, ProductID: 7, Quantity: 1},
				{ID: 2, ProductID: 8, Quantity: 1},
			}, nil
		},
		markFn: func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
			return rentalID == 1, nil
		},
	}
	sw := NewSweeper(db, r, p)

	released, err := sw.ReleaseOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), released)
	require.Equal(t, 1, p.restores)
	require.NoError(t, mock.ExpectationsWereMet())
}
