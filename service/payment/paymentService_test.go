// service/payment/payment_service_test.go
package paymentsvc

import (
	"context"
	"database/sql"
	"testing"

	"sewabarang/model"
	xenditrepo "sewabarang/repository/xendit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type rentalRepoMock struct {
	findFn     func(ctx context.Context, invoiceID string) (*model.Rental, error)
	activateFn func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
	cancelFn   func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error)
}

func (m *rentalRepoMock) FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Rental, error) {
	return m.findFn(ctx, invoiceID)
}
func (m *rentalRepoMock) Activate(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	return m.activateFn(ctx, tx, rentalID)
}
func (m *rentalRepoMock) Cancel(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
	return m.cancelFn(ctx, tx, rentalID)
}

type productRepoMock struct {
	restores int
	lastN    int64
}

func (m *productRepoMock) RestoreStock(ctx context.Context, tx *sql.Tx, id, n int64) error {
	m.restores++
	m.lastN = n
	return nil
}

type xenditMock struct{}

func (xenditMock) CreateInvoice(req xenditrepo.CreateInvoiceReq) (*xenditrepo.CreateInvoiceResp, error) {
	return nil, nil
}
func (xenditMock) VerifyCallbackToken(header string) error { return nil }

func bookedRental() *model.Rental {
	return &model.Rental{ID: 3, ProductID: 7, Quantity: 2, Status: model.RentalBooked}
}

func TestHandleXendit_ExpiredRestoresStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	p := &productRepoMock{}
	r := &rentalRepoMock{
		findFn: func(ctx context.Context, invoiceID string) (*model.Rental, error) {
			return bookedRental(), nil
		},
		cancelFn: func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
			return true, nil
		},
	}
	svc := New(db, xenditMock{}, r, p)

	err = svc.HandleXendit(context.Background(), "tok", []byte(`{"id":"inv-1","status":"EXPIRED"}`))
	require.NoError(t, err)
	require.Equal(t, 1, p.restores)
	require.Equal(t, int64(2), p.lastN)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleXendit_ExpiredLosingRaceSkipsRestore(t *testing.T) {
	// Both retried callbacks read BOOKED before either commits. The one
	// whose cancel matches zero rows must leave stock alone.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	p := &productRepoMock{}
	r := &rentalRepoMock{
		findFn: func(ctx context.Context, invoiceID string) (*model.Rental, error) {
			return bookedRental(), nil
		},
		cancelFn: func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(db, xenditMock{}, r, p)

	err = svc.HandleXendit(context.Background(), "tok", []byte(`{"id":"inv-1","status":"EXPIRED"}`))
	require.NoError(t, err)
	require.Zero(t, p.restores)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleXendit_PaidRetryIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &rentalRepoMock{
		findFn: func(ctx context.Context, invoiceID string) (*model.Rental, error) {
			return bookedRental(), nil
		},
		activateFn: func(ctx context.Context, tx *sql.Tx, rentalID int64) (bool, error) {
			return false, nil
		},
	}
	svc := New(db, xenditMock{}, r, &productRepoMock{})

	err = svc.HandleXendit(context.Background(), "tok", []byte(`{"id":"inv-1","status":"PAID"}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleXendit_AlreadySettledSkipsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := &productRepoMock{}
	r := &rentalRepoMock{
		findFn: func(ctx context.Context, invoiceID string) (*model.Rental, error) {
			rec := bookedRental()
			rec.Status = model.RentalCanceled
			return rec, nil
		},
	}
	svc := New(db, xenditMock{}, r, p)

	err = svc.HandleXendit(context.Background(), "tok", []byte(`{"id":"inv-1","status":"EXPIRED"}`))
	require.NoError(t, err)
	require.Zero(t, p.restores)
	require.NoError(t, mock.ExpectationsWereMet())
}
