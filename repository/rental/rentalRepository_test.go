// repository/rental/repo_test.go
package rentalrepo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newTx(t *testing.T, res driver.Result) (*sql.DB, *sql.Tx) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rentals").WillReturnResult(res)
	tx, err := db.Begin()
	require.NoError(t, err)
	return db, tx
}

func TestGuardedUpdatesReportMisses(t *testing.T) {
	cases := []struct {
		name string
		call func(r Repo, ctx context.Context, tx *sql.Tx) (bool, error)
	}{
		{"MarkReturned", func(r Repo, ctx context.Context, tx *sql.Tx) (bool, error) {
			return r.MarkReturned(ctx, tx, 1)
		}},
		{"Activate", func(r Repo, ctx context.Context, tx *sql.Tx) (bool, error) {
			return r.Activate(ctx, tx, 1)
		}},
		{"Cancel", func(r Repo, ctx context.Context, tx *sql.Tx) (bool, error) {
			return r.Cancel(ctx, tx, 1)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name+"/hit", func(t *testing.T) {
			db, tx := newTx(t, sqlmock.NewResult(0, 1))
			ok, err := tc.call(New(db), context.Background(), tx)
			require.NoError(t, err)
			require.True(t, ok)
		})
		t.Run(tc.name+"/miss", func(t *testing.T) {
			// status guard matched nothing; the caller must treat this as
			// already handled, not as success
			db, tx := newTx(t, sqlmock.NewResult(0, 0))
			ok, err := tc.call(New(db), context.Background(), tx)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}
