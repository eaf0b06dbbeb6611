// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"sewabarang/model"
	"sewabarang/util/hash"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
	updateFn  func(ctx context.Context, u *model.User) error
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, u *model.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, u)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		FirstName: "Sinta",
		LastName:  "Wijaya",
		Email:     "USER@Example.COM",
		Username:  "sinta",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, "user", u.Role)
	require.NotEmpty(t, u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    " ",
		Username: "u",
		Password: "123",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "ok@example.com",
		Username: "ok",
		Password: "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Email:        "user@example.com",
				Username:     "sinta",
				PasswordHash: hashed,
				Role:         "user",
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UserNotFound(t *testing.T) {
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestProfile_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")
	_, err := svc.Profile(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	var saved *model.User
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, FirstName: "Old", LastName: "Name"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			saved = u
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, err := svc.UpdateProfile(context.Background(), 7, model.UpdateProfileReq{
		FirstName: "Sinta",
		LastName:  "Wijaya",
		Phone:     "08123456789",
		Address:   "Jl. Sudirman No. 1",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, "Sinta", u.FirstName)
	require.Equal(t, "Jl. Sudirman No. 1", u.Address)
}
