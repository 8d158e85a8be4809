package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/repository"
)

type mockAuthUserRepo struct {
	users  map[string]domain.User
	nextID uint
}

func newMockAuthUserRepo() *mockAuthUserRepo {
	return &mockAuthUserRepo{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (m *mockAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := m.users[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user

	return user, nil
}

func (m *mockAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("hashes the password and defaults to member", func(t *testing.T) {
		repo := newMockAuthUserRepo()
		svc := NewAuthService(repo)

		user, err := svc.Signup(context.Background(), domain.User{
			Email:    "ada@example.com",
			Password: "Password1",
			Name:     "Ada Lovelace",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, user.Role)
		assert.NotEqual(t, "Password1", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Password1")))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newMockAuthUserRepo()
		svc := NewAuthService(repo)

		_, err := svc.Signup(context.Background(), domain.User{Email: "ada@example.com", Password: "Password1"})
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), domain.User{Email: "ada@example.com", Password: "Password2"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockAuthUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "ada@example.com", Password: "Password1"})
	require.NoError(t, err)

	t.Run("succeeds with the right password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "ada@example.com", "Password1")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ada@example.com", "nope")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "Password1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
