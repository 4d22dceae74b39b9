package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByEmail", mock.Anything, "maria@agrocampo.co").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := svc.Register(context.Background(), RegisterParams{
		Email:    "Maria@agrocampo.co",
		Password: "secret123",
		Role:     RoleProducer,
		FullName: "María Gómez",
	})

	require.NoError(t, err)
	assert.Equal(t, "maria@agrocampo.co", u.Email)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, CheckPasswordHash("secret123", u.Password))
	repo.AssertExpectations(t)
}

func TestRegister_EmailExists(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByEmail", mock.Anything, "maria@agrocampo.co").
		Return(&User{ID: 7, Email: "maria@agrocampo.co"}, nil)

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "maria@agrocampo.co",
		Password: "secret123",
		Role:     RoleClient,
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := NewService(new(MockRepository))

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:    "x@agrocampo.co",
		Password: "secret123",
		Role:     Role("SUPERUSER"),
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	stored := &User{ID: 3, Email: "juan@agrocampo.co", Password: hash, Role: RoleClient}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "juan@agrocampo.co").Return(stored, nil)

		token, u, err := NewService(repo).Login(context.Background(), "juan@agrocampo.co", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(3), u.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, int64(3), claims.UserID)
		assert.Equal(t, "CLIENT", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "juan@agrocampo.co").Return(stored, nil)

		_, _, err := NewService(repo).Login(context.Background(), "juan@agrocampo.co", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", mock.Anything, "ghost@agrocampo.co").Return(nil, ErrUserNotFound)

		_, _, err := NewService(repo).Login(context.Background(), "ghost@agrocampo.co", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
