package user

import (
	"context"
	"errors"
	"strings"

	"agrocampo-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterParams struct {
	Email    string
	Password string
	Role     Role
	FullName string
	Phone    *string
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Register"),
		zap.String("email", params.Email),
		zap.String("role", string(params.Role)),
	)

	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:    email,
		Password: hash,
		Role:     params.Role,
		FullName: params.FullName,
		Phone:    params.Phone,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
