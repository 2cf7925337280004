package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service interface {
	Register(ctx context.Context, input RegisterInput) (AuthResult, error)
	Login(ctx context.Context, input LoginInput) (AuthResult, error)
	GetByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, page int) (*ListResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if len(input.Password) < minPasswordLength {
		return AuthResult{}, ErrPasswordTooShort
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return AuthResult{}, err
	}

	u, err := s.repo.Create(ctx, strings.TrimSpace(input.Name), email, hashed, RoleUser)
	if errors.Is(err, ErrEmailExists) {
		return AuthResult{}, ErrEmailExists
	}
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return AuthResult{}, ErrFailedCreateUser
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return AuthResult{}, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", email),
	)

	return AuthResult{Token: token, User: u}, nil
}

// Login answers ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (s *service) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Error("failed to find user", zap.Error(err))
		}
		return AuthResult{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password mismatch", zap.Uint("user_id", u.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, page int) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	if !utils.IsAdmin(ctx) {
		return nil, ErrForbidden
	}

	limit, page, _ = utils.Paginate(limit, page)

	users, total, err := s.repo.List(ctx, limit, page)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, ErrFailedListUsers
	}

	return &ListResult{Items: users, TotalCount: total, Page: page, Limit: limit}, nil
}
