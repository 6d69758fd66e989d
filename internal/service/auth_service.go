package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tripify-backend/internal/model"
	"tripify-backend/internal/repository"
	"tripify-backend/utilities"
)

const MinPasswordLength = 6

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrMissingFields      = errors.New("full name and email are required")
)

// AuthService handles sign-up, login and token refresh.
type AuthService interface {
	Signup(ctx context.Context, fullName, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, utilities.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (utilities.TokenPair, error)
	LookupUser(ctx context.Context, email string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *utilities.JWTManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *utilities.JWTManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, fullName, email, password string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	_, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		Password: string(hash),
	}
	// A concurrent sign-up can pass the lookup above; the unique index decides.
	if err := s.userRepo.CreateUser(ctx, user); errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	} else if err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}
	utilities.Info("registered user %s", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, utilities.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, utilities.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, utilities.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utilities.Debug("password mismatch for user %s", user.ID)
		return nil, utilities.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokens(user)
	if err != nil {
		return nil, utilities.TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	return user, pair, nil
}

func (s *authService) Refresh(_ context.Context, refreshToken string) (utilities.TokenPair, error) {
	return s.tokens.RefreshTokens(refreshToken)
}

func (s *authService) LookupUser(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}
