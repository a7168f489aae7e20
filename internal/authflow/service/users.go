package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tuskera/authflow/internal/authflow/domain"
	"github.com/tuskera/authflow/internal/authflow/store"
	"github.com/tuskera/authflow/pkg/cryptox"
	"github.com/tuskera/authflow/pkg/idx"
	"github.com/tuskera/authflow/pkg/slogx"
)

var (
	ErrUsernameRequired     = errors.New("username_required")
	ErrPasswordRequired     = errors.New("password_required")
	ErrUsernameAlreadyTaken = errors.New("username_already_taken")
)

// UserService provisions and looks up accounts. There is no self-service
// signup; accounts are created by an operator.
type UserService struct {
	Store store.Store
}

// CreateUserRequest carries the fields for a new account. Email may be
// empty or duplicated; that only surfaces as a warning at login time.
type CreateUserRequest struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

// CreateUser provisions a new account with an Argon2id password hash.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.User{}, ErrUsernameRequired
	}
	if req.Password == "" {
		return domain.User{}, ErrPasswordRequired
	}

	passwordHash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.DisplayName == "" {
		user.DisplayName = username
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		log.Error("failed to create user", "username", username, "error", err)
		return domain.User{}, err
	}

	log.Info("user created", "user_id", user.ID, "username", username)
	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
