package service

import (
	"context"
	"errors"
	"fmt"

	"lead_scoring/internal/model"
	"lead_scoring/internal/repository"
	"lead_scoring/internal/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUserAlreadyExists = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
)

// UserService manages dashboard accounts
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo  repository.UserRepository
	newID func() string
}

// NewUserService creates a new UserService that assigns random UUIDs to new users
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, newID: uuid.NewString}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create checks the email is free, then hashes the password and inserts the user.
// The check and the insert are separate statements; an insert that loses a race
// against a concurrent signup still reports ErrUserAlreadyExists.
func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           s.newID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != current.Email {
		other, err := s.repo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email owner: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrUserAlreadyExists
		}
	}

	updated := &model.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role}
	if req.Password != "" {
		if updated.PasswordHash, err = utils.HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	log.WithField("user_id", id).Info("User deleted")
	return nil
}
