package service

import (
	"context"
	"errors"
	"fmt"

	"lead_scoring/internal/model"
	"lead_scoring/internal/repository"
	"lead_scoring/internal/utils"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService. A nil jwtUtil disables token issuing.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Login checks the credentials and returns the user's public fields. Unknown
// email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		log.WithField("email", email).Info("Login rejected: unknown email")
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.WithField("user_id", user.ID).Info("Login rejected: password mismatch")
		return nil, ErrInvalidCredentials
	}

	resp := &model.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if s.jwtUtil != nil {
		token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		resp.Token = token
	}
	return resp, nil
}
