package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/freeeve/sideline/api/internal/auth"
	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      auth.Identity `json:"user"`
}

// AuthService checks operator credentials and issues session tokens.
type AuthService struct {
	users  repository.UserRepository
	jwtMgr *auth.JWTManager
	cost   int
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwtMgr: jwtMgr, cost: bcrypt.DefaultCost}
}

// hashPassword hashes a password at the service's bcrypt cost.
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies a username and password. Unknown users and wrong passwords
// both return ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Warn().Str("username", username).Msg("Login for unknown user")
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("Login with wrong password")
		return nil, ErrUnauthorized
	}

	id := auth.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
	token, err := s.jwtMgr.GenerateToken(id)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	log.Info().Str("username", u.Username).Str("role", u.Role).Msg("User logged in")
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtMgr.Expiry()),
		User:      id,
	}, nil
}

// EnsureUser creates the account unless the username already exists. It is
// used to seed the default operators at boot.
func (s *AuthService) EnsureUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return nil
	}
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.users.Create(ctx, username, hash, role); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	log.Info().Str("username", username).Str("role", role).Msg("Seeded user")
	return nil
}

// UserService manages operator accounts. Only admins may use it.
type UserService struct {
	users repository.UserRepository
	auth  *AuthService
}

// NewUserService creates a UserService. Passwords are hashed the same way
// AuthService verifies them.
func NewUserService(users repository.UserRepository, authSvc *AuthService) *UserService {
	return &UserService{users: users, auth: authSvc}
}

// CreateUserInput is the body of a user creation request.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin scorekeeper"`
}

// List returns all users.
func (s *UserService) List(ctx context.Context, actor auth.Identity) ([]model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.users.List(ctx)
}

// Create adds an account. Duplicate usernames return ErrUsernameTaken.
func (s *UserService) Create(ctx context.Context, actor auth.Identity, in CreateUserInput) (*model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := s.auth.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, in.Username, hash, in.Role)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	log.Info().Str("username", u.Username).Str("role", u.Role).Str("by", actor.Username).Msg("User created")
	return u, nil
}
