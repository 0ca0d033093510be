package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tomlord1122/todo-api/internal/auth"
	"github.com/Tomlord1122/todo-api/internal/domain"
	"github.com/Tomlord1122/todo-api/internal/repository"
)

const minPasswordLength = 8

// AuthService registers accounts and opens sessions for them. Signing in
// never creates an account; that is what SignUp is for.
type AuthService interface {
	SignUp(ctx context.Context, req CredentialsRequest) (*SessionResponse, error)
	SignIn(ctx context.Context, req CredentialsRequest) (*SessionResponse, error)
	CurrentUser(ctx context.Context, userID uint) (*UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	bcryptCost int
}

// NewAuthService returns an AuthService hashing passwords with the given
// bcrypt cost (bcrypt.DefaultCost when cost is 0).
func NewAuthService(users repository.UserRepository, issuer *auth.Issuer, cost int) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &authService{users: users, issuer: issuer, bcryptCost: cost}
}

func (s *authService) SignUp(ctx context.Context, req CredentialsRequest) (*SessionResponse, error) {
	email, err := validEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, invalid("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, internal("hash password", err)
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, internal("create user", err)
	}
	return s.session(user)
}

func (s *authService) SignIn(ctx context.Context, req CredentialsRequest) (*SessionResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, invalid("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internal("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal("find user", err)
	}
	return &UserResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *authService) session(user *domain.User) (*SessionResponse, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return &SessionResponse{
		User:      UserResponse{ID: user.ID, Email: user.Email},
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(s.issuer.TTL()).Format(time.RFC3339),
	}, nil
}

func validEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", invalid("A valid email is required")
	}
	return strings.ToLower(addr.Address), nil
}
