// Package usecase contains application services implementing the business
// rules behind each endpoint. Services validate input before any repository
// call and translate nothing themselves: repositories return domain errors
// and handlers map them to HTTP.
package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
)

// emailPattern accepts the basic local@domain.tld shape. It is a gate for
// obvious typos, not an RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, login and profile flows.
type AuthService struct {
	store  ports.Store
	hasher ports.PasswordHasher
	tokens ports.TokenManager
	log    *slog.Logger
}

func NewAuthService(store ports.Store, hasher ports.PasswordHasher, tokens ports.TokenManager, log *slog.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// RegisterInput is the validated-at-entry registration payload.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthResult bundles a profile with its freshly issued session token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register validates the input, hashes the password and persists the user.
// Uniqueness is enforced by the store; duplicate username/email surface as
// their specific conflict errors.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if len(in.Username) > domain.MaxUsernameLength {
		return nil, domain.NewValidationError("username", "username is too long")
	}
	if in.Email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.NewValidationError("email", "email is malformed")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = in.Username
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, ports.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  displayName,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password produce the same generic failure; the unknown-username path
// still burns one hash comparison so the two are indistinguishable by timing.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			s.hasher.CompareDummy(password)
			return nil, authFailed()
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, authFailed()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed touch must not fail the login.
	if err := s.store.TouchLastSeen(ctx, user.ID); err != nil {
		s.log.Warn("failed to touch last_seen_at", "user_id", user.ID, "error", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func authFailed() error {
	return domain.NewUnauthorizedError(domain.CodeAuthFailed, "invalid username or password")
}

// Me resolves the authenticated identity to its profile.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// Availability reports, independently per supplied field, whether a value is
// still free. Advisory only: a race with a concurrent registration is
// surfaced later as a duplicate conflict.
type Availability struct {
	Username *bool
	Email    *bool
}

func (s *AuthService) CheckAvailability(ctx context.Context, username, email *string) (*Availability, error) {
	if username == nil && email == nil {
		return nil, domain.NewValidationError("", "username or email is required")
	}

	var out Availability
	if username != nil {
		exists, err := s.store.UsernameExists(ctx, strings.TrimSpace(*username))
		if err != nil {
			return nil, err
		}
		free := !exists
		out.Username = &free
	}
	if email != nil {
		exists, err := s.store.EmailExists(ctx, strings.TrimSpace(*email))
		if err != nil {
			return nil, err
		}
		free := !exists
		out.Email = &free
	}
	return &out, nil
}
