package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/model"
	"github.com/newsdesk/newsdesk/internal/repository"
)

// Identity service errors. All four are terminal, caller-facing outcomes;
// none triggers a retry.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidInput       = errors.New("invalid input")
)

const (
	maxEmailLength       = 254
	maxPasswordLength    = 512
	maxDisplayNameLength = 100
)

// IdentityService orchestrates sign-up, sign-in, and token resolution.
// It is stateless aside from the underlying store and safe for unbounded
// concurrent use.
type IdentityService struct {
	users   UserStore
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(users UserStore, tokens *auth.TokenService, recorder metrics.Recorder) *IdentityService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IdentityService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// SignUp registers a new identity and returns it with a freshly issued
// token. A duplicate email fails with ErrEmailTaken whether it is caught
// by the pre-check or by the store's uniqueness constraint.
func (s *IdentityService) SignUp(ctx context.Context, email, password, displayName string) (*model.User, string, error) {
	if err := validateSignUp(email, password, displayName); err != nil {
		return nil, "", err
	}

	// Early fail on known duplicates; the store remains authoritative.
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost a concurrent sign-up race; same outcome as the pre-check.
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, token, nil
}

// SignIn authenticates an identity by email and password. An unknown
// email and a wrong password produce the same ErrInvalidCredentials so
// the two cases are indistinguishable to the caller.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSignInDuration(time.Since(start))
	}()

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncSignInFailure()
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	// A malformed stored digest folds into the same failure as a wrong
	// password; sign-in failure is uniform.
	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncSignInFailure()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncSignInSuccess()

	return user, token, nil
}

// Resolve verifies a token and loads its subject from the store. Every
// failure, including a subject deleted after issuance, collapses into
// ErrUnauthenticated.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.IncAuthRejected()
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncAuthRejected()
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}

	return user, nil
}

// GetUser loads an identity by ID. A missing identity resolves to
// ErrUnauthenticated since callers only reach this with an accepted token.
func (s *IdentityService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}
	return user, nil
}

func validateSignUp(email, password, displayName string) error {
	if email == "" || len(email) > maxEmailLength || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email", ErrInvalidInput)
	}
	if password == "" || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password", ErrInvalidInput)
	}
	if len(displayName) > maxDisplayNameLength {
		return fmt.Errorf("%w: display name", ErrInvalidInput)
	}
	return nil
}
