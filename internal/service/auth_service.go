package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/thewhitewolf2411/TaskManager/internal/auth"
	"github.com/thewhitewolf2411/TaskManager/internal/config"
	"github.com/thewhitewolf2411/TaskManager/internal/domain"
	"github.com/thewhitewolf2411/TaskManager/internal/events"
	"github.com/thewhitewolf2411/TaskManager/internal/repository"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

// uniqueViolationCode is the SQLSTATE for a unique constraint violation.
const uniqueViolationCode = "23505"

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match. Callers render it as an authentication failure,
// never as bad input.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates the login, registration and logout flows.
type AuthService struct {
	users      repository.UserRepository
	revoked    repository.RevokedTokenRepository
	revocation auth.RevocationList
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	RevokedTokenRepo repository.RevokedTokenRepository
	RevocationList   auth.RevocationList
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewAuthService builds the service. Construction fails when the signing
// secret is missing so a misconfigured process never serves traffic.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    deps.RevokedTokenRepo,
		revocation: deps.RevocationList,
		tokens:     tokens,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.BcryptCost,
	}, nil
}

// Login authenticates a user by email and password and mints a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password, timeZone string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Sign(auth.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		return nil, "", apperrors.NewServerFault(err)
	}

	s.publish(ctx, events.EventUserLoggedIn, events.UserLoggedInPayload{
		UserID:   user.ID,
		Role:     user.Role,
		TimeZone: timeZone,
	})

	return user, token, nil
}

// Register creates an account, hashes the password and mints a token for the
// new principal.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewBadRequest("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewServerFault(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The existence pre-check races with concurrent registrations; a
		// unique violation on insert is still a duplicate email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, "", apperrors.NewBadRequest("email already registered", nil)
		}
		return nil, "", err
	}

	token, _, err := s.tokens.Sign(auth.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		return nil, "", apperrors.NewServerFault(err)
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
	})

	return user, token, nil
}

// Logout records the presented token as revoked until its natural expiry.
// The token must be present and syntactically parseable; it need not still
// verify, so an expired session can be logged out.
func (s *AuthService) Logout(ctx context.Context, authHeader string) error {
	expiresAt, err := s.tokens.ExpiryClaim(authHeader)
	if err != nil {
		return apperrors.NewForbidden("")
	}

	token := auth.ExtractToken(authHeader)
	if err := s.revoked.Insert(ctx, token, expiresAt); err != nil {
		return err
	}

	if s.revocation != nil {
		if err := s.revocation.Add(ctx, token, expiresAt); err != nil {
			s.logger.Warn("failed to add token to live revocation list", zap.Error(err))
		}
	}

	s.publish(ctx, events.EventTokenRevoked, events.TokenRevokedPayload{ExpiresAt: expiresAt})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
