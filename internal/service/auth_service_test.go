package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/thewhitewolf2411/TaskManager/internal/auth"
	"github.com/thewhitewolf2411/TaskManager/internal/config"
	"github.com/thewhitewolf2411/TaskManager/internal/domain"
	"github.com/thewhitewolf2411/TaskManager/internal/events"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	created   []*domain.User
	createErr error
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = "created-1"
	user.Role = domain.RoleUser
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range s.byEmail {
		out = append(out, user)
	}
	return out, nil
}

type stubRevokedRepo struct {
	tokens map[string]time.Time
	err    error
}

func (s *stubRevokedRepo) Insert(_ context.Context, token string, expiresAt time.Time) error {
	if s.err != nil {
		return s.err
	}
	if s.tokens == nil {
		s.tokens = map[string]time.Time{}
	}
	s.tokens[token] = expiresAt
	return nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "service-test-secret",
		JWTIssuer:     "taskmanagerappbe",
		JWTAudience:   "localhost:5000",
		TokenTTLHours: 12,
		BcryptCost:    bcrypt.MinCost,
	}
}

func newTestService(t *testing.T, users *stubUserRepo, revoked *stubRevokedRepo, dispatcher events.Dispatcher) *AuthService {
	t.Helper()
	svc, err := NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:         users,
		RevokedTokenRepo: revoked,
		Dispatcher:       dispatcher,
		Logger:           zap.NewNop(),
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = ""
	_, err := NewAuthService(cfg, AuthDependencies{Logger: zap.NewNop()})
	assert.Error(t, err)
}

func TestLogin_UnknownUserAndWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"a@b.com": {ID: "u1", Email: "a@b.com", PasswordHash: string(hash), Role: domain.RoleUser},
	}}
	svc := newTestService(t, users, &stubRevokedRepo{}, nil)

	_, _, err = svc.Login(context.Background(), "missing@b.com", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_PublishesLoggedInEvent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"a@b.com": {ID: "u1", Email: "a@b.com", PasswordHash: string(hash), Role: domain.RoleAdmin},
	}}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(t, users, &stubRevokedRepo{}, dispatcher)

	user, token, err := svc.Login(context.Background(), "a@b.com", "secret1", "Europe/Sarajevo")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventUserLoggedIn, event.Type)
	payload, ok := event.Payload.(events.UserLoggedInPayload)
	require.True(t, ok)
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, domain.RoleAdmin, payload.Role)
	assert.Equal(t, "Europe/Sarajevo", payload.TimeZone)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"a@b.com": {ID: "u1", Email: "a@b.com"},
	}}
	svc := newTestService(t, users, &stubRevokedRepo{}, nil)

	_, _, err := svc.Register(context.Background(), "a@b.com", "Ada", "Lovelace", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.ToError(err).Kind)
}

func TestRegister_ConcurrentDuplicateInsert(t *testing.T) {
	// The existence check can miss a registration that lands between the
	// lookup and the insert; the unique violation must still read as a
	// duplicate email, not a masked store fault.
	users := &stubUserRepo{
		byEmail:   map[string]*domain.User{},
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
	}
	svc := newTestService(t, users, &stubRevokedRepo{}, nil)

	_, _, err := svc.Register(context.Background(), "a@b.com", "Ada", "Lovelace", "secret1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBadRequest, apperrors.ToError(err).Kind)
}

func TestRegister_HashesAndSigns(t *testing.T) {
	users := &stubUserRepo{byEmail: map[string]*domain.User{}}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(t, users, &stubRevokedRepo{}, dispatcher)

	user, token, err := svc.Register(context.Background(), "new@b.com", "Alan", "Turing", "secret2")
	require.NoError(t, err)
	assert.Equal(t, "created-1", user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)

	require.Len(t, users.created, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.created[0].PasswordHash), []byte("secret2")))

	result := svc.TokenManager().Verify("Bearer "+token, false)
	require.True(t, result.Valid)
	assert.Equal(t, "created-1", result.Principal.ID)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserRegistered, dispatcher.published[0].Type)
}

func TestLogout_RecordsRevocation(t *testing.T) {
	revoked := &stubRevokedRepo{}
	svc := newTestService(t, &stubUserRepo{}, revoked, nil)

	token, expiresAt, err := svc.TokenManager().Sign(auth.Principal{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "Bearer "+token))

	recorded, ok := revoked.tokens[token]
	require.True(t, ok)
	assert.Equal(t, expiresAt.Unix(), recorded.Unix())
}

func TestLogout_UnparseableTokenForbidden(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubRevokedRepo{}, nil)

	err := svc.Logout(context.Background(), "Bearer garbage")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.ToError(err).Kind)
}

func TestLogout_PersistenceFailurePropagates(t *testing.T) {
	revoked := &stubRevokedRepo{err: errors.New("insert failed")}
	svc := newTestService(t, &stubUserRepo{}, revoked, nil)

	token, _, err := svc.TokenManager().Sign(auth.Principal{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)

	err = svc.Logout(context.Background(), "Bearer "+token)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindServerFault, apperrors.ToError(err).Kind)
}
