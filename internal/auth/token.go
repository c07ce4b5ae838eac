package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/thewhitewolf2411/TaskManager/internal/domain"
)

// Principal is the authenticated identity carried inside a token. It lives
// for the duration of one request and is never persisted.
type Principal struct {
	ID   string
	Role domain.Role
}

// VerifyResult is the only information verification exposes. Callers cannot
// distinguish an expired token from a malformed or wrong-audience one; every
// failure mode is a uniform rejection.
type VerifyResult struct {
	Valid     bool
	Principal *Principal
}

// TokenManager signs and verifies bearer tokens. It is stateless and does no
// I/O; the signing secret is fixed at construction.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenManager builds a manager. An empty secret is a configuration
// error surfaced here so the process fails at startup.
func NewTokenManager(secret, issuer, audience string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// principalClaim is the embedded payload under the "data" claim.
type principalClaim struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Claims describes the full JWT payload.
type Claims struct {
	Data principalClaim `json:"data"`
	jwt.RegisteredClaims
}

// Sign embeds the principal together with the fixed issuer and audience and
// a relative expiry computed at signing time.
func (tm *TokenManager) Sign(p Principal) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)

	claims := &Claims{
		Data: principalClaim{ID: p.ID, Role: string(p.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks a raw Authorization header value. The token is the last
// whitespace-delimited segment, so both "Bearer <token>" and a bare token
// are accepted. When requireAdmin is set the decoded role claim must be
// admin; any other role is a rejection.
func (tm *TokenManager) Verify(rawHeaderValue string, requireAdmin bool) VerifyResult {
	token := ExtractToken(rawHeaderValue)
	if token == "" {
		return VerifyResult{Valid: false}
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !parsed.Valid {
		return VerifyResult{Valid: false}
	}

	role := domain.ParseRole(claims.Data.Role)
	if requireAdmin && !role.IsAdmin() {
		return VerifyResult{Valid: false}
	}

	return VerifyResult{
		Valid:     true,
		Principal: &Principal{ID: claims.Data.ID, Role: role},
	}
}

// ExpiryClaim extracts the expiry from a token without verifying the
// signature. Logout uses it to record the natural expiry of a token that may
// already be invalid.
func (tm *TokenManager) ExpiryClaim(rawHeaderValue string) (time.Time, error) {
	token := ExtractToken(rawHeaderValue)
	if token == "" {
		return time.Time{}, errors.New("no token present")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token carries no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// ExtractToken returns the last whitespace-delimited segment of an
// Authorization header value, or "" when the header is empty.
func ExtractToken(rawHeaderValue string) string {
	fields := strings.Fields(rawHeaderValue)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
