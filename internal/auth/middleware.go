package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

const principalKey = "auth_principal"

// Middleware is the authorization gate placed in front of protected routes.
// It is instantiated once and mounted twice: with and without the admin
// requirement.
type Middleware struct {
	tokens  *TokenManager
	revoked RevocationList
	logger  *zap.Logger
}

// NewMiddleware constructs the gate. revoked may be nil, in which case no
// revocation check is performed.
func NewMiddleware(tokens *TokenManager, revoked RevocationList, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, revoked: revoked, logger: logger}
}

// Handle returns a fiber handler enforcing a valid bearer token. Every
// failure path rejects with Forbidden and halts the pipeline; the downstream
// handler must never run on a rejected request.
func (m *Middleware) Handle(requireAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperrors.NewForbidden("")
		}

		result := m.tokens.Verify(header, requireAdmin)
		if !result.Valid {
			return apperrors.NewForbidden("")
		}

		if m.revoked != nil {
			revoked, err := m.revoked.Contains(c.UserContext(), ExtractToken(header))
			if err != nil {
				// Revocation is best effort: an unreachable list must not
				// take authentication down with it.
				m.logger.Warn("revocation list unavailable", zap.Error(err))
			} else if revoked {
				return apperrors.NewForbidden("")
			}
		}

		c.Locals(principalKey, result.Principal)
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated principal attached by the
// gate.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
