package accounts

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ContextUserKey is where the guard stores the resolved account on the
// request context.
const ContextUserKey = "user"

// BearerScheme is the authorization scheme prefix the guard strips.
const BearerScheme = "Bearer "

// AccessGuard gates protected routes: it extracts the bearer token,
// verifies it, and re-resolves the account so a token minted for a since
// deleted user is rejected. Tokens carry no expiry claim, so there is no
// expired-vs-tampered distinction to make; everything past the missing
// header check collapses to the one invalid-token response.
type AccessGuard struct {
	creds  *Credentials
	store  UserStore
	logger Logger
}

// NewAccessGuard builds the guard middleware factory.
func NewAccessGuard(creds *Credentials, store UserStore) *AccessGuard {
	return &AccessGuard{
		creds:  creds,
		store:  store,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the guard.
func (g *AccessGuard) WithLogger(logger Logger) *AccessGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// RequireAuth returns the fiber middleware enforcing the check. The
// resolved account, public fields only, is stored under ContextUserKey
// for downstream handlers.
func (g *AccessGuard) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return reject(c, ErrMissingAuthHeader)
		}

		raw := strings.TrimPrefix(header, BearerScheme)

		claims, err := g.creds.VerifyToken(raw)
		if err != nil {
			g.logger.Debug("guard token verification failed: %v", err)
			return reject(c, ErrInvalidToken)
		}

		user, err := g.store.GetByID(c.Context(), claims.UserID, SelectPublicColumns())
		if err != nil || user == nil {
			g.logger.Debug("guard could not resolve user %s", claims.UserID)
			return reject(c, ErrInvalidToken)
		}

		c.Locals(ContextUserKey, user)

		return c.Next()
	}
}

// UserFromContext retrieves the account the guard attached, if any.
func UserFromContext(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(ContextUserKey).(*User)
	return user, ok
}

func reject(c *fiber.Ctx, err error) error {
	resp := ErrorResponse(err)
	return c.Status(resp.StatusCode).JSON(resp)
}
