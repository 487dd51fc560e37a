package accounts

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// GenerateToken signs a bearer token for the given account snapshot.
// The payload is {id, email, roles} with no expiry claim.
func (c *Credentials) GenerateToken(user *User) (string, error) {
	if user == nil {
		return "", errors.New("user must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, newTokenClaims(user))

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// VerifyToken parses and validates a raw token string. Every failure
// mode, bad signature, malformed payload, or wrong algorithm, comes back
// as ErrInvalidToken.
func (c *Credentials) VerifyToken(raw string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			c.logger.Error("VerifyToken encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.signingKey, nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
