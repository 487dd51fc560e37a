package accounts

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the bearer token payload: the account snapshot taken at
// issuance. Tokens deliberately carry no expiry claim, so they stay
// valid until the signing secret rotates.
type TokenClaims struct {
	UserID string   `json:"id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole checks if the claims carry a specific role tag.
func (tc *TokenClaims) HasRole(role UserRole) bool {
	for _, r := range tc.Roles {
		if UserRole(r) == role {
			return true
		}
	}
	return false
}

func newTokenClaims(user *User) *TokenClaims {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	return &TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Roles:  roles,
	}
}
