package accounts

import "golang.org/x/crypto/bcrypt"

// Credentials is the credential helper: password hashing, OTP generation,
// expiry arithmetic, and token issuance/verification. It is pure logic,
// performs no I/O, and takes every setting through the Config interface.
type Credentials struct {
	signingKey  []byte
	bcryptCost  int
	otpLifetime int
	logger      Logger
}

// NewCredentials builds a credential helper from configuration.
func NewCredentials(cfg Config) *Credentials {
	cost := cfg.GetBcryptCost()
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Credentials{
		signingKey:  []byte(cfg.GetSigningKey()),
		bcryptCost:  cost,
		otpLifetime: cfg.GetOTPLifetime(),
		logger:      defLogger{},
	}
}

// WithLogger overrides the logger used by the helper.
func (c *Credentials) WithLogger(logger Logger) *Credentials {
	if logger != nil {
		c.logger = logger
	}
	return c
}
