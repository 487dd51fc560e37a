package accounts

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// AppConfig holds the runtime settings, loaded from the environment.
type AppConfig struct {
	// JWTTokenSecret signs bearer tokens. Rotating it invalidates every
	// outstanding token, which is the only revocation mechanism there is.
	JWTTokenSecret string `env:"JWT_TOKEN_SECRET,required"`
	// BcryptSalt is the bcrypt cost factor, not an actual salt; the name
	// is kept for compatibility with existing deployment manifests.
	BcryptSalt int `env:"BCRYPT_SALT,required"`
	// RegisterOTPExpiration is the OTP validity window in minutes.
	RegisterOTPExpiration int `env:"REGISTER_OTP_EXPIRATION" envDefault:"10"`
	// DBURI is the store connection string.
	DBURI string `env:"DB_URI,required"`
	// HTTPAddr is the listen address for the HTTP surface.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`
}

var _ Config = (*AppConfig)(nil)

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse environment configuration")
	}
	return cfg, nil
}

func (c *AppConfig) GetSigningKey() string { return c.JWTTokenSecret }

func (c *AppConfig) GetBcryptCost() int { return c.BcryptSalt }

func (c *AppConfig) GetOTPLifetime() int { return c.RegisterOTPExpiration }

func (c *AppConfig) GetDBURI() string { return c.DBURI }

func (c *AppConfig) GetHTTPAddr() string { return c.HTTPAddr }
