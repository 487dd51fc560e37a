package accounts

import "fmt"

// Logger is the minimal logging surface used across the package. Callers
// can plug in their own implementation via the WithLogger builders.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config exposes the settings the credential helper needs. Keeping it an
// interface lets tests inject fixed values instead of reading ambient
// environment state.
type Config interface {
	// GetSigningKey returns the HMAC secret used to sign bearer tokens.
	GetSigningKey() string
	// GetBcryptCost returns the bcrypt work factor for password hashing.
	GetBcryptCost() int
	// GetOTPLifetime returns the default OTP validity window in minutes.
	GetOTPLifetime() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
