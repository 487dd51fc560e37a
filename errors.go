package accounts

import (
	"net/http"

	"github.com/goliatone/go-errors"
)

// Error kinds surfaced by the orchestrator and the access guard. Each one
// carries a fixed human readable message and an HTTP status code; the
// controller maps them onto the response envelope without further
// translation. Store or crypto failures are wrapped as internal errors
// and never leak detail to callers.
var (
	// ErrAccountExists is returned when registering an email that is
	// already taken.
	ErrAccountExists = errors.New("User already exists.", errors.CategoryConflict).
				WithCode(http.StatusConflict).
				WithTextCode("ACCOUNT_EXISTS")

	// ErrAccountNotFound is returned when no record matches the
	// submitted email.
	ErrAccountNotFound = errors.New("User does not exist!", errors.CategoryNotFound).
				WithCode(http.StatusNotFound).
				WithTextCode("USER_NOT_EXISTS")

	// ErrInvalidPassword is the login failure for a bad password. The
	// status is Conflict rather than Unauthorized, matching the
	// behavior existing clients depend on.
	ErrInvalidPassword = errors.New("Invalid password.", errors.CategoryConflict).
				WithCode(http.StatusConflict).
				WithTextCode("INVALID_PASSWORD")

	// ErrInvalidOTP covers both a missing stored challenge and a
	// mismatched submitted code.
	ErrInvalidOTP = errors.New("Invalid OTP.", errors.CategoryValidation).
			WithCode(http.StatusBadRequest).
			WithTextCode("INVALID_OTP")

	// ErrOTPExpired is returned when the stored challenge matched but
	// its expiry timestamp has passed.
	ErrOTPExpired = errors.New("OTP expired. Request a new one", errors.CategoryValidation).
			WithCode(http.StatusBadRequest).
			WithTextCode("OTP_EXPIRED")

	// ErrMissingAuthHeader is the guard rejection for requests carrying
	// no authorization header at all.
	ErrMissingAuthHeader = errors.New("Authorization header is missing", errors.CategoryAuth).
				WithCode(http.StatusUnauthorized).
				WithTextCode("AUTH_HEADER_MISSING")

	// ErrInvalidToken collapses every token verification failure, plus
	// tokens referencing a vanished account, into one generic response.
	// Callers cannot distinguish tampered from stale.
	ErrInvalidToken = errors.New("Invalid token", errors.CategoryAuth).
			WithCode(http.StatusUnauthorized).
			WithTextCode("INVALID_TOKEN")
)

// AsAuthError extracts the typed error, if any, from an operation failure.
func AsAuthError(err error) (*errors.Error, bool) {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr, true
	}
	return nil, false
}
