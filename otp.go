package accounts

import (
	"math/rand/v2"
	"time"
)

// GenerateOTP returns a uniformly random 6-digit passcode in
// [100000, 999999]. The code proves mailbox control, not possession of a
// secret, so a non-cryptographic source is acceptable; the range keeps
// leading zeros impossible.
func (c *Credentials) GenerateOTP() int {
	return 100000 + rand.IntN(900000)
}

// OTPExpiry returns the epoch-millisecond instant at which a challenge
// issued now lapses. With no argument it uses the configured
// registration OTP lifetime.
func (c *Credentials) OTPExpiry(minutes ...int) int64 {
	duration := c.otpLifetime
	if len(minutes) > 0 {
		duration = minutes[0]
	}

	return time.Now().Add(time.Duration(duration) * time.Minute).UnixMilli()
}
