package accounts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/telecare-labs/accounts"
)

func TestGenerateOTPRange(t *testing.T) {
	creds := accounts.NewCredentials(newTestConfig())

	for i := 0; i < 10000; i++ {
		otp := creds.GenerateOTP()
		if otp < 100000 || otp > 999999 {
			t.Fatalf("OTP %d outside the 6-digit range", otp)
		}
	}
}

func TestOTPExpiry(t *testing.T) {
	creds := accounts.NewCredentials(newTestConfig())

	tests := []struct {
		name    string
		minutes []int
		offset  int64 // expected millis past now
	}{
		{
			name:    "Explicit ten minutes",
			minutes: []int{10},
			offset:  10 * 60 * 1000,
		},
		{
			name:    "Explicit one minute",
			minutes: []int{1},
			offset:  60 * 1000,
		},
		{
			name:    "Configured default lifetime",
			minutes: nil,
			offset:  10 * 60 * 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now().UnixMilli()
			got := creds.OTPExpiry(tt.minutes...)

			want := now + tt.offset
			assert.InDelta(t, want, got, 2000, "expiry should be now plus the window, within execution jitter")
		})
	}
}
