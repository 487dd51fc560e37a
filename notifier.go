package accounts

import "context"

// OTPNotifier delivers a freshly issued passcode to the account holder.
// Delivery is an external side effect; the core only prepares the OTP
// state and hands the code over. Failures are logged, never surfaced, so
// a broken mail pipeline cannot fail the operation that minted the code.
type OTPNotifier interface {
	NotifyOTP(ctx context.Context, email string, otp int) error
}

type logNotifier struct {
	logger Logger
}

// NewLogNotifier returns the default notifier, which only prints the
// passcode. It stands in for a real mail integration.
func NewLogNotifier(logger Logger) OTPNotifier {
	if logger == nil {
		logger = defLogger{}
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) NotifyOTP(_ context.Context, email string, otp int) error {
	n.logger.Info("OTP notification to=%s code=%06d", email, otp)
	return nil
}
