package accounts

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// UserStore is the slice of the record store the orchestrator needs:
// atomic single-record lookups and updates keyed by email or id. The
// operations below chain these calls without a surrounding transaction,
// so check-then-act sequences (verify OTP, then clear it) can interleave
// under concurrent requests. Last write wins on the OTP columns; this is
// the documented behavior for the self-service access pattern, not a bug
// to harden away here.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	SetChallenge(ctx context.Context, id uuid.UUID, otp int, expireAt int64) (*User, error)
	ClearChallenge(ctx context.Context, id uuid.UUID) (*User, error)
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

var _ UserStore = (Users)(nil)

// RegisterMessage carries a registration request.
type RegisterMessage struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Roles    []UserRole `json:"roles,omitempty"`
}

// LoginMessage carries a login request.
type LoginMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResendOTPMessage asks for a fresh passcode for an account.
type ResendOTPMessage struct {
	Email string `json:"email"`
}

// VerifyEmailMessage submits a passcode to prove mailbox control.
type VerifyEmailMessage struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ForgotPasswordMessage starts the password reset cycle.
type ForgotPasswordMessage struct {
	Email string `json:"email"`
}

// ResetPasswordMessage finalizes a password reset with a passcode.
type ResetPasswordMessage struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	OTP         string `json:"otp"`
}

// AccountService orchestrates the six auth operations as sequences of
// store lookups, credential helper calls, and state updates.
type AccountService struct {
	store    UserStore
	creds    *Credentials
	notifier OTPNotifier
	logger   Logger
}

// NewAccountService wires the orchestrator with sane defaults.
func NewAccountService(store UserStore, creds *Credentials) *AccountService {
	return &AccountService{
		store:    store,
		creds:    creds,
		notifier: NewLogNotifier(defLogger{}),
		logger:   defLogger{},
	}
}

// WithNotifier overrides the OTP delivery stub.
func (s *AccountService) WithNotifier(notifier OTPNotifier) *AccountService {
	if notifier != nil {
		s.notifier = notifier
	}
	return s
}

// WithLogger overrides the logger used by the service.
func (s *AccountService) WithLogger(logger Logger) *AccountService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates an unverified account with a pending OTP challenge.
// The email is pre-checked and stored exactly as submitted; the
// schema's unique index is the backstop for the race two simultaneous
// registrations can open here.
func (s *AccountService) Register(ctx context.Context, msg RegisterMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during registration")
	default:
		return s.register(ctx, msg)
	}
}

func (s *AccountService) register(ctx context.Context, msg RegisterMessage) (*Response, error) {
	existing, err := s.store.GetByEmail(ctx, msg.Email)
	if err != nil && !repository.IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing account")
	}

	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := s.creds.HashPassword(msg.Password)
	if err != nil {
		return nil, err
	}

	otp := s.creds.GenerateOTP()
	expireAt := s.creds.OTPExpiry()

	user := &User{
		Username:     msg.Username,
		Email:        msg.Email,
		PasswordHash: hash,
		Roles:        NormalizeRoles(msg.Roles),
		OTP:          &otp,
		OTPExpireAt:  &expireAt,
	}

	if user, err = s.store.Create(ctx, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	s.dispatchOTP(ctx, user.Email, otp)

	return &Response{
		StatusCode: http.StatusCreated,
		Message:    MsgUserRegistered,
		Payload:    PublicUser(user),
	}, nil
}

// Login verifies the password and issues a bearer token. The lookup
// uses the email exactly as submitted, matching the case Register
// stored. The OTP flows lowercase before lookup instead, so an account
// registered with a mixed-case address logs in with that exact form
// only. Existing clients depend on the asymmetry.
func (s *AccountService) Login(ctx context.Context, msg LoginMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during login")
	default:
		return s.login(ctx, msg)
	}
}

func (s *AccountService) login(ctx context.Context, msg LoginMessage) (*Response, error) {
	user, err := s.findByEmail(ctx, msg.Email)
	if err != nil {
		return nil, err
	}

	if !s.creds.ComparePassword(msg.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	token, err := s.creds.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: http.StatusOK,
		Message:    MsgUserLogin,
		Payload: LoginPayload{
			User:  PublicUser(user),
			Token: token,
		},
	}, nil
}

// ResendOTP mints a fresh challenge, overwriting any pending one.
func (s *AccountService) ResendOTP(ctx context.Context, msg ResendOTPMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during OTP resend")
	default:
		return s.issueChallenge(ctx, msg.Email, MsgOTPResent)
	}
}

// ForgotPassword prepares the OTP state for a password reset. The
// mechanism is identical to ResendOTP, the two flows share the single
// challenge slot, so starting a reset clobbers a pending verification
// code and the other way around.
func (s *AccountService) ForgotPassword(ctx context.Context, msg ForgotPasswordMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during password reset request")
	default:
		return s.issueChallenge(ctx, msg.Email, MsgPasswordResetSent)
	}
}

func (s *AccountService) issueChallenge(ctx context.Context, email, message string) (*Response, error) {
	user, err := s.findByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	otp := s.creds.GenerateOTP()
	expireAt := s.creds.OTPExpiry()

	if _, err := s.store.SetChallenge(ctx, user.ID, otp, expireAt); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist OTP challenge")
	}

	s.dispatchOTP(ctx, user.Email, otp)

	return &Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Payload:    nil,
	}, nil
}

// VerifyEmail consumes the pending challenge and issues a bearer token.
func (s *AccountService) VerifyEmail(ctx context.Context, msg VerifyEmailMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email verification")
	default:
		return s.verifyEmail(ctx, msg)
	}
}

func (s *AccountService) verifyEmail(ctx context.Context, msg VerifyEmailMessage) (*Response, error) {
	user, err := s.findByEmail(ctx, strings.ToLower(msg.Email))
	if err != nil {
		return nil, err
	}

	if err := checkChallenge(user, msg.OTP); err != nil {
		return nil, err
	}

	token, err := s.creds.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.ClearChallenge(ctx, user.ID); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear OTP challenge")
	}

	return &Response{
		StatusCode: http.StatusOK,
		Message:    MsgUserVerified,
		Payload: LoginPayload{
			User:  PublicUser(user),
			Token: token,
		},
	}, nil
}

// ResetPassword consumes the pending challenge and replaces the stored
// password hash. No token is issued; the caller logs in afterwards.
func (s *AccountService) ResetPassword(ctx context.Context, msg ResetPasswordMessage) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during password reset")
	default:
		return s.resetPassword(ctx, msg)
	}
}

func (s *AccountService) resetPassword(ctx context.Context, msg ResetPasswordMessage) (*Response, error) {
	user, err := s.findByEmail(ctx, strings.ToLower(msg.Email))
	if err != nil {
		return nil, err
	}

	if err := checkChallenge(user, msg.OTP); err != nil {
		return nil, err
	}

	hash, err := s.creds.HashPassword(msg.NewPassword)
	if err != nil {
		return nil, err
	}

	// Password swap and challenge clear happen in one update.
	if err := s.store.ResetPassword(ctx, user.ID, hash); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password")
	}

	return &Response{
		StatusCode: http.StatusOK,
		Message:    MsgPasswordUpdated,
		Payload:    nil,
	}, nil
}

func (s *AccountService) findByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up account")
	}
	return user, nil
}

func (s *AccountService) dispatchOTP(ctx context.Context, email string, otp int) {
	if err := s.notifier.NotifyOTP(ctx, email, otp); err != nil {
		s.logger.Error("OTP notification failed for %s: %v", email, err)
	}
}

// checkChallenge validates the submitted code against the stored state:
// the challenge must exist, match numerically, and not have lapsed. The
// expiry comparison is strict, a code submitted at exactly otpExpireAt
// still verifies.
func checkChallenge(user *User, submitted string) error {
	code, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return ErrInvalidOTP
	}

	if user.OTP == nil || *user.OTP != code {
		return ErrInvalidOTP
	}

	if user.ChallengeExpired(time.Now().UnixMilli()) {
		return ErrOTPExpired
	}

	return nil
}
