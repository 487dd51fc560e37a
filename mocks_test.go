package accounts_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/telecare-labs/accounts"
)

// testConfig implements accounts.Config with fixed values. The bcrypt
// cost is kept at the minimum so the suite stays fast.
type testConfig struct {
	secret      string
	cost        int
	otpLifetime int
}

func (c testConfig) GetSigningKey() string { return c.secret }
func (c testConfig) GetBcryptCost() int    { return c.cost }
func (c testConfig) GetOTPLifetime() int   { return c.otpLifetime }

func newTestConfig() testConfig {
	return testConfig{
		secret:      "test-signing-secret",
		cost:        4,
		otpLifetime: 10,
	}
}

// memStore is an in-memory accounts.UserStore with the same observable
// behavior as the bun repository: exact-match email lookups, record-not
// -found errors the orchestrator recognizes, and unique email/username
// enforcement on create.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*accounts.User
}

var _ accounts.UserStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*accounts.User{}}
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*accounts.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}

	return nil, repository.NewRecordNotFound()
}

func (m *memStore) GetByID(_ context.Context, id string, _ ...repository.SelectCriteria) (*accounts.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.NewRecordNotFound()
	}

	u, ok := m.users[uid]
	if !ok {
		return nil, repository.NewRecordNotFound()
	}

	return cloneUser(u), nil
}

func (m *memStore) Create(_ context.Context, record *accounts.User, _ ...repository.InsertCriteria) (*accounts.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == record.Email || u.Username == record.Username {
			return nil, errors.New("unique constraint violation", errors.CategoryConflict)
		}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.ProfilePicture == "" {
		record.ProfilePicture = accounts.DefaultProfilePicture
	}
	if len(record.Roles) == 0 {
		record.Roles = accounts.DefaultRoles()
	}

	m.users[record.ID] = cloneUser(record)
	return cloneUser(record), nil
}

func (m *memStore) SetChallenge(_ context.Context, id uuid.UUID, otp int, expireAt int64) (*accounts.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, repository.NewRecordNotFound()
	}

	u.OTP = &otp
	u.OTPExpireAt = &expireAt

	return cloneUser(u), nil
}

func (m *memStore) ClearChallenge(_ context.Context, id uuid.UUID) (*accounts.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, repository.NewRecordNotFound()
	}

	u.OTP = nil
	u.OTPExpireAt = nil

	return cloneUser(u), nil
}

func (m *memStore) ResetPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return repository.NewRecordNotFound()
	}

	u.PasswordHash = passwordHash
	u.OTP = nil
	u.OTPExpireAt = nil

	return nil
}

// delete removes a record, simulating external account deletion.
func (m *memStore) delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

// snapshot returns the stored record, not a copy of the public shape.
func (m *memStore) snapshot(id uuid.UUID) *accounts.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil
	}
	return cloneUser(u)
}

func cloneUser(u *accounts.User) *accounts.User {
	out := *u
	out.Roles = append([]accounts.UserRole(nil), u.Roles...)
	if u.OTP != nil {
		otp := *u.OTP
		out.OTP = &otp
	}
	if u.OTPExpireAt != nil {
		exp := *u.OTPExpireAt
		out.OTPExpireAt = &exp
	}
	return &out
}

// captureNotifier records every OTP handed to it.
type captureNotifier struct {
	mu    sync.Mutex
	codes map[string][]int
}

var _ accounts.OTPNotifier = (*captureNotifier)(nil)

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{codes: map[string][]int{}}
}

func (n *captureNotifier) NotifyOTP(_ context.Context, email string, otp int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = append(n.codes[email], otp)
	return nil
}

func (n *captureNotifier) last(email string) (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	codes := n.codes[email]
	if len(codes) == 0 {
		return 0, false
	}
	return codes[len(codes)-1], true
}

func newTestService() (*accounts.AccountService, *memStore, *captureNotifier, *accounts.Credentials) {
	store := newMemStore()
	creds := accounts.NewCredentials(newTestConfig())
	notifier := newCaptureNotifier()
	service := accounts.NewAccountService(store, creds).WithNotifier(notifier)
	return service, store, notifier, creds
}
