// Package accounts implements a user-account authentication service:
// registration, login, email verification via one-time passcode, OTP
// resend, and password reset, plus a bearer-token access guard.
//
// Layout:
//   - Credentials is the pure credential helper: bcrypt hashing, OTP
//     generation and expiry arithmetic, HS256 token issuance and
//     verification. All settings arrive through the Config interface.
//   - AccountService orchestrates the six operations as plain store
//     lookups and updates. There is deliberately no cross-request
//     locking and no transaction around the read-then-write sequences;
//     the concurrency caveats are documented on UserStore.
//   - AccessGuard is the fiber middleware gating protected routes. It
//     re-resolves the account on every request, so stale tokens for
//     deleted users are rejected even though tokens never expire.
//   - Users is the bun-backed record store; unique indexes on email and
//     username back up the orchestrator's pre-checks.
//
// Every operation returns the uniform {statusCode, message, payload}
// envelope, and failures are fixed-message typed errors, so the HTTP
// layer in http_controller.go stays a thin parse/validate/serialize
// shim.
package accounts
