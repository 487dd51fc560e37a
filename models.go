package accounts

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultProfilePicture is the placeholder avatar assigned to new accounts.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// User is the account record. OTP and OTPExpireAt are either both set
// (a challenge is outstanding) or both NULL; the raw-SQL mutations in
// repo_users.go keep that pairing.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	ProfilePicture string     `bun:"profile_picture" json:"profile_picture,omitempty"`
	Roles          []UserRole `bun:"roles" json:"roles,omitempty"`
	OTP            *int       `bun:"otp" json:"-"`
	OTPExpireAt    *int64     `bun:"otp_expire_at" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasChallenge reports whether an OTP challenge is outstanding.
func (u *User) HasChallenge() bool {
	return u.OTP != nil && u.OTPExpireAt != nil
}

// ChallengeExpired reports whether the outstanding challenge lapsed
// before the given epoch-millisecond instant. Expiry is evaluated lazily
// at verification time; nothing sweeps stale challenges.
func (u *User) ChallengeExpired(nowMillis int64) bool {
	return u.OTPExpireAt != nil && *u.OTPExpireAt < nowMillis
}

// CreateSchema creates the users table and its unique indexes. The unique
// constraints on username and email are the backstop behind the
// orchestrator's find-then-create registration check.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}

	if _, err := db.NewCreateIndex().
		Model((*User)(nil)).
		Index("users_email_idx").
		Column("email").
		Unique().
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create email index")
	}

	if _, err := db.NewCreateIndex().
		Model((*User)(nil)).
		Index("users_username_idx").
		Column("username").
		Unique().
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create username index")
	}

	return nil
}
