package accounts

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NOTE: updating OTP columns through the ORM fails to persist NULLs, the
// zero-value handling skips them. The challenge mutations go through raw
// SQL so both columns always move together.
var SetChallengeSQL = `UPDATE "users" AS "usr"
SET
	"otp" = ?,
	"otp_expire_at" = ?
WHERE
	"usr"."id" = ?
RETURNING *;`

var ClearChallengeSQL = `UPDATE "users" AS "usr"
SET
	"otp" = NULL,
	"otp_expire_at" = NULL
WHERE
	"usr"."id" = ?
RETURNING *;`

var ResetUserPasswordSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"otp" = NULL,
	"otp_expire_at" = NULL
WHERE
	"usr"."id" = ?
RETURNING *;`

// Users is the user record store. Lookups are keyed by email or id;
// uniqueness on username and email is enforced by the schema.
type Users interface {
	repository.Repository[*User]

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)

	ListByIDs(ctx context.Context, ids []string, columns ...string) ([]*User, error)

	SetChallenge(ctx context.Context, id uuid.UUID, otp int, expireAt int64) (*User, error)
	SetChallengeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, otp int, expireAt int64) (*User, error)

	ClearChallenge(ctx context.Context, id uuid.UUID) (*User, error)
	ClearChallengeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)

	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

// NewUsersRepository builds the bun-backed user store.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

// SelectPublicColumns narrows a lookup to the public projection, the
// fields safe to attach to a request context or echo to a caller.
func SelectPublicColumns() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Column("id", "username", "email", "profile_picture", "roles")
	}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

// GetByEmailTx looks up a record by exact email match. Case handling is
// the orchestrator's concern, the store compares what it is given.
func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) ListByIDs(ctx context.Context, ids []string, columns ...string) ([]*User, error) {
	records := []*User{}

	q := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.id IN (?)", bun.In(ids))

	if len(columns) > 0 {
		q = q.Column(columns...)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	return records, nil
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *users) SetChallenge(ctx context.Context, id uuid.UUID, otp int, expireAt int64) (*User, error) {
	return a.SetChallengeTx(ctx, a.db, id, otp, expireAt)
}

func (a *users) SetChallengeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, otp int, expireAt int64) (*User, error) {
	res, err := a.Repository.RawTx(ctx, tx, SetChallengeSQL, otp, expireAt, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, notFoundByID(id)
	}

	return res[0], nil
}

func (a *users) ClearChallenge(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.ClearChallengeTx(ctx, a.db, id)
}

func (a *users) ClearChallengeTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	res, err := a.Repository.RawTx(ctx, tx, ClearChallengeSQL, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, notFoundByID(id)
	}

	return res[0], nil
}

func (a *users) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.ResetPasswordTx(ctx, a.db, id, passwordHash)
}

func (a *users) ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := a.Repository.RawTx(ctx, tx, ResetUserPasswordSQL, passwordHash, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return notFoundByID(id)
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.ProfilePicture == "" {
		record.ProfilePicture = DefaultProfilePicture
	}

	if len(record.Roles) == 0 {
		record.Roles = DefaultRoles()
	}
}

func notFoundByID(id uuid.UUID) error {
	return repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"id": id.String(),
		})
}
