package user

import (
	"context"
	"errors"
	"fmt"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_registrations_email_idx"

const selectUser = `
SELECT id::text, email, password_hash, mobile, address, registration_number,
       reset_token, reset_token_expiry, created_at
FROM user_registrations
`

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO user_registrations
		    (id, email, password_hash, mobile, address, registration_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, email, password_hash, mobile, address, registration_number,
		          reset_token, reset_token_expiry, created_at`,
		string(input.ID),
		string(input.Email),
		string(input.PasswordHash),
		input.Mobile,
		input.Address,
		string(input.RegistrationNumber),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
		pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	return r.getOne(ctx, selectUser+"WHERE email = $1", string(email))
}

func (r *PgxUserRepository) GetByRegistrationNumber(
	ctx context.Context,
	number user.RegistrationNumber,
) (user.User, error) {
	return r.getOne(
		ctx,
		selectUser+"WHERE registration_number = $1 ORDER BY created_at LIMIT 1",
		string(number),
	)
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (user.User, error) {
	return r.getOne(ctx, selectUser+"WHERE reset_token = $1", string(token))
}

func (r *PgxUserRepository) SetPasswordReset(ctx context.Context, id user.ID, reset user.PasswordReset) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_registrations SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		string(id),
		string(reset.Token),
		reset.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ConsumePasswordReset(
	ctx context.Context,
	token user.PasswordResetToken,
	password user.PasswordHash,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_registrations
		SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL
		WHERE reset_token = $1`,
		string(token),
		string(password),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}

func (r *PgxUserRepository) getOne(ctx context.Context, sql string, args ...interface{}) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id, email, passwordHash, mobile, address, registrationNumber string
		resetToken                                                   pgtype.Text
		resetTokenExpiry                                             pgtype.Timestamptz
		createdAt                                                    time.Time
	)
	err = row.Scan(
		&id,
		&email,
		&passwordHash,
		&mobile,
		&address,
		&registrationNumber,
		&resetToken,
		&resetTokenExpiry,
		&createdAt,
	)
	if err != nil {
		return u, err
	}

	u = user.User{
		ID:                 user.ID(id),
		Email:              c.Email(email),
		PasswordHash:       user.PasswordHash(passwordHash),
		Mobile:             mobile,
		Address:            address,
		RegistrationNumber: user.RegistrationNumber(registrationNumber),
		CreatedAt:          createdAt.UTC(),
	}
	u.PasswordReset, err = decodePasswordReset(resetToken, resetTokenExpiry)
	if err != nil {
		return u, fmt.Errorf("user %s: %w", id, err)
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func decodePasswordReset(token pgtype.Text, expiry pgtype.Timestamptz) (c.Optional[user.PasswordReset], error) {
	hasToken := token.Status == pgtype.Present
	hasExpiry := expiry.Status == pgtype.Present
	if hasToken != hasExpiry {
		return c.None[user.PasswordReset](), e.NewInvalidStateError("reset token and its expiry must be set together")
	}
	if !hasToken {
		return c.None[user.PasswordReset](), nil
	}
	return c.Some(user.PasswordReset{
		Token:     user.PasswordResetToken(token.String),
		ExpiresAt: expiry.Time.UTC(),
	}), nil
}
