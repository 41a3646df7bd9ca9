package user

import (
	"context"
	c "regportal/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	ID                 ID
	Email              c.Email
	PasswordHash       PasswordHash
	Mobile             string
	Address            string
	RegistrationNumber RegistrationNumber
	CreatedAt          time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByRegistrationNumber(ctx context.Context, number RegistrationNumber) (User, error)
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken) (User, error)
	SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error
	// ConsumePasswordReset sets the new password and clears the reset pair of
	// the user holding the token. It fails with ErrInvalidPasswordResetToken
	// when no user holds it anymore.
	ConsumePasswordReset(ctx context.Context, token PasswordResetToken, password PasswordHash) error
}
