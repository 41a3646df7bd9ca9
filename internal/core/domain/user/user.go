package user

import (
	"fmt"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"strings"
	"time"
)

type ID string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// RegistrationNumber is kept uppercased so lookups are case-insensitive.
type RegistrationNumber string

func NewRegistrationNumber(raw string) RegistrationNumber {
	return RegistrationNumber(strings.ToUpper(strings.TrimSpace(raw)))
}

type User struct {
	ID                 ID
	Email              c.Email
	PasswordHash       PasswordHash
	Mobile             string
	Address            string
	RegistrationNumber RegistrationNumber
	PasswordReset      c.Optional[PasswordReset]
	CreatedAt          time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %s", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == "" {
		return e.NewInvalidStateError(fmt.Sprintf("empty password reset token for user %s", u.ID))
	}
	return nil
}

type IDGenerator interface {
	GenerateID() ID
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
