package user

import (
	"context"
	"time"
	"unicode/utf8"
)

const MinPasswordLength = 6

type PasswordResetToken string

// PasswordReset is the token/expiry pair stored on a user during a reset flow.
// Both halves are stored and cleared together.
type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

func (r PasswordReset) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type ResetTokenState int

const (
	NoResetToken ResetTokenState = iota
	ResetTokenActive
	ResetTokenExpired
)

func (s ResetTokenState) String() string {
	switch s {
	case NoResetToken:
		return "no_token"
	case ResetTokenActive:
		return "active"
	case ResetTokenExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// ResetTokenState reports where the user is in the password reset flow.
// A consumed token is cleared from the record, which brings the user back
// to NoResetToken.
func (u *User) ResetTokenState(now time.Time) ResetTokenState {
	if !u.PasswordReset.IsPresent {
		return NoResetToken
	}
	if u.PasswordReset.Value.IsExpired(now) {
		return ResetTokenExpired
	}
	return ResetTokenActive
}

// CheckPasswordResetToken returns nil when the token may be used to set a new
// password right now.
func (u *User) CheckPasswordResetToken(token PasswordResetToken, now time.Time) error {
	switch u.ResetTokenState(now) {
	case ResetTokenActive:
		if u.PasswordReset.Value.Token != token {
			return ErrInvalidPasswordResetToken
		}
		return nil
	case ResetTokenExpired:
		if u.PasswordReset.Value.Token != token {
			return ErrInvalidPasswordResetToken
		}
		return ErrPasswordResetTokenExpired
	default:
		return ErrInvalidPasswordResetToken
	}
}

// ValidateNewPassword checks the confirmation before the length.
func ValidateNewPassword(password RawPassword, confirmation RawPassword) error {
	if password != confirmation {
		return ErrPasswordsDoNotMatch
	}
	if utf8.RuneCountInString(string(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

type PasswordResetTokenIssuer interface {
	IssueToken() (PasswordReset, error)
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User, token PasswordResetToken) error
}
