package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidPassword           = errors.New("invalid password")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
	ErrPasswordResetTokenExpired = errors.New("password reset token has expired")
	ErrPasswordResetTokenNotSent = errors.New("password reset token could not be sent")
	ErrPasswordsDoNotMatch       = errors.New("passwords do not match")
	ErrPasswordTooShort          = errors.New("password is too short")
)
