package resetpassword

import (
	"context"
	"errors"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	checkpasswordresettoken "regportal/internal/core/services/check_password_reset_token"
)

type Input struct {
	Token                   user.PasswordResetToken
	NewPassword             user.RawPassword
	NewPasswordConfirmation user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	checkToken     services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result]
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	checkToken services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if checkToken == nil {
		panic(e.NewNilArgumentError("checkToken"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		checkToken:     checkToken,
	}
}

// Run consumes an active token: the new password is stored and the reset pair
// is cleared. On any rejection the token stays as it was.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	checked, err := s.checkToken.Run(ctx, checkpasswordresettoken.Input{Token: input.Token})
	if err != nil {
		return result, err
	}
	u := checked.User

	if err := user.ValidateNewPassword(input.NewPassword, input.NewPasswordConfirmation); err != nil {
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("userId", u.ID), logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.ConsumePasswordReset(ctx, input.Token, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token was consumed concurrently.", logging.Entry("userId", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userId", u.ID))
	return Result{User: u}, nil
}
