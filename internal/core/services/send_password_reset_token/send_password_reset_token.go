package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
)

type Input struct {
	Email c.Email
}

type Result struct {
	Token user.PasswordResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenIssuer    user.PasswordResetTokenIssuer
	tokenSender    user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenIssuer user.PasswordResetTokenIssuer,
	tokenSender user.PasswordResetTokenSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenIssuer == nil {
		panic(e.NewNilArgumentError("tokenIssuer"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenIssuer:    tokenIssuer,
		tokenSender:    tokenSender,
	}
}

// Run moves the user to the active reset state and mails the token. A token
// that could not be mailed stays stored; a new request replaces it.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	reset, err := s.tokenIssuer.IssueToken()
	if err != nil {
		s.log.Error(ctx, "Could not issue password reset token.", logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.SetPasswordReset(ctx, u.ID, reset)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.log.Info(
		ctx,
		"Password reset token stored.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", reset.ExpiresAt),
	)

	result.Token = reset.Token
	err = s.tokenSender.SendPasswordResetToken(ctx, u, reset.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrPasswordResetTokenNotSent, err)
	}

	s.log.Info(ctx, "Password reset token has been sent.", logging.Entry("userId", u.ID))
	return result, nil
}
