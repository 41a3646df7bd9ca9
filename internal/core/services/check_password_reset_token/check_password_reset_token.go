package checkpasswordresettoken

import (
	"context"
	"errors"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	"time"
)

type Input struct {
	Token user.PasswordResetToken
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, userRepository: userRepository, now: now}
}

// Run finds the user holding the token and fails unless the token is active.
// Expired tokens are left in place.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByPasswordResetToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by password reset token.", logging.Entry("err", err))
		return result, err
	}

	if err := u.CheckPasswordResetToken(input.Token, s.now()); err != nil {
		s.log.Info(
			ctx,
			"Password reset token rejected.",
			logging.Entry("userId", u.ID),
			logging.Entry("state", u.ResetTokenState(s.now())),
		)
		return result, err
	}
	return Result{User: u}, nil
}
