package findbyregistrationnumber

import (
	"context"
	"errors"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
)

type Input struct {
	RegistrationNumber user.RegistrationNumber
}

type Result struct {
	User c.Optional[user.User]
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{log: log, userRepository: userRepository}
}

// Run returns an empty result without error when nothing matches.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByRegistrationNumber(ctx, input.RegistrationNumber)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, nil
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by registration number.",
			logging.Entry("registrationNumber", input.RegistrationNumber),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{User: c.Some(u)}, nil
}
