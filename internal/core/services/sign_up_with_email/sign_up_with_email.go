package signupwithemail

import (
	"context"
	"errors"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	"time"
)

type Input struct {
	Email              c.Email
	Password           user.RawPassword
	Mobile             string
	Address            string
	RegistrationNumber user.RegistrationNumber
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	idGenerator    user.IDGenerator
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	idGenerator user.IDGenerator,
	now func() time.Time,
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
	if idGenerator == nil {
		panic(e.NewNilArgumentError("idGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		idGenerator:    idGenerator,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdUser, err := s.userRepository.Create(ctx, user.CreateUserInput{
		ID:                 s.idGenerator.GenerateID(),
		Email:              input.Email,
		PasswordHash:       passwordHash,
		Mobile:             input.Mobile,
		Address:            input.Address,
		RegistrationNumber: input.RegistrationNumber,
		CreatedAt:          s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New user has been registered.",
		logging.Entry("userId", createdUser.ID),
		logging.Entry("registrationNumber", createdUser.RegistrationNumber),
	)
	return Result{User: createdUser}, nil
}
