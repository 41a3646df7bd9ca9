package services

import (
	"regportal/internal/app/deps"
	"regportal/internal/core/services"
	checkdatabase "regportal/internal/core/services/check_database"
	checkpasswordresettoken "regportal/internal/core/services/check_password_reset_token"
	findbyregistrationnumber "regportal/internal/core/services/find_by_registration_number"
	loginwithemail "regportal/internal/core/services/log_in_with_email"
	resetpassword "regportal/internal/core/services/reset_password"
	sendpasswordresettoken "regportal/internal/core/services/send_password_reset_token"
	signupwithemail "regportal/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail          services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail           services.Service[loginwithemail.Input, loginwithemail.Result]
	FindByRegistrationNumber services.Service[findbyregistrationnumber.Input, findbyregistrationnumber.Result]
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	CheckPasswordResetToken  services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
	CheckDatabase            services.Service[checkdatabase.Input, checkdatabase.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.UserIDGenerator,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.FindByRegistrationNumber = findbyregistrationnumber.New(
		deps.Logger,
		deps.UserRepository,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenIssuer,
		deps.PasswordResetTokenSender,
	)
	s.CheckPasswordResetToken = checkpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		s.CheckPasswordResetToken,
	)
	s.CheckDatabase = checkdatabase.New(deps.Logger, deps.DatabasePinger)

	return s
}
