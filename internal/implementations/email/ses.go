package email

import (
	"context"
	"errors"
	"net/url"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender   string
	messages passwordResetMessages
}

func NewSESSender(awsConfig aws.Config, sender string, passwordResetBaseURL url.URL) *SESSender {
	return newSESSender(ses.NewFromConfig(awsConfig), sender, passwordResetBaseURL)
}

func newSESSender(client sesClient, sender string, passwordResetBaseURL url.URL) *SESSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &SESSender{
		ses:      client,
		sender:   sender,
		messages: passwordResetMessages{baseURL: passwordResetBaseURL},
	}
}

func (s *SESSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}
	msg := s.messages.build(token)

	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(u.Email)},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.body), Charset: aws.String("UTF-8")},
				},
			},
		},
	)
	return err
}
