package email

import (
	"fmt"
	"net/url"
	"regportal/internal/core/domain/user"
)

const PasswordResetSubject = "Password Reset Request"

type message struct {
	subject string
	body    string
}

// passwordResetMessages renders the plain text reset email. The link is the
// public reset page of the token.
type passwordResetMessages struct {
	baseURL url.URL
}

func (m passwordResetMessages) link(token user.PasswordResetToken) string {
	return m.baseURL.JoinPath("reset-password", string(token)).String()
}

func (m passwordResetMessages) build(token user.PasswordResetToken) message {
	return message{
		subject: PasswordResetSubject,
		body: fmt.Sprintf(
			"Please click on the following link to reset your password: %s",
			m.link(token),
		),
	}
}
