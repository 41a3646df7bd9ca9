package email

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regportal/internal/core/domain/user"

	"github.com/wneessen/go-mail"
)

type deliverFunc func(ctx context.Context, msg *mail.Msg) error

// SMTPSender delivers mail through an SMTP relay with PLAIN auth over a
// mandatory STARTTLS connection. A new session is opened for every message
// and torn down as soon as the request context is done.
type SMTPSender struct {
	host     string
	options  []mail.Option
	sender   string
	messages passwordResetMessages
	deliver  deliverFunc
}

func NewSMTPSender(
	host string,
	port int,
	username string,
	password string,
	sender string,
	passwordResetBaseURL url.URL,
) (*SMTPSender, error) {
	if sender == "" {
		sender = username
	}
	s := &SMTPSender{
		host: host,
		options: []mail.Option{
			mail.WithPort(port),
			mail.WithTLSPolicy(mail.TLSMandatory),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		},
		sender:   sender,
		messages: passwordResetMessages{baseURL: passwordResetBaseURL},
	}
	if _, err := mail.NewClient(host, s.options...); err != nil {
		return nil, err
	}
	s.deliver = s.dialAndSend
	return s, nil
}

func (s *SMTPSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}
	msg, err := s.compose(string(u.Email), s.messages.build(token))
	if err != nil {
		return err
	}
	return s.deliver(ctx, msg)
}

func (s *SMTPSender) compose(to string, m message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.sender); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(m.subject)
	msg.SetBodyString(mail.TypeTextPlain, m.body)
	return msg, nil
}

func (s *SMTPSender) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	done := make(chan struct{})
	defer close(done)

	dial := func(dialCtx context.Context, network string, address string) (net.Conn, error) {
		var dialer net.Dialer
		conn, err := dialer.DialContext(dialCtx, network, address)
		if err != nil {
			return nil, err
		}
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-done:
			}
		}()
		return conn, nil
	}

	options := make([]mail.Option, 0, len(s.options)+1)
	options = append(options, s.options...)
	options = append(options, mail.WithDialContextFunc(dial))
	client, err := mail.NewClient(s.host, options...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
