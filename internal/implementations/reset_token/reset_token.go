package resettoken

import (
	"crypto/rand"
	"encoding/base64"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
)

// TokenBytes is the entropy of a reset token before encoding.
const TokenBytes = 16

// Issuer creates random URL-safe reset tokens valid for a fixed number of
// seconds from issue time.
type Issuer struct {
	validSeconds int
	now          func() time.Time
}

func NewIssuer(validFor time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validFor < time.Second {
		panic("password reset token must be valid for at least one second")
	}
	return &Issuer{validSeconds: int(validFor / time.Second), now: now}
}

func (i *Issuer) IssueToken() (reset user.PasswordReset, err error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return reset, err
	}
	now := i.now()
	expiresAt := carbon.Time2Carbon(now).AddSeconds(i.validSeconds).Carbon2Time().In(now.Location())
	return user.PasswordReset{
		Token:     user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b)),
		ExpiresAt: expiresAt,
	}, nil
}
