package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "regportal/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeIDGenerator struct {
	Prefix string
	count  int
	lock   sync.Mutex
}

func NewFakeIDGenerator(prefix string) *FakeIDGenerator {
	return &FakeIDGenerator{Prefix: prefix}
}

func (g *FakeIDGenerator) GenerateID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.count++
	return ID(fmt.Sprintf("%s-%d", g.Prefix, g.count))
}

// FakeUserRepository is an in-memory UserRepository. Like the real stores it
// keeps emails unique.
type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:                 input.ID,
		Email:              input.Email,
		PasswordHash:       input.PasswordHash,
		Mobile:             input.Mobile,
		Address:            input.Address,
		RegistrationNumber: input.RegistrationNumber,
		CreatedAt:          input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (User, error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *FakeUserRepository) GetByRegistrationNumber(
	ctx context.Context,
	number RegistrationNumber,
) (User, error) {
	return r.find(func(u User) bool { return u.RegistrationNumber == number })
}

func (r *FakeUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
) (User, error) {
	return r.find(func(u User) bool {
		return u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == token
	})
}

func (r *FakeUserRepository) SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset for user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordReset = c.Some(reset)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ConsumePasswordReset(
	ctx context.Context,
	token PasswordResetToken,
	password PasswordHash,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not consume password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == token {
			r.Users[ix].PasswordHash = password
			r.Users[ix].PasswordReset = c.None[PasswordReset]()
			return nil
		}
	}
	return ErrInvalidPasswordResetToken
}

func (r *FakeUserRepository) find(match func(User) bool) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if match(u) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakePasswordResetTokenIssuer struct {
	Token       PasswordResetToken
	ValidFor    time.Duration
	Now         func() time.Time
	ReturnError bool
}

func NewFakePasswordResetTokenIssuer(
	token string,
	validFor time.Duration,
	now func() time.Time,
) *FakePasswordResetTokenIssuer {
	return &FakePasswordResetTokenIssuer{Token: PasswordResetToken(token), ValidFor: validFor, Now: now}
}

func (i *FakePasswordResetTokenIssuer) IssueToken() (reset PasswordReset, err error) {
	if i.ReturnError {
		return reset, fmt.Errorf("could not issue password reset token")
	}
	return PasswordReset{Token: i.Token, ExpiresAt: i.Now().Add(i.ValidFor)}, nil
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}
