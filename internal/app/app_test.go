package app

import (
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regportal/internal/app/deps"
	"regportal/internal/app/services"
	c "regportal/internal/core/domain/common"
	"regportal/internal/core/domain/health"
	"regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const RESET_TOKEN = "test-reset-token"

type testSuite struct {
	suite.Suite
	now        time.Time
	repository *user.FakeUserRepository
	sender     *user.FakePasswordResetTokenSender
	pinger     *health.FakePinger
	router     http.Handler
}

func (s *testSuite) SetupTest() {
	s.now = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return s.now }
	s.repository = user.NewFakeUserRepository()
	s.sender = user.NewFakePasswordResetTokenSender()
	s.pinger = health.NewFakePinger("MongoDB", nil)

	d := &deps.Deps{
		Logger:                   logging.NewFakeLogger(),
		Now:                      now,
		UserRepository:           s.repository,
		DatabasePinger:           s.pinger,
		PasswordHasher:           user.NewFakePasswordHasher(),
		UserIDGenerator:          user.NewFakeIDGenerator("user"),
		PasswordResetTokenIssuer: user.NewFakePasswordResetTokenIssuer(RESET_TOKEN, time.Hour, now),
		PasswordResetTokenSender: s.sender,
	}
	s.router = NewRouter([]string{"https://example.com"}, services.InitServices(d))
}

func TestApp(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) do(method string, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testSuite) register(email string, password string, number string) {
	rec := s.do(http.MethodPost, "/register", url.Values{
		"mobile":              {"100200300"},
		"email":               {email},
		"password":            {password},
		"address":             {"Baker street"},
		"registration_number": {number},
	})
	s.Require().Equal(http.StatusFound, rec.Code)
	s.Require().Equal("/success?action=register", rec.Header().Get("Location"))
}

func (s *testSuite) logIn(email string, password string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/login", url.Values{"email": {email}, "password": {password}})
}

func (s *testSuite) TestRegisterThenLogIn() {
	s.register("test@test.test", "secret-1", "reg-001")

	rec := s.logIn("test@test.test", "secret-1")
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/success?action=login", rec.Header().Get("Location"))

	rec = s.logIn("test@test.test", "wrong")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Invalid Password. Please try again.")

	rec = s.logIn("other@test.test", "secret-1")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "User not found. Please register.")
}

func (s *testSuite) TestEmailFormatIsNotChecked() {
	s.register("Bob", "secret-1", "REG-001")
	s.Require().Len(s.repository.Users, 1)
	s.Equal(c.Email("bob"), s.repository.Users[0].Email)

	rec := s.logIn("bob", "secret-1")
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/success?action=login", rec.Header().Get("Location"))

	rec = s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"bob"}})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.sender.SentCount())
}

func (s *testSuite) TestDuplicateEmail() {
	s.register("test@test.test", "secret-1", "REG-001")

	rec := s.do(http.MethodPost, "/register", url.Values{
		"mobile":              {"100200300"},
		"email":               {"TEST@test.test"},
		"password":            {"secret-2"},
		"address":             {"Baker street"},
		"registration_number": {"REG-002"},
	})

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Email address is already registered.")
	s.Len(s.repository.Users, 1)
}

func (s *testSuite) TestLookupIsCaseInsensitive() {
	s.register("test@test.test", "secret-1", "Reg-001")

	rec := s.do(http.MethodPost, "/success", url.Values{"registration_number": {"rEG-001"}})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "test@test.test")
	s.Contains(rec.Body.String(), "REG-001")

	rec = s.do(http.MethodPost, "/success", url.Values{"registration_number": {"REG-404"}})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "No record found")
}

func (s *testSuite) TestSuccessPageGreeting() {
	rec := s.do(http.MethodGet, "/success?action=register", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Registered successfully")

	rec = s.do(http.MethodGet, "/success", nil)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *testSuite) TestPasswordResetFlow() {
	s.register("test@test.test", "secret-1", "REG-001")

	rec := s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"test@test.test"}})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(html.UnescapeString(rec.Body.String()), "Password reset link has been sent to your email address.")
	s.Equal([]user.PasswordResetToken{RESET_TOKEN}, s.sender.Sent)

	rec = s.do(http.MethodGet, "/reset-password/"+RESET_TOKEN, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `name="confirm_password"`)

	rec = s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {"secret-2"},
		"confirm_password": {"secret-3"},
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Passwords do not match. Please try again.")
	s.Equal(user.ResetTokenActive, s.repository.Users[0].ResetTokenState(s.now))

	rec = s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {"short"},
		"confirm_password": {"short"},
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Password must be at least 6 characters long.")

	rec = s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {"secret-2"},
		"confirm_password": {"secret-2"},
	})
	s.Equal(http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	s.Require().NoError(err)
	s.Equal("/login", location.Path)
	s.Equal(
		"Password reset successfully! Please log in with your new password.",
		location.Query().Get("message"),
	)
	s.Equal(user.NoResetToken, s.repository.Users[0].ResetTokenState(s.now))

	s.Equal(http.StatusUnprocessableEntity, s.logIn("test@test.test", "secret-1").Code)
	s.Equal(http.StatusFound, s.logIn("test@test.test", "secret-2").Code)

	rec = s.do(http.MethodGet, "/reset-password/"+RESET_TOKEN, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "Invalid or expired reset token. Please try again.")
}

func (s *testSuite) TestResetWithEmptyPassword() {
	s.register("test@test.test", "secret-1", "REG-001")
	s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"test@test.test"}})

	rec := s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {""},
		"confirm_password": {"secret-2"},
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Passwords do not match. Please try again.")
	s.NotContains(rec.Body.String(), "cannot be blank")

	rec = s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {""},
		"confirm_password": {""},
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Password must be at least 6 characters long.")
	s.NotContains(rec.Body.String(), "cannot be blank")

	s.Equal(user.ResetTokenActive, s.repository.Users[0].ResetTokenState(s.now))
	s.Equal(http.StatusFound, s.logIn("test@test.test", "secret-1").Code)
}

func (s *testSuite) TestExpiredResetToken() {
	s.register("test@test.test", "secret-1", "REG-001")
	s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"test@test.test"}})

	s.now = s.now.Add(time.Hour)

	rec := s.do(http.MethodGet, "/reset-password/"+RESET_TOKEN, nil)
	s.Equal(http.StatusGone, rec.Code)
	s.Contains(rec.Body.String(), "Reset token has expired. Please request a new password reset.")

	rec = s.do(http.MethodPost, "/reset-password/"+RESET_TOKEN, url.Values{
		"password":         {"secret-2"},
		"confirm_password": {"secret-2"},
	})
	s.Equal(http.StatusGone, rec.Code)
	s.Equal(http.StatusFound, s.logIn("test@test.test", "secret-1").Code)
}

func (s *testSuite) TestForgotPasswordMailFailureKeepsToken() {
	s.register("test@test.test", "secret-1", "REG-001")
	s.sender.ReturnError = true

	rec := s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"test@test.test"}})

	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "Error Sending email. Please try again later.")
	s.Equal(
		c.Some(user.PasswordReset{Token: RESET_TOKEN, ExpiresAt: s.now.Add(time.Hour)}),
		s.repository.Users[0].PasswordReset,
	)
}

func (s *testSuite) TestForgotPasswordUnknownEmail() {
	rec := s.do(http.MethodPost, "/forgot-password", url.Values{"email": {"test@test.test"}})

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "Email address not found. Please check your email or register.")
	s.Zero(s.sender.SentCount())
}

func (s *testSuite) TestHealthCheck() {
	for _, path := range []string{"/mongodb", "/health"} {
		rec := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("MongoDB connection is successful", rec.Body.String())
	}

	s.pinger.Err = errors.New("connection refused")
	rec := s.do(http.MethodGet, "/mongodb", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("MongoDB connection failed: connection refused", rec.Body.String())
}

func (s *testSuite) TestUnsupportedMethod() {
	rec := s.do(http.MethodDelete, "/login", nil)
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
}
