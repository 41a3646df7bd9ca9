package loginwithemail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	c "regportal/internal/core/domain/common"
	"regportal/internal/core/domain/user"
	service "regportal/internal/core/services/log_in_with_email"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return result, nil
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLogInWithEmailHandler(t *testing.T) {
	cases := []struct {
		name             string
		form             url.Values
		serviceErr       error
		expectedStatus   int
		expectedLocation string
		expectedBody     string
		expectedInput    *service.Input
	}{
		{
			name:             "success",
			form:             url.Values{"email": {" Test@Test.test "}, "password": {"secret"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/success?action=login",
			expectedInput:    &service.Input{Email: c.Email("test@test.test"), Password: user.RawPassword("secret")},
		},
		{
			name:           "unknown user",
			form:           url.Values{"email": {"test@test.test"}, "password": {"secret"}},
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   UserNotFoundMessage,
			expectedInput:  &service.Input{Email: c.Email("test@test.test"), Password: user.RawPassword("secret")},
		},
		{
			name:           "invalid password",
			form:           url.Values{"email": {"test@test.test"}, "password": {"wrong"}},
			serviceErr:     user.ErrInvalidPassword,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   InvalidPasswordMessage,
			expectedInput:  &service.Input{Email: c.Email("test@test.test"), Password: user.RawPassword("wrong")},
		},
		{
			name:           "internal error",
			form:           url.Values{"email": {"test@test.test"}, "password": {"secret"}},
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Something went wrong",
			expectedInput:  &service.Input{Email: c.Email("test@test.test"), Password: user.RawPassword("secret")},
		},
		{
			name:             "email without domain",
			form:             url.Values{"email": {"Bob"}, "password": {"secret"}},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/success?action=login",
			expectedInput:    &service.Input{Email: c.Email("bob"), Password: user.RawPassword("secret")},
		},
		{
			name:           "missing email",
			form:           url.Values{"password": {"secret"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "cannot be blank",
		},
		{
			name:           "missing password",
			form:           url.Values{"email": {"test@test.test"}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "cannot be blank",
		},
	}

	for _, testcase := range cases {
		testcase := testcase
		t.Run(testcase.name, func(t *testing.T) {
			svc := &stubService{err: testcase.serviceErr}
			rec := httptest.NewRecorder()

			New(svc).ServeHTTP(rec, postForm(testcase.form))

			assert := assert.New(t)
			assert.Equal(testcase.expectedStatus, rec.Code)
			assert.Equal(testcase.expectedLocation, rec.Header().Get("Location"))
			assert.Contains(rec.Body.String(), testcase.expectedBody)
			assert.Equal(testcase.expectedInput, svc.input)
		})
	}
}

func TestLogInFormShowsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodGet,
		"/login?"+url.Values{"message": {"Password reset successfully!"}}.Encode(),
		nil,
	)

	New(&stubService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset successfully!")
	assert.Contains(t, rec.Body.String(), `action="/login"`)
}
