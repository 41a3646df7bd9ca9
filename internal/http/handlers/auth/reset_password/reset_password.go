package resetpassword

import (
	"errors"
	"net/http"
	"net/url"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	checkpasswordresettoken "regportal/internal/core/services/check_password_reset_token"
	resetpassword "regportal/internal/core/services/reset_password"
	"regportal/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	InvalidTokenMessage      = "Invalid or expired reset token. Please try again."
	ExpiredTokenMessage      = "Reset token has expired. Please request a new password reset."
	PasswordsMismatchMessage = "Passwords do not match. Please try again."
	PasswordTooShortMessage  = "Password must be at least 6 characters long."
	SuccessMessage           = "Password reset successfully! Please log in with your new password."
)

const MAX_TOKEN_LEN = 1024

type Handler struct {
	checkToken services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result]
	service    services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	checkToken services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result],
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if checkToken == nil {
		panic(e.NewNilArgumentError("checkToken"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{checkToken: checkToken, service: service}
}

type Input struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (i *Input) FromForm(form url.Values) {
	i.Password = form.Get("password")
	i.ConfirmPassword = form.Get("confirm_password")
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Length(0, 256)),
		validation.Field(&i.ConfirmPassword, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" || len(token) > MAX_TOKEN_LEN {
		h.render(rw, token, InvalidTokenMessage, false, http.StatusNotFound)
		return
	}

	if r.Method != http.MethodPost {
		h.showForm(rw, r, user.PasswordResetToken(token))
		return
	}
	h.resetPassword(rw, r, user.PasswordResetToken(token))
}

func (h *Handler) showForm(rw http.ResponseWriter, r *http.Request, token user.PasswordResetToken) {
	_, err := h.checkToken.Run(r.Context(), checkpasswordresettoken.Input{Token: token})
	if h.renderTokenError(rw, token, err) {
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	h.render(rw, string(token), "", true, http.StatusOK)
}

func (h *Handler) resetPassword(rw http.ResponseWriter, r *http.Request, token user.PasswordResetToken) {
	if err := r.ParseForm(); err != nil {
		response.RenderText(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r.PostForm)
	if err := input.Validate(); err != nil {
		response.Render(
			rw,
			response.ResetPasswordPage,
			response.Data{FieldErrors: response.FieldErrors(err), Token: string(token), ShowForm: true},
			http.StatusBadRequest,
		)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:                   token,
			NewPassword:             user.RawPassword(input.Password),
			NewPasswordConfirmation: user.RawPassword(input.ConfirmPassword),
		},
	)
	if h.renderTokenError(rw, token, err) {
		return
	}
	if errors.Is(err, user.ErrPasswordsDoNotMatch) {
		h.render(rw, string(token), PasswordsMismatchMessage, true, http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrPasswordTooShort) {
		h.render(rw, string(token), PasswordTooShortMessage, true, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Redirect(rw, r, "/login", url.Values{"message": {SuccessMessage}})
}

func (h *Handler) renderTokenError(rw http.ResponseWriter, token user.PasswordResetToken, err error) bool {
	switch {
	case errors.Is(err, user.ErrInvalidPasswordResetToken):
		h.render(rw, string(token), InvalidTokenMessage, false, http.StatusNotFound)
	case errors.Is(err, user.ErrPasswordResetTokenExpired):
		h.render(rw, string(token), ExpiredTokenMessage, false, http.StatusGone)
	default:
		return false
	}
	return true
}

func (h *Handler) render(rw http.ResponseWriter, token string, msg string, showForm bool, status int) {
	response.Render(
		rw,
		response.ResetPasswordPage,
		response.Data{Error: msg, Token: token, ShowForm: showForm},
		status,
	)
}
