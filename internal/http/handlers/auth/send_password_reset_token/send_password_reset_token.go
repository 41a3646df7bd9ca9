package sendpasswordresettoken

import (
	"errors"
	"net/http"
	"net/url"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	sendpasswordresettoken "regportal/internal/core/services/send_password_reset_token"
	"regportal/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	SentMessage          = "Password reset link has been sent to your email address. Please check your email. If you don't see the email in your inbox, check your spam folder."
	EmailNotFoundMessage = "Email address not found. Please check your email or register."
	NotSentMessage       = "Error Sending email. Please try again later."
)

type Handler struct {
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
}

func New(
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `form:"email"`
}

func (i *Input) FromForm(form url.Values) {
	i.Email = strings.TrimSpace(form.Get("email"))
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Render(rw, response.ForgotPasswordPage, response.Data{ShowForm: true}, http.StatusOK)
		return
	}

	if err := r.ParseForm(); err != nil {
		response.RenderText(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r.PostForm)
	if err := input.Validate(); err != nil {
		response.RenderFormError(rw, response.ForgotPasswordPage, r.PostForm, err)
		return
	}

	_, err := h.service.Run(r.Context(), sendpasswordresettoken.Input{Email: c.NewEmail(input.Email)})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		h.render(rw, response.Data{Error: EmailNotFoundMessage, Form: r.PostForm}, http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrPasswordResetTokenNotSent) {
		h.render(rw, response.Data{Error: NotSentMessage, Form: r.PostForm}, http.StatusBadGateway)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	h.render(rw, response.Data{Message: SentMessage}, http.StatusOK)
}

func (h *Handler) render(rw http.ResponseWriter, data response.Data, status int) {
	data.ShowForm = true
	response.Render(rw, response.ForgotPasswordPage, data, status)
}
