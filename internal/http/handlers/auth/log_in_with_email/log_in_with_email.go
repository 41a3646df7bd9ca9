package loginwithemail

import (
	"errors"
	"net/http"
	"net/url"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	loginwithemail "regportal/internal/core/services/log_in_with_email"
	"regportal/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	UserNotFoundMessage    = "User not found. Please register."
	InvalidPasswordMessage = "Invalid Password. Please try again."
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (i *Input) FromForm(form url.Values) {
	i.Email = strings.TrimSpace(form.Get("email"))
	i.Password = form.Get("password")
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Render(
			rw,
			response.LoginPage,
			response.Data{Message: r.URL.Query().Get("message"), ShowForm: true},
			http.StatusOK,
		)
		return
	}

	if err := r.ParseForm(); err != nil {
		response.RenderText(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r.PostForm)
	if err := input.Validate(); err != nil {
		response.RenderFormError(rw, response.LoginPage, r.PostForm, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		h.renderError(rw, r.PostForm, UserNotFoundMessage)
		return
	}
	if errors.Is(err, user.ErrInvalidPassword) {
		h.renderError(rw, r.PostForm, InvalidPasswordMessage)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Redirect(rw, r, "/success", url.Values{"action": {"login"}})
}

func (h *Handler) renderError(rw http.ResponseWriter, form url.Values, msg string) {
	response.Render(
		rw,
		response.LoginPage,
		response.Data{Error: msg, Form: form, ShowForm: true},
		http.StatusUnprocessableEntity,
	)
}
