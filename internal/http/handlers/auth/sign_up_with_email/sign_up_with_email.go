package signupwithemail

import (
	"errors"
	"net/http"
	"net/url"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	signupwithemail "regportal/internal/core/services/sign_up_with_email"
	"regportal/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const EmailAlreadyExistsMessage = "Email address is already registered."

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Mobile             string `form:"mobile"`
	Email              string `form:"email"`
	Password           string `form:"password"`
	Address            string `form:"address"`
	RegistrationNumber string `form:"registration_number"`
}

func (i *Input) FromForm(form url.Values) {
	i.Mobile = strings.TrimSpace(form.Get("mobile"))
	i.Email = strings.TrimSpace(form.Get("email"))
	i.Password = form.Get("password")
	i.Address = strings.TrimSpace(form.Get("address"))
	i.RegistrationNumber = strings.TrimSpace(form.Get("registration_number"))
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Mobile, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Address, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.RegistrationNumber, validation.Required, validation.Length(0, 128)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Render(rw, response.RegisterPage, response.Data{ShowForm: true}, http.StatusOK)
		return
	}

	if err := r.ParseForm(); err != nil {
		response.RenderText(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r.PostForm)
	if err := input.Validate(); err != nil {
		response.RenderFormError(rw, response.RegisterPage, r.PostForm, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Email:              c.NewEmail(input.Email),
			Password:           user.RawPassword(input.Password),
			Mobile:             input.Mobile,
			Address:            input.Address,
			RegistrationNumber: user.NewRegistrationNumber(input.RegistrationNumber),
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.Render(
			rw,
			response.RegisterPage,
			response.Data{Error: EmailAlreadyExistsMessage, Form: r.PostForm, ShowForm: true},
			http.StatusUnprocessableEntity,
		)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Redirect(rw, r, "/success", url.Values{"action": {"register"}})
}
