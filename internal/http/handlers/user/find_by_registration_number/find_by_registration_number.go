package findbyregistrationnumber

import (
	"net/http"
	"net/url"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"regportal/internal/core/services"
	findbyregistrationnumber "regportal/internal/core/services/find_by_registration_number"
	"regportal/internal/http/handlers/response"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	LoggedInMessage   = "Logged in successfully"
	RegisteredMessage = "Registered successfully"
)

// Handler serves the success page. A GET greets the user after login or
// registration; a POST looks a registration up by its number.
type Handler struct {
	service services.Service[findbyregistrationnumber.Input, findbyregistrationnumber.Result]
}

func New(
	service services.Service[findbyregistrationnumber.Input, findbyregistrationnumber.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	RegistrationNumber string `form:"registration_number"`
}

func (i *Input) FromForm(form url.Values) {
	i.RegistrationNumber = strings.TrimSpace(form.Get("registration_number"))
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.RegistrationNumber, validation.Required, validation.Length(0, 128)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.greet(rw, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		response.RenderText(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{}
	input.FromForm(r.PostForm)
	if err := input.Validate(); err != nil {
		response.RenderFormError(rw, response.SuccessPage, r.PostForm, err)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		findbyregistrationnumber.Input{RegistrationNumber: user.NewRegistrationNumber(input.RegistrationNumber)},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	data := response.Data{Form: r.PostForm}
	if result.User.IsPresent {
		data.Record = recordFromUser(result.User.Value)
	} else {
		data.LookupFailed = true
	}
	response.Render(rw, response.SuccessPage, data, http.StatusOK)
}

func (h *Handler) greet(rw http.ResponseWriter, r *http.Request) {
	var msg string
	switch r.URL.Query().Get("action") {
	case "login":
		msg = LoggedInMessage
	case "register":
		msg = RegisteredMessage
	default:
		response.Redirect(rw, r, "/", nil)
		return
	}
	response.Render(rw, response.SuccessPage, response.Data{Message: msg}, http.StatusOK)
}

func recordFromUser(u user.User) *response.Record {
	return &response.Record{
		Email:              string(u.Email),
		Mobile:             u.Mobile,
		Address:            u.Address,
		RegistrationNumber: string(u.RegistrationNumber),
	}
}
