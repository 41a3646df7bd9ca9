package response

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
)

const InternalErrorMessage = "Something went wrong. Please try again later."

type Page string

const (
	IndexPage          Page = "index.html"
	LoginPage          Page = "login.html"
	RegisterPage       Page = "register.html"
	SuccessPage        Page = "success.html"
	ForgotPasswordPage Page = "forgot_password.html"
	ResetPasswordPage  Page = "reset_password.html"
	ErrorPage          Page = "error.html"
)

func init() {
	// Field errors are keyed by form field name.
	validation.ErrorTag = "form"
}

//go:embed templates/*.html
var templateFS embed.FS

var pages = parsePages(
	IndexPage,
	LoginPage,
	RegisterPage,
	SuccessPage,
	ForgotPasswordPage,
	ResetPasswordPage,
	ErrorPage,
)

func parsePages(names ...Page) map[Page]*template.Template {
	parsed := make(map[Page]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(
			template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(name)),
		)
	}
	return parsed
}

// Record is a registration as shown by the lookup form.
type Record struct {
	Email              string
	Mobile             string
	Address            string
	RegistrationNumber string
}

// Data is passed to every page template. Form holds the submitted values so
// a rejected form keeps what the user typed.
type Data struct {
	Message      string
	Error        string
	FieldErrors  map[string]string
	Form         url.Values
	Token        string
	ShowForm     bool
	Record       *Record
	LookupFailed bool
}

func (d Data) Value(field string) string {
	return d.Form.Get(field)
}

func (d Data) FieldError(field string) string {
	return d.FieldErrors[field]
}

func Render(rw http.ResponseWriter, page Page, data Data, status int) {
	tmpl, ok := pages[page]
	if !ok {
		RenderText(rw, InternalErrorMessage, http.StatusInternalServerError)
		return
	}

	var content bytes.Buffer
	if err := tmpl.ExecuteTemplate(&content, "layout", data); err != nil {
		RenderText(rw, InternalErrorMessage, http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write(content.Bytes())
}

func RenderFormError(rw http.ResponseWriter, page Page, form url.Values, err error) {
	Render(rw, page, Data{FieldErrors: FieldErrors(err), Form: form, ShowForm: true}, http.StatusBadRequest)
}

func RenderInternalError(rw http.ResponseWriter) {
	Render(rw, ErrorPage, Data{Error: InternalErrorMessage}, http.StatusInternalServerError)
}

func RenderText(rw http.ResponseWriter, msg string, status int) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(status)
	fmt.Fprint(rw, msg)
}

func Redirect(rw http.ResponseWriter, r *http.Request, path string, query url.Values) {
	location := path
	if len(query) > 0 {
		location += "?" + query.Encode()
	}
	http.Redirect(rw, r, location, http.StatusFound)
}

// FieldErrors flattens ozzo validation errors into messages keyed by form
// field name.
func FieldErrors(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return map[string]string{}
	}
	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return fields
}
