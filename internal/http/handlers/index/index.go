package index

import (
	"net/http"
	"regportal/internal/http/handlers/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, response.IndexPage, response.Data{}, http.StatusOK)
}
