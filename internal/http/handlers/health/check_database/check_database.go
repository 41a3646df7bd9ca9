package checkdatabase

import (
	"fmt"
	"net/http"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/services"
	checkdatabase "regportal/internal/core/services/check_database"
	"regportal/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[checkdatabase.Input, checkdatabase.Result]
}

func New(service services.Service[checkdatabase.Input, checkdatabase.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), checkdatabase.Input{})
	if err != nil {
		response.RenderText(
			rw,
			fmt.Sprintf("%s connection failed: %s", result.Database, err),
			http.StatusServiceUnavailable,
		)
		return
	}
	response.RenderText(rw, fmt.Sprintf("%s connection is successful", result.Database), http.StatusOK)
}
