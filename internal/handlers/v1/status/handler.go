package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type StatusOutput struct {
	Body StatusBody
}

type StatusBody struct {
	Status string `json:"status" doc:"Always ok while the process is serving"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Liveness check",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusBody{Status: "ok"}}, nil
}
