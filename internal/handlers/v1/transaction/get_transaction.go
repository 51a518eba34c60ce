package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// GetTransactionInput is the Huma input for fetching a transaction.
type GetTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// GetTransactionOutput is the Huma output for fetching a transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for fetching a transaction by id.
type transactionGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/transactions/{id}",
		Summary:     "Get transaction",
		Description: "Returns a single transaction by id.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid transaction ID")
	}

	found, err := h.TransactionService.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &GetTransactionOutput{Body: fromService(*found)}, nil
}
