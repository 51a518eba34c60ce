package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// DeleteTransactionInput is the Huma input for deleting a transaction.
type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct{}

// transactionDeleter is the interface for deleting transactions.
type transactionDeleter interface {
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/transactions/{id}",
		Summary:       "Delete transaction",
		Description:   "Permanently deletes a transaction the caller owns.",
		Tags:          []string{"Transactions"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid transaction ID")
	}

	if err := h.TransactionService.Delete(ctx, id, userID); err != nil {
		return nil, httperr.From(err)
	}

	return &DeleteTransactionOutput{}, nil
}
