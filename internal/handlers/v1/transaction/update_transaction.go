package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// NullableNote distinguishes an absent note field from an explicit null:
// absent leaves the stored note untouched, null clears it.
type NullableNote struct {
	Sent  bool
	Null  bool
	Value string
}

func (n *NullableNote) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	n.Sent = true
	if bytes.Equal(b, []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

func (n NullableNote) Schema(r huma.Registry) *huma.Schema {
	s := r.Schema(reflect.TypeOf(n.Value), true, "")
	s.Extensions = map[string]any{"nullable": true}
	return s
}

// UpdateTransactionBody is the request body for updating a transaction.
// Absent fields are left unchanged.
type UpdateTransactionBody struct {
	CategoryID   *string      `json:"categoryId,omitempty" doc:"Category UUID"`
	Amount       *float64     `json:"amount,omitempty" doc:"Monetary amount, must be positive"`
	CurrencyCode *string      `json:"currencyCode,omitempty" doc:"Currency code, stored uppercased"`
	Note         NullableNote `json:"note,omitempty" doc:"Free-form note, null clears it"`
	Date         *string      `json:"date,omitempty" doc:"Transaction date, YYYY-MM-DD"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	Update(ctx context.Context, id, userID uuid.UUID, update service.TransactionUpdate) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Applies a partial update to a transaction the caller owns.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid transaction ID")
	}

	update := service.TransactionUpdate{
		Amount:       input.Body.Amount,
		CurrencyCode: input.Body.CurrencyCode,
		Date:         input.Body.Date,
	}
	if input.Body.CategoryID != nil {
		categoryID, err := uuid.FromString(*input.Body.CategoryID)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid category ID")
		}
		update.CategoryID = &categoryID
	}
	if input.Body.Note.Sent {
		if input.Body.Note.Null {
			update.Note = omitnull.FromPtr[string](nil)
		} else {
			update.Note = omitnull.From(input.Body.Note.Value)
		}
	}

	updated, err := h.TransactionService.Update(ctx, id, userID, update)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &UpdateTransactionOutput{Body: fromService(*updated)}, nil
}
