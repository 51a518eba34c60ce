package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	CategoryID   string  `json:"categoryId" required:"true" doc:"Category UUID"`
	Amount       float64 `json:"amount" required:"true" doc:"Monetary amount, must be positive"`
	CurrencyCode string  `json:"currencyCode" required:"true" doc:"Currency code, stored uppercased"`
	Note         *string `json:"note,omitempty" doc:"Free-form note"`
	Date         string  `json:"date" required:"true" doc:"Transaction date, YYYY-MM-DD"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	Create(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a new transaction for the caller and returns it with its category resolved.",
		Tags:          []string{"Transactions"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid category ID")
	}

	created, err := h.TransactionService.Create(ctx, userID, service.TransactionCreate{
		CategoryID:   categoryID,
		Amount:       input.Body.Amount,
		CurrencyCode: input.Body.CurrencyCode,
		Note:         input.Body.Note,
		Date:         input.Body.Date,
	})
	if err != nil {
		return nil, httperr.From(err)
	}

	return &CreateTransactionOutput{Body: fromService(*created)}, nil
}
