package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	StartDate string `query:"startDate" doc:"Inclusive lower date bound, YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Inclusive upper date bound, YYYY-MM-DD"`
	Type      string `query:"type" doc:"INCOME, EXPENSE, or ALL"`
	Page      int    `query:"page" default:"1" doc:"Page number, clamped to at least 1"`
	Limit     int    `query:"limit" default:"20" doc:"Page size, clamped to 1-100"`
}

// ListTransactionsResponseBody is the response body for listing
// transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Page of transactions"`
	Page         int           `json:"page" doc:"Page number actually used"`
	Limit        int           `json:"limit" doc:"Page size actually used"`
	Total        int64         `json:"total" doc:"Total matching transactions before pagination"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	List(ctx context.Context, userID uuid.UUID, params service.ListParams) (*service.TransactionList, error)
}

// ListTransactionsHandler handles GET /transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/transactions",
		Summary:     "List transactions",
		Description: "Returns a page of the caller's transactions, newest first, with optional date range and category type filters.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	list, err := h.TransactionService.List(ctx, userID, service.ListParams{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Kind:      input.Type,
		Page:      input.Page,
		Limit:     input.Limit,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(list.Transactions))
	}

	return &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: fromServiceList(list.Transactions),
		Page:         list.Page,
		Limit:        list.Limit,
		Total:        list.Total,
	}}, nil
}
