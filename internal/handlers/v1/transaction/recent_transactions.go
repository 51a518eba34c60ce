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

// RecentTransactionsInput is the Huma input for recent transactions.
type RecentTransactionsInput struct {
	Limit int `query:"limit" default:"5" doc:"Number of transactions, clamped to 1-20"`
}

// RecentTransactionsOutput is the Huma output for recent transactions.
type RecentTransactionsOutput struct {
	Body []Transaction
}

// recentLister is the interface for fetching recent transactions.
type recentLister interface {
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]service.Transaction, error)
}

// RecentTransactionsHandler handles GET /transactions/recent.
type RecentTransactionsHandler struct {
	TransactionService recentLister
}

// NewRecentTransactionsHandler creates a new RecentTransactionsHandler.
func NewRecentTransactionsHandler(svc recentLister) *RecentTransactionsHandler {
	return &RecentTransactionsHandler{TransactionService: svc}
}

// Register registers the recent transactions endpoint with the Huma API.
func (h *RecentTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "recent-transactions",
		Method:      http.MethodGet,
		Path:        "/transactions/recent",
		Summary:     "List recent transactions",
		Description: "Returns the caller's most recent transactions, newest first.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *RecentTransactionsHandler) handle(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	transactions, err := h.TransactionService.Recent(ctx, userID, input.Limit)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &RecentTransactionsOutput{Body: fromServiceList(transactions)}, nil
}
