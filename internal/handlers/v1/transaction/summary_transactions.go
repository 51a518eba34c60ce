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

// SummaryInput is the Huma input for the period summary.
type SummaryInput struct {
	StartDate string `query:"startDate" doc:"Inclusive period start, YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Inclusive period end, YYYY-MM-DD"`
}

// CurrencySummary is the income/expense/balance triple for one currency.
type CurrencySummary struct {
	Currency string  `json:"currency" doc:"Currency code as stored"`
	Income   float64 `json:"income" doc:"Sum of income amounts"`
	Expense  float64 `json:"expense" doc:"Sum of expense amounts"`
	Balance  float64 `json:"balance" doc:"Income minus expense"`
}

// SummaryResponseBody is the response body for the period summary.
type SummaryResponseBody struct {
	Summaries []CurrencySummary `json:"summaries" doc:"One entry per currency seen in the period"`
}

// SummaryOutput is the Huma output for the period summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// transactionSummarizer is the interface for period summaries.
type transactionSummarizer interface {
	Summary(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]service.CurrencySummary, error)
}

// SummaryHandler handles GET /transactions/summary.
type SummaryHandler struct {
	TransactionService transactionSummarizer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc transactionSummarizer) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc}
}

// Register registers the summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/transactions/summary",
		Summary:     "Summarize transactions by currency",
		Description: "Returns per-currency income, expense, and balance over a date range.",
		Tags:        []string{"Transactions"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}
	if input.StartDate == "" {
		return nil, huma.Error400BadRequest("startDate is required")
	}
	if input.EndDate == "" {
		return nil, huma.Error400BadRequest("endDate is required")
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summaryMs")
	}
	summaries, err := h.TransactionService.Summary(ctx, userID, input.StartDate, input.EndDate)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err)
	}

	converted := make([]CurrencySummary, len(summaries))
	for i, s := range summaries {
		converted[i] = CurrencySummary{
			Currency: s.Currency,
			Income:   s.Income,
			Expense:  s.Expense,
			Balance:  s.Balance,
		}
	}

	return &SummaryOutput{Body: SummaryResponseBody{Summaries: converted}}, nil
}
