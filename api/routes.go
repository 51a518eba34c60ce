package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/auth"
	authhandlers "github.com/carson-networks/finance-server/internal/handlers/v1/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/category"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Tokens  *auth.Manager
}

// NewAPI builds the huma API with middleware and all endpoints
// registered on the given mux.
func NewAPI(mux *http.ServeMux, logger *logrus.Logger, svc *service.Service, tokens *auth.Manager) huma.API {
	config := huma.DefaultConfig("finance-server", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(logger))
	api.UseMiddleware(auth.Middleware(api, tokens))

	registerHandlers(api, svc)
	return api
}

func registerHandlers(api huma.API, svc *service.Service) {
	status.NewHandler().Register(api)

	authhandlers.NewRegisterHandler(svc.Auth).Register(api)
	authhandlers.NewLoginHandler(svc.Auth).Register(api)
	authhandlers.NewRefreshHandler(svc.Auth).Register(api)

	category.NewListCategoriesHandler(svc.Category).Register(api)
	category.NewCreateCategoryHandler(svc.Category).Register(api)
	category.NewUpdateCategoryHandler(svc.Category).Register(api)
	category.NewDeleteCategoryHandler(svc.Category).Register(api)

	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)
	transaction.NewSummaryHandler(svc.Transaction).Register(api)
	transaction.NewRecentTransactionsHandler(svc.Transaction).Register(api)
	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewGetTransactionHandler(svc.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(svc.Transaction).Register(api)
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	NewAPI(mux, r.Logger, r.Service, r.Tokens)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
