package main

import (
	"context"
	"sync"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	seed := &actions.SeedCategories{}
	if err := delegator.Process(context.Background(), seed); err != nil {
		logger.WithError(err).Fatal("seeding default categories")
		return
	}
	logger.WithField("inserted", seed.Inserted).Info("default categories ready")

	tokens := auth.NewManager(envConfig)
	svc := service.NewService(dbStorage, delegator, tokens)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Tokens:  tokens,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
