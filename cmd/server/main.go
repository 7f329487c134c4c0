package main

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/api"
	v1 "github.com/billfold/billfold/internal/api/v1"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/httpclient"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/repository/memory"
	"github.com/billfold/billfold/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Billfold API
// @version 1.0
// @description Client billing and contract API
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Storage
			memory.NewRegistry,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Services
			service.NewServiceParams,
			service.NewBillingService,
			service.NewClientService,
			service.NewContractService,
			service.NewInvoiceService,
			service.NewTimelineService,
			service.NewCurrencyService,
			service.NewTemplateService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	clientService service.ClientService,
	contractService service.ContractService,
	invoiceService service.InvoiceService,
	templateService service.TemplateService,
	timelineService service.TimelineService,
	currencyService service.CurrencyService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Client:   v1.NewClientHandler(clientService, timelineService, logger),
		Contract: v1.NewContractHandler(contractService, logger),
		Invoice:  v1.NewInvoiceHandler(invoiceService, logger),
		Template: v1.NewTemplateHandler(templateService, logger),
		Timeline: v1.NewTimelineHandler(timelineService, logger),
		Currency: v1.NewCurrencyHandler(currencyService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
