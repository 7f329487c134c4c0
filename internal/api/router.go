package api

import (
	v1 "github.com/billfold/billfold/internal/api/v1"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/rest/middleware"
	"github.com/billfold/billfold/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Client   *v1.ClientHandler
	Contract *v1.ContractHandler
	Invoice  *v1.InvoiceHandler
	Template *v1.TemplateHandler
	Timeline *v1.TimelineHandler
	Currency *v1.CurrencyHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Public share links resolve tokens without any other routing
	// context; they sit outside the versioned API group.
	share := router.Group("/share")
	{
		share.GET("/contract/:token", handlers.Contract.GetSharedContract)
		share.GET("/invoice/:token", handlers.Invoice.GetSharedInvoice)
	}

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	clients := router.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("", handlers.Client.ListClients)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PUT("/:id", handlers.Client.UpdateClient)
		clients.DELETE("/:id", handlers.Client.DeleteClient)
		clients.POST("/:id/payments/:payment_id/paid", handlers.Client.MarkPaymentPaid)
		clients.GET("/:id/timeline", handlers.Client.GetClientTimeline)
	}

	contracts := router.Group("/contracts")
	{
		contracts.POST("", handlers.Contract.GenerateContract)
		contracts.GET("", handlers.Contract.ListContracts)
		contracts.GET("/:id", handlers.Contract.GetContract)
		contracts.PUT("/:id", handlers.Contract.UpdateContract)
		contracts.PUT("/:id/status", handlers.Contract.UpdateContractStatus)
		contracts.DELETE("/:id", handlers.Contract.DeleteContract)
	}

	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	templates := router.Group("/templates")
	{
		templates.POST("", handlers.Template.CreateTemplate)
		templates.GET("", handlers.Template.ListTemplates)
		templates.GET("/default", handlers.Template.GetDefaultTemplate)
		templates.GET("/:id", handlers.Template.GetTemplate)
		templates.PUT("/:id", handlers.Template.UpdateTemplate)
		templates.PUT("/:id/default", handlers.Template.SetDefaultTemplate)
		templates.DELETE("/:id", handlers.Template.DeleteTemplate)
	}

	router.GET("/timeline", handlers.Timeline.GetTimeline)

	currency := router.Group("/currency")
	{
		currency.POST("/convert", handlers.Currency.Convert)
		currency.GET("/rates", handlers.Currency.GetRates)
	}
}
