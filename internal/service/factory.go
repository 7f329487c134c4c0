package service

import (
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/template"
	"github.com/billfold/billfold/internal/httpclient"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/repository/memory"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	ClientRepo   client.Repository
	ContractRepo contract.Repository
	InvoiceRepo  invoice.Repository
	TemplateRepo template.Repository

	// http client
	Client httpclient.Client
}

// NewServiceParams builds the common service dependencies from the
// repository registry.
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	registry *memory.Registry,
	client httpclient.Client,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		ClientRepo:   registry.Clients,
		ContractRepo: registry.Contracts,
		InvoiceRepo:  registry.Invoices,
		TemplateRepo: registry.Templates,
		Client:       client,
	}
}
