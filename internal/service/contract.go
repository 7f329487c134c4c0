package service

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/contract"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
)

// ContractService orchestrates contract generation and editing. It owns
// the CNT-{year}-{seq} numbering, the discount/tax snapshots, and the
// plan-driven invoice lifecycle: whenever the stored payment plan
// changes, all invoices generated from it are deleted and regenerated.
type ContractService interface {
	GenerateContract(ctx context.Context, req dto.GenerateContractRequest) (*dto.ContractResponse, error)
	GetContract(ctx context.Context, id string) (*dto.ContractResponse, error)
	GetContractByShareToken(ctx context.Context, token string) (*dto.ContractResponse, error)
	ListContracts(ctx context.Context) (*dto.ListContractsResponse, error)
	ListContractsByClient(ctx context.Context, clientID string) (*dto.ListContractsResponse, error)
	UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error)
	UpdateContractStatus(ctx context.Context, id string, req dto.UpdateContractStatusRequest) (*dto.ContractResponse, error)
	DeleteContract(ctx context.Context, id string) error
}

type contractService struct {
	ServiceParams
	billing  BillingService
	invoices InvoiceService
}

func NewContractService(params ServiceParams) ContractService {
	return &contractService{
		ServiceParams: params,
		billing:       NewBillingService(params),
		invoices:      NewInvoiceService(params),
	}
}

func (s *contractService) GenerateContract(ctx context.Context, req dto.GenerateContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cl, err := s.ClientRepo.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	settings := s.defaultSettings(cl.Currency)
	if req.Settings != nil {
		settings = *req.Settings
	}
	if settings.Currency == "" {
		settings.Currency = cl.Currency
	}
	if settings.DateFormat == "" {
		settings.DateFormat = types.DefaultDateFormat
	}
	if settings.ContractSize == "" {
		settings.ContractSize = types.ContractSizeA4
	}
	if settings.PaymentStructure == "" {
		settings.PaymentStructure = types.PaymentStructureSimple
	}

	plan := req.PaymentPlan
	if plan != nil {
		plan = s.billing.RecalculatePaymentPlan(req.ProjectCost, plan)
		settings.PaymentStructure = plan.Structure
	}

	now := time.Now().UTC()
	seq, err := s.ContractRepo.NextSequence(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	totals := s.billing.CalculateContractTotals(req.ProjectCost, &settings)

	con := &contract.Contract{
		ID:                     types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONTRACT),
		ClientID:               cl.ID,
		TemplateID:             req.TemplateID,
		ContractNumber:         types.FormatContractNumber(now.Year(), seq),
		IssueDate:              now,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		Terms:                  req.Terms,
		ProjectCost:            req.ProjectCost,
		PaymentMethod:          req.PaymentMethod,
		ProjectDuration:        req.ProjectDuration,
		MaintenanceCost:        req.MaintenanceCost,
		ClientAddress:          req.ClientAddress,
		ClientEmail:            req.ClientEmail,
		ClientPhone:            req.ClientPhone,
		CompanyRepresentatives: req.CompanyRepresentatives,
		ContractStatus:         types.ContractStatusCreated,
		ShareToken:             types.GenerateShareToken(),
		Settings:               settings,
		Currency:               settings.Currency,
		PaymentPlan:            plan,
		DiscountAmount:         totals.Discount,
		TaxAmount:              totals.Tax,
		BaseModel:              types.GetDefaultBaseModel(),
	}

	if con.Terms == "" && req.TemplateID != "" {
		if tmpl, err := s.TemplateRepo.Get(ctx, req.TemplateID); err == nil {
			con.Terms = tmpl.Terms
		}
	}

	if err := con.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid contract data").
			Mark(ierr.ErrValidation)
	}

	if err := s.ContractRepo.Create(ctx, con); err != nil {
		return nil, err
	}

	s.generateInvoices(ctx, con)

	if err := s.ContractRepo.Update(ctx, con); err != nil {
		return nil, err
	}

	s.Logger.Infow("generated contract",
		"contract_id", con.ID,
		"contract_number", con.ContractNumber,
		"client_id", con.ClientID,
		"invoices", len(con.InvoiceIDs))

	return &dto.ContractResponse{Contract: con}, nil
}

func (s *contractService) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	con, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ContractResponse{Contract: con}, nil
}

func (s *contractService) GetContractByShareToken(ctx context.Context, token string) (*dto.ContractResponse, error) {
	con, err := s.ContractRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("No contract matches this link").
			Mark(ierr.ErrNotFound)
	}
	return &dto.ContractResponse{Contract: con}, nil
}

func (s *contractService) ListContracts(ctx context.Context) (*dto.ListContractsResponse, error) {
	contracts, err := s.ContractRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toContractList(contracts), nil
}

func (s *contractService) ListContractsByClient(ctx context.Context, clientID string) (*dto.ListContractsResponse, error) {
	contracts, err := s.ContractRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toContractList(contracts), nil
}

func (s *contractService) UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	con, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		con.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		con.EndDate = *req.EndDate
	}
	if req.Terms != nil {
		con.Terms = *req.Terms
	}
	if req.ProjectCost != nil {
		con.ProjectCost = *req.ProjectCost
	}
	if req.PaymentMethod != nil {
		con.PaymentMethod = *req.PaymentMethod
	}
	if req.ProjectDuration != nil {
		con.ProjectDuration = *req.ProjectDuration
	}
	if req.MaintenanceCost != nil {
		con.MaintenanceCost = *req.MaintenanceCost
	}
	if req.ClientAddress != nil {
		con.ClientAddress = *req.ClientAddress
	}
	if req.ClientEmail != nil {
		con.ClientEmail = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		con.ClientPhone = *req.ClientPhone
	}
	if req.CompanyRepresentatives != nil {
		con.CompanyRepresentatives = req.CompanyRepresentatives
	}
	if req.Settings != nil {
		con.Settings = *req.Settings
		con.Currency = con.Settings.Currency
	}

	planChanged := false
	if req.PaymentPlan != nil {
		next := s.billing.RecalculatePaymentPlan(con.ProjectCost, req.PaymentPlan)
		planChanged = !next.Equal(con.PaymentPlan)
		con.PaymentPlan = next
		con.Settings.PaymentStructure = next.Structure
	} else if req.ProjectCost != nil && con.PaymentPlan.HasItems() {
		// Cost edits reprice percentage-based items in place without
		// counting as a plan change on their own.
		recalced := s.billing.RecalculatePaymentPlan(con.ProjectCost, con.PaymentPlan)
		planChanged = !recalced.Equal(con.PaymentPlan)
		con.PaymentPlan = recalced
	}

	totals := s.billing.CalculateContractTotals(con.ProjectCost, &con.Settings)
	con.DiscountAmount = totals.Discount
	con.TaxAmount = totals.Tax
	con.UpdatedAt = time.Now().UTC()

	if err := con.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid contract data").
			Mark(ierr.ErrValidation)
	}

	if planChanged {
		s.deleteGeneratedInvoices(ctx, con)
		s.generateInvoices(ctx, con)
	}

	if err := s.ContractRepo.Update(ctx, con); err != nil {
		return nil, err
	}

	return &dto.ContractResponse{Contract: con}, nil
}

func (s *contractService) UpdateContractStatus(ctx context.Context, id string, req dto.UpdateContractStatusRequest) (*dto.ContractResponse, error) {
	status := types.ContractStatus(req.Status).Normalize()
	if err := status.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Unknown contract status %s", req.Status).
			Mark(ierr.ErrValidation)
	}

	con, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	con.ContractStatus = status
	con.UpdatedAt = time.Now().UTC()

	if err := s.ContractRepo.Update(ctx, con); err != nil {
		return nil, err
	}
	return &dto.ContractResponse{Contract: con}, nil
}

func (s *contractService) DeleteContract(ctx context.Context, id string) error {
	con, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	s.deleteGeneratedInvoices(ctx, con)
	return s.ContractRepo.Delete(ctx, id)
}

// generateInvoices runs the invoice bridge for the contract's current
// plan and records the generated ids. Missing preconditions (no default
// template, no items, percentage plan without a project cost) skip
// generation without failing the contract write.
func (s *contractService) generateInvoices(ctx context.Context, con *contract.Contract) {
	con.InvoiceIDs = nil

	if con.PaymentPlan == nil || !con.PaymentPlan.HasItems() {
		return
	}
	if con.PaymentPlan.Structure.IsPercentageBased() && !con.ProjectCost.IsPositive() {
		s.Logger.Warnw("skipping invoice generation, percentage plan without project cost",
			"contract_id", con.ID)
		return
	}

	tmpl, err := s.TemplateRepo.GetDefault(ctx)
	if err != nil {
		s.Logger.Warnw("skipping invoice generation, no default contract template",
			"contract_id", con.ID,
			"error", err)
		return
	}

	cl, err := s.ClientRepo.Get(ctx, con.ClientID)
	if err != nil {
		s.Logger.Warnw("skipping invoice generation, client lookup failed",
			"contract_id", con.ID,
			"client_id", con.ClientID,
			"error", err)
		return
	}

	generated, err := s.invoices.GenerateFromContract(ctx, con, cl, tmpl)
	if err != nil {
		s.Logger.Errorw("invoice generation failed",
			"contract_id", con.ID,
			"error", err)
		return
	}

	con.InvoiceIDs = make([]string, len(generated))
	for i, inv := range generated {
		con.InvoiceIDs[i] = inv.ID
	}
}

// deleteGeneratedInvoices removes every invoice the contract previously
// generated. Missing invoices are tolerated.
func (s *contractService) deleteGeneratedInvoices(ctx context.Context, con *contract.Contract) {
	for _, id := range con.InvoiceIDs {
		if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
			if !ierr.IsNotFound(err) {
				s.Logger.Warnw("failed to delete generated invoice",
					"contract_id", con.ID,
					"invoice_id", id,
					"error", err)
			}
		}
	}
	con.InvoiceIDs = nil
}

func (s *contractService) defaultSettings(currency string) contract.Settings {
	if currency == "" {
		currency = s.Config.Billing.DefaultCurrency
	}
	return contract.Settings{
		Currency:         currency,
		DateFormat:       types.DefaultDateFormat,
		ContractSize:     types.ContractSizeA4,
		PaymentStructure: types.PaymentStructureSimple,
	}
}

func toContractList(contracts []*contract.Contract) *dto.ListContractsResponse {
	items := lo.Map(contracts, func(c *contract.Contract, _ int) *dto.ContractResponse {
		return &dto.ContractResponse{Contract: c}
	})
	return &dto.ListContractsResponse{Items: items, Total: len(items)}
}
