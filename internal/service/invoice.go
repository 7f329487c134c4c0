package service

import (
	"context"
	"fmt"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/template"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceService owns invoice numbering, creation and status
// transitions, and hosts the contract-to-invoice generation bridge.
// All invoice creation funnels through CreateInvoice so numbering and
// id assignment stay in one place.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	GetInvoiceByShareToken(ctx context.Context, token string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	UpdateInvoiceStatus(ctx context.Context, id string, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	GenerateFromContract(ctx context.Context, con *contract.Contract, cl *client.Client, tmpl *template.ContractTemplate) ([]*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	seq, err := s.InvoiceRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	issueDate := time.Now().UTC()
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}

	currency := req.Currency
	if currency == "" {
		currency = s.Config.Billing.DefaultCurrency
	}

	inv := &invoice.Invoice{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:          req.ClientID,
		InvoiceNumber:     types.FormatInvoiceNumber(seq),
		IssueDate:         issueDate,
		DueDate:           req.DueDate,
		InvoiceStatus:     types.InvoiceStatusDraft,
		Discount:          req.Discount,
		Currency:          currency,
		DateFormat:        req.DateFormat,
		Size:              req.Size,
		Notes:             req.Notes,
		PaymentDetails:    req.PaymentDetails,
		QRCode:            req.QRCode,
		CompanyName:       req.CompanyName,
		CompanyAddress:    req.CompanyAddress,
		CompanyEmail:      req.CompanyEmail,
		CompanyPhone:      req.CompanyPhone,
		CompanyLogo:       req.CompanyLogo,
		ShareToken:        types.GenerateShareToken(),
		ContractID:        req.ContractID,
		PaymentPlanItemID: req.PaymentPlanItemID,
		BaseModel:         types.GetDefaultBaseModel(),
	}

	inv.Items = make([]invoice.LineItem, len(req.Items))
	subtotal := decimal.Zero
	for i, item := range req.Items {
		amount := item.Quantity.Mul(item.Price)
		inv.Items[i] = invoice.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Amount:      amount,
		}
		subtotal = subtotal.Add(amount)
	}

	taxable := subtotal.Sub(inv.Discount)
	inv.SalesTax = taxable.Mul(req.SalesTaxPercent).Div(decimal.NewFromInt(100)).Round(2)
	inv.VAT = taxable.Mul(req.VATPercent).Div(decimal.NewFromInt(100)).Round(2)
	inv.ComputeTotals()

	if err := inv.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid invoice data").
			Mark(ierr.ErrValidation)
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"client_id", inv.ClientID,
		"total", inv.Total)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoiceByShareToken(ctx context.Context, token string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("No invoice matches this link").
			Mark(ierr.ErrNotFound)
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = &dto.InvoiceResponse{Invoice: inv}
	}
	return &dto.ListInvoicesResponse{Items: items, Total: len(items)}, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	return s.InvoiceRepo.Delete(ctx, id)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	target := types.InvoiceStatus(req.Status)
	if err := target.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Unknown invoice status %s", req.Status).
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.InvoiceStatus.CanTransitionTo(target) {
		return nil, ierr.NewError("invalid invoice status transition").
			WithHintf("Cannot move invoice from %s to %s", inv.InvoiceStatus, target).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.InvoiceStatus = target
	if target == types.InvoiceStatusPaid {
		when := time.Now().UTC()
		if req.PaidDate != nil {
			when = req.PaidDate.UTC()
		}
		inv.PaidDate = &when
	}
	inv.UpdatedAt = time.Now().UTC()

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// GenerateFromContract produces one invoice per payment plan item with
// a positive amount. The contract's plan is expected to have been
// recalculated against the current project cost by the caller. Items
// with non-positive amounts are silently skipped; no placeholder
// invoice is ever created.
func (s *invoiceService) GenerateFromContract(ctx context.Context, con *contract.Contract, cl *client.Client, tmpl *template.ContractTemplate) ([]*invoice.Invoice, error) {
	if con.PaymentPlan == nil || !con.PaymentPlan.HasItems() {
		return nil, nil
	}

	plan := con.PaymentPlan
	var specs []planItemSpec

	switch plan.Structure {
	case types.PaymentStructureInstallments:
		n := len(plan.Installments)
		if n == 0 {
			return nil, nil
		}
		step := con.Duration() / time.Duration(n)
		for i, item := range plan.Installments {
			due := con.StartDate.Add(step * time.Duration(i+1))
			if item.DueDate != nil {
				due = *item.DueDate
			}
			desc := item.Description
			if desc == "" {
				desc = fmt.Sprintf("Installment %d", i+1)
			}
			specs = append(specs, planItemSpec{
				itemID:      item.ID,
				amount:      item.Amount,
				dueDate:     types.BeginningOfDay(due),
				description: desc,
			})
		}
	case types.PaymentStructureMilestones:
		for _, item := range plan.Milestones {
			due := con.StartDate
			if item.DueDate != nil {
				due = *item.DueDate
			}
			desc := item.Description
			if desc == "" {
				desc = item.Name
			}
			specs = append(specs, planItemSpec{
				itemID:      item.ID,
				amount:      item.Amount,
				dueDate:     types.BeginningOfDay(due),
				description: desc,
			})
		}
	case types.PaymentStructureCustom:
		for _, item := range plan.CustomPayments {
			due := con.StartDate
			if item.DueDate != nil {
				due = *item.DueDate
			}
			specs = append(specs, planItemSpec{
				itemID:      item.ID,
				amount:      item.Amount,
				dueDate:     types.BeginningOfDay(due),
				description: item.Description,
			})
		}
	default:
		return nil, nil
	}

	var salesTaxPercent, vatPercent decimal.Decimal
	if con.Settings.Tax.Enabled {
		switch con.Settings.Tax.Type {
		case types.TaxTypeSalesTax:
			salesTaxPercent = con.Settings.Tax.Percent
		case types.TaxTypeVAT:
			vatPercent = con.Settings.Tax.Percent
		}
	}

	var generated []*invoice.Invoice
	for _, spec := range specs {
		if !spec.amount.IsPositive() {
			continue
		}

		itemID := spec.itemID
		req := dto.CreateInvoiceRequest{
			ClientID: con.ClientID,
			DueDate:  spec.dueDate,
			Items: []dto.InvoiceLineItemRequest{
				{
					Description: spec.description,
					Quantity:    decimal.NewFromInt(1),
					Price:       spec.amount,
				},
			},
			SalesTaxPercent:   salesTaxPercent,
			VATPercent:        vatPercent,
			Currency:          con.Settings.Currency,
			DateFormat:        con.Settings.DateFormat,
			Size:              con.Settings.ContractSize,
			CompanyName:       tmpl.CompanyName,
			CompanyAddress:    tmpl.CompanyAddress,
			CompanyEmail:      tmpl.CompanyEmail,
			CompanyPhone:      tmpl.CompanyPhone,
			CompanyLogo:       tmpl.LogoURL,
			ContractID:        &con.ID,
			PaymentPlanItemID: &itemID,
		}

		resp, err := s.CreateInvoice(ctx, req)
		if err != nil {
			return nil, err
		}
		generated = append(generated, resp.Invoice)
	}

	return generated, nil
}

type planItemSpec struct {
	itemID      string
	amount      decimal.Decimal
	dueDate     time.Time
	description string
}
