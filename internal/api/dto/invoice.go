package dto

import (
	"time"

	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
	"github.com/shopspring/decimal"
)

type InvoiceLineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Price       decimal.Decimal `json:"price"`
}

type CreateInvoiceRequest struct {
	ClientID          string                   `json:"client_id" validate:"required"`
	IssueDate         *time.Time               `json:"issue_date,omitempty"`
	DueDate           time.Time                `json:"due_date" validate:"required"`
	Items             []InvoiceLineItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount          decimal.Decimal          `json:"discount"`
	SalesTaxPercent   decimal.Decimal          `json:"sales_tax_percent"`
	VATPercent        decimal.Decimal          `json:"vat_percent"`
	Currency          string                   `json:"currency,omitempty"`
	DateFormat        types.DateFormat         `json:"date_format,omitempty"`
	Size              types.ContractSize       `json:"size,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	PaymentDetails    string                   `json:"payment_details,omitempty"`
	QRCode            bool                     `json:"qr_code,omitempty"`
	CompanyName       string                   `json:"company_name,omitempty"`
	CompanyAddress    string                   `json:"company_address,omitempty"`
	CompanyEmail      string                   `json:"company_email,omitempty"`
	CompanyPhone      string                   `json:"company_phone,omitempty"`
	CompanyLogo       string                   `json:"company_logo,omitempty"`
	ContractID        *string                  `json:"contract_id,omitempty"`
	PaymentPlanItemID *string                  `json:"payment_plan_item_id,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateInvoiceStatusRequest struct {
	Status   string     `json:"status" validate:"required"`
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}
