package invoice

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is a single invoice line. Amount = Quantity * Price.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice represents the invoice domain model. Company fields are a
// snapshot copied from the contract template at generation time, not a
// live reference. ContractID and PaymentPlanItemID back-reference the
// contract plan item the invoice was generated from.
type Invoice struct {
	ID                string              `json:"id"`
	ClientID          string              `json:"client_id"`
	InvoiceNumber     string              `json:"invoice_number"`
	IssueDate         time.Time           `json:"issue_date"`
	DueDate           time.Time           `json:"due_date"`
	Items             []LineItem          `json:"items"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	Discount          decimal.Decimal     `json:"discount"`
	SalesTax          decimal.Decimal     `json:"sales_tax"`
	VAT               decimal.Decimal     `json:"vat"`
	Total             decimal.Decimal     `json:"total"`
	InvoiceStatus     types.InvoiceStatus `json:"invoice_status"`
	PaidDate          *time.Time          `json:"paid_date,omitempty"`
	CompanyName       string              `json:"company_name,omitempty"`
	CompanyAddress    string              `json:"company_address,omitempty"`
	CompanyEmail      string              `json:"company_email,omitempty"`
	CompanyPhone      string              `json:"company_phone,omitempty"`
	CompanyLogo       string              `json:"company_logo,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	PaymentDetails    string              `json:"payment_details,omitempty"`
	ShareToken        string              `json:"share_token"`
	ContractID        *string             `json:"contract_id,omitempty"`
	PaymentPlanItemID *string             `json:"payment_plan_item_id,omitempty"`
	DateFormat        types.DateFormat    `json:"date_format,omitempty"`
	Size              types.ContractSize  `json:"size,omitempty"`
	Currency          string              `json:"currency"`
	QRCode            bool                `json:"qr_code,omitempty"`
	types.BaseModel
}

// ComputeTotals recomputes line item amounts, the subtotal and the
// total from the stored tax and discount snapshots. The invariant is
// total = subtotal - discount + sales_tax + vat.
func (i *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for idx := range i.Items {
		i.Items[idx].Amount = i.Items[idx].Quantity.Mul(i.Items[idx].Price)
		subtotal = subtotal.Add(i.Items[idx].Amount)
	}
	i.Subtotal = subtotal
	i.Total = subtotal.Sub(i.Discount).Add(i.SalesTax).Add(i.VAT)
}

func (i *Invoice) Validate() error {
	if i.ClientID == "" {
		return NewValidationError("client_id", "must not be empty")
	}
	if err := i.InvoiceStatus.Validate(); err != nil {
		return NewValidationError("invoice_status", err.Error())
	}
	if i.Subtotal.IsNegative() {
		return NewValidationError("subtotal", "must be non negative")
	}
	if i.Total.IsNegative() {
		return NewValidationError("total", "must be non negative")
	}
	expected := i.Subtotal.Sub(i.Discount).Add(i.SalesTax).Add(i.VAT)
	if !i.Total.Equal(expected) {
		return NewValidationError("total", "must equal subtotal - discount + sales_tax + vat")
	}
	for _, item := range i.Items {
		if item.Amount.IsNegative() {
			return NewValidationError("items", "amounts must be non negative")
		}
	}
	return nil
}

// IsPaid reports whether the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.InvoiceStatus == types.InvoiceStatusPaid
}
