package contract

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// DiscountSettings configures the contract-level discount. The discount
// is applied to the subtotal before tax.
type DiscountSettings struct {
	Enabled bool               `json:"enabled"`
	Type    types.DiscountType `json:"type,omitempty"`
	Value   decimal.Decimal    `json:"value"`
}

// TaxSettings configures the contract-level tax, computed on the
// post-discount amount.
type TaxSettings struct {
	Enabled bool            `json:"enabled"`
	Type    types.TaxType   `json:"type,omitempty"`
	Percent decimal.Decimal `json:"percent"`
}

// Settings carries the document-level options of a contract.
type Settings struct {
	Currency         string                 `json:"currency"`
	DateFormat       types.DateFormat       `json:"date_format"`
	ContractSize     types.ContractSize     `json:"contract_size"`
	PaymentStructure types.PaymentStructure `json:"payment_structure"`
	Discount         DiscountSettings       `json:"discount"`
	Tax              TaxSettings            `json:"tax"`
}

func (s Settings) Validate() error {
	if s.Currency == "" {
		return NewValidationError("settings.currency", "must not be empty")
	}
	if err := s.PaymentStructure.Validate(); err != nil {
		return err
	}
	if s.Discount.Enabled {
		if err := s.Discount.Type.Validate(); err != nil {
			return err
		}
	}
	if s.Tax.Enabled {
		if err := s.Tax.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Contract represents a generated contract document and its billing
// state. DiscountAmount and TaxAmount are snapshots computed from
// ProjectCost and Settings at generation/update time. InvoiceIDs is a
// pure projection of the current payment plan: every plan edit deletes
// and regenerates the referenced invoices.
type Contract struct {
	ID                     string               `json:"id"`
	ClientID               string               `json:"client_id"`
	TemplateID             string               `json:"template_id,omitempty"`
	ContractNumber         string               `json:"contract_number"`
	IssueDate              time.Time            `json:"issue_date"`
	StartDate              time.Time            `json:"start_date"`
	EndDate                time.Time            `json:"end_date"`
	Terms                  string               `json:"terms,omitempty"`
	ProjectCost            decimal.Decimal      `json:"project_cost"`
	PaymentMethod          string               `json:"payment_method,omitempty"`
	ProjectDuration        string               `json:"project_duration,omitempty"`
	MaintenanceCost        decimal.Decimal      `json:"maintenance_cost"`
	ClientAddress          string               `json:"client_address,omitempty"`
	ClientEmail            string               `json:"client_email,omitempty"`
	ClientPhone            string               `json:"client_phone,omitempty"`
	CompanyRepresentatives []string             `json:"company_representatives,omitempty"`
	ContractStatus         types.ContractStatus `json:"contract_status"`
	ShareToken             string               `json:"share_token"`
	Settings               Settings             `json:"settings"`
	Currency               string               `json:"currency"`
	PaymentPlan            *PaymentPlan         `json:"payment_plan,omitempty"`
	DiscountAmount         decimal.Decimal      `json:"discount_amount"`
	TaxAmount              decimal.Decimal      `json:"tax_amount"`
	InvoiceIDs             []string             `json:"invoice_ids,omitempty"`
	types.BaseModel
}

func (c *Contract) Validate() error {
	if c.ClientID == "" {
		return NewValidationError("client_id", "must not be empty")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return NewValidationError("start_date", "start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return NewValidationError("end_date", "must be after start_date")
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if err := c.ContractStatus.Validate(); err != nil {
		return NewValidationError("contract_status", err.Error())
	}
	if c.PaymentPlan != nil {
		if err := c.PaymentPlan.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Duration is the project span used to spread installment due dates.
func (c *Contract) Duration() time.Duration {
	return c.EndDate.Sub(c.StartDate)
}
