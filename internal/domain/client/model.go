package client

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// Payment is a single scheduled payment generated for a client from a
// payment plan template. It is mutated only by setting PaidDate.
type Payment struct {
	ID                string            `json:"id"`
	ClientID          string            `json:"client_id"`
	Amount            decimal.Decimal   `json:"amount"`
	DueDate           time.Time         `json:"due_date"`
	PaidDate          *time.Time        `json:"paid_date,omitempty"`
	Type              types.PaymentType `json:"type"`
	InstallmentNumber int               `json:"installment_number,omitempty"`
}

// IsPaid reports whether the payment has been settled.
func (p *Payment) IsPaid() bool {
	return p.PaidDate != nil
}

// Client represents the client domain model. AmountPaid, AmountDue and
// ClientStatus are projections of Payments and AgreedPrice; they are
// recomputed on every mutation and never written directly.
type Client struct {
	ID            string                       `json:"id"`
	Name          string                       `json:"name"`
	AgreedPrice   decimal.Decimal              `json:"agreed_price"`
	AmountPaid    decimal.Decimal              `json:"amount_paid"`
	AmountDue     decimal.Decimal              `json:"amount_due"`
	ClientStatus  types.ClientStatus           `json:"client_status"`
	PaymentPlanID *types.PaymentPlanTemplateID `json:"payment_plan_id,omitempty"`
	Payments      []*Payment                   `json:"payments"`
	Currency      string                       `json:"currency,omitempty"`
	types.BaseModel
}

func (c *Client) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if c.AgreedPrice.IsNegative() {
		return NewValidationError("agreed_price", "must be non negative")
	}
	if c.PaymentPlanID != nil {
		if err := c.PaymentPlanID.Validate(); err != nil {
			return NewValidationError("payment_plan_id", err.Error())
		}
	}
	for _, p := range c.Payments {
		if p.Amount.IsNegative() {
			return NewValidationError("payments", "amounts must be non negative")
		}
	}
	return nil
}

// TotalPaid sums the settled payments.
func (c *Client) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Payments {
		if p.IsPaid() {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// GetPayment returns the payment with the given id, if present.
func (c *Client) GetPayment(paymentID string) (*Payment, bool) {
	for _, p := range c.Payments {
		if p.ID == paymentID {
			return p, true
		}
	}
	return nil, false
}
