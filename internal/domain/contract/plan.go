package contract

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// Installment is a percentage-based payment plan item. Amount is a
// cached projection of projectCost * percentage/100; the percentage is
// the source of truth.
type Installment struct {
	ID          string          `json:"id"`
	Percentage  decimal.Decimal `json:"percentage"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Milestone is a named percentage-based payment plan item tied to a
// deliverable.
type Milestone struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Description string          `json:"description,omitempty"`
}

// CustomPayment is a fixed-amount payment plan item. Its amount is
// authoritative, never derived.
type CustomPayment struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Description string          `json:"description"`
}

// PaymentPlan is a tagged union: the Structure tag determines which of
// the item collections is populated. A `simple` plan has no stored
// items; its 30/70 split is derived live from the project cost.
type PaymentPlan struct {
	Structure      types.PaymentStructure `json:"structure"`
	Installments   []*Installment         `json:"installments,omitempty"`
	Milestones     []*Milestone           `json:"milestones,omitempty"`
	CustomPayments []*CustomPayment       `json:"custom_payments,omitempty"`
}

// Validate checks the shape of the union: the populated collection must
// match the structure tag. Percentage sums are NOT checked here; plans
// are stored mid-edit and percentage validation is advisory.
func (p *PaymentPlan) Validate() error {
	if p == nil {
		return nil
	}
	if err := p.Structure.Validate(); err != nil {
		return err
	}
	switch p.Structure {
	case types.PaymentStructureInstallments:
		if len(p.Milestones) > 0 || len(p.CustomPayments) > 0 {
			return NewValidationError("payment_plan", "installments plan must not carry milestones or custom payments")
		}
	case types.PaymentStructureMilestones:
		if len(p.Installments) > 0 || len(p.CustomPayments) > 0 {
			return NewValidationError("payment_plan", "milestones plan must not carry installments or custom payments")
		}
	case types.PaymentStructureCustom:
		if len(p.Installments) > 0 || len(p.Milestones) > 0 {
			return NewValidationError("payment_plan", "custom plan must not carry installments or milestones")
		}
	default:
		if len(p.Installments) > 0 || len(p.Milestones) > 0 || len(p.CustomPayments) > 0 {
			return NewValidationError("payment_plan", "simple plans must not carry items")
		}
	}
	return nil
}

// HasItems reports whether the plan carries any stored items.
func (p *PaymentPlan) HasItems() bool {
	if p == nil {
		return false
	}
	return len(p.Installments) > 0 || len(p.Milestones) > 0 || len(p.CustomPayments) > 0
}

// Clone returns a deep copy. Calculators operate on copies so stored
// plans are never mutated in place.
func (p *PaymentPlan) Clone() *PaymentPlan {
	if p == nil {
		return nil
	}
	out := &PaymentPlan{Structure: p.Structure}
	if p.Installments != nil {
		out.Installments = make([]*Installment, len(p.Installments))
		for i, item := range p.Installments {
			cp := *item
			cp.DueDate = copyTime(item.DueDate)
			out.Installments[i] = &cp
		}
	}
	if p.Milestones != nil {
		out.Milestones = make([]*Milestone, len(p.Milestones))
		for i, item := range p.Milestones {
			cp := *item
			cp.DueDate = copyTime(item.DueDate)
			out.Milestones[i] = &cp
		}
	}
	if p.CustomPayments != nil {
		out.CustomPayments = make([]*CustomPayment, len(p.CustomPayments))
		for i, item := range p.CustomPayments {
			cp := *item
			cp.DueDate = copyTime(item.DueDate)
			out.CustomPayments[i] = &cp
		}
	}
	return out
}

// Equal reports deep equality between two plans. Decimal values compare
// by numeric value, not representation, so a recomputation that yields
// the same amounts does not count as a plan change.
func (p *PaymentPlan) Equal(other *PaymentPlan) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Structure != other.Structure {
		return false
	}
	if len(p.Installments) != len(other.Installments) ||
		len(p.Milestones) != len(other.Milestones) ||
		len(p.CustomPayments) != len(other.CustomPayments) {
		return false
	}
	for i, a := range p.Installments {
		b := other.Installments[i]
		if a.ID != b.ID || !a.Percentage.Equal(b.Percentage) || !a.Amount.Equal(b.Amount) ||
			a.Description != b.Description || !timesEqual(a.DueDate, b.DueDate) {
			return false
		}
	}
	for i, a := range p.Milestones {
		b := other.Milestones[i]
		if a.ID != b.ID || a.Name != b.Name || !a.Percentage.Equal(b.Percentage) ||
			!a.Amount.Equal(b.Amount) || a.Description != b.Description ||
			!timesEqual(a.DueDate, b.DueDate) {
			return false
		}
	}
	for i, a := range p.CustomPayments {
		b := other.CustomPayments[i]
		if a.ID != b.ID || !a.Amount.Equal(b.Amount) || a.Description != b.Description ||
			!timesEqual(a.DueDate, b.DueDate) {
			return false
		}
	}
	return true
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
