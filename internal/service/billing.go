package service

import (
	"fmt"
	"time"

	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/domain/contract"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)

	// percentSumEpsilon is the tolerance for payment plan percentage
	// sums. Plans are built incrementally in an editor, so validation
	// is advisory and slightly loose.
	percentSumEpsilon = decimal.RequireFromString("0.01")
)

// ContractTotals is the discount/tax rollup of a contract.
type ContractTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PlanValidationResult is the advisory outcome of percentage-sum
// validation. An invalid plan may still be stored mid-edit.
type PlanValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ScheduledPayment is one computed entry of a client payment schedule,
// before ids and client references are assigned.
type ScheduledPayment struct {
	Amount            decimal.Decimal
	DueDate           time.Time
	Type              types.PaymentType
	InstallmentNumber int
}

// BillingService hosts the pure billing math: contract totals, payment
// plan amounts, percentage validation and client schedules. Methods
// never mutate their inputs.
type BillingService interface {
	CalculateContractTotals(projectCost decimal.Decimal, settings *contract.Settings) ContractTotals
	RecalculatePaymentPlan(projectCost decimal.Decimal, plan *contract.PaymentPlan) *contract.PaymentPlan
	ValidatePaymentPlan(plan *contract.PaymentPlan) PlanValidationResult
	CalculateClientSchedule(price decimal.Decimal, templateID types.PaymentPlanTemplateID) ([]ScheduledPayment, error)
	ResolveClientStatus(c *client.Client) types.ClientStatus
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

// CalculateContractTotals computes subtotal, discount, tax and total.
// The discount applies to the subtotal first; tax is computed on the
// post-discount amount. A zero or negative project cost yields zeros.
func (s *billingService) CalculateContractTotals(projectCost decimal.Decimal, settings *contract.Settings) ContractTotals {
	subtotal := decimal.Zero
	if projectCost.IsPositive() {
		subtotal = projectCost
	}

	discount := decimal.Zero
	tax := decimal.Zero
	if settings != nil {
		if settings.Discount.Enabled {
			switch settings.Discount.Type {
			case types.DiscountTypePercentage:
				discount = subtotal.Mul(settings.Discount.Value).Div(oneHundred)
			default:
				discount = settings.Discount.Value
			}
		}
		if settings.Tax.Enabled {
			tax = subtotal.Sub(discount).Mul(settings.Tax.Percent).Div(oneHundred)
		}
	}

	return ContractTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}
}

// RecalculatePaymentPlan returns a copy of the plan with installment
// and milestone amounts recomputed as projectCost * percentage / 100.
// Custom payment amounts are authoritative and simple plans carry no
// items, so those pass through untouched. A non-positive cost returns
// the plan as-is.
func (s *billingService) RecalculatePaymentPlan(projectCost decimal.Decimal, plan *contract.PaymentPlan) *contract.PaymentPlan {
	if plan == nil || !projectCost.IsPositive() {
		return plan
	}

	out := plan.Clone()
	for _, item := range out.Installments {
		item.Amount = projectCost.Mul(item.Percentage).Div(oneHundred).Round(2)
	}
	for _, item := range out.Milestones {
		item.Amount = projectCost.Mul(item.Percentage).Div(oneHundred).Round(2)
	}
	return out
}

// ValidatePaymentPlan checks that percentage-based plans total 100%
// within the epsilon. Simple and custom plans are always valid.
func (s *billingService) ValidatePaymentPlan(plan *contract.PaymentPlan) PlanValidationResult {
	if plan == nil {
		return PlanValidationResult{Valid: true}
	}

	var sum decimal.Decimal
	switch plan.Structure {
	case types.PaymentStructureInstallments:
		for _, item := range plan.Installments {
			sum = sum.Add(item.Percentage)
		}
	case types.PaymentStructureMilestones:
		for _, item := range plan.Milestones {
			sum = sum.Add(item.Percentage)
		}
	default:
		return PlanValidationResult{Valid: true}
	}

	if sum.Sub(oneHundred).Abs().LessThanOrEqual(percentSumEpsilon) {
		return PlanValidationResult{Valid: true}
	}

	return PlanValidationResult{
		Valid: false,
		Error: fmt.Sprintf("payment plan percentages must total 100%%, currently %s%%", sum.StringFixed(2)),
	}
}

// CalculateClientSchedule derives the payment schedule applied when a
// client is created: a retainer due today plus the template's splits
// of the remaining amount. The final installment absorbs any rounding
// remainder so the schedule sums exactly to the price.
func (s *billingService) CalculateClientSchedule(price decimal.Decimal, templateID types.PaymentPlanTemplateID) ([]ScheduledPayment, error) {
	tmpl, ok := types.GetPaymentPlanTemplate(templateID)
	if !ok {
		return nil, ierr.NewError("unknown payment plan template").
			WithHintf("No payment plan template with id %s", templateID).
			Mark(ierr.ErrNotFound)
	}

	today := types.BeginningOfDay(time.Now().UTC())

	retainer := price.Mul(tmpl.RetainerPercent).Div(oneHundred).Round(2)
	remaining := price.Sub(retainer)

	schedule := make([]ScheduledPayment, 0, len(tmpl.Splits)+1)
	schedule = append(schedule, ScheduledPayment{
		Amount:  retainer,
		DueDate: today,
		Type:    types.PaymentTypeRetainer,
	})

	allocated := decimal.Zero
	for i, split := range tmpl.Splits {
		var amount decimal.Decimal
		if i == len(tmpl.Splits)-1 {
			amount = remaining.Sub(allocated)
		} else {
			amount = remaining.Mul(split.Percent).Div(oneHundred).Round(2)
			allocated = allocated.Add(amount)
		}
		schedule = append(schedule, ScheduledPayment{
			Amount:            amount,
			DueDate:           today.AddDate(0, 0, split.DueInDays),
			Type:              types.PaymentTypeInstallment,
			InstallmentNumber: i + 1,
		})
	}

	return schedule, nil
}

// ResolveClientStatus derives the aggregate status from the client's
// derived amounts and due dates. Paid wins outright; otherwise any
// unpaid payment overdue at day granularity makes the client overdue.
func (s *billingService) ResolveClientStatus(c *client.Client) types.ClientStatus {
	if c.AmountPaid.GreaterThanOrEqual(c.AgreedPrice) {
		return types.ClientStatusPaid
	}

	now := time.Now().UTC()
	for _, p := range c.Payments {
		if !p.IsPaid() && types.IsPastDue(p.DueDate, now) {
			return types.ClientStatusOverdue
		}
	}
	return types.ClientStatusPending
}
