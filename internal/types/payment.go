package types

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PaymentType distinguishes the upfront retainer from the scheduled
// installments generated at client creation.
type PaymentType string

const (
	PaymentTypeRetainer    PaymentType = "retainer"
	PaymentTypeInstallment PaymentType = "installment"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeRetainer,
		PaymentTypeInstallment,
	}
	if !lo.Contains(allowed, t) {
		return newValidationError("payment type", string(t))
	}
	return nil
}

// PaymentPlanTemplateID references one of the fixed payment plan
// templates applied once at client creation.
type PaymentPlanTemplateID string

const (
	PaymentPlanTemplate3070   PaymentPlanTemplateID = "30-70"
	PaymentPlanTemplate303535 PaymentPlanTemplateID = "30-35-35"
)

func (id PaymentPlanTemplateID) String() string {
	return string(id)
}

func (id PaymentPlanTemplateID) Validate() error {
	allowed := []PaymentPlanTemplateID{
		PaymentPlanTemplate3070,
		PaymentPlanTemplate303535,
	}
	if !lo.Contains(allowed, id) {
		return newValidationError("payment plan template", string(id))
	}
	return nil
}

// PlanSplit is one post-retainer installment rule: a percentage of the
// remaining amount due a number of days after engagement start.
type PlanSplit struct {
	Percent   decimal.Decimal
	DueInDays int
}

// PaymentPlanTemplate defines how an agreed price is split into a
// retainer plus dated installments. Templates are static; they are
// consulted once when a client is created.
type PaymentPlanTemplate struct {
	ID              PaymentPlanTemplateID
	Name            string
	RetainerPercent decimal.Decimal
	Splits          []PlanSplit
}

var paymentPlanTemplates = map[PaymentPlanTemplateID]PaymentPlanTemplate{
	PaymentPlanTemplate3070: {
		ID:              PaymentPlanTemplate3070,
		Name:            "30/70 split",
		RetainerPercent: decimal.NewFromInt(10),
		Splits: []PlanSplit{
			{Percent: decimal.NewFromInt(30), DueInDays: 30},
			{Percent: decimal.NewFromInt(70), DueInDays: 60},
		},
	},
	PaymentPlanTemplate303535: {
		ID:              PaymentPlanTemplate303535,
		Name:            "30/35/35 split",
		RetainerPercent: decimal.NewFromInt(10),
		Splits: []PlanSplit{
			{Percent: decimal.NewFromInt(30), DueInDays: 30},
			{Percent: decimal.NewFromInt(35), DueInDays: 60},
			{Percent: decimal.NewFromInt(35), DueInDays: 90},
		},
	},
}

// GetPaymentPlanTemplate looks up a fixed template by id.
func GetPaymentPlanTemplate(id PaymentPlanTemplateID) (PaymentPlanTemplate, bool) {
	tmpl, ok := paymentPlanTemplates[id]
	return tmpl, ok
}
