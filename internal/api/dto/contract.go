package dto

import (
	"time"

	"github.com/billfold/billfold/internal/domain/contract"
	"github.com/billfold/billfold/internal/validator"
	"github.com/shopspring/decimal"
)

type GenerateContractRequest struct {
	ClientID               string                `json:"client_id" validate:"required"`
	TemplateID             string                `json:"template_id,omitempty"`
	StartDate              time.Time             `json:"start_date" validate:"required"`
	EndDate                time.Time             `json:"end_date" validate:"required"`
	Terms                  string                `json:"terms,omitempty"`
	ProjectCost            decimal.Decimal       `json:"project_cost"`
	PaymentMethod          string                `json:"payment_method,omitempty"`
	ProjectDuration        string                `json:"project_duration,omitempty"`
	MaintenanceCost        decimal.Decimal       `json:"maintenance_cost"`
	ClientAddress          string                `json:"client_address,omitempty"`
	ClientEmail            string                `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone            string                `json:"client_phone,omitempty"`
	CompanyRepresentatives []string              `json:"company_representatives,omitempty"`
	Settings               *contract.Settings    `json:"settings,omitempty"`
	PaymentPlan            *contract.PaymentPlan `json:"payment_plan,omitempty"`
}

func (r *GenerateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PaymentPlan != nil {
		return r.PaymentPlan.Validate()
	}
	return nil
}

// UpdateContractRequest carries a partial contract update. A non-nil
// PaymentPlan that differs from the stored one triggers invoice
// regeneration.
type UpdateContractRequest struct {
	StartDate              *time.Time            `json:"start_date,omitempty"`
	EndDate                *time.Time            `json:"end_date,omitempty"`
	Terms                  *string               `json:"terms,omitempty"`
	ProjectCost            *decimal.Decimal      `json:"project_cost,omitempty"`
	PaymentMethod          *string               `json:"payment_method,omitempty"`
	ProjectDuration        *string               `json:"project_duration,omitempty"`
	MaintenanceCost        *decimal.Decimal      `json:"maintenance_cost,omitempty"`
	ClientAddress          *string               `json:"client_address,omitempty"`
	ClientEmail            *string               `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone            *string               `json:"client_phone,omitempty"`
	CompanyRepresentatives []string              `json:"company_representatives,omitempty"`
	Settings               *contract.Settings    `json:"settings,omitempty"`
	PaymentPlan            *contract.PaymentPlan `json:"payment_plan,omitempty"`
}

func (r *UpdateContractRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PaymentPlan != nil {
		return r.PaymentPlan.Validate()
	}
	return nil
}

type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ContractResponse struct {
	*contract.Contract
}

type ListContractsResponse struct {
	Items []*ContractResponse `json:"items"`
	Total int                 `json:"total"`
}
