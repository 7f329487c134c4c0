package dto

import (
	"time"

	"github.com/billfold/billfold/internal/domain/client"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateClientRequest struct {
	Name          string          `json:"name" validate:"required"`
	AgreedPrice   decimal.Decimal `json:"agreed_price" validate:"required"`
	PaymentPlanID string          `json:"payment_plan_id" validate:"required"`
	Currency      string          `json:"currency,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient() *client.Client {
	planID := types.PaymentPlanTemplateID(r.PaymentPlanID)
	return &client.Client{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:          r.Name,
		AgreedPrice:   r.AgreedPrice,
		PaymentPlanID: &planID,
		Currency:      r.Currency,
		BaseModel:     types.GetDefaultBaseModel(),
	}
}

// UpdateClientRequest carries a partial update. Derived fields
// (amount_paid, amount_due, client_status) are intentionally absent:
// they are always recomputed, never accepted as input.
type UpdateClientRequest struct {
	Name        *string          `json:"name,omitempty"`
	AgreedPrice *decimal.Decimal `json:"agreed_price,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type MarkPaymentPaidRequest struct {
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

type ClientResponse struct {
	*client.Client
}

type ListClientsResponse struct {
	Items []*ClientResponse `json:"items"`
	Total int               `json:"total"`
}
