package dto

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentTimelineEvent is one entry of the unified payment timeline.
// Events are derived on every read; nothing here is stored.
type PaymentTimelineEvent struct {
	ID          string                    `json:"id"`
	ClientID    string                    `json:"client_id"`
	ClientName  string                    `json:"client_name,omitempty"`
	ContractID  string                    `json:"contract_id,omitempty"`
	InvoiceID   string                    `json:"invoice_id,omitempty"`
	Kind        types.TimelineEventKind   `json:"kind"`
	Description string                    `json:"description,omitempty"`
	Amount      decimal.Decimal           `json:"amount"`
	DueDate     time.Time                 `json:"due_date"`
	Status      types.TimelineEventStatus `json:"status"`
}

type TimelineResponse struct {
	Events []*PaymentTimelineEvent `json:"events"`
	Total  int                     `json:"total"`
}
