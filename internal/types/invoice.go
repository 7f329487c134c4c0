package types

import (
	"fmt"

	"github.com/samber/lo"
)

// InvoiceStatus is the lifecycle status of an invoice.
// Transitions move forward only: draft -> sent -> paid.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return newValidationError("invoice status", string(s))
	}
	return nil
}

var invoiceStatusRank = map[InvoiceStatus]int{
	InvoiceStatusDraft: 0,
	InvoiceStatusSent:  1,
	InvoiceStatusPaid:  2,
}

// CanTransitionTo reports whether moving to the target status is a
// forward transition.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	from, ok := invoiceStatusRank[s]
	if !ok {
		return false
	}
	to, ok := invoiceStatusRank[target]
	if !ok {
		return false
	}
	return to > from
}

// FormatInvoiceNumber renders the display number for an invoice,
// e.g. INV-0042.
func FormatInvoiceNumber(sequence int64) string {
	return fmt.Sprintf("INV-%04d", sequence)
}
