package types

import (
	"fmt"

	"github.com/samber/lo"
)

// TimelineEventStatus is the derived payment state of a timeline event.
type TimelineEventStatus string

const (
	TimelineEventStatusPaid    TimelineEventStatus = "paid"
	TimelineEventStatusPending TimelineEventStatus = "pending"
	TimelineEventStatusOverdue TimelineEventStatus = "overdue"
)

func (s TimelineEventStatus) String() string {
	return string(s)
}

// TimelineEventKind identifies the source a timeline event was
// synthesized from.
type TimelineEventKind string

const (
	TimelineEventKindPayment     TimelineEventKind = "payment"
	TimelineEventKindInstallment TimelineEventKind = "installment"
	TimelineEventKindMilestone   TimelineEventKind = "milestone"
	TimelineEventKindCustom      TimelineEventKind = "custom"
)

func (k TimelineEventKind) String() string {
	return string(k)
}

func (k TimelineEventKind) Validate() error {
	allowed := []TimelineEventKind{
		TimelineEventKindPayment,
		TimelineEventKindInstallment,
		TimelineEventKindMilestone,
		TimelineEventKindCustom,
	}
	if !lo.Contains(allowed, k) {
		return newValidationError("timeline event kind", string(k))
	}
	return nil
}

// FormatPlanEventID builds the stable id of a timeline event derived
// from a contract payment plan item.
func FormatPlanEventID(contractID string, kind TimelineEventKind, itemID string) string {
	return fmt.Sprintf("contract-%s-%s-%s", contractID, kind, itemID)
}
