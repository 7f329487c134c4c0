package types

import (
	"github.com/samber/lo"
)

// ClientStatus is the derived aggregate payment status of a client.
// It is recomputed from the client's payments on every mutation and
// is never accepted as direct input.
type ClientStatus string

const (
	ClientStatusPaid    ClientStatus = "paid"
	ClientStatusPending ClientStatus = "pending"
	ClientStatusOverdue ClientStatus = "overdue"
)

func (s ClientStatus) String() string {
	return string(s)
}

func (s ClientStatus) Validate() error {
	allowed := []ClientStatus{
		ClientStatusPaid,
		ClientStatusPending,
		ClientStatusOverdue,
	}
	if !lo.Contains(allowed, s) {
		return newValidationError("client status", string(s))
	}
	return nil
}
