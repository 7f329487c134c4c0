package types

import (
	"fmt"

	"github.com/samber/lo"
)

// ContractStatus is the lifecycle status of a contract document.
type ContractStatus string

const (
	ContractStatusCreated ContractStatus = "created"
	ContractStatusSent    ContractStatus = "sent"
	ContractStatusSigned  ContractStatus = "signed"
	ContractStatusActive  ContractStatus = "active"
	ContractStatusExpired ContractStatus = "expired"

	// ContractStatusDraft is a legacy value still found in old
	// snapshots; it is normalized to "created" on load.
	ContractStatusDraft ContractStatus = "draft"
)

func (s ContractStatus) String() string {
	return string(s)
}

func (s ContractStatus) Validate() error {
	allowed := []ContractStatus{
		ContractStatusCreated,
		ContractStatusSent,
		ContractStatusSigned,
		ContractStatusActive,
		ContractStatusExpired,
	}
	if !lo.Contains(allowed, s) {
		return newValidationError("contract status", string(s))
	}
	return nil
}

// Normalize maps legacy statuses onto the current set.
func (s ContractStatus) Normalize() ContractStatus {
	if s == ContractStatusDraft {
		return ContractStatusCreated
	}
	return s
}

// PaymentStructure is the tag of the payment plan union on a contract.
type PaymentStructure string

const (
	PaymentStructureSimple       PaymentStructure = "simple"
	PaymentStructureInstallments PaymentStructure = "installments"
	PaymentStructureMilestones   PaymentStructure = "milestones"
	PaymentStructureCustom       PaymentStructure = "custom"
	PaymentStructureNone         PaymentStructure = "none"
)

func (p PaymentStructure) String() string {
	return string(p)
}

func (p PaymentStructure) Validate() error {
	allowed := []PaymentStructure{
		PaymentStructureSimple,
		PaymentStructureInstallments,
		PaymentStructureMilestones,
		PaymentStructureCustom,
		PaymentStructureNone,
	}
	if !lo.Contains(allowed, p) {
		return newValidationError("payment structure", string(p))
	}
	return nil
}

// IsPercentageBased reports whether plan item amounts derive from
// percentages of the project cost.
func (p PaymentStructure) IsPercentageBased() bool {
	return p == PaymentStructureInstallments || p == PaymentStructureMilestones
}

// DiscountType determines how a contract discount value is applied.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) Validate() error {
	allowed := []DiscountType{
		DiscountTypePercentage,
		DiscountTypeFixed,
	}
	if !lo.Contains(allowed, t) {
		return newValidationError("discount type", string(t))
	}
	return nil
}

// TaxType selects which invoice tax field the contract tax percent
// maps onto. Only one of the two is ever active.
type TaxType string

const (
	TaxTypeVAT      TaxType = "vat"
	TaxTypeSalesTax TaxType = "sales-tax"
)

func (t TaxType) Validate() error {
	allowed := []TaxType{
		TaxTypeVAT,
		TaxTypeSalesTax,
	}
	if !lo.Contains(allowed, t) {
		return newValidationError("tax type", string(t))
	}
	return nil
}

// ContractSize is the page size used when the contract is rendered.
type ContractSize string

const (
	ContractSizeA4     ContractSize = "A4"
	ContractSizeLetter ContractSize = "Letter"
)

func (s ContractSize) Validate() error {
	allowed := []ContractSize{
		ContractSizeA4,
		ContractSizeLetter,
	}
	if !lo.Contains(allowed, s) {
		return newValidationError("contract size", string(s))
	}
	return nil
}

// FormatContractNumber renders the display number for a contract,
// e.g. CNT-2024-007.
func FormatContractNumber(year int, sequence int64) string {
	return fmt.Sprintf("CNT-%d-%03d", year, sequence)
}
