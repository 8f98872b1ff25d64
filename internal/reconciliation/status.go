package reconciliation

import (
	"strings"

	"invoice-reconciliation-service/internal/models"
)

// MismatchKind is the closed classification behind the free-text status
// strings the extraction pipeline writes. ParseMismatchStatus is the only
// place the substring matching happens.
type MismatchKind int

const (
	KindOk MismatchKind = iota
	KindAmountMismatch
	KindQuantityMismatch
	KindBothMismatch
	KindOther
)

func (k MismatchKind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindAmountMismatch:
		return "amount_mismatch"
	case KindQuantityMismatch:
		return "quantity_mismatch"
	case KindBothMismatch:
		return "both_mismatch"
	default:
		return "other"
	}
}

// ParseMismatchStatus maps a stored status string onto a MismatchKind.
// Matching is case-insensitive and substring-based, mirroring how the
// statuses are written by the extraction pipeline ("Amount Mismatch",
// "Quantity Mismatch", "Amount Mismatch, Quantity", ...).
func ParseMismatchStatus(status string) MismatchKind {
	s := strings.ToLower(status)

	hasAmount := strings.Contains(s, "amount mismatch")
	hasQuantity := strings.Contains(s, "quantity")

	switch {
	case hasAmount && hasQuantity:
		return KindBothMismatch
	case hasAmount:
		return KindAmountMismatch
	case hasQuantity:
		return KindQuantityMismatch
	case strings.EqualFold(status, models.StatusSuccessfulProcess):
		return KindOk
	default:
		return KindOther
	}
}

// EditableFields describes which line-item fields a user may edit for a
// given mismatch classification. Comment is always editable.
type EditableFields struct {
	Quantity bool
	Amount   bool
	Comment  bool
}

func (k MismatchKind) Editable() EditableFields {
	fields := EditableFields{Comment: true}

	switch k {
	case KindBothMismatch:
		fields.Quantity = true
		fields.Amount = true
	case KindAmountMismatch:
		fields.Amount = true
	case KindQuantityMismatch:
		fields.Quantity = true
	}

	return fields
}

// ClassifyEditableFields returns the editable fields for a raw status
// string. Statuses outside the mismatch taxonomy allow only the comment.
func ClassifyEditableFields(status string) EditableFields {
	return ParseMismatchStatus(status).Editable()
}
