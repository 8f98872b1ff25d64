package reconciliation

import (
	"errors"
	"fmt"
	"strconv"

	"invoice-reconciliation-service/internal/models"
)

// AmountTolerance is the absolute tolerance used when comparing a
// proposed value against the ERP purchase-order record.
const AmountTolerance = 0.01

// ErrNoMatchFound indicates that no purchase-order record shares the
// line item's purchase order and material number.
var ErrNoMatchFound = errors.New("no matching purchase order found for validation")

// FieldMismatchError reports a corrected value outside tolerance of the
// matched purchase-order record.
type FieldMismatchError struct {
	Field string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("%s doesn't match with purchase order data", e.Field)
}

// Correction is a proposed edit to a mismatched line item. Quantity and
// amount are required by the update contract; pointers distinguish a
// missing field from an explicit zero.
type Correction struct {
	Quantity *float64 `json:"quantity"`
	Amount   *float64 `json:"amount"`
	Comment  string   `json:"comment"`
}

// ValidateAndApplyCorrection validates a proposed correction against the
// matched purchase-order record and, when every editable field is within
// tolerance, returns an updated copy of the line item with its status
// promoted to StatusSuccessfulProcess. The input item is never mutated;
// persisting the returned record is the caller's responsibility.
//
// Validation is all-or-nothing: the first field outside tolerance aborts
// the whole correction.
func ValidateAndApplyCorrection(item *models.PoLineItem, edit Correction, purchaseOrders []*models.PurchaseOrderRecord) (*models.PoLineItem, error) {
	matched := findMatchingRecord(item, purchaseOrders)
	if matched == nil {
		return nil, ErrNoMatchFound
	}

	expectedAmount := parseODataFloat(matched.Amount)
	expectedQuantity := parseODataFloat(matched.Quantity)

	editable := ClassifyEditableFields(item.Status)

	quantity := item.Quantity
	if edit.Quantity != nil {
		quantity = *edit.Quantity
	}
	amount := item.Amount
	if edit.Amount != nil {
		amount = *edit.Amount
	}

	if editable.Amount && !withinTolerance(amount, expectedAmount) {
		return nil, &FieldMismatchError{Field: "amount"}
	}
	if editable.Quantity && !withinTolerance(quantity, expectedQuantity) {
		return nil, &FieldMismatchError{Field: "quantity"}
	}

	updated := *item
	updated.Quantity = quantity
	updated.Amount = amount
	updated.UnitPrice = recomputeUnitPrice(amount, quantity)
	updated.Comment = edit.Comment
	updated.Status = models.StatusSuccessfulProcess

	return &updated, nil
}

func findMatchingRecord(item *models.PoLineItem, purchaseOrders []*models.PurchaseOrderRecord) *models.PurchaseOrderRecord {
	for _, po := range purchaseOrders {
		if po.PurchaseOrder == item.PurchaseOrder && po.MaterialNumber == item.MaterialNumber {
			return po
		}
	}
	return nil
}

func withinTolerance(proposed, expected float64) bool {
	diff := proposed - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= AmountTolerance
}

// parseODataFloat parses an OData numeric string; absent or unparseable
// values count as 0.
func parseODataFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func recomputeUnitPrice(amount, quantity float64) float64 {
	if quantity == 0 {
		return 0
	}
	return amount / quantity
}
