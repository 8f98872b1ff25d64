package services

import (
	"context"

	"github.com/rs/zerolog"

	"invoice-reconciliation-service/internal/logger"
	"invoice-reconciliation-service/internal/models"
	"invoice-reconciliation-service/internal/reconciliation"
	"invoice-reconciliation-service/internal/repositories"
)

// PurchaseOrderFetcher abstracts the ERP gateway for the correction
// workflow.
type PurchaseOrderFetcher interface {
	FetchPurchaseOrders(ctx context.Context) ([]*models.PurchaseOrderRecord, error)
}

// CorrectionService runs the only state transition in the system:
// mismatch status -> "Successful Process", via a validated correction.
type CorrectionService struct {
	lineItemRepo repositories.LineItemRepository
	erp          PurchaseOrderFetcher
	log          zerolog.Logger
}

func NewCorrectionService(lineItemRepo repositories.LineItemRepository, erp PurchaseOrderFetcher) *CorrectionService {
	return &CorrectionService{
		lineItemRepo: lineItemRepo,
		erp:          erp,
		log:          logger.WithComponent("correction"),
	}
}

// CorrectLineItem loads the line item, fetches the current purchase-order
// snapshot from the ERP, validates the proposed edit and persists the
// promoted record. Failures pass through untouched so the handler can map
// them: repositories.ErrNotFound, erp.ErrUpstream,
// reconciliation.ErrNoMatchFound and *reconciliation.FieldMismatchError.
func (s *CorrectionService) CorrectLineItem(ctx context.Context, id int64, edit reconciliation.Correction) (*models.PoLineItem, error) {
	item, err := s.lineItemRepo.GetLineItemByID(id)
	if err != nil {
		return nil, err
	}

	purchaseOrders, err := s.erp.FetchPurchaseOrders(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := reconciliation.ValidateAndApplyCorrection(item, edit, purchaseOrders)
	if err != nil {
		return nil, err
	}

	if err := s.lineItemRepo.UpdateLineItem(updated); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("id", updated.ID).
		Str("purchase_order", updated.PurchaseOrder).
		Str("previous_status", item.Status).
		Msg("Line item correction applied")

	return updated, nil
}
