package services

import (
	"database/sql"
	"fmt"

	"invoice-reconciliation-service/internal/models"
	"invoice-reconciliation-service/internal/repositories"
)

// IngestionService stores the records an extraction run produces. Each
// call is one transaction; rows that fail validation are skipped and
// reported, not fatal.
type IngestionService struct {
	db           *sql.DB
	headerRepo   repositories.HeaderRepository
	lineItemRepo repositories.LineItemRepository
}

func NewIngestionService(
	db *sql.DB,
	headerRepo repositories.HeaderRepository,
	lineItemRepo repositories.LineItemRepository,
) *IngestionService {
	return &IngestionService{
		db:           db,
		headerRepo:   headerRepo,
		lineItemRepo: lineItemRepo,
	}
}

type HeaderItemInput struct {
	PoNumber    string  `json:"poNumber"`
	PoDate      string  `json:"poDate"`
	Vendor      string  `json:"vendor"`
	InvoiceDate string  `json:"invoiceDate"`
	InvoiceNo   string  `json:"invoiceNo"`
	Payment     string  `json:"payment"`
	Delivery    string  `json:"delivery"`
	Shipping    float64 `json:"shipping"`
	Tax         float64 `json:"tax"`
	Excise      float64 `json:"excise"`
	Fees        float64 `json:"fees"`
	LateCharges float64 `json:"lateCharges"`
	Discount    float64 `json:"discount"`
}

type LineItemInput struct {
	PurchaseOrder     string  `json:"purchaseOrder"`
	PurchaseOrderItem string  `json:"purchaseOrderItem"`
	TaxCode           string  `json:"taxCode"`
	Quantity          float64 `json:"quantity"`
	Uom               string  `json:"uom"`
	UnitPrice         float64 `json:"unitPrice"`
	Amount            float64 `json:"amount"`
	MaterialNumber    string  `json:"materialNumber"`
	Status            string  `json:"status"`
	Comment           string  `json:"comment"`
}

type IngestionResult struct {
	Success      bool     `json:"success"`
	RecordsCount int      `json:"records_count"`
	Errors       []string `json:"errors,omitempty"`
}

func (s *IngestionService) IngestHeaderItems(inputs []HeaderItemInput) (*IngestionResult, error) {
	result := &IngestionResult{Success: true}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for i, input := range inputs {
		if err := validateHeaderItem(input); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid header item %d: %v", i, err))
			continue
		}

		item := &models.HeaderItem{
			PoNumber:    input.PoNumber,
			PoDate:      input.PoDate,
			Vendor:      input.Vendor,
			InvoiceDate: input.InvoiceDate,
			InvoiceNo:   input.InvoiceNo,
			Payment:     input.Payment,
			Delivery:    input.Delivery,
			Shipping:    input.Shipping,
			Tax:         input.Tax,
			Excise:      input.Excise,
			Fees:        input.Fees,
			LateCharges: input.LateCharges,
			Discount:    input.Discount,
		}

		if err := s.headerRepo.InsertHeaderItem(tx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to insert header item %d: %v", i, err))
			continue
		}

		result.RecordsCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

func (s *IngestionService) IngestLineItems(inputs []LineItemInput) (*IngestionResult, error) {
	result := &IngestionResult{Success: true}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for i, input := range inputs {
		if err := validateLineItem(input); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid line item %d: %v", i, err))
			continue
		}

		item := &models.PoLineItem{
			PurchaseOrder:     input.PurchaseOrder,
			PurchaseOrderItem: input.PurchaseOrderItem,
			TaxCode:           input.TaxCode,
			Quantity:          input.Quantity,
			Uom:               input.Uom,
			UnitPrice:         input.UnitPrice,
			Amount:            input.Amount,
			MaterialNumber:    input.MaterialNumber,
			Status:            input.Status,
			Comment:           input.Comment,
		}

		if err := s.lineItemRepo.InsertLineItem(tx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to insert line item %d: %v", i, err))
			continue
		}

		result.RecordsCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}

	result.Success = len(result.Errors) == 0
	return result, nil
}

func validateHeaderItem(input HeaderItemInput) error {
	if input.PoNumber == "" {
		return fmt.Errorf("poNumber is required")
	}
	if input.PoDate == "" {
		return fmt.Errorf("poDate is required")
	}
	if input.Vendor == "" {
		return fmt.Errorf("vendor is required")
	}
	if input.InvoiceDate == "" {
		return fmt.Errorf("invoiceDate is required")
	}
	if input.InvoiceNo == "" {
		return fmt.Errorf("invoiceNo is required")
	}
	if input.Payment == "" {
		return fmt.Errorf("payment is required")
	}
	return nil
}

func validateLineItem(input LineItemInput) error {
	if input.PurchaseOrder == "" {
		return fmt.Errorf("purchaseOrder is required")
	}
	if input.PurchaseOrderItem == "" {
		return fmt.Errorf("purchaseOrderItem is required")
	}
	if input.TaxCode == "" {
		return fmt.Errorf("taxCode is required")
	}
	if input.Uom == "" {
		return fmt.Errorf("uom is required")
	}
	if input.MaterialNumber == "" {
		return fmt.Errorf("materialNumber is required")
	}
	if input.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}
