package services

import (
	"invoice-reconciliation-service/internal/models"
	"invoice-reconciliation-service/internal/repositories"
)

// RecordService exposes read access to the stored header and line-item
// collections.
type RecordService struct {
	headerRepo   repositories.HeaderRepository
	lineItemRepo repositories.LineItemRepository
}

func NewRecordService(
	headerRepo repositories.HeaderRepository,
	lineItemRepo repositories.LineItemRepository,
) *RecordService {
	return &RecordService{
		headerRepo:   headerRepo,
		lineItemRepo: lineItemRepo,
	}
}

func (s *RecordService) ListHeaderItems() ([]*models.HeaderItem, error) {
	return s.headerRepo.ListHeaderItems()
}

func (s *RecordService) ListLineItems() ([]*models.PoLineItem, error) {
	return s.lineItemRepo.ListLineItems()
}

// Summary aggregates line-item statuses for the dashboard counters.
type Summary struct {
	Total      int64 `json:"total"`
	Matched    int64 `json:"matched"`
	Mismatched int64 `json:"mismatched"`
}

func (s *RecordService) GetSummary() (*Summary, error) {
	counts, err := s.lineItemRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for status, count := range counts {
		summary.Total += count
		if status == models.StatusSuccessfulProcess {
			summary.Matched += count
		} else {
			summary.Mismatched += count
		}
	}
	return summary, nil
}
