package handlers

import (
	"encoding/json"
	"net/http"

	"invoice-reconciliation-service/internal/services"
)

type DataHandler struct {
	recordService    *services.RecordService
	ingestionService *services.IngestionService
	erp              services.PurchaseOrderFetcher
}

func NewDataHandler(
	recordService *services.RecordService,
	ingestionService *services.IngestionService,
	erp services.PurchaseOrderFetcher,
) *DataHandler {
	return &DataHandler{
		recordService:    recordService,
		ingestionService: ingestionService,
		erp:              erp,
	}
}

func (h *DataHandler) GetHeaderItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.recordService.ListHeaderItems()
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "Error fetching header items", err)
		return
	}

	// An empty collection is a distinct not-found condition, not an
	// empty success payload.
	if len(items) == 0 {
		respondError(w, http.StatusNotFound, "No header items found")
		return
	}

	respondSuccess(w, http.StatusOK, "Header items fetched successfully", items)
}

func (h *DataHandler) GetLineItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.recordService.ListLineItems()
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "Error fetching PO line items", err)
		return
	}

	if len(items) == 0 {
		respondError(w, http.StatusNotFound, "No PO line items found")
		return
	}

	respondSuccess(w, http.StatusOK, "PO line items fetched successfully", items)
}

func (h *DataHandler) GetPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.erp.FetchPurchaseOrders(r.Context())
	if err != nil {
		respondFailure(w, http.StatusBadGateway, "Error fetching purchase orders", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Purchase orders fetched successfully", records)
}

func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recordService.GetSummary()
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "Error computing summary", err)
		return
	}

	respondSuccess(w, http.StatusOK, "Summary computed successfully", summary)
}

func (h *DataHandler) IngestHeaderItems(w http.ResponseWriter, r *http.Request) {
	var inputs []services.HeaderItemInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(inputs) == 0 {
		respondError(w, http.StatusBadRequest, "No header items provided")
		return
	}

	result, err := h.ingestionService.IngestHeaderItems(inputs)
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "Error ingesting header items", err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusPartialContent
	}
	respondSuccess(w, status, "Header items ingested", result)
}

func (h *DataHandler) IngestLineItems(w http.ResponseWriter, r *http.Request) {
	var inputs []services.LineItemInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(inputs) == 0 {
		respondError(w, http.StatusBadRequest, "No line items provided")
		return
	}

	result, err := h.ingestionService.IngestLineItems(inputs)
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "Error ingesting line items", err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusPartialContent
	}
	respondSuccess(w, status, "PO line items ingested", result)
}
