package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"invoice-reconciliation-service/internal/erp"
	"invoice-reconciliation-service/internal/reconciliation"
	"invoice-reconciliation-service/internal/repositories"
	"invoice-reconciliation-service/internal/services"
)

type CorrectionHandler struct {
	correctionService *services.CorrectionService
}

func NewCorrectionHandler(correctionService *services.CorrectionService) *CorrectionHandler {
	return &CorrectionHandler{correctionService: correctionService}
}

// UpdateLineItem drives the correction workflow for one line item. The
// body must carry quantity and amount; the comment is optional.
func (h *CorrectionHandler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid line item ID")
		return
	}

	var edit reconciliation.Correction
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if edit.Quantity == nil || edit.Amount == nil {
		respondError(w, http.StatusBadRequest, "Quantity and amount are required")
		return
	}

	updated, err := h.correctionService.CorrectLineItem(r.Context(), id, edit)
	if err != nil {
		h.respondCorrectionError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "PO line item updated successfully", updated)
}

func (h *CorrectionHandler) respondCorrectionError(w http.ResponseWriter, err error) {
	var mismatch *reconciliation.FieldMismatchError

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		respondError(w, http.StatusNotFound, "PO Line Item not found")
	case errors.Is(err, reconciliation.ErrNoMatchFound):
		respondError(w, http.StatusUnprocessableEntity, "No matching purchase order found for validation")
	case errors.As(err, &mismatch):
		respondError(w, http.StatusUnprocessableEntity, mismatch.Field+" doesn't match with purchase order data")
	case errors.Is(err, erp.ErrUpstream):
		respondFailure(w, http.StatusBadGateway, "Error fetching purchase orders", err)
	default:
		respondFailure(w, http.StatusInternalServerError, "Error updating PO line item", err)
	}
}
