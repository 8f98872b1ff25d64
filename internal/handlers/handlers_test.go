package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"invoice-reconciliation-service/internal/erp"
	"invoice-reconciliation-service/internal/models"
	"invoice-reconciliation-service/internal/repositories"
	"invoice-reconciliation-service/internal/services"
)

type fakeHeaderRepo struct {
	items []*models.HeaderItem
	err   error
}

func (f *fakeHeaderRepo) ListHeaderItems() ([]*models.HeaderItem, error) {
	return f.items, f.err
}

func (f *fakeHeaderRepo) InsertHeaderItem(tx *sql.Tx, item *models.HeaderItem) error {
	return errors.New("not implemented")
}

type fakeLineRepo struct {
	items map[int64]*models.PoLineItem
}

func (f *fakeLineRepo) ListLineItems() ([]*models.PoLineItem, error) {
	var items []*models.PoLineItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeLineRepo) GetLineItemByID(id int64) (*models.PoLineItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeLineRepo) UpdateLineItem(item *models.PoLineItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeLineRepo) CountByStatus() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, item := range f.items {
		counts[item.Status]++
	}
	return counts, nil
}

func (f *fakeLineRepo) InsertLineItem(tx *sql.Tx, item *models.PoLineItem) error {
	return errors.New("not implemented")
}

type fakeERP struct {
	records []*models.PurchaseOrderRecord
	err     error
}

func (f *fakeERP) FetchPurchaseOrders(ctx context.Context) ([]*models.PurchaseOrderRecord, error) {
	return f.records, f.err
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := authMiddleware("secret-token")(next)

	cases := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"wrong token", "Authorization", "Bearer wrong", http.StatusUnauthorized},
		{"bearer token", "Authorization", "Bearer secret-token", http.StatusOK},
		{"api key header", "X-API-Key", "secret-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/header-items", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestGetHeaderItemsEmptyCollection(t *testing.T) {
	recordService := services.NewRecordService(&fakeHeaderRepo{}, &fakeLineRepo{})
	h := NewDataHandler(recordService, nil, &fakeERP{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/header-items", nil)
	rec := httptest.NewRecorder()
	h.GetHeaderItems(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Errorf("empty collection must not be a success")
	}
	if resp.Message != "No header items found" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGetHeaderItems(t *testing.T) {
	recordService := services.NewRecordService(&fakeHeaderRepo{
		items: []*models.HeaderItem{{ID: 1, PoNumber: "PO1", Vendor: "ACME"}},
	}, &fakeLineRepo{})
	h := NewDataHandler(recordService, nil, &fakeERP{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/header-items", nil)
	rec := httptest.NewRecorder()
	h.GetHeaderItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success || resp.Data == nil {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestGetPurchaseOrdersUpstreamFailure(t *testing.T) {
	recordService := services.NewRecordService(&fakeHeaderRepo{}, &fakeLineRepo{})
	h := NewDataHandler(recordService, nil, &fakeERP{
		err: fmt.Errorf("%w: token request: boom", erp.ErrUpstream),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders", nil)
	rec := httptest.NewRecorder()
	h.GetPurchaseOrders(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success || resp.Error == "" {
		t.Errorf("upstream failure must carry the underlying detail: %+v", resp)
	}
}

func newCorrectionHandler(lineRepo *fakeLineRepo, fetcher *fakeERP) *CorrectionHandler {
	return NewCorrectionHandler(services.NewCorrectionService(lineRepo, fetcher))
}

func putLineItem(t *testing.T, h *CorrectionHandler, id string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/po-line-items/"+id, bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.UpdateLineItem(rec, req)
	return rec
}

func correctionFixture() (*fakeLineRepo, *fakeERP) {
	lineRepo := &fakeLineRepo{
		items: map[int64]*models.PoLineItem{
			1: {ID: 1, PurchaseOrder: "PO1", MaterialNumber: "M1", Status: "Amount Mismatch", Quantity: 5, Amount: 90},
		},
	}
	fetcher := &fakeERP{
		records: []*models.PurchaseOrderRecord{
			{PurchaseOrder: "PO1", MaterialNumber: "M1", Quantity: "5", Amount: "100"},
		},
	}
	return lineRepo, fetcher
}

func TestUpdateLineItemMissingRequiredFields(t *testing.T) {
	lineRepo, fetcher := correctionFixture()
	h := newCorrectionHandler(lineRepo, fetcher)

	for _, body := range []string{
		`{"amount": 100}`,
		`{"quantity": 5}`,
		`{"comment": "only a note"}`,
	} {
		rec := putLineItem(t, h, "1", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Message != "Quantity and amount are required" {
			t.Errorf("body %s: message = %q", body, resp.Message)
		}
	}
}

func TestUpdateLineItemInvalidID(t *testing.T) {
	lineRepo, fetcher := correctionFixture()
	h := newCorrectionHandler(lineRepo, fetcher)

	rec := putLineItem(t, h, "abc", `{"quantity": 5, "amount": 100}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateLineItemNotFound(t *testing.T) {
	lineRepo, fetcher := correctionFixture()
	h := newCorrectionHandler(lineRepo, fetcher)

	rec := putLineItem(t, h, "99", `{"quantity": 5, "amount": 100}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateLineItemNoMatchingPurchaseOrder(t *testing.T) {
	lineRepo, _ := correctionFixture()
	h := newCorrectionHandler(lineRepo, &fakeERP{records: nil})

	rec := putLineItem(t, h, "1", `{"quantity": 5, "amount": 100}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Message != "No matching purchase order found for validation" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestUpdateLineItemOutsideTolerance(t *testing.T) {
	lineRepo, fetcher := correctionFixture()
	h := newCorrectionHandler(lineRepo, fetcher)

	rec := putLineItem(t, h, "1", `{"quantity": 5, "amount": 90}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Message != "amount doesn't match with purchase order data" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestUpdateLineItemSuccess(t *testing.T) {
	lineRepo, fetcher := correctionFixture()
	h := newCorrectionHandler(lineRepo, fetcher)

	rec := putLineItem(t, h, "1", `{"quantity": 5, "amount": 100, "comment": "fixed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("expected success envelope: %+v", resp)
	}
	if lineRepo.items[1].Status != models.StatusSuccessfulProcess {
		t.Errorf("stored status = %q, want %q", lineRepo.items[1].Status, models.StatusSuccessfulProcess)
	}
	if lineRepo.items[1].UnitPrice != 20 {
		t.Errorf("stored unit price = %v, want 20", lineRepo.items[1].UnitPrice)
	}
}

func TestGetSummary(t *testing.T) {
	lineRepo := &fakeLineRepo{
		items: map[int64]*models.PoLineItem{
			1: {ID: 1, Status: models.StatusSuccessfulProcess},
			2: {ID: 2, Status: "Amount Mismatch"},
		},
	}
	recordService := services.NewRecordService(&fakeHeaderRepo{}, lineRepo)
	h := NewDataHandler(recordService, nil, &fakeERP{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    services.Summary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.Total != 2 || resp.Data.Matched != 1 || resp.Data.Mismatched != 1 {
		t.Errorf("summary = %+v", resp.Data)
	}
}
