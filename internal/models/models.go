package models

import "time"

// HeaderItem represents invoice-level metadata extracted during
// pre-processing. Header items are immutable once ingested.
type HeaderItem struct {
	ID          int64     `db:"id" json:"id"`
	PoNumber    string    `db:"po_number" json:"poNumber"`
	PoDate      string    `db:"po_date" json:"poDate"`
	Vendor      string    `db:"vendor" json:"vendor"`
	InvoiceDate string    `db:"invoice_date" json:"invoiceDate"`
	InvoiceNo   string    `db:"invoice_no" json:"invoiceNo"`
	Payment     string    `db:"payment" json:"payment"`
	Delivery    string    `db:"delivery" json:"delivery"`
	Shipping    float64   `db:"shipping" json:"shipping"`
	Tax         float64   `db:"tax" json:"tax"`
	Excise      float64   `db:"excise" json:"excise"`
	Fees        float64   `db:"fees" json:"fees"`
	LateCharges float64   `db:"late_charges" json:"lateCharges"`
	Discount    float64   `db:"discount" json:"discount"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// PoLineItem represents one invoice line, subject to matching against
// ERP purchase-order data. The status string records the outcome of the
// automatic match and is promoted to StatusSuccessfulProcess once a
// validated correction goes through.
type PoLineItem struct {
	ID                int64     `db:"id" json:"id"`
	PurchaseOrder     string    `db:"purchase_order" json:"purchaseOrder"`
	PurchaseOrderItem string    `db:"purchase_order_item" json:"purchaseOrderItem"`
	TaxCode           string    `db:"tax_code" json:"taxCode"`
	Quantity          float64   `db:"quantity" json:"quantity"`
	Uom               string    `db:"uom" json:"uom"`
	UnitPrice         float64   `db:"unit_price" json:"unitPrice"`
	Amount            float64   `db:"amount" json:"amount"`
	MaterialNumber    string    `db:"material_number" json:"materialNumber"`
	Status            string    `db:"status" json:"status"`
	Comment           string    `db:"comment" json:"comment"`
	CreatedAt         time.Time `db:"created_at" json:"-"`
	UpdatedAt         time.Time `db:"updated_at" json:"-"`
}

// PurchaseOrderRecord is a snapshot fetched from the ERP. It is never
// persisted; a line item joins it by purchase order and material number
// at validation time. Numeric fields arrive as OData strings.
type PurchaseOrderRecord struct {
	PurchaseOrder     string `json:"PurchaseOrder"`
	PurchaseOrderItem string `json:"PurchaseOrderItem"`
	MaterialNumber    string `json:"MaterialNumber"`
	Quantity          string `json:"Quantity"`
	Uom               string `json:"Uom"`
	UnitPrice         string `json:"UnitPrice"`
	Amount            string `json:"Amount"`
	TaxCode           string `json:"TaxCode"`
	Supplier          string `json:"Supplier"`
}

// StatusSuccessfulProcess is the canonical success marker for a line
// item. Every other status value is a mismatch classification.
const StatusSuccessfulProcess = "Successful Process"
