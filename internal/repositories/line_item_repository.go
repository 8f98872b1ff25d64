package repositories

import (
	"database/sql"
	"time"

	"invoice-reconciliation-service/internal/models"
)

type LineItemRepository interface {
	ListLineItems() ([]*models.PoLineItem, error)
	GetLineItemByID(id int64) (*models.PoLineItem, error)
	UpdateLineItem(item *models.PoLineItem) error
	CountByStatus() (map[string]int64, error)
	InsertLineItem(tx *sql.Tx, item *models.PoLineItem) error
}

type lineItemRepository struct {
	db *sql.DB
}

func NewLineItemRepository(db *sql.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

const lineItemColumns = `
	id, purchase_order, purchase_order_item, tax_code, quantity, uom,
	unit_price, amount, material_number, status, comment,
	created_at, updated_at
`

func scanLineItem(scanner interface{ Scan(...interface{}) error }) (*models.PoLineItem, error) {
	item := &models.PoLineItem{}
	err := scanner.Scan(
		&item.ID,
		&item.PurchaseOrder,
		&item.PurchaseOrderItem,
		&item.TaxCode,
		&item.Quantity,
		&item.Uom,
		&item.UnitPrice,
		&item.Amount,
		&item.MaterialNumber,
		&item.Status,
		&item.Comment,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *lineItemRepository) ListLineItems() ([]*models.PoLineItem, error) {
	rows, err := r.db.Query(`SELECT ` + lineItemColumns + ` FROM po_line_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PoLineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemRepository) GetLineItemByID(id int64) (*models.PoLineItem, error) {
	row := r.db.QueryRow(`SELECT `+lineItemColumns+` FROM po_line_items WHERE id = ?`, id)

	item, err := scanLineItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateLineItem writes the correction outcome. Each update is a single
// independent write; there are no batch semantics.
func (r *lineItemRepository) UpdateLineItem(item *models.PoLineItem) error {
	query := `
		UPDATE po_line_items
		SET quantity = ?,
			amount = ?,
			unit_price = ?,
			comment = ?,
			status = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		item.Quantity,
		item.Amount,
		item.UnitPrice,
		item.Comment,
		item.Status,
		time.Now(),
		item.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *lineItemRepository) CountByStatus() (map[string]int64, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM po_line_items GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *lineItemRepository) InsertLineItem(tx *sql.Tx, item *models.PoLineItem) error {
	query := `
		INSERT INTO po_line_items (
			purchase_order, purchase_order_item, tax_code, quantity, uom,
			unit_price, amount, material_number, status, comment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.Exec(query,
		item.PurchaseOrder,
		item.PurchaseOrderItem,
		item.TaxCode,
		item.Quantity,
		item.Uom,
		item.UnitPrice,
		item.Amount,
		item.MaterialNumber,
		item.Status,
		item.Comment,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}
