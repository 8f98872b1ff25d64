package repositories

import (
	"database/sql"
	"errors"

	"invoice-reconciliation-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

type HeaderRepository interface {
	ListHeaderItems() ([]*models.HeaderItem, error)
	InsertHeaderItem(tx *sql.Tx, item *models.HeaderItem) error
}

type headerRepository struct {
	db *sql.DB
}

func NewHeaderRepository(db *sql.DB) HeaderRepository {
	return &headerRepository{db: db}
}

func (r *headerRepository) ListHeaderItems() ([]*models.HeaderItem, error) {
	query := `
		SELECT id, po_number, po_date, vendor, invoice_date, invoice_no,
		       payment, delivery, shipping, tax, excise, fees,
		       late_charges, discount, created_at, updated_at
		FROM header_items
		ORDER BY id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.HeaderItem
	for rows.Next() {
		item := &models.HeaderItem{}
		err := rows.Scan(
			&item.ID,
			&item.PoNumber,
			&item.PoDate,
			&item.Vendor,
			&item.InvoiceDate,
			&item.InvoiceNo,
			&item.Payment,
			&item.Delivery,
			&item.Shipping,
			&item.Tax,
			&item.Excise,
			&item.Fees,
			&item.LateCharges,
			&item.Discount,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
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

func (r *headerRepository) InsertHeaderItem(tx *sql.Tx, item *models.HeaderItem) error {
	query := `
		INSERT INTO header_items (
			po_number, po_date, vendor, invoice_date, invoice_no,
			payment, delivery, shipping, tax, excise, fees,
			late_charges, discount
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.Exec(query,
		item.PoNumber,
		item.PoDate,
		item.Vendor,
		item.InvoiceDate,
		item.InvoiceNo,
		item.Payment,
		item.Delivery,
		item.Shipping,
		item.Tax,
		item.Excise,
		item.Fees,
		item.LateCharges,
		item.Discount,
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
