package repository

import (
	"context"
	"database/sql"
	"fmt"

	"invoicing-dashboard-backend/internal/models"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	List(ctx context.Context, filter models.InvoiceFilter) ([]*models.InvoiceWithCustomer, int64, error)
	Latest(ctx context.Context, limit int) ([]*models.InvoiceWithCustomer, error)
	Totals(ctx context.Context) (*models.InvoiceTotals, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
}

// invoiceRepository implements InvoiceRepository using PostgreSQL
type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create inserts a new invoice. The row id is generated by the database.
func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		string(invoice.Status),
		invoice.Date,
	)

	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID
func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date::text
		FROM invoices
		WHERE id = $1`

	invoice := &models.Invoice{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.CustomerID,
		&invoice.Amount,
		&invoice.Status,
		&invoice.Date,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("invoice with ID %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// List retrieves invoices joined with their customers, filtered by a free
// text search across customer name/email and invoice amount/date/status
func (r *invoiceRepository) List(ctx context.Context, filter models.InvoiceFilter) ([]*models.InvoiceWithCustomer, int64, error) {
	// Validate and set defaults
	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	where := `
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1 OR
			invoices.amount::text ILIKE $1 OR
			invoices.date::text ILIKE $1 OR
			invoices.status ILIKE $1`

	countQuery := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + where

	pattern := "%" + filter.Query + "%"

	// Get total count
	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, pattern).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	// Newest first, id as tie-breaker for stable pages
	query := `
		SELECT invoices.id, invoices.amount, invoices.status, invoices.date::text,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + where + `
		ORDER BY invoices.date DESC, invoices.id DESC
		LIMIT $2 OFFSET $3`

	offset := models.CalculateOffset(filter.Page, filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, pattern, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*models.InvoiceWithCustomer{}
	for rows.Next() {
		invoice := &models.InvoiceWithCustomer{}
		err := rows.Scan(
			&invoice.ID,
			&invoice.Amount,
			&invoice.Status,
			&invoice.Date,
			&invoice.CustomerName,
			&invoice.CustomerEmail,
			&invoice.ImageURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, totalCount, nil
}

// Latest retrieves the most recently issued invoices with customer fields
func (r *invoiceRepository) Latest(ctx context.Context, limit int) ([]*models.InvoiceWithCustomer, error) {
	query := `
		SELECT invoices.id, invoices.amount, invoices.status, invoices.date::text,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC, invoices.id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*models.InvoiceWithCustomer{}
	for rows.Next() {
		invoice := &models.InvoiceWithCustomer{}
		err := rows.Scan(
			&invoice.ID,
			&invoice.Amount,
			&invoice.Status,
			&invoice.Date,
			&invoice.CustomerName,
			&invoice.CustomerEmail,
			&invoice.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// Totals aggregates invoice count and paid/pending amounts across all rows
func (r *invoiceRepository) Totals(ctx context.Context) (*models.InvoiceTotals, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) AS paid,
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0) AS pending
		FROM invoices`

	totals := &models.InvoiceTotals{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&totals.Count,
		&totals.PaidCents,
		&totals.PendingCents,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get invoice totals: %w", err)
	}

	return totals, nil
}

// Update replaces the mutable columns of the invoice matching the id. The
// issue date is never updated. An id matching no row is a silent no-op.
func (r *invoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4`

	_, err := r.db.ExecContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.Amount,
		string(invoice.Status),
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}

// Delete removes an invoice. An id matching no row is a silent no-op.
func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	return nil
}
