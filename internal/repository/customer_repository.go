package repository

import (
	"context"
	"database/sql"
	"fmt"

	"invoicing-dashboard-backend/internal/models"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
	ListWithTotals(ctx context.Context, filter models.CustomerFilter) ([]*models.CustomerWithTotals, error)
	Options(ctx context.Context) ([]*models.CustomerOption, error)
	CountAll(ctx context.Context) (int64, error)
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer. A colliding id leaves the existing row
// untouched and reports no error.
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.ImageURL,
	)

	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// Update replaces the mutable columns of the customer matching the id. An
// id matching no row is a silent no-op.
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, image_url = $3
		WHERE id = $4`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.Name,
		customer.Email,
		customer.ImageURL,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

// Delete removes a customer. An id matching no row is a silent no-op.
func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM customers WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

// ListWithTotals retrieves customers matching the search query, each
// aggregated with its invoice count and pending/paid amounts
func (r *customerRepository) ListWithTotals(ctx context.Context, filter models.CustomerFilter) ([]*models.CustomerWithTotals, error) {
	query := `
		SELECT customers.id, customers.name, customers.email, customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(invoices.amount) FILTER (WHERE invoices.status = 'pending'), 0) AS total_pending,
			COALESCE(SUM(invoices.amount) FILTER (WHERE invoices.status = 'paid'), 0) AS total_paid
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`

	pattern := "%" + filter.Query + "%"

	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*models.CustomerWithTotals{}
	for rows.Next() {
		customer := &models.CustomerWithTotals{}
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.ImageURL,
			&customer.TotalInvoices,
			&customer.TotalPending,
			&customer.TotalPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Options retrieves id and name for every customer, for form dropdowns
func (r *customerRepository) Options(ctx context.Context) ([]*models.CustomerOption, error) {
	query := `
		SELECT id, name
		FROM customers
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer options: %w", err)
	}
	defer rows.Close()

	options := []*models.CustomerOption{}
	for rows.Next() {
		option := &models.CustomerOption{}
		if err := rows.Scan(&option.ID, &option.Name); err != nil {
			return nil, fmt.Errorf("failed to scan customer option: %w", err)
		}
		options = append(options, option)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer options: %w", err)
	}

	return options, nil
}

// CountAll returns the total number of customers
func (r *customerRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
