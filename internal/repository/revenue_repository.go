package repository

import (
	"context"
	"database/sql"
	"fmt"

	"invoicing-dashboard-backend/internal/models"
)

// RevenueRepository defines the interface for revenue data access
type RevenueRepository interface {
	Monthly(ctx context.Context) ([]*models.MonthlyRevenue, error)
}

// revenueRepository implements RevenueRepository using PostgreSQL
type revenueRepository struct {
	db *sql.DB
}

// NewRevenueRepository creates a new revenue repository
func NewRevenueRepository(db *sql.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

// Monthly retrieves every month's revenue total for the dashboard chart
func (r *revenueRepository) Monthly(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month, revenue FROM revenue`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revenue: %w", err)
	}
	defer rows.Close()

	revenue := []*models.MonthlyRevenue{}
	for rows.Next() {
		month := &models.MonthlyRevenue{}
		if err := rows.Scan(&month.Month, &month.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		revenue = append(revenue, month)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue: %w", err)
	}

	return revenue, nil
}
