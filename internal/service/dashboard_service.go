package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"invoicing-dashboard-backend/internal/cache"
	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/repository"
)

// latestInvoiceCount is how many recent invoices the overview page shows
const latestInvoiceCount = 5

// DashboardService assembles the dashboard overview page data
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type dashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	revenueRepo  repository.RevenueRepository
	pages        cache.PageCache
	pageTTL      time.Duration
	logger       *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	revenueRepo repository.RevenueRepository,
	pages cache.PageCache,
	pageTTL time.Duration,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		revenueRepo:  revenueRepo,
		pages:        pages,
		pageTTL:      pageTTL,
		logger:       logger,
	}
}

// Summary returns the overview page payload: entity counts, paid/pending
// totals, the revenue chart, and the latest invoices. Served from the page
// cache when fresh.
func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if summary, ok := s.cachedSummary(ctx); ok {
		return summary, nil
	}

	totals, err := s.invoiceRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice totals: %w", err)
	}

	customerCount, err := s.customerRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	revenue, err := s.revenueRepo.Monthly(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue: %w", err)
	}

	latest, err := s.invoiceRepo.Latest(ctx, latestInvoiceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest invoices: %w", err)
	}

	summary := &DashboardSummary{
		NumberOfInvoices:     totals.Count,
		NumberOfCustomers:    customerCount,
		TotalPaidInvoices:    models.FormatCurrency(totals.PaidCents),
		TotalPendingInvoices: models.FormatCurrency(totals.PendingCents),
		Revenue:              revenue,
		LatestInvoices:       make([]*LatestInvoice, 0, len(latest)),
	}

	for _, inv := range latest {
		summary.LatestInvoices = append(summary.LatestInvoices, &LatestInvoice{
			ID:       inv.ID,
			Name:     inv.CustomerName,
			Email:    inv.CustomerEmail,
			ImageURL: inv.ImageURL,
			Amount:   models.FormatCurrency(inv.Amount),
		})
	}

	s.storeSummary(ctx, summary)

	return summary, nil
}

// cachedSummary returns the cached overview payload, if present and intact
func (s *dashboardService) cachedSummary(ctx context.Context) (*DashboardSummary, bool) {
	data, err := s.pages.Get(ctx, DashboardPath)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("page cache read failed",
				slog.String("path", DashboardPath),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	summary := &DashboardSummary{}
	if err := json.Unmarshal(data, summary); err != nil {
		s.logger.Warn("discarding malformed cached page",
			slog.String("path", DashboardPath),
		)
		return nil, false
	}

	return summary, true
}

// storeSummary caches the overview payload
func (s *dashboardService) storeSummary(ctx context.Context, summary *DashboardSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	if err := s.pages.Set(ctx, DashboardPath, data, s.pageTTL); err != nil {
		s.logger.Warn("page cache write failed",
			slog.String("path", DashboardPath),
			slog.String("error", err.Error()),
		)
	}
}
