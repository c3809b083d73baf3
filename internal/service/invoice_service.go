package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"invoicing-dashboard-backend/internal/cache"
	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/repository"
)

// InvoiceService handles invoice form actions and reads
type InvoiceService interface {
	Create(ctx context.Context, form url.Values) error
	Update(ctx context.Context, id string, form url.Values) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.InvoiceFilter) (*InvoiceListResult, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	pages       cache.PageCache
	pageTTL     time.Duration
	logger      *slog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	pages cache.PageCache,
	pageTTL time.Duration,
	logger *slog.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		pages:       pages,
		pageTTL:     pageTTL,
		logger:      logger,
	}
}

// Create validates an invoice submission and stores a new invoice dated
// today. On success the invoices page is marked stale.
func (s *invoiceService) Create(ctx context.Context, form url.Values) error {
	decoded, errs := invoiceSchema.Parse(form)
	if errs != nil {
		return &models.ValidationError{
			FieldErrors: errs,
			Message:     "Missing Fields. Failed to Create Invoice.",
		}
	}

	invoice := &models.Invoice{
		CustomerID: decoded.String("customerId"),
		Amount:     decoded.Int64("amount"),
		Status:     models.InvoiceStatus(decoded.String("status")),
		Date:       time.Now().Format(models.DateLayout),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.logger.Error("failed to create invoice",
			slog.String("customer_id", invoice.CustomerID),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Create Invoice.",
			Err:     err,
		}
	}

	s.logger.Info("invoice created",
		slog.String("customer_id", invoice.CustomerID),
		slog.Int64("amount", invoice.Amount),
		slog.String("status", string(invoice.Status)),
	)

	s.invalidate(ctx, InvoicesPath)

	return nil
}

// Update validates an invoice submission and replaces the mutable fields of
// the invoice matching id. The stored issue date is kept.
func (s *invoiceService) Update(ctx context.Context, id string, form url.Values) error {
	decoded, errs := invoiceSchema.Parse(form)
	if errs != nil {
		return &models.ValidationError{
			FieldErrors: errs,
			Message:     "Missing Fields. Failed to Update Invoice.",
		}
	}

	invoice := &models.Invoice{
		ID:         id,
		CustomerID: decoded.String("customerId"),
		Amount:     decoded.Int64("amount"),
		Status:     models.InvoiceStatus(decoded.String("status")),
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("failed to update invoice",
			slog.String("invoice_id", id),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Update Invoice.",
			Err:     err,
		}
	}

	s.logger.Info("invoice updated",
		slog.String("invoice_id", id),
	)

	s.invalidate(ctx, InvoicesPath)

	return nil
}

// Delete removes an invoice. An unknown id deletes nothing and still counts
// as success, so the page is marked stale either way.
func (s *invoiceService) Delete(ctx context.Context, id string) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete invoice",
			slog.String("invoice_id", id),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Delete Invoice.",
			Err:     err,
		}
	}

	s.logger.Info("invoice deleted",
		slog.String("invoice_id", id),
	)

	s.invalidate(ctx, InvoicesPath)

	return nil
}

// List retrieves invoices matching the search query with pagination. The
// default unfiltered page is served from the page cache when fresh.
func (s *invoiceService) List(ctx context.Context, filter models.InvoiceFilter) (*InvoiceListResult, error) {
	cacheable := filter == models.InvoiceFilter{}
	if cacheable {
		if result, ok := s.cachedList(ctx); ok {
			return result, nil
		}
	}

	invoices, totalCount, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	result := &InvoiceListResult{
		Data:       invoices,
		Pagination: models.NewPaginationResult(filter.Page, filter.PageSize, totalCount),
	}

	if cacheable {
		s.storePage(ctx, result)
	}

	return result, nil
}

// GetByID retrieves a single invoice
func (s *invoiceService) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// cachedList returns the cached default invoices page, if present and intact
func (s *invoiceService) cachedList(ctx context.Context) (*InvoiceListResult, bool) {
	data, err := s.pages.Get(ctx, InvoicesPath)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("page cache read failed",
				slog.String("path", InvoicesPath),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	result := &InvoiceListResult{}
	if err := json.Unmarshal(data, result); err != nil {
		s.logger.Warn("discarding malformed cached page",
			slog.String("path", InvoicesPath),
		)
		return nil, false
	}

	return result, true
}

// storePage caches the default invoices page payload
func (s *invoiceService) storePage(ctx context.Context, result *InvoiceListResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := s.pages.Set(ctx, InvoicesPath, data, s.pageTTL); err != nil {
		s.logger.Warn("page cache write failed",
			slog.String("path", InvoicesPath),
			slog.String("error", err.Error()),
		)
	}
}

// invalidate marks a page stale after a successful write. A failing cache
// never fails the action; the page simply stays cached until its TTL.
func (s *invoiceService) invalidate(ctx context.Context, path string) {
	if err := s.pages.Invalidate(ctx, path); err != nil {
		s.logger.Warn("page cache invalidation failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
