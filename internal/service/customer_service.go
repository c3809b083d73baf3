package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"invoicing-dashboard-backend/internal/cache"
	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/repository"
)

// CustomerService handles customer form actions and reads
type CustomerService interface {
	Create(ctx context.Context, form url.Values) error
	Update(ctx context.Context, id string, form url.Values) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error)
	Options(ctx context.Context) ([]*models.CustomerOption, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	pages        cache.PageCache
	pageTTL      time.Duration
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	pages cache.PageCache,
	pageTTL time.Duration,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		pages:        pages,
		pageTTL:      pageTTL,
		logger:       logger,
	}
}

// Create validates a customer submission and stores a new customer. A
// submitted id is honored (an existing row with that id wins and the insert
// is a no-op); otherwise a fresh UUID is assigned.
func (s *customerService) Create(ctx context.Context, form url.Values) error {
	decoded, errs := customerSchema.Parse(form)
	if errs != nil {
		return &models.ValidationError{
			FieldErrors: errs,
			Message:     "Missing Fields. Failed to Create Customer.",
		}
	}

	id := decoded.String("id")
	if id == "" {
		id = uuid.NewString()
	}

	customer := &models.Customer{
		ID:       id,
		Name:     decoded.String("name"),
		Email:    decoded.String("email"),
		ImageURL: decoded.String("image"),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("failed to create customer",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Create Customer.",
			Err:     err,
		}
	}

	s.logger.Info("customer created",
		slog.String("customer_id", customer.ID),
		slog.String("email", customer.Email),
	)

	s.invalidate(ctx, CustomersPath)

	return nil
}

// Update validates a customer submission and replaces the mutable fields of
// the customer matching id
func (s *customerService) Update(ctx context.Context, id string, form url.Values) error {
	decoded, errs := customerSchema.Parse(form)
	if errs != nil {
		return &models.ValidationError{
			FieldErrors: errs,
			Message:     "Missing Fields. Failed to Update Customer.",
		}
	}

	customer := &models.Customer{
		ID:       id,
		Name:     decoded.String("name"),
		Email:    decoded.String("email"),
		ImageURL: decoded.String("image"),
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("failed to update customer",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Update Customer.",
			Err:     err,
		}
	}

	s.logger.Info("customer updated",
		slog.String("customer_id", id),
	)

	s.invalidate(ctx, CustomersPath)

	return nil
}

// Delete removes a customer. An unknown id deletes nothing and still counts
// as success.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
		return &models.PersistenceError{
			Message: "Database Error: Failed to Delete Customer.",
			Err:     err,
		}
	}

	s.logger.Info("customer deleted",
		slog.String("customer_id", id),
	)

	s.invalidate(ctx, CustomersPath)

	return nil
}

// List retrieves customers matching the search query with their invoice
// totals formatted for display. The default unfiltered page is served from
// the page cache when fresh.
func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error) {
	cacheable := filter == models.CustomerFilter{}
	if cacheable {
		if result, ok := s.cachedList(ctx); ok {
			return result, nil
		}
	}

	customers, err := s.customerRepo.ListWithTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	result := &CustomerListResult{Data: make([]*CustomerSummary, 0, len(customers))}
	for _, c := range customers {
		result.Data = append(result.Data, &CustomerSummary{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			ImageURL:      c.ImageURL,
			TotalInvoices: c.TotalInvoices,
			TotalPending:  models.FormatCurrency(c.TotalPending),
			TotalPaid:     models.FormatCurrency(c.TotalPaid),
		})
	}

	if cacheable {
		s.storePage(ctx, result)
	}

	return result, nil
}

// Options retrieves the customer id/name pairs for the invoice form dropdown
func (s *customerService) Options(ctx context.Context) ([]*models.CustomerOption, error) {
	options, err := s.customerRepo.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer options: %w", err)
	}

	return options, nil
}

// cachedList returns the cached default customers page, if present and intact
func (s *customerService) cachedList(ctx context.Context) (*CustomerListResult, bool) {
	data, err := s.pages.Get(ctx, CustomersPath)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("page cache read failed",
				slog.String("path", CustomersPath),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	result := &CustomerListResult{}
	if err := json.Unmarshal(data, result); err != nil {
		s.logger.Warn("discarding malformed cached page",
			slog.String("path", CustomersPath),
		)
		return nil, false
	}

	return result, true
}

// storePage caches the default customers page payload
func (s *customerService) storePage(ctx context.Context, result *CustomerListResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := s.pages.Set(ctx, CustomersPath, data, s.pageTTL); err != nil {
		s.logger.Warn("page cache write failed",
			slog.String("path", CustomersPath),
			slog.String("error", err.Error()),
		)
	}
}

// invalidate marks a page stale after a successful write
func (s *customerService) invalidate(ctx context.Context, path string) {
	if err := s.pages.Invalidate(ctx, path); err != nil {
		s.logger.Warn("page cache invalidation failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
