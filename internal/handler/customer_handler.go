package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/service"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// ListCustomers handles GET /dashboard/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	filter := models.CustomerFilter{
		Query: r.URL.Query().Get("query"),
	}

	result, err := h.customerService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// CustomerOptions handles GET /dashboard/customers/options
func (h *CustomerHandler) CustomerOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.customerService.Options(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, options)
}

// CreateCustomer handles POST /dashboard/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	if err := h.customerService.Create(r.Context(), r.PostForm); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.CustomersPath, http.StatusSeeOther)
}

// UpdateCustomer handles POST /dashboard/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	if err := h.customerService.Update(r.Context(), id, r.PostForm); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.CustomersPath, http.StatusSeeOther)
}

// DeleteCustomer handles POST /dashboard/customers/{id}/delete
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.CustomersPath, http.StatusSeeOther)
}
