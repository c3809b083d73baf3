package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/service"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *slog.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// ListInvoices handles GET /dashboard/invoices
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	filter := models.InvoiceFilter{
		Query:    query.Get("query"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.invoiceService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// GetInvoice handles GET /dashboard/invoices/{id}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	invoice, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, invoice)
}

// CreateInvoice handles POST /dashboard/invoices
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	if err := h.invoiceService.Create(r.Context(), r.PostForm); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.InvoicesPath, http.StatusSeeOther)
}

// UpdateInvoice handles POST /dashboard/invoices/{id}
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	if err := h.invoiceService.Update(r.Context(), id, r.PostForm); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.InvoicesPath, http.StatusSeeOther)
}

// DeleteInvoice handles POST /dashboard/invoices/{id}/delete
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	http.Redirect(w, r, service.InvoicesPath, http.StatusSeeOther)
}
