package service

import (
	"invoicing-dashboard-backend/internal/forms"
	"invoicing-dashboard-backend/internal/models"
)

// Page paths shared by the cache, the post-action redirects, and the router
const (
	DashboardPath = "/dashboard"
	InvoicesPath  = "/dashboard/invoices"
	CustomersPath = "/dashboard/customers"
)

// invoiceSchema validates invoice create/update submissions
var invoiceSchema = forms.NewSchema(
	forms.Text("customerId", "Please select a customer."),
	forms.Cents("amount", "Please enter a valid amount.",
		forms.Positive("Please enter an amount greater than $0.")),
	forms.Text("status", "Please select an invoice status.",
		forms.OneOf(
			[]string{string(models.InvoiceStatusPending), string(models.InvoiceStatusPaid)},
			"Please select an invoice status.",
		)),
)

// customerSchema validates customer create/update submissions. The id field
// is only honored on create; updates take the id from the URL path.
var customerSchema = forms.NewSchema(
	forms.Optional("id"),
	forms.Text("name", "Please enter a name.",
		forms.Length(3, 20, "Name must be between 3 and 20 characters.")),
	forms.Text("email", "Please enter a valid email address.",
		forms.Email("Please enter a valid email address.")),
	forms.Text("image", "Please enter a valid image URL.",
		forms.URL("Please enter a valid image URL.")),
)

// InvoiceListResult represents paginated, filtered invoice rows
type InvoiceListResult struct {
	Data       []*models.InvoiceWithCustomer `json:"data"`
	Pagination models.PaginationResult       `json:"pagination"`
}

// CustomerListResult represents filtered customers with their invoice totals
type CustomerListResult struct {
	Data []*CustomerSummary `json:"data"`
}

// CustomerSummary is a customer row with formatted invoice totals
type CustomerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// LatestInvoice is a recent invoice with formatted amount for the dashboard
type LatestInvoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// DashboardSummary is the payload behind the dashboard overview page
type DashboardSummary struct {
	NumberOfInvoices     int64                    `json:"number_of_invoices"`
	NumberOfCustomers    int64                    `json:"number_of_customers"`
	TotalPaidInvoices    string                   `json:"total_paid_invoices"`
	TotalPendingInvoices string                   `json:"total_pending_invoices"`
	Revenue              []*models.MonthlyRevenue `json:"revenue"`
	LatestInvoices       []*LatestInvoice         `json:"latest_invoices"`
}
