package models

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

// Invoice status constants
const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// DateLayout is the calendar date format used for invoice dates
const DateLayout = "2006-01-02"

// Valid checks if the status is one of the known states
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice represents a customer invoice
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"` // minor units (cents)
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"` // YYYY-MM-DD
}

// InvoiceWithCustomer is an invoice row joined with its customer's
// display fields, as rendered on the invoices page
type InvoiceWithCustomer struct {
	ID            string        `json:"id"`
	Amount        int64         `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	Date          string        `json:"date"`
	CustomerName  string        `json:"name"`
	CustomerEmail string        `json:"email"`
	ImageURL      string        `json:"image_url"`
}

// InvoiceFilter holds filtering options for listing invoices
type InvoiceFilter struct {
	Query    string
	Page     int
	PageSize int
}

// InvoiceTotals aggregates invoice counts and amounts by status
type InvoiceTotals struct {
	Count        int64
	PaidCents    int64
	PendingCents int64
}
