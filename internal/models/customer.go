package models

// Customer represents a customer in the system
type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// CustomerWithTotals is a customer row aggregated with its invoice totals,
// amounts in minor units
type CustomerWithTotals struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  int64
	TotalPaid     int64
}

// CustomerOption is the minimal customer row for form dropdowns
type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerFilter holds filtering options for listing customers
type CustomerFilter struct {
	Query string
}
