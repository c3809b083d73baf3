package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"invoicing-dashboard-backend/internal/models"
)

// mockRevenueRepository for testing
type mockRevenueRepository struct {
	rows []*models.MonthlyRevenue
	err  error
}

func (m *mockRevenueRepository) Monthly(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func TestDashboardService_Summary(t *testing.T) {
	invoiceRepo := &mockInvoiceRepository{
		rows: []*models.InvoiceWithCustomer{
			{ID: "inv-1", Amount: 4500, Status: models.InvoiceStatusPaid, Date: "2024-03-01",
				CustomerName: "Acme Corp", CustomerEmail: "billing@acme.test"},
			{ID: "inv-2", Amount: 123456, Status: models.InvoiceStatusPending, Date: "2024-02-01",
				CustomerName: "Globex", CustomerEmail: "ap@globex.test"},
		},
	}
	customerRepo := &mockCustomerRepository{
		rows: []*models.CustomerWithTotals{
			{ID: "cust-1", Name: "Acme Corp"},
			{ID: "cust-2", Name: "Globex"},
			{ID: "cust-3", Name: "Initech"},
		},
	}
	revenueRepo := &mockRevenueRepository{
		rows: []*models.MonthlyRevenue{
			{Month: "Jan", Revenue: 200000},
			{Month: "Feb", Revenue: 180000},
		},
	}
	mockPages := &mockPageCache{}

	svc := NewDashboardService(invoiceRepo, customerRepo, revenueRepo, mockPages, time.Minute, testLogger())

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.NumberOfInvoices != 2 {
		t.Errorf("Summary() invoices = %d, want 2", summary.NumberOfInvoices)
	}
	if summary.NumberOfCustomers != 3 {
		t.Errorf("Summary() customers = %d, want 3", summary.NumberOfCustomers)
	}
	if summary.TotalPaidInvoices != "$45.00" {
		t.Errorf("Summary() paid = %q, want %q", summary.TotalPaidInvoices, "$45.00")
	}
	if summary.TotalPendingInvoices != "$1,234.56" {
		t.Errorf("Summary() pending = %q, want %q", summary.TotalPendingInvoices, "$1,234.56")
	}
	if len(summary.Revenue) != 2 {
		t.Errorf("Summary() revenue has %d months, want 2", len(summary.Revenue))
	}

	if len(summary.LatestInvoices) != 2 {
		t.Fatalf("Summary() latest has %d invoices, want 2", len(summary.LatestInvoices))
	}
	latest := summary.LatestInvoices[0]
	if latest.Name != "Acme Corp" || latest.Amount != "$45.00" {
		t.Errorf("Summary() latest[0] = %+v", latest)
	}

	// The assembled payload is cached for the next read
	if mockPages.setCalls != 1 {
		t.Errorf("Summary() stored %d pages, want 1", mockPages.setCalls)
	}
}

func TestDashboardService_Summary_ServedFromCache(t *testing.T) {
	cached := &DashboardSummary{
		NumberOfInvoices:     7,
		NumberOfCustomers:    4,
		TotalPaidInvoices:    "$10.00",
		TotalPendingInvoices: "$20.00",
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		t.Fatal(err)
	}

	// A repository that fails on first touch proves the cached payload is
	// served without consulting storage
	invoiceRepo := &mockInvoiceRepository{totalsErr: errors.New("must not be called")}
	customerRepo := &mockCustomerRepository{countErr: errors.New("must not be called")}
	revenueRepo := &mockRevenueRepository{err: errors.New("must not be called")}
	mockPages := &mockPageCache{pages: map[string][]byte{DashboardPath: payload}}

	svc := NewDashboardService(invoiceRepo, customerRepo, revenueRepo, mockPages, time.Minute, testLogger())

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.NumberOfInvoices != 7 || summary.NumberOfCustomers != 4 {
		t.Errorf("Summary() = %+v, want the cached payload", summary)
	}
}

func TestDashboardService_Summary_StorageFailure(t *testing.T) {
	invoiceRepo := &mockInvoiceRepository{totalsErr: errors.New("connection refused")}
	customerRepo := &mockCustomerRepository{}
	revenueRepo := &mockRevenueRepository{}
	mockPages := &mockPageCache{}

	svc := NewDashboardService(invoiceRepo, customerRepo, revenueRepo, mockPages, time.Minute, testLogger())

	_, err := svc.Summary(context.Background())
	if err == nil {
		t.Fatal("Summary() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "failed to load invoice totals") {
		t.Errorf("Summary() error = %v", err)
	}

	if mockPages.setCalls != 0 {
		t.Errorf("Summary() stored %d pages after a failed read", mockPages.setCalls)
	}
}
