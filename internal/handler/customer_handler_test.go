package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"invoicing-dashboard-backend/internal/models"
	"invoicing-dashboard-backend/internal/service"
)

// stubCustomerService returns canned results and records calls
type stubCustomerService struct {
	err        error
	listResult *service.CustomerListResult
	options    []*models.CustomerOption

	createdForms []url.Values
	updatedIDs   []string
	deletedIDs   []string
}

func (s *stubCustomerService) Create(ctx context.Context, form url.Values) error {
	s.createdForms = append(s.createdForms, form)
	return s.err
}

func (s *stubCustomerService) Update(ctx context.Context, id string, form url.Values) error {
	s.updatedIDs = append(s.updatedIDs, id)
	return s.err
}

func (s *stubCustomerService) Delete(ctx context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.err
}

func (s *stubCustomerService) List(ctx context.Context, filter models.CustomerFilter) (*service.CustomerListResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listResult, nil
}

func (s *stubCustomerService) Options(ctx context.Context) ([]*models.CustomerOption, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.options, nil
}

func newCustomerRouter(svc service.CustomerService) http.Handler {
	h := NewCustomerHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Get("/dashboard/customers", h.ListCustomers)
	r.Get("/dashboard/customers/options", h.CustomerOptions)
	r.Post("/dashboard/customers", h.CreateCustomer)
	r.Post("/dashboard/customers/{id}", h.UpdateCustomer)
	r.Post("/dashboard/customers/{id}/delete", h.DeleteCustomer)
	return r
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	svc := &stubCustomerService{}
	router := newCustomerRouter(svc)

	form := url.Values{
		"name":  {"Acme Corp"},
		"email": {"billing@acme.test"},
		"image": {"https://cdn.acme.test/acme.png"},
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/dashboard/customers", form))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/dashboard/customers" {
		t.Errorf("Location = %q, want %q", got, "/dashboard/customers")
	}
	if len(svc.createdForms) != 1 {
		t.Errorf("service received %d create calls, want 1", len(svc.createdForms))
	}
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	svc := &stubCustomerService{}
	router := newCustomerRouter(svc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/dashboard/customers/cust-3", url.Values{"name": {"Acme Corp"}}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if len(svc.updatedIDs) != 1 || svc.updatedIDs[0] != "cust-3" {
		t.Errorf("service received update for %v, want [cust-3]", svc.updatedIDs)
	}
}

func TestCustomerHandler_DeleteCustomer(t *testing.T) {
	svc := &stubCustomerService{}
	router := newCustomerRouter(svc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, postForm("/dashboard/customers/cust-3/delete", url.Values{}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if len(svc.deletedIDs) != 1 || svc.deletedIDs[0] != "cust-3" {
		t.Errorf("service received delete for %v, want [cust-3]", svc.deletedIDs)
	}
}

func TestCustomerHandler_CustomerOptions(t *testing.T) {
	svc := &stubCustomerService{
		options: []*models.CustomerOption{
			{ID: "cust-1", Name: "Acme Corp"},
			{ID: "cust-2", Name: "Globex"},
		},
	}
	router := newCustomerRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/customers/options", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var options []*models.CustomerOption
	if err := json.Unmarshal(rr.Body.Bytes(), &options); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(options) != 2 || options[0].Name != "Acme Corp" {
		t.Errorf("options = %+v", options)
	}
}
