package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"invoicing-dashboard-backend/internal/models"
)

func TestCustomerRepository_Create(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectExec(`INSERT INTO customers .+ ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("cust-1", "Acme Corp", "billing@acme.test", "/customers/acme.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCustomerRepository(mockDB)
	err = repo.Create(context.Background(), &models.Customer{
		ID:       "cust-1",
		Name:     "Acme Corp",
		Email:    "billing@acme.test",
		ImageURL: "/customers/acme.png",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Create_CollidingIDIsNoOp(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	// ON CONFLICT DO NOTHING reports zero rows for a duplicate id; the
	// existing row wins and the insert still succeeds
	mock.ExpectExec(`INSERT INTO customers .+ ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("cust-1", "Acme Corp", "billing@acme.test", "/customers/acme.png").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCustomerRepository(mockDB)
	err = repo.Create(context.Background(), &models.Customer{
		ID:       "cust-1",
		Name:     "Acme Corp",
		Email:    "billing@acme.test",
		ImageURL: "/customers/acme.png",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Create_Failure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO customers").
		WillReturnError(errors.New("connection refused"))

	repo := NewCustomerRepository(mockDB)
	err = repo.Create(context.Background(), &models.Customer{ID: "cust-1", Name: "Acme Corp"})

	assert.ErrorContains(t, err, "failed to create customer")
}

func TestCustomerRepository_Update_MissingRowIsNoOp(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectExec("UPDATE customers").
		WithArgs("Acme Corp", "billing@acme.test", "/customers/acme.png", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCustomerRepository(mockDB)
	err = repo.Update(context.Background(), &models.Customer{
		ID:       "missing",
		Name:     "Acme Corp",
		Email:    "billing@acme.test",
		ImageURL: "/customers/acme.png",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Delete_MissingRowIsNoOp(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectExec("DELETE FROM customers").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCustomerRepository(mockDB)
	err = repo.Delete(context.Background(), "missing")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ListWithTotals(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid"}).
		AddRow("cust-1", "Acme Corp", "billing@acme.test", "/customers/acme.png", 3, 12050, 4500).
		AddRow("cust-2", "Globex", "ap@globex.test", "/customers/globex.png", 0, 0, 0)

	mock.ExpectQuery("SELECT customers.id, customers.name").
		WithArgs("%%").
		WillReturnRows(rows)

	repo := NewCustomerRepository(mockDB)
	customers, err := repo.ListWithTotals(context.Background(), models.CustomerFilter{})

	assert.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, int64(3), customers[0].TotalInvoices)
	assert.Equal(t, int64(12050), customers[0].TotalPending)
	assert.Equal(t, int64(4500), customers[0].TotalPaid)

	// A customer with no invoices still lists with zero totals
	assert.Equal(t, int64(0), customers[1].TotalInvoices)
}

func TestCustomerRepository_Options(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("cust-1", "Acme Corp").
		AddRow("cust-2", "Globex")

	mock.ExpectQuery("SELECT id, name FROM customers").WillReturnRows(rows)

	repo := NewCustomerRepository(mockDB)
	options, err := repo.Options(context.Background())

	assert.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Equal(t, "Acme Corp", options[0].Name)
}

func TestCustomerRepository_CountAll(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	repo := NewCustomerRepository(mockDB)
	count, err := repo.CountAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
