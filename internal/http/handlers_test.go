package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marmitaria/internal/domain"
	httpapi "marmitaria/internal/http"
	"marmitaria/internal/mocks"
	"marmitaria/internal/repository"
	"marmitaria/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store *mocks.Store) http.Handler {
	svc := service.New(store)
	handler := httpapi.NewHandler(svc, zerolog.Nop())
	return httpapi.NewRouter(handler, zerolog.Nop())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(new(mocks.Store))

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListIngredients(t *testing.T) {
	store := new(mocks.Store)
	store.On("ListIngredients", mock.Anything).Return([]domain.Ingredient{
		{ID: 1, Name: "Beans", Unit: "kg", Cost: 8},
		{ID: 2, Name: "Rice", Unit: "kg", Cost: 5},
	}, nil)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Beans", got[0].Name)
	store.AssertExpectations(t)
}

func TestCreateIngredientAcceptsStringNumbers(t *testing.T) {
	store := new(mocks.Store)
	store.On("CreateIngredient", mock.Anything, repository.IngredientCreateInput{
		Name: "Rice",
		Unit: "kg",
		Cost: 5.5,
	}).Return(domain.Ingredient{ID: 1, Name: "Rice", Unit: "kg", Cost: 5.5}, nil)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", map[string]any{
		"name": "Rice",
		"unit": "kg",
		"cost": "5.50",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestCreateIngredientRejectsMalformedNumber(t *testing.T) {
	router := newTestRouter(new(mocks.Store))

	w := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", map[string]any{
		"name": "Rice",
		"unit": "kg",
		"cost": "five",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	store := new(mocks.Store)
	store.On("UpdateCustomer", mock.Anything, int64(99), mock.Anything).
		Return(domain.Customer{}, repository.ErrNotFound)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPut, "/api/v1/customers/99", map[string]any{
		"name": "Maria",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "customer not found")
}

func TestDeleteIngredientInUseConflicts(t *testing.T) {
	store := new(mocks.Store)
	store.On("DeleteIngredient", mock.Anything, int64(1)).
		Return(repository.ErrConstraint)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/ingredients/1", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteProductReturnsSuccess(t *testing.T) {
	store := new(mocks.Store)
	store.On("DeleteProduct", mock.Anything, int64(4)).Return(nil)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/products/4", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	store.AssertExpectations(t)
}

func TestDeleteProductInvalidID(t *testing.T) {
	router := newTestRouter(new(mocks.Store))

	w := doJSON(t, router, http.MethodDelete, "/api/v1/products/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSale(t *testing.T) {
	store := new(mocks.Store)
	store.On("CreateSale", mock.Anything, repository.SaleCreateInput{
		CustomerID:    func() *int64 { v := int64(7); return &v }(),
		PaymentMethod: "Cash",
		PaymentStatus: "Pending",
		Items: []repository.SaleLineInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 12.00},
			{ProductID: 2, Quantity: 1, UnitPrice: 5.50},
		},
	}).Return(&domain.Sale{ID: 1, TotalAmount: 29.50, PaymentStatus: "Pending"}, nil)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sales", map[string]any{
		"customer_id":    "7",
		"payment_method": "Cash",
		"payment_status": "Pending",
		"items": []map[string]any{
			{"product_id": "1", "quantity": 2, "unit_price": "12.00"},
			{"product_id": "2", "quantity": 1, "unit_price": 5.50},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var got domain.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 29.50, got.TotalAmount, 1e-9)
	store.AssertExpectations(t)
}

func TestCreateSaleRejectsUnknownStatus(t *testing.T) {
	store := new(mocks.Store)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sales", map[string]any{
		"payment_method": "Cash",
		"payment_status": "Later",
		"items": []map[string]any{
			{"product_id": 1, "quantity": 1, "unit_price": 10},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "CreateSale")
}

func TestCreateSaleRejectsNegativeCustomerID(t *testing.T) {
	store := new(mocks.Store)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sales", map[string]any{
		"customer_id":    -1,
		"payment_method": "Cash",
		"payment_status": "Paid",
		"items": []map[string]any{
			{"product_id": 1, "quantity": 1, "unit_price": 10},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid customer_id")
	store.AssertNotCalled(t, "CreateSale")
}

func TestCreateExpenseRejectsNegativeSupplierID(t *testing.T) {
	store := new(mocks.Store)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/expenses", map[string]any{
		"description": "Gas refill",
		"amount":      120,
		"supplier_id": "-2",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid supplier_id")
	store.AssertNotCalled(t, "CreateExpense")
}

func TestInvalidJSONBody(t *testing.T) {
	router := newTestRouter(new(mocks.Store))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinancialSummary(t *testing.T) {
	store := new(mocks.Store)
	store.On("ListExpenses", mock.Anything).Return([]domain.Expense{
		{Amount: 100, Status: domain.ExpenseStatusPending},
		{Amount: 40, Status: domain.ExpenseStatusPaid},
	}, nil)
	store.On("ListCustomers", mock.Anything).Return([]domain.Customer{
		{Balance: 29.50},
	}, nil)
	store.On("ListSales", mock.Anything).Return([]domain.Sale{
		{TotalAmount: 29.50},
	}, nil)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/financial-summary", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.FinancialSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 100.0, got.PendingExpensesTotal, 1e-9)
	assert.InDelta(t, 40.0, got.PaidExpensesTotal, 1e-9)
	assert.InDelta(t, 29.50, got.TotalReceivables, 1e-9)
	assert.Equal(t, 1, got.SalesCount)
}

func TestListSalesServerFault(t *testing.T) {
	store := new(mocks.Store)
	store.On("ListSales", mock.Anything).Return(nil, assert.AnError)
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/v1/sales", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "operation failed")
}
