package service_test

import (
	"context"
	"testing"

	"marmitaria/internal/domain"
	"marmitaria/internal/mocks"
	"marmitaria/internal/repository"
	"marmitaria/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func int64ptr(v int64) *int64 { return &v }

func TestCreateSaleValidation(t *testing.T) {
	tests := []struct {
		name  string
		input repository.SaleCreateInput
	}{
		{
			name: "missing payment method",
			input: repository.SaleCreateInput{
				PaymentStatus: domain.PaymentStatusPaid,
				Items:         []repository.SaleLineInput{{ProductID: 1, Quantity: 1, UnitPrice: 10}},
			},
		},
		{
			name: "unknown payment status",
			input: repository.SaleCreateInput{
				PaymentMethod: "Cash",
				PaymentStatus: "Later",
				Items:         []repository.SaleLineInput{{ProductID: 1, Quantity: 1, UnitPrice: 10}},
			},
		},
		{
			name: "no items",
			input: repository.SaleCreateInput{
				PaymentMethod: "Cash",
				PaymentStatus: domain.PaymentStatusPaid,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mocks.Store)
			svc := service.New(store)

			_, err := svc.CreateSale(context.Background(), tc.input)

			assert.ErrorIs(t, err, repository.ErrInvalidInput)
			store.AssertNotCalled(t, "CreateSale")
		})
	}
}

func TestCreateSaleDelegates(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	input := repository.SaleCreateInput{
		CustomerID:    int64ptr(7),
		PaymentMethod: "Pix",
		PaymentStatus: domain.PaymentStatusPending,
		Items: []repository.SaleLineInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 12.00},
			{ProductID: 2, Quantity: 1, UnitPrice: 5.50},
		},
	}
	created := &domain.Sale{ID: 3, TotalAmount: 29.50, PaymentStatus: domain.PaymentStatusPending}
	store.On("CreateSale", context.Background(), input).Return(created, nil)

	sale, err := svc.CreateSale(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, created, sale)
	store.AssertExpectations(t)
}

func TestCreateExpenseDefaultsToPending(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	expected := repository.ExpenseCreateInput{
		Description: "Gas refill",
		Amount:      120,
		Status:      domain.ExpenseStatusPending,
	}
	store.On("CreateExpense", context.Background(), expected).
		Return(&domain.Expense{ID: 1, Status: domain.ExpenseStatusPending}, nil)

	_, err := svc.CreateExpense(context.Background(), repository.ExpenseCreateInput{
		Description: "Gas refill",
		Amount:      120,
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCreateExpenseRejectsUnknownStatus(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	_, err := svc.CreateExpense(context.Background(), repository.ExpenseCreateInput{
		Description: "Gas refill",
		Amount:      120,
		Status:      "Overdue",
	})

	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	store.AssertNotCalled(t, "CreateExpense")
}

func TestUpdateExpenseStatusValidates(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	_, err := svc.UpdateExpenseStatus(context.Background(), 1, repository.ExpenseStatusInput{Status: ""})

	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	store.AssertNotCalled(t, "UpdateExpenseStatus")
}

func TestListProductsEnrichesDerivedValues(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	rice := domain.Ingredient{ID: 1, Name: "Rice", Unit: "kg", Cost: 5.00}
	store.On("ListProducts", context.Background()).Return([]domain.Product{
		{
			ID:    1,
			Name:  "Marmita P",
			Price: 10.00,
			Ingredients: []domain.ProductIngredient{
				{ID: 1, ProductID: 1, IngredientID: 1, Quantity: 0.5, Ingredient: &rice},
			},
		},
		{ID: 2, Name: "Brinde", Price: 0},
	}, nil)

	products, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.InDelta(t, 2.50, products[0].Cost, 1e-9)
	assert.InDelta(t, 7.50, products[0].Margin, 1e-9)
	require.NotNil(t, products[0].MarginPercent)
	assert.InDelta(t, 75.0, *products[0].MarginPercent, 1e-9)

	// a zero price has no representable margin percent
	assert.Zero(t, products[1].Cost)
	assert.Nil(t, products[1].MarginPercent)
}

func TestFinancialSummary(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	store.On("ListExpenses", context.Background()).Return([]domain.Expense{
		{Amount: 100, Status: domain.ExpenseStatusPending},
		{Amount: 60, Status: domain.ExpenseStatusPending},
		{Amount: 40, Status: domain.ExpenseStatusPaid},
	}, nil)
	store.On("ListCustomers", context.Background()).Return([]domain.Customer{
		{Balance: 50},
		{Balance: -5},
		{Balance: 29.50},
	}, nil)
	store.On("ListSales", context.Background()).Return([]domain.Sale{
		{TotalAmount: 29.50},
		{TotalAmount: 100},
	}, nil)

	summary, err := svc.FinancialSummary(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 160.0, summary.PendingExpensesTotal, 1e-9)
	assert.InDelta(t, 40.0, summary.PaidExpensesTotal, 1e-9)
	assert.InDelta(t, 79.50, summary.TotalReceivables, 1e-9)
	assert.InDelta(t, 129.50, summary.TotalSales, 1e-9)
	assert.Equal(t, 2, summary.SalesCount)
	assert.Equal(t, 2, summary.PendingExpensesCount)
}

func TestImportIngredientPricesRequiresRows(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	_, err := svc.ImportIngredientPrices(context.Background(), nil)

	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	store.AssertNotCalled(t, "UpsertIngredientCosts")
}

func TestCreateCustomerNormalizesBlankOptionals(t *testing.T) {
	store := new(mocks.Store)
	svc := service.New(store)

	expected := repository.CustomerCreateInput{Name: "Maria", Phone: nil, Address: strptr("Rua A, 10")}
	store.On("CreateCustomer", context.Background(), expected).
		Return(domain.Customer{ID: 1, Name: "Maria"}, nil)

	_, err := svc.CreateCustomer(context.Background(), repository.CustomerCreateInput{
		Name:    "Maria",
		Phone:   strptr("   "),
		Address: strptr(" Rua A, 10 "),
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}
