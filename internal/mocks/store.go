package mocks

import (
	"context"

	"marmitaria/internal/domain"
	"marmitaria/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Store is a testify mock of the service.Store interface.
type Store struct {
	mock.Mock
}

func (m *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *Store) CreateCustomer(ctx context.Context, input repository.CustomerCreateInput) (domain.Customer, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *Store) UpdateCustomer(ctx context.Context, id int64, input repository.CustomerUpdateInput) (domain.Customer, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Customer), args.Error(1)
}

func (m *Store) DeleteCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *Store) CreateSupplier(ctx context.Context, input repository.SupplierCreateInput) (domain.Supplier, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *Store) UpdateSupplier(ctx context.Context, id int64, input repository.SupplierUpdateInput) (domain.Supplier, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Supplier), args.Error(1)
}

func (m *Store) DeleteSupplier(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

func (m *Store) CreateIngredient(ctx context.Context, input repository.IngredientCreateInput) (domain.Ingredient, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Ingredient), args.Error(1)
}

func (m *Store) UpdateIngredient(ctx context.Context, id int64, input repository.IngredientUpdateInput) (domain.Ingredient, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Ingredient), args.Error(1)
}

func (m *Store) DeleteIngredient(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) UpsertIngredientCosts(ctx context.Context, rows []domain.IngredientPriceRow) (domain.PriceImportResult, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(domain.PriceImportResult), args.Error(1)
}

func (m *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *Store) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *Store) CreateProduct(ctx context.Context, input repository.ProductCreateInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *Store) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *Store) CreateExpense(ctx context.Context, input repository.ExpenseCreateInput) (*domain.Expense, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *Store) UpdateExpenseStatus(ctx context.Context, id int64, input repository.ExpenseStatusInput) (*domain.Expense, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *Store) DeleteExpense(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *Store) CreateSale(ctx context.Context, input repository.SaleCreateInput) (*domain.Sale, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
