package service

import (
	"context"

	"marmitaria/internal/domain"
	"marmitaria/internal/repository"
)

// Store is the persistence surface the service depends on, implemented
// by *repository.Repository and mocked in tests.
type Store interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, input repository.CustomerCreateInput) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input repository.CustomerUpdateInput) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, input repository.SupplierCreateInput) (domain.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, input repository.SupplierUpdateInput) (domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	CreateIngredient(ctx context.Context, input repository.IngredientCreateInput) (domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, id int64, input repository.IngredientUpdateInput) (domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, id int64) error
	UpsertIngredientCosts(ctx context.Context, rows []domain.IngredientPriceRow) (domain.PriceImportResult, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, input repository.ProductCreateInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, input repository.ExpenseCreateInput) (*domain.Expense, error)
	UpdateExpenseStatus(ctx context.Context, id int64, input repository.ExpenseStatusInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	ListSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, input repository.SaleCreateInput) (*domain.Sale, error)
}
