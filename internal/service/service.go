package service

import (
	"context"
	"fmt"
	"strings"

	"marmitaria/internal/domain"
	"marmitaria/internal/repository"
)

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, input repository.CustomerCreateInput) (domain.Customer, error) {
	input.Phone = normalizeNullable(input.Phone)
	input.Address = normalizeNullable(input.Address)
	return s.store.CreateCustomer(ctx, input)
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, input repository.CustomerUpdateInput) (domain.Customer, error) {
	input.Phone = normalizeNullable(input.Phone)
	input.Address = normalizeNullable(input.Address)
	return s.store.UpdateCustomer(ctx, id, input)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.store.DeleteCustomer(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.store.ListSuppliers(ctx)
}

func (s *Service) CreateSupplier(ctx context.Context, input repository.SupplierCreateInput) (domain.Supplier, error) {
	input.Contact = normalizeNullable(input.Contact)
	return s.store.CreateSupplier(ctx, input)
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, input repository.SupplierUpdateInput) (domain.Supplier, error) {
	input.Contact = normalizeNullable(input.Contact)
	return s.store.UpdateSupplier(ctx, id, input)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.store.DeleteSupplier(ctx, id)
}

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.store.ListIngredients(ctx)
}

func (s *Service) CreateIngredient(ctx context.Context, input repository.IngredientCreateInput) (domain.Ingredient, error) {
	return s.store.CreateIngredient(ctx, input)
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, input repository.IngredientUpdateInput) (domain.Ingredient, error) {
	return s.store.UpdateIngredient(ctx, id, input)
}

func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	return s.store.DeleteIngredient(ctx, id)
}

func (s *Service) ImportIngredientPrices(ctx context.Context, rows []domain.IngredientPriceRow) (domain.PriceImportResult, error) {
	if len(rows) == 0 {
		return domain.PriceImportResult{}, fmt.Errorf("%w: price file has no data rows", repository.ErrInvalidInput)
	}
	return s.store.UpsertIngredientCosts(ctx, rows)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		enrichProduct(&products[i])
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enrichProduct(product)
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, input repository.ProductCreateInput) (*domain.Product, error) {
	input.Description = normalizeNullable(input.Description)
	product, err := s.store.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	enrichProduct(product)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.store.ListExpenses(ctx)
}

func (s *Service) CreateExpense(ctx context.Context, input repository.ExpenseCreateInput) (*domain.Expense, error) {
	input.PaymentMethod = normalizeNullable(input.PaymentMethod)
	input.Status = strings.TrimSpace(input.Status)
	if input.Status == "" {
		input.Status = domain.ExpenseStatusPending
	}
	if err := validateExpenseStatus(input.Status); err != nil {
		return nil, err
	}
	return s.store.CreateExpense(ctx, input)
}

func (s *Service) UpdateExpenseStatus(ctx context.Context, id int64, input repository.ExpenseStatusInput) (*domain.Expense, error) {
	input.Status = strings.TrimSpace(input.Status)
	if err := validateExpenseStatus(input.Status); err != nil {
		return nil, err
	}
	return s.store.UpdateExpenseStatus(ctx, id, input)
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	return s.store.DeleteExpense(ctx, id)
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.store.ListSales(ctx)
}

func (s *Service) CreateSale(ctx context.Context, input repository.SaleCreateInput) (*domain.Sale, error) {
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	if input.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment_method is required", repository.ErrInvalidInput)
	}
	input.PaymentStatus = strings.TrimSpace(input.PaymentStatus)
	if input.PaymentStatus != domain.PaymentStatusPaid && input.PaymentStatus != domain.PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment_status must be %q or %q",
			repository.ErrInvalidInput, domain.PaymentStatusPaid, domain.PaymentStatusPending)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: items are required", repository.ErrInvalidInput)
	}
	return s.store.CreateSale(ctx, input)
}

// FinancialSummary loads the ledgers and reduces them in memory; volumes
// here are small-business sized, so no SQL aggregation is needed.
func (s *Service) FinancialSummary(ctx context.Context) (domain.FinancialSummary, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return domain.FinancialSummary{}, err
	}
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return domain.FinancialSummary{}, err
	}
	sales, err := s.store.ListSales(ctx)
	if err != nil {
		return domain.FinancialSummary{}, err
	}

	pending := func(e domain.Expense) bool { return e.Status == domain.ExpenseStatusPending }
	paid := func(e domain.Expense) bool { return e.Status == domain.ExpenseStatusPaid }
	amount := func(e domain.Expense) float64 { return e.Amount }

	return domain.FinancialSummary{
		PendingExpensesTotal: domain.SumWhere(expenses, pending, amount),
		PaidExpensesTotal:    domain.SumWhere(expenses, paid, amount),
		TotalReceivables: domain.SumWhere(customers,
			func(c domain.Customer) bool { return c.Balance > 0 },
			func(c domain.Customer) float64 { return c.Balance }),
		TotalSales:           domain.SumBy(sales, func(s domain.Sale) float64 { return s.TotalAmount }),
		SalesCount:           len(sales),
		PendingExpensesCount: domain.CountWhere(expenses, pending),
	}, nil
}

func enrichProduct(p *domain.Product) {
	p.Cost = domain.ProductCost(*p)
	p.Margin = domain.ProductMargin(*p)
	p.MarginPercent = nil
	if p.Price != 0 {
		percent := domain.MarginPercent(*p)
		p.MarginPercent = &percent
	}
}

func validateExpenseStatus(status string) error {
	if status != domain.ExpenseStatusPending && status != domain.ExpenseStatusPaid {
		return fmt.Errorf("%w: status must be %q or %q",
			repository.ErrInvalidInput, domain.ExpenseStatusPending, domain.ExpenseStatusPaid)
	}
	return nil
}

func normalizeNullable(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
