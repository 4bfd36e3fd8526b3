package domain

import "time"

const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"

	ExpenseStatusPaid    = "Paid"
	ExpenseStatusPending = "Pending"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   *string   `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Price       float64             `json:"price"`
	Ingredients []ProductIngredient `json:"ingredients"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`

	// Derived on read, never stored. MarginPercent is a pointer because
	// JSON has no encoding for the Inf a zero price would produce.
	Cost          float64  `json:"cost"`
	Margin        float64  `json:"margin"`
	MarginPercent *float64 `json:"margin_percent,omitempty"`
}

type ProductIngredient struct {
	ID           int64       `json:"id"`
	ProductID    int64       `json:"product_id"`
	IngredientID int64       `json:"ingredient_id"`
	Quantity     float64     `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}

type Expense struct {
	ID            int64      `json:"id"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	SupplierID    *int64     `json:"supplier_id,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PaidDate      *time.Time `json:"paid_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Supplier      *Supplier  `json:"supplier,omitempty"`
}

type Sale struct {
	ID            int64      `json:"id"`
	CustomerID    *int64     `json:"customer_id,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
	Customer      *Customer  `json:"customer,omitempty"`
	Items         []SaleItem `json:"items"`
}

type SaleItem struct {
	ID        int64    `json:"id"`
	SaleID    int64    `json:"sale_id"`
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Product   *Product `json:"product,omitempty"`
}

type IngredientPriceRow struct {
	Name string  `json:"name"`
	Unit *string `json:"unit,omitempty"`
	Cost float64 `json:"cost"`
}

type PriceImportResult struct {
	TotalRows      int      `json:"total_rows"`
	MatchedRows    int      `json:"matched_rows"`
	Updated        int      `json:"updated"`
	UnmatchedCount int      `json:"unmatched_count"`
	UnmatchedNames []string `json:"unmatched_names,omitempty"`
}

type FinancialSummary struct {
	PendingExpensesTotal float64 `json:"pending_expenses_total"`
	PaidExpensesTotal    float64 `json:"paid_expenses_total"`
	TotalReceivables     float64 `json:"total_receivables"`
	TotalSales           float64 `json:"total_sales"`
	SalesCount           int     `json:"sales_count"`
	PendingExpensesCount int     `json:"pending_expenses_count"`
}
