package repository

import (
	"context"
	"database/sql"
	"errors"

	"marmitaria/internal/domain"

	"github.com/jackc/pgx/v5"
)

type SaleLineInput struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

type SaleCreateInput struct {
	CustomerID    *int64
	PaymentMethod string
	PaymentStatus string
	Items         []SaleLineInput
}

const saleColumns = `
	sa.id,
	sa.customer_id,
	sa.total_amount::double precision,
	sa.payment_method,
	sa.payment_status,
	sa.created_at,
	c.id,
	c.name,
	c.phone,
	c.address,
	c.balance::double precision,
	c.created_at,
	c.updated_at
`

const saleFrom = `
	FROM sales sa
	LEFT JOIN customers c ON c.id = sa.customer_id
`

func (r *Repository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+saleColumns+saleFrom+" ORDER BY sa.created_at DESC, sa.id DESC")
	if err != nil {
		return nil, wrapDBError("list sales", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, wrapDBError("scan sale", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate sales", err)
	}

	if err := r.attachSaleItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *Repository) GetSaleByID(ctx context.Context, id int64) (*domain.Sale, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+saleColumns+saleFrom+" WHERE sa.id = $1", id)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError("get sale", err)
	}

	list := []domain.Sale{sale}
	if err := r.attachSaleItems(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CreateSale persists the sale and its items in one transaction. The
// total is computed here, once, from the submitted unit prices; later
// product price changes never touch it. When a customer is referenced
// and the payment is pending, that customer's balance is incremented by
// the total inside the same transaction. Balances only ever increase via
// sales; reconciliation/payment-received flows are out of scope, so the
// only way down is a direct customer balance overwrite.
func (r *Repository) CreateSale(ctx context.Context, input SaleCreateInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, invalidInput("items are required")
	}

	items := make([]domain.SaleItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.ProductID <= 0 {
			return nil, invalidInput("product_id is required on every item")
		}
		if line.Quantity < 1 {
			return nil, invalidInput("quantity must be at least 1")
		}
		if line.UnitPrice < 0 {
			return nil, invalidInput("unit_price cannot be negative")
		}
		items = append(items, domain.SaleItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	total := domain.SaleTotal(items)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, wrapDBError("begin create sale tx", err)
	}
	defer tx.Rollback(ctx)

	var saleID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO sales (customer_id, total_amount, payment_method, payment_status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, input.CustomerID, total, input.PaymentMethod, input.PaymentStatus).Scan(&saleID); err != nil {
		return nil, wrapDBError("insert sale", err)
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, saleID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, wrapDBError("insert sale item", err)
		}
	}

	if input.CustomerID != nil && input.PaymentStatus == domain.PaymentStatusPending {
		if _, err := tx.Exec(ctx, `
			UPDATE customers
			SET balance = balance + $2, updated_at = NOW()
			WHERE id = $1
		`, *input.CustomerID, total); err != nil {
			return nil, wrapDBError("increment customer balance", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapDBError("commit create sale tx", err)
	}

	return r.GetSaleByID(ctx, saleID)
}

// attachSaleItems loads the line items for every sale in one query, with
// the referenced product row expanded.
func (r *Repository) attachSaleItems(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(sales))
	index := make(map[int64]int, len(sales))
	for i := range sales {
		sales[i].Items = make([]domain.SaleItem, 0)
		ids = append(ids, sales[i].ID)
		index[sales[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			si.id,
			si.sale_id,
			si.product_id,
			si.quantity,
			si.unit_price::double precision,
			p.id,
			p.name,
			p.description,
			p.price::double precision,
			p.created_at,
			p.updated_at
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.id ASC
	`, ids)
	if err != nil {
		return wrapDBError("load sale items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item        domain.SaleItem
			product     domain.Product
			description sql.NullString
		)
		if err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&product.ID,
			&product.Name,
			&description,
			&product.Price,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return wrapDBError("scan sale item", err)
		}
		if description.Valid {
			value := description.String
			product.Description = &value
		}
		product.Ingredients = make([]domain.ProductIngredient, 0)
		item.Product = &product
		if i, ok := index[item.SaleID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapDBError("iterate sale items", err)
	}
	return nil
}

func scanSale(row pgx.Row) (domain.Sale, error) {
	var (
		s          domain.Sale
		customerID sql.NullInt64
		cID        sql.NullInt64
		cName      sql.NullString
		cPhone     sql.NullString
		cAddress   sql.NullString
		cBalance   sql.NullFloat64
		cCreated   sql.NullTime
		cUpdated   sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&customerID,
		&s.TotalAmount,
		&s.PaymentMethod,
		&s.PaymentStatus,
		&s.CreatedAt,
		&cID,
		&cName,
		&cPhone,
		&cAddress,
		&cBalance,
		&cCreated,
		&cUpdated,
	); err != nil {
		return domain.Sale{}, err
	}
	if customerID.Valid {
		value := customerID.Int64
		s.CustomerID = &value
	}
	if cID.Valid {
		customer := domain.Customer{
			ID:        cID.Int64,
			Name:      cName.String,
			Balance:   cBalance.Float64,
			CreatedAt: cCreated.Time,
			UpdatedAt: cUpdated.Time,
		}
		if cPhone.Valid {
			value := cPhone.String
			customer.Phone = &value
		}
		if cAddress.Valid {
			value := cAddress.String
			customer.Address = &value
		}
		s.Customer = &customer
	}
	return s, nil
}
