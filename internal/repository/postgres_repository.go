package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"marmitaria/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type CustomerCreateInput struct {
	Name    string
	Phone   *string
	Address *string
}

type CustomerUpdateInput struct {
	Name    string
	Phone   *string
	Address *string
}

type SupplierCreateInput struct {
	Name    string
	Contact *string
}

type SupplierUpdateInput struct {
	Name    string
	Contact *string
}

type IngredientCreateInput struct {
	Name string
	Unit string
	Cost float64
}

type IngredientUpdateInput struct {
	Name string
	Unit string
	Cost float64
}

const customerColumns = `
	id,
	name,
	phone,
	address,
	balance::double precision,
	created_at,
	updated_at
`

func (r *Repository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, wrapDBError("list customers", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, wrapDBError("scan customer", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate customers", err)
	}
	return customers, nil
}

func (r *Repository) CreateCustomer(ctx context.Context, input CustomerCreateInput) (domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Customer{}, invalidInput("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address)
		VALUES ($1, $2, $3)
		RETURNING `+customerColumns,
		name, input.Phone, input.Address)
	customer, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, wrapDBError("create customer", err)
	}
	return customer, nil
}

func (r *Repository) UpdateCustomer(ctx context.Context, id int64, input CustomerUpdateInput) (domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Customer{}, invalidInput("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+customerColumns,
		id, name, input.Phone, input.Address)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, ErrNotFound
		}
		return domain.Customer{}, wrapDBError("update customer", err)
	}
	return customer, nil
}

func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return wrapDBError("delete customer", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const supplierColumns = `
	id,
	name,
	contact,
	created_at,
	updated_at
`

func (r *Repository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, wrapDBError("list suppliers", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, wrapDBError("scan supplier", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate suppliers", err)
	}
	return suppliers, nil
}

func (r *Repository) CreateSupplier(ctx context.Context, input SupplierCreateInput) (domain.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Supplier{}, invalidInput("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact)
		VALUES ($1, $2)
		RETURNING `+supplierColumns,
		name, input.Contact)
	supplier, err := scanSupplier(row)
	if err != nil {
		return domain.Supplier{}, wrapDBError("create supplier", err)
	}
	return supplier, nil
}

func (r *Repository) UpdateSupplier(ctx context.Context, id int64, input SupplierUpdateInput) (domain.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Supplier{}, invalidInput("name is required")
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $2, contact = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+supplierColumns,
		id, name, input.Contact)
	supplier, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Supplier{}, ErrNotFound
		}
		return domain.Supplier{}, wrapDBError("update supplier", err)
	}
	return supplier, nil
}

func (r *Repository) DeleteSupplier(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return wrapDBError("delete supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const ingredientColumns = `
	id,
	name,
	unit,
	cost::double precision,
	created_at,
	updated_at
`

func (r *Repository) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ingredientColumns+`
		FROM ingredients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, wrapDBError("list ingredients", err)
	}
	defer rows.Close()

	ingredients := make([]domain.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, wrapDBError("scan ingredient", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate ingredients", err)
	}
	return ingredients, nil
}

func (r *Repository) CreateIngredient(ctx context.Context, input IngredientCreateInput) (domain.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if name == "" {
		return domain.Ingredient{}, invalidInput("name is required")
	}
	if unit == "" {
		return domain.Ingredient{}, invalidInput("unit is required")
	}
	if input.Cost < 0 {
		return domain.Ingredient{}, invalidInput("cost cannot be negative")
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, unit, cost)
		VALUES ($1, $2, $3)
		RETURNING `+ingredientColumns,
		name, unit, input.Cost)
	ingredient, err := scanIngredient(row)
	if err != nil {
		return domain.Ingredient{}, wrapDBError("create ingredient", err)
	}
	return ingredient, nil
}

func (r *Repository) UpdateIngredient(ctx context.Context, id int64, input IngredientUpdateInput) (domain.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if name == "" {
		return domain.Ingredient{}, invalidInput("name is required")
	}
	if unit == "" {
		return domain.Ingredient{}, invalidInput("unit is required")
	}
	if input.Cost < 0 {
		return domain.Ingredient{}, invalidInput("cost cannot be negative")
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE ingredients
		SET name = $2, unit = $3, cost = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+ingredientColumns,
		id, name, unit, input.Cost)
	ingredient, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ingredient{}, ErrNotFound
		}
		return domain.Ingredient{}, wrapDBError("update ingredient", err)
	}
	return ingredient, nil
}

func (r *Repository) DeleteIngredient(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM ingredients WHERE id = $1", id)
	if err != nil {
		return wrapDBError("delete ingredient", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertIngredientCosts updates ingredient costs matched by
// case-insensitive name in one transaction. Rows that match nothing are
// reported back rather than created; the catalog stays curated by hand.
func (r *Repository) UpsertIngredientCosts(ctx context.Context, rowsIn []domain.IngredientPriceRow) (domain.PriceImportResult, error) {
	result := domain.PriceImportResult{TotalRows: len(rowsIn)}
	if len(rowsIn) == 0 {
		return result, invalidInput("price rows are required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return result, wrapDBError("begin price import tx", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rowsIn {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if row.Cost < 0 {
			return result, invalidInput("cost cannot be negative for %q", name)
		}

		var id int64
		err := tx.QueryRow(ctx,
			"SELECT id FROM ingredients WHERE LOWER(name) = LOWER($1)", name,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			result.UnmatchedCount++
			result.UnmatchedNames = append(result.UnmatchedNames, name)
			continue
		}
		if err != nil {
			return result, wrapDBError("match ingredient", err)
		}
		result.MatchedRows++

		if row.Unit != nil && strings.TrimSpace(*row.Unit) != "" {
			unit := strings.TrimSpace(*row.Unit)
			if _, err := tx.Exec(ctx, `
				UPDATE ingredients
				SET cost = $2, unit = $3, updated_at = NOW()
				WHERE id = $1
			`, id, row.Cost, unit); err != nil {
				return result, wrapDBError("update ingredient cost", err)
			}
		} else {
			if _, err := tx.Exec(ctx, `
				UPDATE ingredients
				SET cost = $2, updated_at = NOW()
				WHERE id = $1
			`, id, row.Cost); err != nil {
				return result, wrapDBError("update ingredient cost", err)
			}
		}
		result.Updated++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, wrapDBError("commit price import tx", err)
	}
	return result, nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var (
		c       domain.Customer
		phone   sql.NullString
		address sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &phone, &address, &c.Balance, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Customer{}, err
	}
	if phone.Valid {
		value := phone.String
		c.Phone = &value
	}
	if address.Valid {
		value := address.String
		c.Address = &value
	}
	return c, nil
}

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var (
		s       domain.Supplier
		contact sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &contact, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Supplier{}, err
	}
	if contact.Valid {
		value := contact.String
		s.Contact = &value
	}
	return s, nil
}

func scanIngredient(row pgx.Row) (domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Cost, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
		return domain.Ingredient{}, err
	}
	return ing, nil
}
