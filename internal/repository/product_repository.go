package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"marmitaria/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ProductLineInput struct {
	IngredientID int64
	Quantity     float64
}

type ProductCreateInput struct {
	Name        string
	Description *string
	Price       float64
	Ingredients []ProductLineInput
}

const productColumns = `
	id,
	name,
	description,
	price::double precision,
	created_at,
	updated_at
`

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, wrapDBError("list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapDBError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate products", err)
	}

	if err := r.attachProductLines(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError("get product", err)
	}

	list := []domain.Product{product}
	if err := r.attachProductLines(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CreateProduct inserts the product and its ingredient lines in one
// transaction; the create is all-or-nothing.
func (r *Repository) CreateProduct(ctx context.Context, input ProductCreateInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	for _, line := range input.Ingredients {
		if line.IngredientID <= 0 {
			return nil, invalidInput("ingredient_id is required on every line")
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, wrapDBError("begin create product tx", err)
	}
	defer tx.Rollback(ctx)

	var productID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO products (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, input.Description, input.Price).Scan(&productID); err != nil {
		return nil, wrapDBError("insert product", err)
	}

	for _, line := range input.Ingredients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_ingredients (product_id, ingredient_id, quantity)
			VALUES ($1, $2, $3)
		`, productID, line.IngredientID, line.Quantity); err != nil {
			return nil, wrapDBError("insert product ingredient", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapDBError("commit create product tx", err)
	}

	return r.GetProductByID(ctx, productID)
}

// DeleteProduct removes the product; its composition rows cascade, the
// ingredients themselves stay. Products referenced by sale items are
// protected by the FK and surface as ErrConstraint.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return wrapDBError("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// attachProductLines loads the ingredient composition for every product
// in one query and groups it in memory.
func (r *Repository) attachProductLines(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	index := make(map[int64]int, len(products))
	for i := range products {
		products[i].Ingredients = make([]domain.ProductIngredient, 0)
		ids = append(ids, products[i].ID)
		index[products[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			pi.id,
			pi.product_id,
			pi.ingredient_id,
			pi.quantity::double precision,
			i.id,
			i.name,
			i.unit,
			i.cost::double precision,
			i.created_at,
			i.updated_at
		FROM product_ingredients pi
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.product_id = ANY($1)
		ORDER BY pi.id ASC
	`, ids)
	if err != nil {
		return wrapDBError("load product ingredients", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line domain.ProductIngredient
			ing  domain.Ingredient
		)
		if err := rows.Scan(
			&line.ID,
			&line.ProductID,
			&line.IngredientID,
			&line.Quantity,
			&ing.ID,
			&ing.Name,
			&ing.Unit,
			&ing.Cost,
			&ing.CreatedAt,
			&ing.UpdatedAt,
		); err != nil {
			return wrapDBError("scan product ingredient", err)
		}
		line.Ingredient = &ing
		if i, ok := index[line.ProductID]; ok {
			products[i].Ingredients = append(products[i].Ingredients, line)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapDBError("iterate product ingredients", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Product{}, err
	}
	if description.Valid {
		value := description.String
		p.Description = &value
	}
	return p, nil
}
