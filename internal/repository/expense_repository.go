package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"marmitaria/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ExpenseCreateInput struct {
	Description   string
	Amount        float64
	SupplierID    *int64
	PaymentMethod *string
	Status        string
	DueDate       *time.Time
	PaidDate      *time.Time
}

type ExpenseStatusInput struct {
	Status   string
	PaidDate *time.Time
}

const expenseColumns = `
	e.id,
	e.description,
	e.amount::double precision,
	e.supplier_id,
	e.payment_method,
	e.status,
	e.due_date,
	e.paid_date,
	e.created_at,
	s.id,
	s.name,
	s.contact,
	s.created_at,
	s.updated_at
`

const expenseFrom = `
	FROM expenses e
	LEFT JOIN suppliers s ON s.id = e.supplier_id
`

func (r *Repository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+expenseColumns+expenseFrom+" ORDER BY e.created_at DESC, e.id DESC")
	if err != nil {
		return nil, wrapDBError("list expenses", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, wrapDBError("scan expense", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate expenses", err)
	}
	return expenses, nil
}

func (r *Repository) CreateExpense(ctx context.Context, input ExpenseCreateInput) (*domain.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, invalidInput("description is required")
	}
	if input.Amount < 0 {
		return nil, invalidInput("amount cannot be negative")
	}

	var id int64
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (description, amount, supplier_id, payment_method, status, due_date, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		description,
		input.Amount,
		input.SupplierID,
		input.PaymentMethod,
		input.Status,
		input.DueDate,
		input.PaidDate,
	).Scan(&id); err != nil {
		return nil, wrapDBError("create expense", err)
	}

	return r.GetExpenseByID(ctx, id)
}

// UpdateExpenseStatus is the Pending -> Paid transition: it touches only
// status and paid_date, leaving the rest of the record alone.
func (r *Repository) UpdateExpenseStatus(ctx context.Context, id int64, input ExpenseStatusInput) (*domain.Expense, error) {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET status = $2, paid_date = $3
		WHERE id = $1
	`, id, input.Status, input.PaidDate)
	if err != nil {
		return nil, wrapDBError("update expense status", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetExpenseByID(ctx, id)
}

// Deletion is unconditional; a Paid expense can be deleted like any other.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return wrapDBError("delete expense", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*domain.Expense, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+expenseColumns+expenseFrom+" WHERE e.id = $1", id)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError("get expense", err)
	}
	return &expense, nil
}

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var (
		e                domain.Expense
		supplierID       sql.NullInt64
		paymentMethod    sql.NullString
		dueDate          sql.NullTime
		paidDate         sql.NullTime
		sID              sql.NullInt64
		sName            sql.NullString
		sContact         sql.NullString
		sCreated, sUpdat sql.NullTime
	)
	if err := row.Scan(
		&e.ID,
		&e.Description,
		&e.Amount,
		&supplierID,
		&paymentMethod,
		&e.Status,
		&dueDate,
		&paidDate,
		&e.CreatedAt,
		&sID,
		&sName,
		&sContact,
		&sCreated,
		&sUpdat,
	); err != nil {
		return domain.Expense{}, err
	}
	if supplierID.Valid {
		value := supplierID.Int64
		e.SupplierID = &value
	}
	if paymentMethod.Valid {
		value := paymentMethod.String
		e.PaymentMethod = &value
	}
	if dueDate.Valid {
		value := dueDate.Time
		e.DueDate = &value
	}
	if paidDate.Valid {
		value := paidDate.Time
		e.PaidDate = &value
	}
	if sID.Valid {
		supplier := domain.Supplier{
			ID:        sID.Int64,
			Name:      sName.String,
			CreatedAt: sCreated.Time,
			UpdatedAt: sUpdat.Time,
		}
		if sContact.Valid {
			value := sContact.String
			supplier.Contact = &value
		}
		e.Supplier = &supplier
	}
	return e, nil
}
