package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dj/customer-service/pkg/models"
	"github.com/dj/customer-service/pkg/services"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

const customerColumns = "id, full_name, COALESCE(email, ''), mobile, created_at, updated_at"

// orderColumns maps sortable fields to SQL columns. ORDER BY cannot be bound
// as a parameter, so only names present here reach the query text.
var orderColumns = map[string]string{
	"id":         "id",
	"full_name":  "full_name",
	"email":      "email",
	"mobile":     "mobile",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CustomerRepository is the PostgreSQL implementation of
// services.CustomerRepository.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a repository over db.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ services.CustomerRepository = (*CustomerRepository)(nil)

// Create inserts c and returns the stored row.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO customers (full_name, email, mobile)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING `+customerColumns,
		c.FullName, c.Email, c.Mobile)

	saved, err := scanCustomer(row)
	if err != nil {
		return nil, mapError(err, 0)
	}
	return saved, nil
}

// Get returns a customer by id.
func (r *CustomerRepository) Get(ctx context.Context, id int64) (*models.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)

	c, err := scanCustomer(row)
	if err != nil {
		return nil, mapError(err, id)
	}
	return c, nil
}

// Update writes every mutable column of c.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE customers
		SET full_name = $2, email = NULLIF($3, ''), mobile = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		c.ID, c.FullName, c.Email, c.Mobile)

	updated, err := scanCustomer(row)
	if err != nil {
		return nil, mapError(err, c.ID)
	}
	return updated, nil
}

// Delete removes a customer. A missing row is ErrNotFound.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("customer %d: %w", id, services.ErrNotFound)
	}
	return nil
}

// Exists reports whether a customer with id is stored.
func (r *CustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check customer %d: %w", id, err)
	}
	return exists, nil
}

// Search returns one page of customers matching every non-empty filter
// field, plus the total number of matches.
func (r *CustomerRepository) Search(ctx context.Context, filter models.CustomerFilter, page models.PageRequest) ([]*models.Customer, int64, error) {
	where, args := searchConditions(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	column, ok := orderColumns[page.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if page.Direction == models.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		customerColumns, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate customers: %w", err)
	}
	return customers, total, nil
}

func searchConditions(filter models.CustomerFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr, value string) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if v := strings.TrimSpace(filter.Name); v != "" {
		add("full_name ILIKE '%%' || $%d || '%%'", v)
	}
	if v := strings.TrimSpace(filter.Email); v != "" {
		add("email ILIKE '%%' || $%d || '%%'", v)
	}
	if v := strings.TrimSpace(filter.Mobile); v != "" {
		add("mobile LIKE '%%' || $%d || '%%'", v)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Mobile, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// mapError translates driver errors into service sentinels.
func mapError(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("customer %d: %w", id, services.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, services.ErrAlreadyExists)
	}
	return fmt.Errorf("customer query failed: %w", err)
}
