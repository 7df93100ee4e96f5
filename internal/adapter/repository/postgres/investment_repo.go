package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

const investmentColumns = `id, user_id, name, type, currency, current_amount, created_at, updated_at`

// InvestmentRepository implements usecase.InvestmentRepository on
// PostgreSQL.
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

const insertInvestmentSQL = `
	INSERT INTO investments (` + investmentColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Create inserts a new investment.
func (r *InvestmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	_, err := r.pool.Exec(ctx, insertInvestmentSQL, insertInvestmentArgs(investment)...)
	return err
}

// CreateTx inserts a new investment inside an open transaction.
func (r *InvestmentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertInvestmentSQL, insertInvestmentArgs(investment)...)
	return err
}

func insertInvestmentArgs(investment *domain.Investment) []any {
	return []any{
		investment.ID,
		investment.UserID,
		investment.Name,
		string(investment.Type),
		string(investment.Currency),
		decimalToNumeric(investment.CurrentAmount),
		investment.CreatedAt,
		investment.UpdatedAt,
	}
}

// GetByID retrieves an investment by ID.
func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`

	investment, err := scanInvestment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvestmentNotFound
	}

	return investment, err
}

// GetByIDForUpdate retrieves an investment with a FOR UPDATE row lock,
// serializing concurrent contributions to the same asset.
func (r *InvestmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Investment, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1 FOR UPDATE`

	investment, err := scanInvestment(pgxTx.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvestmentNotFound
	}

	return investment, err
}

// List retrieves investments, optionally scoped to one user.
func (r *InvestmentRepository) List(ctx context.Context, userID string) ([]*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments`

	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []*domain.Investment
	for rows.Next() {
		investment, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, investment)
	}

	return investments, rows.Err()
}

// Update rewrites an investment's name and type.
func (r *InvestmentRepository) Update(ctx context.Context, investment *domain.Investment) error {
	query := `
		UPDATE investments
		SET name = $2, type = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		investment.ID,
		investment.Name,
		string(investment.Type),
		investment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}

	return nil
}

// UpdateAmount moves an investment's current amount inside an open
// transaction.
func (r *InvestmentRepository) UpdateAmount(ctx context.Context, tx usecase.Transaction, id string, amount decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE investments SET current_amount = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(amount), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}

	return nil
}

// Delete removes an investment. Its transaction history goes with it.
func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}

	return nil
}

// CreateTransaction appends a contribution event inside an open
// transaction.
func (r *InvestmentRepository) CreateTransaction(ctx context.Context, tx usecase.Transaction, txn *domain.InvestmentTransaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO investment_transactions (id, investment_id, amount, currency, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.InvestmentID,
		decimalToNumeric(txn.Amount),
		string(txn.Currency),
		txn.Date,
		txn.Description,
		txn.CreatedAt,
	)

	return err
}

// ListTransactions retrieves the append-only history of one investment.
func (r *InvestmentRepository) ListTransactions(ctx context.Context, investmentID string) ([]*domain.InvestmentTransaction, error) {
	query := `
		SELECT id, investment_id, amount, currency, date, description, created_at
		FROM investment_transactions
		WHERE investment_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, investmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.InvestmentTransaction
	for rows.Next() {
		var (
			txn      domain.InvestmentTransaction
			amount   pgtype.Numeric
			currency string
		)

		err := rows.Scan(
			&txn.ID,
			&txn.InvestmentID,
			&amount,
			&currency,
			&txn.Date,
			&txn.Description,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		txn.Amount = numericToDecimal(amount)
		txn.Currency = domain.Currency(currency)
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}

// UpsertReturn records or replaces the portfolio return for a year.
func (r *InvestmentRepository) UpsertReturn(ctx context.Context, ret *domain.InvestmentReturn) error {
	query := `
		INSERT INTO investment_returns (year, percent)
		VALUES ($1, $2)
		ON CONFLICT (year) DO UPDATE SET percent = EXCLUDED.percent
	`

	_, err := r.pool.Exec(ctx, query, ret.Year, decimalToNumeric(ret.Percent))
	return err
}

// ListReturns retrieves all recorded annual returns, oldest first.
func (r *InvestmentRepository) ListReturns(ctx context.Context) ([]*domain.InvestmentReturn, error) {
	rows, err := r.pool.Query(ctx, `SELECT year, percent FROM investment_returns ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*domain.InvestmentReturn
	for rows.Next() {
		var (
			ret     domain.InvestmentReturn
			percent pgtype.Numeric
		)

		if err := rows.Scan(&ret.Year, &percent); err != nil {
			return nil, err
		}

		ret.Percent = numericToDecimal(percent)
		returns = append(returns, &ret)
	}

	return returns, rows.Err()
}

// DeleteReturn removes the recorded return for a year.
func (r *InvestmentRepository) DeleteReturn(ctx context.Context, year int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM investment_returns WHERE year = $1`, year)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReturnNotFound
	}

	return nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var (
		investment domain.Investment
		invType    string
		currency   string
		amount     pgtype.Numeric
	)

	err := row.Scan(
		&investment.ID,
		&investment.UserID,
		&investment.Name,
		&invType,
		&currency,
		&amount,
		&investment.CreatedAt,
		&investment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	investment.Type = domain.InvestmentType(invType)
	investment.Currency = domain.Currency(currency)
	investment.CurrentAmount = numericToDecimal(amount)

	return &investment, nil
}
