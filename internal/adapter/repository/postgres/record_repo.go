package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
)

const recordColumns = `id, user_id, kind, fund_type, currency, category, description, transfer_id, amount, date, created_at`

// RecordRepository implements usecase.RecordRepository on PostgreSQL.
// All record kinds live in one table; the kind column carries the sign.
type RecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// Create inserts a new record.
func (r *RecordRepository) Create(ctx context.Context, record *domain.Record) error {
	_, err := r.pool.Exec(ctx, insertRecordSQL, insertRecordArgs(record)...)
	return err
}

// CreateTx inserts a new record inside an open transaction.
func (r *RecordRepository) CreateTx(ctx context.Context, tx usecase.Transaction, record *domain.Record) error {
	pgxTx := tx.(*Tx).PgxTx()
	_, err := pgxTx.Exec(ctx, insertRecordSQL, insertRecordArgs(record)...)
	return err
}

const insertRecordSQL = `
	INSERT INTO records (` + recordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func insertRecordArgs(record *domain.Record) []any {
	return []any{
		record.ID,
		record.UserID,
		string(record.Kind),
		string(record.FundType),
		string(record.Currency),
		record.Category,
		record.Description,
		record.TransferID,
		decimalToNumeric(record.Amount),
		record.Date,
		record.CreatedAt,
	}
}

// GetByID retrieves a record by ID.
func (r *RecordRepository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`

	record, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}

	return record, err
}

// List retrieves records matching the filter, newest date first.
func (r *RecordRepository) List(ctx context.Context, filter usecase.RecordFilter) ([]*domain.Record, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListTx retrieves records matching the filter inside an open
// transaction, so a balance derived from the result is consistent with
// the transaction's snapshot.
func (r *RecordRepository) ListTx(ctx context.Context, tx usecase.Transaction, filter usecase.RecordFilter) ([]*domain.Record, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query, args := buildListQuery(filter)

	rows, err := pgxTx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Update rewrites a record's mutable fields.
func (r *RecordRepository) Update(ctx context.Context, record *domain.Record) error {
	query := `
		UPDATE records
		SET amount = $2, currency = $3, category = $4, description = $5, date = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		record.ID,
		decimalToNumeric(record.Amount),
		string(record.Currency),
		record.Category,
		record.Description,
		record.Date,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Delete removes a record by ID.
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// LockScope takes a transaction-scoped advisory lock on a balance
// scope. The lock is keyed by a 64-bit hash of the scope string and
// released automatically at commit or rollback.
func (r *RecordRepository) LockScope(ctx context.Context, tx usecase.Transaction, scope string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, scope)
	return err
}

func buildListQuery(filter usecase.RecordFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != "" {
		where = append(where, "user_id = "+arg(filter.UserID))
	}

	if filter.FundType != "" {
		where = append(where, "fund_type = "+arg(string(filter.FundType)))
	}

	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}

	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			kinds = append(kinds, string(k))
		}
		where = append(where, "kind = ANY("+arg(kinds)+")")
	}

	if !filter.From.IsZero() {
		where = append(where, "date >= "+arg(filter.From))
	}

	if !filter.To.IsZero() {
		where = append(where, "date < "+arg(filter.To))
	}

	query := `SELECT ` + recordColumns + ` FROM records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	return query, args
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var (
		record   domain.Record
		kind     string
		fundType string
		currency string
		amount   pgtype.Numeric
	)

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&kind,
		&fundType,
		&currency,
		&record.Category,
		&record.Description,
		&record.TransferID,
		&amount,
		&record.Date,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Kind = domain.RecordKind(kind)
	record.FundType = domain.FundType(fundType)
	record.Currency = domain.Currency(currency)
	record.Amount = numericToDecimal(amount)

	return &record, nil
}

func scanRecords(rows pgx.Rows) ([]*domain.Record, error) {
	var records []*domain.Record

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
