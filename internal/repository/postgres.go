package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gracebooks/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountColumns is the shared select list; scanAccount decodes rows in this
// exact order.
const accountColumns = "id, code, name, account_type, category, description, is_active, display_order, created_at, updated_at"

// PostgresRepository stores the chart of accounts in a single accounts table.
// Code uniqueness is enforced by the table's UNIQUE constraint rather than a
// read-then-write check, so concurrent creates race safely.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// textOrNull maps an optional string onto the nullable description column.
func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// scanAccount decodes one row into the domain model. Enum columns are parsed
// through the domain constructors; a value the current build does not know is
// reported as ErrInvalidData rather than surfaced as a raw string.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a           domain.Account
		accountType string
		category    string
		description pgtype.Text
	)
	err := row.Scan(&a.ID, &a.Code, &a.Name, &accountType, &category,
		&description, &a.IsActive, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	a.Type, err = domain.ParseAccountType(accountType)
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", ErrInvalidData, a.ID, err)
	}
	a.Category, err = domain.ParseAccountCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %v", ErrInvalidData, a.ID, err)
	}
	if description.Valid {
		a.Description = &description.String
	}
	return &a, nil
}

// dbErr classifies a driver failure as ErrDatabase unless scanAccount already
// classified it.
func dbErr(err error) error {
	if errors.Is(err, ErrInvalidData) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDatabase, err)
}

func (r *PostgresRepository) Create(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	account := domain.NewAccount(req)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+accountColumns,
		account.ID, account.Code, account.Name, string(account.Type), string(account.Category),
		textOrNull(account.Description), account.IsActive, account.DisplayOrder,
		account.CreatedAt, account.UpdatedAt,
	)

	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		return nil, dbErr(err)
	}
	return created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return account, nil
}

func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return account, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY display_order, created_at`)
	if err != nil {
		return nil, dbErr(err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *PostgresRepository) FindByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_type = $1
		ORDER BY display_order, created_at`, string(accountType))
	if err != nil {
		return nil, dbErr(err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, dbErr(err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(err)
	}
	return accounts, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, req domain.UpdateAccountRequest) (*domain.Account, error) {
	// Nil fields arrive as NULL, so COALESCE keeps the stored value.
	account, err := scanAccount(r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			is_active = COALESCE($4, is_active),
			display_order = COALESCE($5, display_order),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, req.Name, req.Description, req.IsActive, req.DisplayOrder,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return account, nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return dbErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (r *PostgresRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, dbErr(err)
	}
	return exists, nil
}
