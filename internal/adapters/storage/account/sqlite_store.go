package account

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "github.com/nakawebsvcs/kahuawaiwai/internal/domain/account"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, password_hash, role, status, created_at, created_by, failed_logins, locked_until"

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM account WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM account WHERE email = ?"
	row := s.db.QueryRowContext(ctx, query, email)

	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "email", "password_hash", "role", "status", "created_at", "created_by", "failed_logins", "locked_until"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"email=excluded.email",
		"password_hash=excluded.password_hash",
		"role=excluded.role",
		"status=excluded.status",
		"failed_logins=excluded.failed_logins",
		"locked_until=excluded.locked_until",
	}

	query := fmt.Sprintf(
		"INSERT INTO account (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var lockedUntil interface{}
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.Format(timeFormat)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		entity.Status,
		entity.CreatedAt.Format(timeFormat),
		entity.CreatedBy,
		entity.FailedLogins,
		lockedUntil,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Account from the database, along with any activation
// tokens still pointing at it.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM activation_token WHERE account_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List retrieves all accounts, newest first. The admin panel shows the
// full unpaginated record set.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM account ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Account
	for rows.Next() {
		entity, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of accounts.
// PRE: none
// POST: Returns total account count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}

// SaveActivationToken persists an activation token.
// PRE: token has a unique Token value
// POST: Token row is inserted or replaced
func (s *SQLiteStore) SaveActivationToken(ctx context.Context, token domain.ActivationToken) error {
	query := `INSERT INTO activation_token (id, account_id, token, expires_at, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET used=excluded.used`
	used := 0
	if token.Used {
		used = 1
	}
	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.AccountID,
		token.Token,
		token.ExpiresAt.Format(timeFormat),
		used,
		token.CreatedAt.Format(timeFormat),
	)
	return err
}

// GetActivationTokenByToken retrieves an activation token by its token value.
// PRE: token is non-empty
// POST: Returns the token row or an error if not found
func (s *SQLiteStore) GetActivationTokenByToken(ctx context.Context, token string) (domain.ActivationToken, error) {
	query := "SELECT id, account_id, token, expires_at, used, created_at FROM activation_token WHERE token = ?"
	row := s.db.QueryRowContext(ctx, query, token)

	var entity domain.ActivationToken
	var expiresAt, createdAt string
	var used int
	err := row.Scan(&entity.ID, &entity.AccountID, &entity.Token, &expiresAt, &used, &createdAt)
	if err == sql.ErrNoRows {
		return domain.ActivationToken{}, fmt.Errorf("activation token not found: %w", err)
	}
	if err != nil {
		return domain.ActivationToken{}, err
	}
	entity.Used = used != 0
	entity.ExpiresAt, _ = parseTime(expiresAt)
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

// InvalidateTokensForAccount marks all tokens for an account as used.
// PRE: accountID is non-empty
// POST: No token for the account can be redeemed again
func (s *SQLiteStore) InvalidateTokensForAccount(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE activation_token SET used = 1 WHERE account_id = ?", accountID)
	return err
}

// scanAccount extracts an Account from a row scanner function.
func scanAccount(scan func(dest ...interface{}) error) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&entity.Status,
		&createdAt,
		&entity.CreatedBy,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.Account{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	if lockedUntil.Valid && lockedUntil.String != "" {
		entity.LockedUntil, _ = parseTime(lockedUntil.String)
	}
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
