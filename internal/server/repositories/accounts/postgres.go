package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const accountColumns = `id, name, email, password_hash, date_of_birth,
		address, zip_code, city, phone, reg_nu,
		receive_sms_active, receive_notifications_active, receive_sms_expiring,
		receive_notifications_expiring, receive_email_receipts, receive_notifications_marketing,
		active_parking_hours, expiring_soon_hours,
		dark_mode, language,
		created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (` + accountColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		 `

	_, err := r.db.ExecContext(ctx, query, accountArgs(a)...)
	if err != nil {
		return nil, mapWriteError(err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = $1
		 `

	return scanAccount(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT ` + accountColumns + ` FROM accounts
		 WHERE id = $1
		 `

	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// Update rewrites every mutable column of the row. No version check is made:
// concurrent updates of one account are last-write-wins.
func (r *PostgresRepository) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`UPDATE accounts SET
		 name = $2, email = $3, password_hash = $4, date_of_birth = $5,
		 address = $6, zip_code = $7, city = $8, phone = $9, reg_nu = $10,
		 receive_sms_active = $11, receive_notifications_active = $12, receive_sms_expiring = $13,
		 receive_notifications_expiring = $14, receive_email_receipts = $15, receive_notifications_marketing = $16,
		 active_parking_hours = $17, expiring_soon_hours = $18,
		 dark_mode = $19, language = $20,
		 updated_at = $21
		 WHERE id = $1
		 `

	// created_at is immutable and is the only column left out.
	args := accountArgs(a)
	args = append(args[:20:20], a.UpdatedAt)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}

	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return dbx.Ping(ctx, r.db)
}

func accountArgs(a *models.Account) []any {
	n := a.NotificationSettings
	p := a.PreferenceSettings
	return []any{
		a.ID, a.Name, a.Email, a.PasswordHash, a.DateOfBirth,
		a.Address, a.ZipCode, a.City, a.Phone, a.RegNu,
		n.ReceiveSMSActive, n.ReceiveNotificationsActive, n.ReceiveSMSExpiring,
		n.ReceiveNotificationsExpiring, n.ReceiveEmailReceipts, n.ReceiveNotificationsMarketing,
		n.ActiveParkingHours, n.ExpiringSoonHours,
		p.DarkMode, p.Language,
		a.CreatedAt, a.UpdatedAt,
	}
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	n := &a.NotificationSettings
	p := &a.PreferenceSettings

	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.DateOfBirth,
		&a.Address, &a.ZipCode, &a.City, &a.Phone, &a.RegNu,
		&n.ReceiveSMSActive, &n.ReceiveNotificationsActive, &n.ReceiveSMSExpiring,
		&n.ReceiveNotificationsExpiring, &n.ReceiveEmailReceipts, &n.ReceiveNotificationsMarketing,
		&n.ActiveParkingHours, &n.ExpiringSoonHours,
		&p.DarkMode, &p.Language,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrDuplicateEmail
	}
	return fmt.Errorf("db error: %w", err)
}
