package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joelcondh/burien-soccer/internal/models"
	"github.com/joelcondh/burien-soccer/internal/sqlutil"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{"id", "account_id", "name", "city", "phone", "email", "state", "role", "created_at"}

// Credentials is the login view of an account.
type Credentials struct {
	AccountID    uuid.UUID
	PasswordHash string
	Role         models.ProfileRole
}

// CreateAccountRequest carries everything registration persists.
type CreateAccountRequest struct {
	Email        string
	PasswordHash string
	Name         string
	City         *string
	Phone        *string
	Role         models.ProfileRole
	State        models.ProfileState
	CreatedAt    time.Time
}

// Repository persists accounts and profiles in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateAccountWithProfile inserts the account and its profile in one
// transaction. A unique violation on the account email maps to ErrEmailTaken.
func (r *Repository) CreateAccountWithProfile(ctx context.Context, req CreateAccountRequest) (*models.Profile, error) {
	var created *models.Profile
	err := sqlutil.Run(ctx, r.pool, func(tx pgx.Tx) error {
		accountID := uuid.New()

		insertAccount := psql.
			Insert("accounts").
			Columns("id", "email", "password_hash", "created_at").
			Values(accountID, req.Email, req.PasswordHash, req.CreatedAt)
		sql, args, err := insertAccount.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to insert account: %w", err)
		}

		insertProfile := psql.
			Insert("profiles").
			Columns(profileColumns...).
			Values(uuid.New(), accountID, req.Name, req.City, req.Phone, req.Email, req.State, req.Role, req.CreatedAt).
			Suffix("RETURNING " + columnList())
		sql, args, err = insertProfile.ToSql()
		if err != nil {
			return err
		}
		created, err = scanProfile(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error) {
	query := psql.
		Select("a.id", "a.password_hash", "p.role").
		From("accounts a").
		Join("profiles p ON p.account_id = a.id").
		Where(sq.Eq{"a.email": email})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := r.pool.QueryRow(ctx, sql, args...).
		Scan(&creds.AccountID, &creds.PasswordHash, &creds.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	return &creds, nil
}

func (r *Repository) GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error) {
	return r.getProfileWhere(ctx, sq.Eq{"account_id": accountID})
}

func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return r.getProfileWhere(ctx, sq.Eq{"id": id})
}

// ListProfiles returns all profiles ordered by display name.
func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	query := psql.
		Select(profileColumns...).
		From("profiles").
		OrderBy("name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// UpdateContact rewrites the owner-editable fields.
func (r *Repository) UpdateContact(ctx context.Context, accountID uuid.UUID, name string, city, phone *string) (*models.Profile, error) {
	query := psql.
		Update("profiles").
		Set("name", name).
		Set("city", city).
		Set("phone", phone).
		Where(sq.Eq{"account_id": accountID}).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanProfile(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile contact: %w", err)
	}
	return updated, nil
}

func (r *Repository) SetProfileState(ctx context.Context, id uuid.UUID, state models.ProfileState) (*models.Profile, error) {
	query := psql.
		Update("profiles").
		Set("state", state).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanProfile(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set profile state: %w", err)
	}
	return updated, nil
}

func (r *Repository) getProfileWhere(ctx context.Context, pred sq.Eq) (*models.Profile, error) {
	query := psql.
		Select(profileColumns...).
		From("profiles").
		Where(pred)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProfile(r.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.City, &p.Phone, &p.Email, &p.State, &p.Role, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProfileRow(rows pgx.Rows) (*models.Profile, error) {
	var p models.Profile
	if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &p.City, &p.Phone, &p.Email, &p.State, &p.Role, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func columnList() string {
	list := profileColumns[0]
	for _, c := range profileColumns[1:] {
		list += ", " + c
	}
	return list
}
