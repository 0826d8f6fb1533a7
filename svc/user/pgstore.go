package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/watersmet/identity/pkg/sanitizer"
)

const (
	defaultColumns = `id, full_name, email, phone_number, role, auth_provider,
		google_id, is_email_verified, is_active, created_at, updated_at`
	secretColumns = defaultColumns + `, password_hash, verification_code, verification_expires_at`

	pgUniqueViolation = "23505"
)

// PGStore is the PostgreSQL-backed Store.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Create(ctx context.Context, params CreateParams) (*User, error) {
	params = params.withDefaults()

	hash, err := normalizePassword(params.Password)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, full_name, email, password_hash, phone_number, role, auth_provider, google_id, is_email_verified)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)
		RETURNING `+defaultColumns,
		uuid.New(),
		params.FullName,
		sanitizer.NormalizeEmail(params.Email),
		hash,
		params.PhoneNumber,
		params.Role,
		params.Provider,
		params.GoogleID,
		params.EmailVerified,
	)

	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+defaultColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) ByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+defaultColumns+` FROM users WHERE email = $1`, sanitizer.NormalizeEmail(email))
	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) ByGoogleID(ctx context.Context, googleID string) (*User, error) {
	if googleID == "" {
		return nil, ErrUserNotFound
	}
	row := s.pool.QueryRow(ctx, `SELECT `+defaultColumns+` FROM users WHERE google_id = $1`, googleID)
	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) ByIDWithSecrets(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+secretColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row, true)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) ByEmailWithSecrets(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+secretColumns+` FROM users WHERE email = $1`, sanitizer.NormalizeEmail(email))
	u, err := scanUser(row, true)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) List(ctx context.Context) ([]*User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+defaultColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	set := make([]string, 0, 5)
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.FullName != nil {
		appendSet("full_name", *params.FullName)
	}
	if params.Email != nil {
		appendSet("email", sanitizer.NormalizeEmail(*params.Email))
	}
	if params.PhoneNumber != nil {
		appendSet("phone_number", *params.PhoneNumber)
	}
	if params.Role != nil {
		appendSet("role", *params.Role)
	}
	if params.Password != nil {
		hash, err := normalizePassword(*params.Password)
		if err != nil {
			return nil, err
		}
		appendSet("password_hash", hash)
	}

	if len(set) == 0 {
		return s.ByID(ctx, id)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), defaultColumns,
	)
	row := s.pool.QueryRow(ctx, query, args...)
	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PGStore) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET google_id = $2, auth_provider = $3, is_email_verified = true, updated_at = now()
		WHERE id = $1
		RETURNING `+defaultColumns,
		id, googleID, ProviderGoogle,
	)
	u, err := scanUser(row, false)
	if err != nil {
		return nil, mapPGError(err)
	}
	return u, nil
}

func (s *PGStore) SaveVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET verification_code = $2, verification_expires_at = $3, updated_at = now()
		WHERE id = $1`,
		id, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PGStore) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET is_email_verified = true, verification_code = NULL, verification_expires_at = NULL, updated_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, withSecrets bool) (*User, error) {
	var (
		u        User
		phone    *string
		googleID *string
	)

	dest := []any{
		&u.ID, &u.FullName, &u.Email, &phone, &u.Role, &u.Provider,
		&googleID, &u.EmailVerified, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	}

	var passwordHash, verificationCode *string
	if withSecrets {
		dest = append(dest, &passwordHash, &verificationCode, &u.VerificationExpiresAt)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if phone != nil {
		u.PhoneNumber = *phone
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if verificationCode != nil {
		u.VerificationCode = *verificationCode
	}
	return &u, nil
}

func mapPGError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "google") {
			return ErrGoogleIDLinked
		}
		return ErrEmailAlreadyExists
	}
	return err
}
