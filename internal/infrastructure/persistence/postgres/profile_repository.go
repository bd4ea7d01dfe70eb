package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
	domerrors "github.com/rlewis2892/creepy-octo-meow/internal/domain/errors"
)

const (
	profileColumns = `id, email, username, password_hash, password_salt, activation_token, created_at, updated_at`

	insertProfileSQL = `INSERT INTO profiles (id, email, username, password_hash, password_salt, activation_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// A single statement keeps the update atomic: either every mutable
	// field is persisted or none is.
	updateProfileSQL = `UPDATE profiles
		SET email = $1, username = $2, password_hash = $3, password_salt = $4, activation_token = $5, updated_at = $6
		WHERE id = $7`

	clearActivationTokenSQL = `UPDATE profiles SET activation_token = NULL, updated_at = NOW() WHERE id = $1`
)

// pool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileRepository implements ports.ProfileRepository on PostgreSQL. The
// unique constraints on email and username are the authoritative uniqueness
// guard; violations surface as the domain conflict sentinels.
type ProfileRepository struct {
	pool pool
}

func NewProfileRepository(pool pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.pool.Exec(ctx, insertProfileSQL,
		p.ID.UUID, p.Email, p.Username, p.PasswordHash, p.PasswordSalt, p.ActivationToken, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id domain.ProfileID) (*domain.Profile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id.UUID)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)
}

func (r *ProfileRepository) GetByActivationToken(ctx context.Context, token string) (*domain.Profile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM profiles WHERE activation_token = $1`, token)
}

func (r *ProfileRepository) getBy(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID.UUID, &p.Email, &p.Username, &p.PasswordHash, &p.PasswordSalt, &p.ActivationToken, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID.UUID, &p.Email, &p.Username, &p.PasswordHash, &p.PasswordSalt, &p.ActivationToken, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	tag, err := r.pool.Exec(ctx, updateProfileSQL,
		p.Email, p.Username, p.PasswordHash, p.PasswordSalt, p.ActivationToken, p.UpdatedAt, p.ID.UUID)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) ClearActivationToken(ctx context.Context, id domain.ProfileID) error {
	tag, err := r.pool.Exec(ctx, clearActivationTokenSQL, id.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrProfileNotFound
	}
	return nil
}

// mapConflict translates unique-constraint violations into the conflict
// sentinels; the constraint name says which column lost the race.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domerrors.ErrEmailInUse
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domerrors.ErrUsernameTaken
	}
	return err
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)
