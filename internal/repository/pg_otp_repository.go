package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contactbook/backend/internal/model"
)

type pgOtpRepository struct {
	pool *pgxpool.Pool
}

// NewPgOtpRepository returns a PostgreSQL-backed OtpRepository.
func NewPgOtpRepository(pool *pgxpool.Pool) OtpRepository {
	return &pgOtpRepository{pool: pool}
}

// Upsert replaces any existing challenge for the email, resetting the
// attempt counter. Resending a code therefore restarts the attempt budget.
func (r *pgOtpRepository) Upsert(ctx context.Context, c *model.OtpChallenge) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO otp_challenges (id, email, code, password_hash, display_name, attempts, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		 ON CONFLICT (email) DO UPDATE SET
		   id = EXCLUDED.id,
		   code = EXCLUDED.code,
		   password_hash = EXCLUDED.password_hash,
		   display_name = EXCLUDED.display_name,
		   attempts = 0,
		   created_at = EXCLUDED.created_at,
		   expires_at = EXCLUDED.expires_at`,
		c.ID, c.Email, c.Code, c.PasswordHash, c.DisplayName, c.CreatedAt, c.ExpiresAt)
	return err
}

func (r *pgOtpRepository) FindByEmail(ctx context.Context, email string) (*model.OtpChallenge, error) {
	c := &model.OtpChallenge{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, code, password_hash, COALESCE(display_name, ''), attempts, created_at, expires_at
		 FROM otp_challenges WHERE email = $1`,
		email).Scan(&c.ID, &c.Email, &c.Code, &c.PasswordHash, &c.DisplayName, &c.Attempts, &c.CreatedAt, &c.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgOtpRepository) IncrementAttempts(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE otp_challenges SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (r *pgOtpRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM otp_challenges WHERE email = $1`, email)
	return err
}
