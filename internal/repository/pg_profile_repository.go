package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contactbook/backend/internal/model"
)

type pgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository returns a PostgreSQL-backed ProfileRepository.
func NewPgProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &pgProfileRepository{pool: pool}
}

const profileColumns = `user_id, COALESCE(display_name, ''), COALESCE(avatar_url, ''), created_at, updated_at`

func (r *pgProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, display_name)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING created_at, updated_at`,
		p.UserID, p.DisplayName,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *pgProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies only the supplied fields; a pointer to "" stores NULL,
// which is how an avatar gets cleared.
func (r *pgProfileRepository) Update(ctx context.Context, userID string, u model.ProfileUpdate) (*model.Profile, error) {
	if u.IsEmpty() {
		return r.FindByUserID(ctx, userID)
	}

	b := psql.Update("profiles").Set("updated_at", sq.Expr("NOW()"))
	if u.DisplayName != nil {
		b = b.Set("display_name", sq.Expr("NULLIF(?, '')", *u.DisplayName))
	}
	if u.AvatarURL != nil {
		b = b.Set("avatar_url", sq.Expr("NULLIF(?, '')", *u.AvatarURL))
	}

	query, args, err := b.
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + profileColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	p := &model.Profile{}
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
