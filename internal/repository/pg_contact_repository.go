package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contactbook/backend/internal/model"
)

// ContactRepository defines the persistence interface for contacts.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Contact, error)
	FindByID(ctx context.Context, userID, id string) (*model.Contact, error)
	Insert(ctx context.Context, c *model.Contact) error
	Update(ctx context.Context, userID, id string, u model.ContactUpdate) (*model.Contact, error)
	Delete(ctx context.Context, userID, id string) error
	UpdatePhotoURL(ctx context.Context, userID, id, photoURL string) error
}

// psql builds Postgres-flavored ($1, $2, ...) statements.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contactColumns = `id, user_id, name, email, phone,
	COALESCE(country_code, ''), COALESCE(message, ''), COALESCE(company, ''),
	COALESCE(address, ''), COALESCE(notes, ''), COALESCE(photo_url, ''), created_at`

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// contacts.id is a UUID column. A malformed id cannot match any row, and
// passing it through would raise a cast error instead of a miss.
func invalidContactID(id string) bool {
	return uuid.Validate(id) != nil
}

// ListByUser returns every contact owned by userID, name ascending. Display
// ordering beyond that is the client's concern (contactview).
func (r *PgContactRepository) ListByUser(ctx context.Context, userID string) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Insert stores a new contact and populates c.ID and c.CreatedAt from the
// RETURNING clause. Empty optional fields are stored as NULL.
func (r *PgContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (user_id, name, email, phone, country_code, message, company, address, notes, photo_url)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''))
		 RETURNING id, created_at`,
		c.UserID, c.Name, c.Email, c.Phone, c.CountryCode,
		c.Message, c.Company, c.Address, c.Notes, c.PhotoURL,
	).Scan(&c.ID, &c.CreatedAt)
}

// Update applies only the supplied fields and returns the updated row.
// A missing or foreign-owned id yields ErrNotFound.
func (r *PgContactRepository) Update(ctx context.Context, userID, id string, u model.ContactUpdate) (*model.Contact, error) {
	if invalidContactID(id) {
		return nil, ErrNotFound
	}
	if u.IsEmpty() {
		return r.findOne(ctx, userID, id)
	}

	b := psql.Update("contacts")
	set := func(col string, v *string, nullable bool) {
		if v == nil {
			return
		}
		if nullable {
			b = b.Set(col, sq.Expr("NULLIF(?, '')", *v))
			return
		}
		b = b.Set(col, *v)
	}
	set("name", u.Name, false)
	set("email", u.Email, false)
	set("phone", u.Phone, false)
	set("country_code", u.CountryCode, true)
	set("message", u.Message, true)
	set("company", u.Company, true)
	set("address", u.Address, true)
	set("notes", u.Notes, true)
	set("photo_url", u.PhotoURL, true)

	query, args, err := b.
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + contactColumns).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanContact(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete permanently removes the contact. Zero affected rows reports
// ErrNotFound so callers can distinguish stale ids from real deletions.
func (r *PgContactRepository) Delete(ctx context.Context, userID, id string) error {
	if invalidContactID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgContactRepository) UpdatePhotoURL(ctx context.Context, userID, id, photoURL string) error {
	if invalidContactID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE contacts SET photo_url = NULLIF($3, '') WHERE id = $1 AND user_id = $2`,
		id, userID, photoURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID returns a single contact owned by userID.
func (r *PgContactRepository) FindByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	return r.findOne(ctx, userID, id)
}

func (r *PgContactRepository) findOne(ctx context.Context, userID, id string) (*model.Contact, error) {
	if invalidContactID(id) {
		return nil, ErrNotFound
	}
	c, err := scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanContact(row pgx.Row) (*model.Contact, error) {
	c := &model.Contact{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
		&c.CountryCode, &c.Message, &c.Company, &c.Address, &c.Notes,
		&c.PhotoURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
