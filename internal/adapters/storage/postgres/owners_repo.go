package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dog-show-club/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `
	id, first_name, last_name, email, phone,
	street, city, postal_code, country,
	gdpr_consent, gdpr_consent_at,
	created_at, updated_at, deleted_at
`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (`+ownerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		o.ID,
		o.FirstName,
		o.LastName,
		o.Email,
		o.Phone,
		o.Street,
		o.City,
		o.PostalCode,
		o.Country,
		o.GDPRConsent,
		o.GDPRConsentAt,
		o.CreatedAt,
		o.UpdatedAt,
		toNullTime(o.DeletedAt),
	)
	if isUniqueViolation(err) {
		return owners.ErrDuplicate
	}
	return err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			street = $6,
			city = $7,
			postal_code = $8,
			country = $9,
			updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`,
		o.ID,
		o.FirstName,
		o.LastName,
		o.Email,
		o.Phone,
		o.Street,
		o.City,
		o.PostalCode,
		o.Country,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return owners.ErrDuplicate
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return owners.Owner{}, owners.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	o, err := scanOwner(row.Scan)
	if err == sql.ErrNoRows {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, err
}

func (r *OwnersRepo) FindByEmail(ctx context.Context, email string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+ownerColumns+`
		FROM owners
		WHERE email = $1 AND deleted_at IS NULL
	`, email)

	o, err := scanOwner(row.Scan)
	if err == sql.ErrNoRows {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, err
}

func (r *OwnersRepo) List(ctx context.Context, f owners.ListFilter) ([]owners.Owner, int, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.City != "" {
		args = append(args, f.City)
		where = append(where, fmt.Sprintf("city = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM owners "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT `+ownerColumns+`
		FROM owners
		%s
		ORDER BY last_name ASC, first_name ASC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *OwnersRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func scanOwner(scan func(...any) error) (owners.Owner, error) {
	var o owners.Owner
	var deleted sql.NullTime
	if err := scan(
		&o.ID,
		&o.FirstName,
		&o.LastName,
		&o.Email,
		&o.Phone,
		&o.Street,
		&o.City,
		&o.PostalCode,
		&o.Country,
		&o.GDPRConsent,
		&o.GDPRConsentAt,
		&o.CreatedAt,
		&o.UpdatedAt,
		&deleted,
	); err != nil {
		return owners.Owner{}, err
	}
	o.DeletedAt = fromNullTime(deleted)
	return o, nil
}
