package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dog-show-club/internal/domain/breeds"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (
			id, name_pl, name_en,
			fci_group, fci_number, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		b.ID,
		b.NamePL,
		b.NameEN,
		b.FCIGroup,
		b.FCINumber,
		b.IsActive,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return breeds.ErrDuplicate
	}
	return err
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeds
		SET
			name_pl = $2,
			name_en = $3,
			fci_group = $4,
			fci_number = $5,
			is_active = $6,
			updated_at = $7
		WHERE id = $1
	`,
		b.ID,
		b.NamePL,
		b.NameEN,
		b.FCIGroup,
		b.FCINumber,
		b.IsActive,
		b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return breeds.ErrDuplicate
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeds.ErrNotFound
	}
	return nil
}

func (r *BreedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return breeds.Breed{}, breeds.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name_pl, name_en,
			fci_group, fci_number, is_active,
			created_at, updated_at
		FROM breeds
		WHERE id = $1
	`, id)

	var b breeds.Breed
	if err := row.Scan(
		&b.ID,
		&b.NamePL,
		&b.NameEN,
		&b.FCIGroup,
		&b.FCINumber,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return breeds.Breed{}, breeds.ErrNotFound
		}
		return breeds.Breed{}, err
	}
	return b, nil
}

func (r *BreedsRepo) List(ctx context.Context, f breeds.ListFilter) ([]breeds.Breed, int, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.FCIGroup != nil {
		args = append(args, *f.FCIGroup)
		where = append(where, fmt.Sprintf("fci_group = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name_pl ILIKE $%d OR name_en ILIKE $%d)", len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM breeds "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT
			id, name_pl, name_en,
			fci_group, fci_number, is_active,
			created_at, updated_at
		FROM breeds
		%s
		ORDER BY fci_group ASC, name_pl ASC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(
			&b.ID,
			&b.NamePL,
			&b.NameEN,
			&b.FCIGroup,
			&b.FCINumber,
			&b.IsActive,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}
