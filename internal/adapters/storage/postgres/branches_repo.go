package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dog-show-club/internal/domain/branches"
)

type BranchesRepo struct {
	db *sql.DB
}

func NewBranchesRepo(db *sql.DB) *BranchesRepo {
	return &BranchesRepo{db: db}
}

func (r *BranchesRepo) Create(ctx context.Context, b branches.Branch) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO branches (
			id, name, city, region, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		b.ID,
		b.Name,
		b.City,
		b.Region,
		b.IsActive,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BranchesRepo) GetByID(ctx context.Context, id string) (branches.Branch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return branches.Branch{}, branches.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, region, is_active, created_at, updated_at
		FROM branches
		WHERE id = $1
	`, id)

	var b branches.Branch
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.City,
		&b.Region,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return branches.Branch{}, branches.ErrNotFound
		}
		return branches.Branch{}, err
	}
	return b, nil
}

func (r *BranchesRepo) List(ctx context.Context, f branches.ListFilter) ([]branches.Branch, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if f.Region != "" {
		args = append(args, f.Region)
		where = append(where, fmt.Sprintf("region = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM branches "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT id, name, city, region, is_active, created_at, updated_at
		FROM branches
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]branches.Branch, 0)
	for rows.Next() {
		var b branches.Branch
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.City,
			&b.Region,
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
