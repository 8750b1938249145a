package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dog-show-club/internal/domain/shows"
)

type ShowsRepo struct {
	db *sql.DB
}

func NewShowsRepo(db *sql.DB) *ShowsRepo {
	return &ShowsRepo{db: db}
}

const showColumns = `
	id, name, show_date, location, branch_id, description, status,
	created_at, updated_at, deleted_at
`

func (r *ShowsRepo) Create(ctx context.Context, s shows.Show) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shows (`+showColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		s.ID,
		s.Name,
		s.ShowDate,
		s.Location,
		s.BranchID,
		s.Description,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
		toNullTime(s.DeletedAt),
	)
	return err
}

func (r *ShowsRepo) Update(ctx context.Context, s shows.Show) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shows
		SET
			name = $2,
			show_date = $3,
			location = $4,
			branch_id = $5,
			description = $6,
			status = $7,
			updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`,
		s.ID,
		s.Name,
		s.ShowDate,
		s.Location,
		s.BranchID,
		s.Description,
		s.Status,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shows.ErrNotFound
	}
	return nil
}

func (r *ShowsRepo) GetByID(ctx context.Context, id string) (shows.Show, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return shows.Show{}, shows.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+showColumns+`
		FROM shows
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	s, err := scanShow(row.Scan)
	if err == sql.ErrNoRows {
		return shows.Show{}, shows.ErrNotFound
	}
	return s, err
}

func (r *ShowsRepo) List(ctx context.Context, f shows.ListFilter) ([]shows.Show, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR location ILIKE $%d)", len(args), len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("show_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("show_date <= $%d", len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM shows "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT `+showColumns+`
		FROM shows
		%s
		ORDER BY show_date DESC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]shows.Show, 0)
	for rows.Next() {
		s, err := scanShow(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *ShowsRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shows
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shows.ErrNotFound
	}
	return nil
}

func (r *ShowsRepo) CreateAssignment(ctx context.Context, a shows.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO show_assignments (id, show_id, secretary_user_id, breed_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, a.ID, a.ShowID, a.SecretaryUserID, a.BreedID, a.CreatedAt)
	if isUniqueViolation(err) {
		return shows.ErrAssignmentDuplicate
	}
	return err
}

func (r *ShowsRepo) ListAssignments(ctx context.Context, showID string) ([]shows.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, show_id, secretary_user_id, breed_id, created_at
		FROM show_assignments
		WHERE show_id = $1
		ORDER BY created_at ASC
	`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shows.Assignment, 0)
	for rows.Next() {
		var a shows.Assignment
		if err := rows.Scan(&a.ID, &a.ShowID, &a.SecretaryUserID, &a.BreedID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ShowsRepo) DeleteAssignment(ctx context.Context, showID, assignmentID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM show_assignments
		WHERE id = $1 AND show_id = $2
	`, assignmentID, showID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shows.ErrAssignmentNotFound
	}
	return nil
}

func (r *ShowsRepo) HasAssignment(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM show_assignments
		WHERE show_id = $1 AND secretary_user_id = $2 AND breed_id = $3
	`, showID, secretaryUserID, breedID).Scan(&n)
	return n > 0, err
}

func scanShow(scan func(...any) error) (shows.Show, error) {
	var s shows.Show
	var deleted sql.NullTime
	if err := scan(
		&s.ID,
		&s.Name,
		&s.ShowDate,
		&s.Location,
		&s.BranchID,
		&s.Description,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
		&deleted,
	); err != nil {
		return shows.Show{}, err
	}
	s.DeletedAt = fromNullTime(deleted)
	return s, nil
}
