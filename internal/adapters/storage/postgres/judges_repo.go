package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"dog-show-club/internal/domain/judges"
)

type JudgesRepo struct {
	db *sql.DB
}

func NewJudgesRepo(db *sql.DB) *JudgesRepo {
	return &JudgesRepo{db: db}
}

func (r *JudgesRepo) Create(ctx context.Context, j judges.Judge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO judges (
			id, first_name, last_name,
			license_number, country, fci_groups, is_active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		j.ID,
		j.FirstName,
		j.LastName,
		j.LicenseNumber,
		j.Country,
		joinGroups(j.FCIGroups),
		j.IsActive,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return judges.ErrDuplicate
	}
	return err
}

func (r *JudgesRepo) GetByID(ctx context.Context, id string) (judges.Judge, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return judges.Judge{}, judges.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, first_name, last_name,
			license_number, country, fci_groups, is_active,
			created_at, updated_at
		FROM judges
		WHERE id = $1
	`, id)

	j, err := scanJudge(row.Scan)
	if err == sql.ErrNoRows {
		return judges.Judge{}, judges.ErrNotFound
	}
	return j, err
}

func (r *JudgesRepo) List(ctx context.Context, f judges.ListFilter) ([]judges.Judge, int, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", len(args), len(args)))
	}
	if f.FCIGroup != nil {
		// fci_groups se guarda como lista "1,3,8"; el filtro fino por
		// grupo se hace en Go tras el fetch para no parsear en SQL.
		_ = f.FCIGroup
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	q := fmt.Sprintf(`
		SELECT
			id, first_name, last_name,
			license_number, country, fci_groups, is_active,
			created_at, updated_at
		FROM judges
		%s
		ORDER BY last_name ASC, first_name ASC
	`, cond)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	all := make([]judges.Judge, 0)
	for rows.Next() {
		j, err := scanJudge(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		if f.FCIGroup != nil && !j.MayJudgeGroup(*f.FCIGroup) {
			continue
		}
		all = append(all, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total := len(all)
	lo := f.Offset
	if lo > total {
		lo = total
	}
	hi := lo + f.Limit
	if f.Limit <= 0 || hi > total {
		hi = total
	}
	return all[lo:hi], total, nil
}

func scanJudge(scan func(...any) error) (judges.Judge, error) {
	var j judges.Judge
	var groups string
	if err := scan(
		&j.ID,
		&j.FirstName,
		&j.LastName,
		&j.LicenseNumber,
		&j.Country,
		&groups,
		&j.IsActive,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return judges.Judge{}, err
	}
	j.FCIGroups = splitGroups(groups)
	return j, nil
}

// fci_groups se persiste como "1,3,8" en una columna text.
func joinGroups(groups []int) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, strconv.Itoa(g))
	}
	return strings.Join(parts, ",")
}

func splitGroups(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
