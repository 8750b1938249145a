package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-show-club/internal/domain/descriptions"
)

type DescriptionsRepo struct {
	db *sql.DB
}

func NewDescriptionsRepo(db *sql.DB) *DescriptionsRepo {
	return &DescriptionsRepo{db: db}
}

const descriptionColumns = `
	id, show_id, dog_id, judge_id, secretary_id,
	dog_class, grade_scale, grade_value, title, placement, content,
	version, is_final, finalized_at,
	created_at, updated_at
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertDescription corre contra *sql.DB o *sql.Tx; el alta combinada
// de registrations lo reutiliza dentro de su transacción.
func insertDescription(ctx context.Context, ex execer, d descriptions.Description) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO descriptions (`+descriptionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		d.ID,
		d.ShowID,
		d.DogID,
		d.JudgeID,
		d.SecretaryID,
		d.DogClass,
		d.Grade.Scale,
		d.Grade.Value,
		d.Title,
		d.Placement,
		d.Content,
		d.Version,
		d.IsFinal,
		toNullTime(d.FinalizedAt),
		d.CreatedAt,
		d.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return descriptions.ErrDuplicate
	}
	return err
}

func (r *DescriptionsRepo) Create(ctx context.Context, d descriptions.Description) error {
	return insertDescription(ctx, r.db, d)
}

func (r *DescriptionsRepo) Update(ctx context.Context, d descriptions.Description) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE descriptions
		SET
			dog_class = $2,
			grade_scale = $3,
			grade_value = $4,
			title = $5,
			placement = $6,
			content = $7,
			version = $8,
			is_final = $9,
			finalized_at = $10,
			updated_at = $11
		WHERE id = $1
	`,
		d.ID,
		d.DogClass,
		d.Grade.Scale,
		d.Grade.Value,
		d.Title,
		d.Placement,
		d.Content,
		d.Version,
		d.IsFinal,
		toNullTime(d.FinalizedAt),
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return descriptions.ErrNotFound
	}
	return nil
}

func (r *DescriptionsRepo) GetByID(ctx context.Context, id string) (descriptions.Description, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return descriptions.Description{}, descriptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+descriptionColumns+`
		FROM descriptions
		WHERE id = $1
	`, id)

	d, err := scanDescription(row.Scan)
	if err == sql.ErrNoRows {
		return descriptions.Description{}, descriptions.ErrNotFound
	}
	return d, err
}

func (r *DescriptionsRepo) FindByShowDogJudge(ctx context.Context, showID, dogID, judgeID string) (descriptions.Description, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+descriptionColumns+`
		FROM descriptions
		WHERE show_id = $1 AND dog_id = $2 AND judge_id = $3
	`, showID, dogID, judgeID)

	d, err := scanDescription(row.Scan)
	if err == sql.ErrNoRows {
		return descriptions.Description{}, descriptions.ErrNotFound
	}
	return d, err
}

func (r *DescriptionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM descriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return descriptions.ErrNotFound
	}
	return nil
}

func (r *DescriptionsRepo) AddRevision(ctx context.Context, rev descriptions.Revision) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO description_revisions (
			id, description_id, version,
			dog_class, grade_scale, grade_value, title, placement, content,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		rev.ID,
		rev.DescriptionID,
		rev.Version,
		rev.DogClass,
		rev.Grade.Scale,
		rev.Grade.Value,
		rev.Title,
		rev.Placement,
		rev.Content,
		rev.CreatedAt,
	)
	return err
}

func (r *DescriptionsRepo) ListRevisions(ctx context.Context, descriptionID string) ([]descriptions.Revision, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, description_id, version,
			dog_class, grade_scale, grade_value, title, placement, content,
			created_at
		FROM description_revisions
		WHERE description_id = $1
		ORDER BY version DESC
	`, descriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]descriptions.Revision, 0)
	for rows.Next() {
		var rev descriptions.Revision
		if err := rows.Scan(
			&rev.ID,
			&rev.DescriptionID,
			&rev.Version,
			&rev.DogClass,
			&rev.Grade.Scale,
			&rev.Grade.Value,
			&rev.Title,
			&rev.Placement,
			&rev.Content,
			&rev.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func scanDescription(scan func(...any) error) (descriptions.Description, error) {
	var d descriptions.Description
	var finalized sql.NullTime
	if err := scan(
		&d.ID,
		&d.ShowID,
		&d.DogID,
		&d.JudgeID,
		&d.SecretaryID,
		&d.DogClass,
		&d.Grade.Scale,
		&d.Grade.Value,
		&d.Title,
		&d.Placement,
		&d.Content,
		&d.Version,
		&d.IsFinal,
		&finalized,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return descriptions.Description{}, err
	}
	d.FinalizedAt = fromNullTime(finalized)
	return d, nil
}
