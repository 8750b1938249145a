package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dog-show-club/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `
	id, name, breed_id, gender, birth_date, microchip,
	kennel_club_number, kennel_name, father_name, mother_name,
	created_at, updated_at, deleted_at
`

// Create inserta perro y links de dueños en una sola transacción.
func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dogs (`+dogColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		d.ID,
		d.Name,
		d.BreedID,
		d.Gender,
		d.BirthDate,
		d.Microchip,
		d.KennelClubNumber,
		d.KennelName,
		d.FatherName,
		d.MotherName,
		d.CreatedAt,
		d.UpdatedAt,
		toNullTime(d.DeletedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dogs.ErrDuplicate
		}
		return err
	}

	if err := insertOwnerLinks(ctx, tx, d.ID, d.Owners); err != nil {
		return err
	}
	return tx.Commit()
}

// Update reescribe la fila y reemplaza los links completos; el service
// ya validó que hay exactamente un primary.
func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			breed_id = $3,
			gender = $4,
			birth_date = $5,
			microchip = $6,
			kennel_club_number = $7,
			kennel_name = $8,
			father_name = $9,
			mother_name = $10,
			updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`,
		d.ID,
		d.Name,
		d.BreedID,
		d.Gender,
		d.BirthDate,
		d.Microchip,
		d.KennelClubNumber,
		d.KennelName,
		d.FatherName,
		d.MotherName,
		d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dogs.ErrDuplicate
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dog_owners WHERE dog_id = $1`, d.ID); err != nil {
		return err
	}
	if err := insertOwnerLinks(ctx, tx, d.ID, d.Owners); err != nil {
		return err
	}
	return tx.Commit()
}

func insertOwnerLinks(ctx context.Context, tx *sql.Tx, dogID string, links []dogs.OwnerLink) error {
	for _, l := range links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dog_owners (dog_id, owner_id, is_primary)
			VALUES ($1,$2,$3)
		`, dogID, l.OwnerID, l.IsPrimary); err != nil {
			return err
		}
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+dogColumns+`
		FROM dogs
		WHERE id = $1 AND deleted_at IS NULL
	`, id)

	d, err := scanDog(row.Scan)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	if err != nil {
		return dogs.Dog{}, err
	}

	d.Owners, err = r.ownerLinks(ctx, d.ID)
	return d, err
}

func (r *DogsRepo) FindByMicrochip(ctx context.Context, microchip string) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+dogColumns+`
		FROM dogs
		WHERE microchip = $1 AND deleted_at IS NULL
	`, microchip)

	d, err := scanDog(row.Scan)
	if err == sql.ErrNoRows {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	if err != nil {
		return dogs.Dog{}, err
	}

	d.Owners, err = r.ownerLinks(ctx, d.ID)
	return d, err
}

func (r *DogsRepo) List(ctx context.Context, f dogs.ListFilter) ([]dogs.Dog, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if !f.IncludeDeleted {
		where = append(where, "d.deleted_at IS NULL")
	}
	if f.BreedID != "" {
		args = append(args, f.BreedID)
		where = append(where, fmt.Sprintf("d.breed_id = $%d", len(args)))
	}
	if f.Gender != "" {
		args = append(args, f.Gender)
		where = append(where, fmt.Sprintf("d.gender = $%d", len(args)))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM dog_owners l WHERE l.dog_id = d.id AND l.owner_id = $%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(d.name ILIKE $%d OR d.kennel_name ILIKE $%d)", len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dogs d "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT
			d.id, d.name, d.breed_id, d.gender, d.birth_date, d.microchip,
			d.kennel_club_number, d.kennel_name, d.father_name, d.mother_name,
			d.created_at, d.updated_at, d.deleted_at
		FROM dogs d
		%s
		ORDER BY d.name ASC
		LIMIT $%d OFFSET $%d
	`, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		out[i].Owners, err = r.ownerLinks(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

func (r *DogsRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM dogs d
		JOIN dog_owners l ON l.dog_id = d.id
		WHERE l.owner_id = $1 AND d.deleted_at IS NULL
	`, ownerID).Scan(&n)
	return n, err
}

func (r *DogsRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) ownerLinks(ctx context.Context, dogID string) ([]dogs.OwnerLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT owner_id, is_primary
		FROM dog_owners
		WHERE dog_id = $1
		ORDER BY is_primary DESC, owner_id ASC
	`, dogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.OwnerLink, 0, 2)
	for rows.Next() {
		var l dogs.OwnerLink
		if err := rows.Scan(&l.OwnerID, &l.IsPrimary); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanDog(scan func(...any) error) (dogs.Dog, error) {
	var d dogs.Dog
	var deleted sql.NullTime
	if err := scan(
		&d.ID,
		&d.Name,
		&d.BreedID,
		&d.Gender,
		&d.BirthDate,
		&d.Microchip,
		&d.KennelClubNumber,
		&d.KennelName,
		&d.FatherName,
		&d.MotherName,
		&d.CreatedAt,
		&d.UpdatedAt,
		&deleted,
	); err != nil {
		return dogs.Dog{}, err
	}
	d.DeletedAt = fromNullTime(deleted)
	return d, nil
}
