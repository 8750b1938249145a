package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/domain/registrations"
)

type RegistrationsRepo struct {
	db *sql.DB
}

func NewRegistrationsRepo(db *sql.DB) *RegistrationsRepo {
	return &RegistrationsRepo{db: db}
}

// Create asigna el catalog_number con un MAX+1 dentro de la transacción;
// el insert y el cálculo del número son atómicos por show.
func (r *RegistrationsRepo) Create(ctx context.Context, reg registrations.Registration) (registrations.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return registrations.Registration{}, err
	}
	defer func() { _ = tx.Rollback() }()

	reg, err = insertRegistration(ctx, tx, reg)
	if err != nil {
		return registrations.Registration{}, err
	}
	return reg, tx.Commit()
}

func (r *RegistrationsRepo) CreateWithDescription(ctx context.Context, reg registrations.Registration, d descriptions.Description) (registrations.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return registrations.Registration{}, err
	}
	defer func() { _ = tx.Rollback() }()

	reg, err = insertRegistration(ctx, tx, reg)
	if err != nil {
		return registrations.Registration{}, err
	}
	if err := insertDescription(ctx, tx, d); err != nil {
		return registrations.Registration{}, err
	}
	return reg, tx.Commit()
}

func insertRegistration(ctx context.Context, tx *sql.Tx, reg registrations.Registration) (registrations.Registration, error) {
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(catalog_number), 0) + 1
		FROM registrations
		WHERE show_id = $1
	`, reg.ShowID).Scan(&reg.CatalogNumber)
	if err != nil {
		return registrations.Registration{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO registrations (
			id, show_id, dog_id, dog_class, catalog_number, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		reg.ID,
		reg.ShowID,
		reg.DogID,
		reg.DogClass,
		reg.CatalogNumber,
		reg.CreatedAt,
	)
	if isUniqueViolation(err) {
		return registrations.Registration{}, registrations.ErrDuplicate
	}
	if err != nil {
		return registrations.Registration{}, err
	}
	return reg, nil
}

func (r *RegistrationsRepo) GetByID(ctx context.Context, id string) (registrations.Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return registrations.Registration{}, registrations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, show_id, dog_id, dog_class, catalog_number, created_at
		FROM registrations
		WHERE id = $1
	`, id)

	reg, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return registrations.Registration{}, registrations.ErrNotFound
	}
	return reg, err
}

func (r *RegistrationsRepo) FindByShowAndDog(ctx context.Context, showID, dogID string) (registrations.Registration, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, show_id, dog_id, dog_class, catalog_number, created_at
		FROM registrations
		WHERE show_id = $1 AND dog_id = $2
	`, showID, dogID)

	reg, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return registrations.Registration{}, registrations.ErrNotFound
	}
	return reg, err
}

func (r *RegistrationsRepo) ListByShow(ctx context.Context, showID string) ([]registrations.Registration, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, show_id, dog_id, dog_class, catalog_number, created_at
		FROM registrations
		WHERE show_id = $1
		ORDER BY catalog_number ASC
	`, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]registrations.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *RegistrationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return registrations.ErrNotFound
	}
	return nil
}

func (r *RegistrationsRepo) CountByShow(ctx context.Context, showID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE show_id = $1
	`, showID).Scan(&n)
	return n, err
}

func scanRegistration(scan func(...any) error) (registrations.Registration, error) {
	var reg registrations.Registration
	if err := scan(
		&reg.ID,
		&reg.ShowID,
		&reg.DogID,
		&reg.DogClass,
		&reg.CatalogNumber,
		&reg.CreatedAt,
	); err != nil {
		return registrations.Registration{}, err
	}
	return reg, nil
}
