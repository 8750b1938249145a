package descriptions

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("description not found")
	ErrDuplicate = errors.New("description already exists for this show, dog and judge")
)

type Repository interface {
	Create(ctx context.Context, d Description) error
	Update(ctx context.Context, d Description) error
	GetByID(ctx context.Context, id string) (Description, error)
	FindByShowDogJudge(ctx context.Context, showID, dogID, judgeID string) (Description, error)
	Delete(ctx context.Context, id string) error

	// AddRevision archiva el estado previo antes de un update.
	AddRevision(ctx context.Context, rev Revision) error
	// ListRevisions devuelve el historial ordenado por version descendente.
	ListRevisions(ctx context.Context, descriptionID string) ([]Revision, error)
}
