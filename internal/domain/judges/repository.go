package judges

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("judge not found")
	ErrDuplicate = errors.New("judge already exists")
)

type ListFilter struct {
	FCIGroup *int
	IsActive *bool
	Search   string // sobre nombre y apellido

	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, j Judge) error
	GetByID(ctx context.Context, id string) (Judge, error)
	List(ctx context.Context, f ListFilter) ([]Judge, int, error)
}
