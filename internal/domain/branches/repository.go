package branches

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("branch not found")

type ListFilter struct {
	Region   string
	IsActive *bool

	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, b Branch) error
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context, f ListFilter) ([]Branch, int, error)
}
