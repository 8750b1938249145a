package shows

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("show not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAssignmentDuplicate = errors.New("assignment already exists")
)

type ListFilter struct {
	Status         string
	Search         string // ilike sobre name y location
	From           *time.Time
	To             *time.Time
	IncludeDeleted bool

	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, s Show) error
	Update(ctx context.Context, s Show) error
	GetByID(ctx context.Context, id string) (Show, error)
	List(ctx context.Context, f ListFilter) ([]Show, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error

	CreateAssignment(ctx context.Context, a Assignment) error
	ListAssignments(ctx context.Context, showID string) ([]Assignment, error)
	DeleteAssignment(ctx context.Context, showID, assignmentID string) error
	HasAssignment(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error)
}
