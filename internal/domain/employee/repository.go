package employee

import "context"

type Repository interface {
	// GetByID returns the employee or ErrEmployeeNotFound.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns all employees currently on the roster.
	ListActive(ctx context.Context) ([]Employee, error)
}
