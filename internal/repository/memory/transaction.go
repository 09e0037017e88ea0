package memory

import "context"

// Transactor is a passthrough database.Transactor. The in-memory stores
// apply writes immediately, so atomicity collapses to running fn.
type Transactor struct{}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
