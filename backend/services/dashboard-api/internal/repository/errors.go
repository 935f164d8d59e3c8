package repository

import (
	"context"
	"fmt"
	"time"
)

// queryTimeout bounds every statement; the store enforces nothing tighter.
const queryTimeout = 60 * time.Second

// DataAccessError is the single failure kind the store surfaces. A missing
// row is not an error; single-row lookups return nil instead.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func dataAccessErr(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

func queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}
