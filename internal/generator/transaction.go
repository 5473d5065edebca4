package generator

import (
	"context"
	"errors"
	"fmt"
)

// Transaction stages operations and commits them in order. If one fails,
// the operations already executed are reverted in reverse order.
type Transaction struct {
	operations []Operation
	executed   []Operation
	committed  bool
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{
		operations: make([]Operation, 0),
	}
}

// Add stages an operation (doesn't execute yet)
func (t *Transaction) Add(op Operation) {
	t.operations = append(t.operations, op)
}

// Commit executes all staged operations. The context is checked before
// each one; cancellation rolls back like any other failure.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if err := ctx.Err(); err != nil {
			return t.fail(err)
		}
		if err := op.Execute(ctx); err != nil {
			return t.fail(fmt.Errorf("%s: %w", op.Description(), err))
		}
		t.executed = append(t.executed, op)
	}

	t.committed = true
	return nil
}

func (t *Transaction) fail(cause error) error {
	if err := t.Rollback(); err != nil {
		return errors.Join(cause, fmt.Errorf("rollback: %w", err))
	}
	return cause
}

// Rollback reverts executed operations of an uncommitted transaction
// (for use in defer). Operations that cannot revert are left as they are.
func (t *Transaction) Rollback() error {
	if t.committed {
		return nil
	}
	var errs []error
	for i := len(t.executed) - 1; i >= 0; i-- {
		if r, ok := t.executed[i].(Reverter); ok {
			if err := r.Revert(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	t.executed = nil
	return errors.Join(errs...)
}
