package ports

import (
	"context"
)

// UnitOfWorkFactory produces a fresh UnitOfWork per command invocation so
// concurrent operations never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary for one business operation over the
// order aggregate. The caller drives the lifecycle explicitly: Begin, work
// through the repository, then Commit or Rollback.
type UnitOfWork interface {
	// Begin opens a database transaction. Calling Begin again on an open
	// unit of work is a no-op.
	Begin(ctx context.Context) error

	// Commit finalizes the transaction. Fails when none is open.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Fails when none is open.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the open transaction,
	// or to the base connection when Begin was never called.
	OrderRepository() OrderRepository
}
