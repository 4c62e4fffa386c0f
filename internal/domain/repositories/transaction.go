package repositories

import "context"

// TxFn runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs a function inside a database transaction. Each
// lifecycle use-case wraps its reads and writes in one ExecTx call so
// provider reconciliation can never be observed half-applied.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
