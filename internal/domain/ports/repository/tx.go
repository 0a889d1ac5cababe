package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Its concrete type is infra-defined
// (pgx.Tx for Postgres). Repositories must gracefully accept NoTX and fall
// back to their non-transactional path.
type Tx interface{}

// NoTX is passed where no enclosing transaction exists.
var NoTX Tx

// TransactionManager executes a function inside a database transaction,
// handing the transaction handle to repositories via tx. Keeping the handle
// opaque stops storage types leaking into use-case signatures.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
