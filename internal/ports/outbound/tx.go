package outbound

import "context"

// TxManager runs a function inside a single storage transaction.
// Repositories called with the context passed to fn join that transaction;
// any error from fn rolls everything back.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
