package domain

import "context"

// TxManager runs fn inside a single store transaction. Repositories called
// with the ctx passed to fn take part in that transaction. The transaction is
// rolled back when fn returns an error or panics.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
