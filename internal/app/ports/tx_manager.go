package ports

import "context"

// TxManager runs fn in one transaction; repositories called with the
// context passed to fn join it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
