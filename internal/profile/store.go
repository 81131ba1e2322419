// Package profile persists local convenience state between client runs:
// the last server-asserted account list (for login autofill) and the last
// joined room. Nothing here is authoritative; the server's next AccountList
// replaces whatever was saved.
package profile

import (
	"context"

	"github.com/kapu/tictac-client/internal/wire"
)

type Store interface {
	SaveAccounts(ctx context.Context, entries []wire.AccountEntry) error
	LoadAccounts(ctx context.Context) ([]wire.AccountEntry, error)
	SaveLastRoom(ctx context.Context, room string) error
	LastRoom(ctx context.Context) (string, error)
	Close() error
}
