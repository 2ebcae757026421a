package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// ErrNotOwned is returned when a resource does not belong to the requesting
// organisation. Ownership checks are explicit: the organisation id is
// threaded through every action, never held as ambient state.
var ErrNotOwned = errors.New("resource does not belong to organisation")
