package repository

import "context"

// SerialRepository exposes the last committed serial. Committing a new value
// always rides the atomic write that persists the record consuming it (see
// WeighmentRepository), so there is no standalone save here.
type SerialRepository interface {
	LoadLast(ctx context.Context) (string, error)
}
