package storage

import (
	"context"

	"github.com/highwayhustle/backend/internal/model"
)

// Store defines the interface for player record persistence.
// Implementations index each identifier field individually; there is
// no cross-field uniqueness constraint (the resolver's
// find-before-create protocol provides that).
type Store interface {
	// SavePlayer persists the record and refreshes its identifier
	// index entries
	SavePlayer(ctx context.Context, player *model.Player) error

	// GetPlayer fetches a record by its internal ID
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// FindPlayerByIdentifier looks up a record matching the
	// normalized identifier on any identifier field, first match by
	// field priority. Returns model.ErrPlayerNotFound when absent.
	FindPlayerByIdentifier(ctx context.Context, identifier string) (*model.Player, error)

	// ListPlayersByCurrency returns records ordered by currency
	// descending; limit <= 0 means no limit
	ListPlayersByCurrency(ctx context.Context, limit int) ([]*model.Player, error)

	// Close releases any underlying connections
	Close() error
}
