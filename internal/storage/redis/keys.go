package redis

import (
	"fmt"

	"github.com/highwayhustle/backend/internal/model"
)

// Key prefix for all player-related data
const keyPrefix = "hustle"

// playerKey returns the Redis key for a player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// identifierIndexKey returns the Redis key for the
// identifier value -> player_id index
func identifierIndexKey(identifier string) string {
	return fmt.Sprintf("%s:idx:identifier:%s", keyPrefix, identifier)
}

// currencyIndexKey returns the Redis key for the ZSET ordering players
// by currency
func currencyIndexKey() string {
	return fmt.Sprintf("%s:idx:currency", keyPrefix)
}
