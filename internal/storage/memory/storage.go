package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	// identifier value -> record, one entry per populated field
	identifierIndex map[string]model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:         make(map[model.PlayerID]*model.Player),
		identifierIndex: make(map[string]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// clonePlayer copies a record so callers cannot mutate stored state.
// The campaign map is the only reference field on Player.
func clonePlayer(player *model.Player) *model.Player {
	copied := *player
	if player.Campaign != nil {
		copied.Campaign = make(model.CampaignData, len(player.Campaign))
		for k, v := range player.Campaign {
			copied.Campaign[k] = v
		}
	}
	return &copied
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.ID] = clonePlayer(player)
	for _, id := range player.Identifiers() {
		s.identifierIndex[id] = player.ID
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) FindPlayerByIdentifier(ctx context.Context, identifier string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.identifierIndex[identifier]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) ListPlayersByCurrency(ctx context.Context, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, clonePlayer(p))
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Economy.Currency > players[j].Economy.Currency
	})
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}
