package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/highwayhustle/backend/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newPlayer(id model.PlayerID) *model.Player {
	return model.NewPlayer(id, time.Now())
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.newPlayer("player-1")
	player.Economy.DisplayName = "Alice"

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.Economy.DisplayName)
	s.Equal(int64(20000), retrieved.Economy.Currency)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestFindPlayerByIdentifier() {
	player := s.newPlayer("player-1")
	player.Identity.WalletAddress = "0x00112233445566778899aabbccddeeff00112233"
	player.Identity.Email = "alice@example.com"

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	byWallet, err := s.storage.FindPlayerByIdentifier(s.ctx, "0x00112233445566778899aabbccddeeff00112233")
	s.Require().NoError(err)
	s.Equal(player.ID, byWallet.ID)

	byEmail, err := s.storage.FindPlayerByIdentifier(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(player.ID, byEmail.ID)
}

func (s *StorageSuite) TestFindPlayerByIdentifierNotFound() {
	_, err := s.storage.FindPlayerByIdentifier(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestFindPlayerAfterIdentityMerge() {
	player := s.newPlayer("player-1")
	player.Identity.Email = "alice@example.com"
	_ = s.storage.SavePlayer(s.ctx, player)

	// Adding a wallet later must make the record findable by wallet too
	player.Identity.WalletAddress = "0x00112233445566778899aabbccddeeff00112233"
	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	byWallet, err := s.storage.FindPlayerByIdentifier(s.ctx, "0x00112233445566778899aabbccddeeff00112233")
	s.Require().NoError(err)
	s.Equal(player.ID, byWallet.ID)

	byEmail, err := s.storage.FindPlayerByIdentifier(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(player.ID, byEmail.ID)
}

func (s *StorageSuite) TestListPlayersByCurrency() {
	poor := s.newPlayer("poor")
	poor.Economy.Currency = 100
	middle := s.newPlayer("middle")
	middle.Economy.Currency = 5000
	rich := s.newPlayer("rich")
	rich.Economy.Currency = 90000

	_ = s.storage.SavePlayer(s.ctx, middle)
	_ = s.storage.SavePlayer(s.ctx, rich)
	_ = s.storage.SavePlayer(s.ctx, poor)

	players, err := s.storage.ListPlayersByCurrency(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("rich"), players[0].ID)
	s.Equal(model.PlayerID("middle"), players[1].ID)
	s.Equal(model.PlayerID("poor"), players[2].ID)
}

func (s *StorageSuite) TestListPlayersByCurrencyLimit() {
	for i, id := range []model.PlayerID{"a", "b", "c", "d"} {
		p := s.newPlayer(id)
		p.Economy.Currency = int64((i + 1) * 1000)
		_ = s.storage.SavePlayer(s.ctx, p)
	}

	players, err := s.storage.ListPlayersByCurrency(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("d"), players[0].ID)
	s.Equal(model.PlayerID("c"), players[1].ID)
}

func (s *StorageSuite) TestListPlayersByCurrencyEmpty() {
	players, err := s.storage.ListPlayersByCurrency(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestCurrencyIndexUpdatedOnSave() {
	player := s.newPlayer("player-1")
	player.Economy.Currency = 100
	_ = s.storage.SavePlayer(s.ctx, player)

	other := s.newPlayer("player-2")
	other.Economy.Currency = 500
	_ = s.storage.SavePlayer(s.ctx, other)

	player.Economy.Currency = 1000
	_ = s.storage.SavePlayer(s.ctx, player)

	players, err := s.storage.ListPlayersByCurrency(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("player-1"), players[0].ID)
}
