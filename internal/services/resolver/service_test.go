package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/highwayhustle/backend/internal/dependencies/mocks"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/storage/memory"
)

const testWallet = "0x00112233445566778899aabbccddeeff00112233"

type ResolverSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Unix(1700000000, 0))
	s.random = mocks.NewMockRandom()
	s.random.StringResults = []string{"aaaa0001", "aaaa0002", "aaaa0003"}
	s.service = New(s.storage, s.clock, s.random)
	s.ctx = context.Background()
}

func (s *ResolverSuite) TestCandidateOrder() {
	meta := model.IdentityMetadata{
		Address:       testWallet,
		Email:         "alice@example.com",
		DiscordHandle: "alice#1234",
	}

	c, ok := Candidate("explicit-id", meta, "home-wallet", "wallet")
	s.True(ok)
	s.Equal("explicit-id", c)

	c, ok = Candidate("", meta, "home-wallet", "wallet")
	s.True(ok)
	s.Equal(testWallet, c)

	c, ok = Candidate("", model.IdentityMetadata{Email: "alice@example.com"}, "home-wallet", "wallet")
	s.True(ok)
	s.Equal("alice@example.com", c)

	c, ok = Candidate("", model.IdentityMetadata{}, "home-wallet", "wallet")
	s.True(ok)
	s.Equal("home-wallet", c)

	c, ok = Candidate("", model.IdentityMetadata{}, "", "wallet")
	s.True(ok)
	s.Equal("wallet", c)

	_, ok = Candidate("  ", model.IdentityMetadata{}, "", "")
	s.False(ok)
}

func (s *ResolverSuite) TestResolveOrCreateCreates() {
	player, created, err := s.service.ResolveOrCreate(s.ctx, testWallet)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.PlayerID("p_aaaa0001"), player.ID)
	s.Equal(testWallet, player.Identity.WalletAddress)
	s.Equal(int64(20000), player.Economy.Currency)
	s.Equal(1, player.Vehicles.Jeep)
}

func (s *ResolverSuite) TestResolveOrCreateIsIdempotent() {
	first, created, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.True(created)

	second, created, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)
}

func (s *ResolverSuite) TestResolveNormalizes() {
	created, _, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)

	// Different casing and whitespace resolve to the same record
	found, err := s.service.Resolve(s.ctx, "  Alice@Example.COM ")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
}

func (s *ResolverSuite) TestResolveMissingIdentifier() {
	_, err := s.service.Resolve(s.ctx, "   ")
	s.ErrorIs(err, model.ErrMissingIdentifier)

	_, _, err = s.service.ResolveOrCreate(s.ctx, "")
	s.ErrorIs(err, model.ErrMissingIdentifier)
}

func (s *ResolverSuite) TestResolveNotFound() {
	_, err := s.service.Resolve(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ResolverSuite) TestMergeIdentityPreservesExisting() {
	player, _, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)

	err = s.service.MergeIdentity(s.ctx, player, model.IdentityMetadata{
		WalletAddress: testWallet,
	})
	s.Require().NoError(err)

	s.Equal("alice@example.com", player.Identity.Email, "merge must not clear earlier identifiers")
	s.Equal(testWallet, player.Identity.WalletAddress)
	s.Equal(model.IdentityTypeWallet, player.Identity.Type)

	// The record is now findable by either identifier
	byWallet, err := s.service.Resolve(s.ctx, testWallet)
	s.Require().NoError(err)
	s.Equal(player.ID, byWallet.ID)

	byEmail, err := s.service.Resolve(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(player.ID, byEmail.ID)
}

func (s *ResolverSuite) TestMergeIdentityExplicitTypeWins() {
	player, _, err := s.service.ResolveOrCreate(s.ctx, testWallet)
	s.Require().NoError(err)

	err = s.service.MergeIdentity(s.ctx, player, model.IdentityMetadata{
		DiscordID: "123456",
		Type:      "email",
	})
	s.Require().NoError(err)
	s.Equal(model.IdentityTypeEmail, player.Identity.Type)
}

func (s *ResolverSuite) TestMergeIdentityTypeIgnoresStoredWallet() {
	player, _, err := s.service.ResolveOrCreate(s.ctx, testWallet)
	s.Require().NoError(err)
	s.Equal(model.IdentityTypeWallet, player.Identity.Type)

	// An email-only login on a record that already holds a wallet is
	// typed by the metadata, not by the stored wallet
	err = s.service.MergeIdentity(s.ctx, player, model.IdentityMetadata{
		Email: "alice@example.com",
	})
	s.Require().NoError(err)
	s.Equal(model.IdentityTypeEmail, player.Identity.Type)
	s.Equal(testWallet, player.Identity.WalletAddress, "stored wallet stays put")
}

func (s *ResolverSuite) TestMergeIdentityAddressBeatsWalletAddress() {
	const otherWallet = "0xffeeddccbbaa99887766554433221100ffeeddcc"

	player, _, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)

	err = s.service.MergeIdentity(s.ctx, player, model.IdentityMetadata{
		Address:       otherWallet,
		WalletAddress: testWallet,
	})
	s.Require().NoError(err)
	s.Equal(otherWallet, player.Identity.WalletAddress)
	s.Equal(model.IdentityTypeWallet, player.Identity.Type)
}

func (s *ResolverSuite) TestMergeIdentityStampsTimes() {
	player, _, err := s.service.ResolveOrCreate(s.ctx, "alice@example.com")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	err = s.service.MergeIdentity(s.ctx, player, model.IdentityMetadata{
		TelegramHandle: "@alice",
	})
	s.Require().NoError(err)

	s.Equal(s.clock.Now(), player.Identity.RecordedAt)
	s.Equal(s.clock.Now(), player.LastUpdated)
	s.Equal("@alice", player.Identity.TelegramHandle)
	s.Equal(model.IdentityTypeTelegram, player.Identity.Type)
}

func (s *ResolverSuite) TestLoginWalletThenEmailMetadata() {
	player, created, err := s.service.Login(s.ctx, testWallet, model.IdentityMetadata{
		Email:        "Alice@Example.com",
		ProviderName: "privy",
		ChainID:      "16600",
	})
	s.Require().NoError(err)
	s.True(created)
	s.Equal(testWallet, player.Identity.WalletAddress)
	s.Equal("alice@example.com", player.Identity.Email)
	s.Equal("privy", player.Identity.ProviderName)

	// A later login by email lands on the same record
	again, created, err := s.service.Login(s.ctx, "alice@example.com", model.IdentityMetadata{})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(player.ID, again.ID)
}
