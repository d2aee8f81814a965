package player

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/highwayhustle/backend/internal/dependencies/mocks"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/services/resolver"
	"github.com/highwayhustle/backend/internal/storage/memory"
	"github.com/highwayhustle/backend/internal/testutil"
)

const testWallet = "0x00112233445566778899aabbccddeeff00112233"

type recordingDispatcher struct {
	events []model.MirrorEvent
}

func (d *recordingDispatcher) Dispatch(event model.MirrorEvent) {
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) byCategory(category model.MirrorCategory) []model.MirrorEvent {
	var out []model.MirrorEvent
	for _, e := range d.events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	dispatcher *recordingDispatcher
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Unix(1700000000, 0))
	s.dispatcher = &recordingDispatcher{}

	rand := mocks.NewMockRandom()
	for i := 0; i < 50; i++ {
		rand.StringResults = append(rand.StringResults, fmt.Sprintf("id%04d", i))
	}

	res := resolver.New(s.storage, s.clock, rand)
	s.controller = NewController(s.storage, res, s.dispatcher, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) mustLoad(user string) *model.Player {
	player, err := s.controller.Load(s.ctx, user)
	s.Require().NoError(err)
	return player
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

// Login

func (s *ControllerSuite) TestLoginCreatesAndMerges() {
	player, err := s.controller.Login(s.ctx, "", model.IdentityMetadata{
		Address: testWallet,
		Email:   "Alice@Example.com",
	}, "", "")
	s.Require().NoError(err)

	s.Equal(testWallet, player.Identity.WalletAddress)
	s.Equal("alice@example.com", player.Identity.Email)
	s.Equal(int64(20000), player.Economy.Currency)
}

func (s *ControllerSuite) TestLoginMissingIdentifier() {
	_, err := s.controller.Login(s.ctx, "", model.IdentityMetadata{}, "", "")
	s.ErrorIs(err, model.ErrMissingIdentifier)
}

func (s *ControllerSuite) TestLoginIsIdempotent() {
	first, err := s.controller.Login(s.ctx, testWallet, model.IdentityMetadata{}, "", "")
	s.Require().NoError(err)

	second, err := s.controller.Login(s.ctx, "", model.IdentityMetadata{Address: testWallet}, "", "")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

// Reads

func (s *ControllerSuite) TestLoadCreates() {
	player := s.mustLoad("alice@example.com")
	s.Equal("alice@example.com", player.Identity.Email)
	s.Equal("Unnamed", player.Economy.DisplayName)

	// A second load returns the same record
	again := s.mustLoad("alice@example.com")
	s.Equal(player.ID, again.ID)
}

func (s *ControllerSuite) TestGetDoesNotCreate() {
	_, err := s.controller.Get(s.ctx, "alice@example.com")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Economy updates

func (s *ControllerSuite) TestUpdateEconomyRequiresExistingPlayer() {
	_, err := s.controller.UpdateEconomy(s.ctx, "nobody", model.EconomyUpdate{Currency: int64Ptr(1)})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestUpdateEconomyEarning() {
	s.mustLoad(testWallet)

	player, err := s.controller.UpdateEconomy(s.ctx, testWallet, model.EconomyUpdate{
		Currency: int64Ptr(21000),
	})
	s.Require().NoError(err)
	s.Equal(int64(21000), player.Economy.Currency)

	events := s.dispatcher.byCategory(model.MirrorEconomy)
	s.Require().Len(events, 1)
	s.Equal(model.CurrencyEarning, events[0].Kind)
	s.Equal(int64(1000), events[0].Delta)
	s.Equal(testWallet, events[0].Identifier)
	s.Equal(testWallet, events[0].Address)
}

func (s *ControllerSuite) TestUpdateEconomyUnchangedCurrencyNoEvent() {
	s.mustLoad(testWallet)

	_, err := s.controller.UpdateEconomy(s.ctx, testWallet, model.EconomyUpdate{
		Currency: int64Ptr(20000),
	})
	s.Require().NoError(err)
	s.Empty(s.dispatcher.events)
}

func (s *ControllerSuite) TestUpdateEconomyStampsLastUpdated() {
	s.mustLoad(testWallet)
	s.clock.Advance(time.Hour)

	player, err := s.controller.UpdateEconomy(s.ctx, testWallet, model.EconomyUpdate{
		Currency: int64Ptr(25000),
	})
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), player.LastUpdated)
}

// Score updates

func (s *ControllerSuite) TestUpdateScoresCarriesCurrencyAndPlayTime() {
	s.mustLoad(testWallet)
	_, err := s.controller.UpdateEconomy(s.ctx, testWallet, model.EconomyUpdate{
		TotalPlayedTime: func() *float64 { v := 42.5; return &v }(),
	})
	s.Require().NoError(err)

	_, err = s.controller.UpdateScores(s.ctx, testWallet, model.ScoreUpdate{
		TwoWay: int64Ptr(700),
	})
	s.Require().NoError(err)

	events := s.dispatcher.byCategory(model.MirrorScore)
	s.Require().Len(events, 1)
	s.Equal(int64(700), events[0].Scores.TwoWay)
	s.Equal(int64(20000), events[0].Currency)
	s.Equal(42.5, events[0].PlayTime)
}

func (s *ControllerSuite) TestUpdateScoresNoImprovementNoEvent() {
	player := s.mustLoad(testWallet)
	player.BestScores.OneWay = 500
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	_, err := s.controller.UpdateScores(s.ctx, testWallet, model.ScoreUpdate{
		OneWay: int64Ptr(300),
	})
	s.Require().NoError(err)
	s.Empty(s.dispatcher.byCategory(model.MirrorScore))
}

// Vehicle updates

func (s *ControllerSuite) TestUpdateVehiclesSwitch() {
	s.mustLoad(testWallet)

	player, err := s.controller.UpdateVehicles(s.ctx, testWallet, model.VehicleUpdate{
		SelectedIndex: intPtr(model.VehicleVan),
		Van:           intPtr(1),
	})
	s.Require().NoError(err)
	s.Equal(model.VehicleVan, player.Vehicles.SelectedIndex)
	s.Equal(1, player.Vehicles.Van)

	events := s.dispatcher.byCategory(model.MirrorVehicle)
	s.Require().Len(events, 1)
	s.Equal(model.VehicleJeep, events[0].FromIndex)
	s.Equal(model.VehicleVan, events[0].ToIndex)
}

// Full updates

func (s *ControllerSuite) TestUpdateAllFiresSessionEvent() {
	s.mustLoad(testWallet)

	player, err := s.controller.UpdateAll(s.ctx, testWallet, model.FullUpdate{
		Economy: &model.EconomyUpdate{Currency: int64Ptr(23000)},
		Scores:  &model.ScoreUpdate{Bomb: int64Ptr(150)},
	})
	s.Require().NoError(err)
	s.Equal(int64(23000), player.Economy.Currency)

	sessions := s.dispatcher.byCategory(model.MirrorSession)
	s.Require().Len(sessions, 1)
	s.Equal("all", sessions[0].SessionType)
	s.Equal(int64(23000), sessions[0].Currency, "session event reflects the post-update state")
	s.Equal(int64(150), sessions[0].Scores.Bomb)

	s.Len(s.dispatcher.byCategory(model.MirrorEconomy), 1)
	s.Len(s.dispatcher.byCategory(model.MirrorScore), 1)
}

func (s *ControllerSuite) TestUpdateAllNoChangesStillFiresSession() {
	s.mustLoad(testWallet)

	_, err := s.controller.UpdateAll(s.ctx, testWallet, model.FullUpdate{})
	s.Require().NoError(err)

	s.Len(s.dispatcher.events, 1)
	s.Equal(model.MirrorSession, s.dispatcher.events[0].Category)
}

func (s *ControllerSuite) TestUpdateAllCampaignFlags() {
	s.mustLoad(testWallet)

	player, err := s.controller.UpdateAll(s.ctx, testWallet, model.FullUpdate{
		Campaign: map[string]bool{model.AchievementLongHaul: true},
	})
	s.Require().NoError(err)
	s.True(player.Campaign.Achieved(model.AchievementLongHaul))

	missions := s.dispatcher.byCategory(model.MirrorMission)
	s.Require().Len(missions, 1)
	s.Equal(model.AchievementLongHaul, missions[0].Achievement)
}

func (s *ControllerSuite) TestUpdateAllMergesIdentitySection() {
	s.mustLoad(testWallet)

	player, err := s.controller.UpdateAll(s.ctx, testWallet, model.FullUpdate{
		Identity: &model.IdentityMetadata{Email: "Alice@Example.com"},
		Economy:  &model.EconomyUpdate{Currency: int64Ptr(23000)},
	})
	s.Require().NoError(err)
	s.Equal("alice@example.com", player.Identity.Email)
	s.Equal(int64(23000), player.Economy.Currency)

	// The merged identifier is findable straight away
	found, err := s.controller.Get(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(player.ID, found.ID)
}

func (s *ControllerSuite) TestUpdateAllRequiresExistingPlayer() {
	_, err := s.controller.UpdateAll(s.ctx, "nobody", model.FullUpdate{})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Achievement check

func (s *ControllerSuite) TestCheckAchievement() {
	s.False(s.controller.CheckAchievement(s.ctx, "", model.AchievementLongHaul))
	s.False(s.controller.CheckAchievement(s.ctx, "nobody", model.AchievementLongHaul))

	s.mustLoad(testWallet)
	s.False(s.controller.CheckAchievement(s.ctx, testWallet, model.AchievementLongHaul))

	_, err := s.controller.UpdateAll(s.ctx, testWallet, model.FullUpdate{
		Campaign: map[string]bool{model.AchievementLongHaul: true},
	})
	s.Require().NoError(err)
	s.True(s.controller.CheckAchievement(s.ctx, testWallet, model.AchievementLongHaul))
}

// Leaderboard

func (s *ControllerSuite) TestLeaderboardTopTen() {
	for i := 0; i < 12; i++ {
		user := fmt.Sprintf("player%d@example.com", i)
		s.mustLoad(user)
		_, err := s.controller.UpdateEconomy(s.ctx, user, model.EconomyUpdate{
			Currency: int64Ptr(int64(1000 * (i + 1))),
		})
		s.Require().NoError(err)
	}

	top, err := s.controller.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(top, 10)
	s.Equal(int64(12000), top[0].Economy.Currency)
	s.Equal(int64(3000), top[9].Economy.Currency)

	all, err := s.controller.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 12)
}
