// Package player implements the profile operations behind the HTTP
// API: login, lazy-loading reads, per-category updates and the
// third-party achievement check. Updates run change detection against
// the stored record before applying, and queue the resulting mirror
// events only after the store write has committed.
package player

import (
	"context"
	"log/slog"

	"github.com/highwayhustle/backend/internal/dependencies/clock"
	"github.com/highwayhustle/backend/internal/detect"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/services/resolver"
	"github.com/highwayhustle/backend/internal/storage"
)

const leaderboardSize = 10

// MirrorDispatcher queues events for best-effort ledger replication
type MirrorDispatcher interface {
	Dispatch(event model.MirrorEvent)
}

// Controller handles player profile operations
type Controller struct {
	storage  storage.Store
	resolver *resolver.Service
	mirrors  MirrorDispatcher
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new player controller
func NewController(
	storage storage.Store,
	resolver *resolver.Service,
	mirrors MirrorDispatcher,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		resolver: resolver,
		mirrors:  mirrors,
		clock:    clock,
		logger:   logger,
	}
}

// Login records an auth-provider login: resolves (or creates) the
// record for the request's candidate identifier and merges the
// provider metadata onto it
func (c *Controller) Login(ctx context.Context, identifier string, meta model.IdentityMetadata, homeWallet, wallet string) (*model.Player, error) {
	candidate, ok := resolver.Candidate(identifier, meta, homeWallet, wallet)
	if !ok {
		return nil, model.ErrMissingIdentifier
	}

	player, created, err := c.resolver.Login(ctx, candidate, meta)
	if err != nil {
		return nil, err
	}
	if created {
		c.logger.Info("new player created during login",
			slog.String("player_id", string(player.ID)))
	}
	return player, nil
}

// Load fetches the record for an identifier, creating one with
// starting state when none exists
func (c *Controller) Load(ctx context.Context, user string) (*model.Player, error) {
	player, created, err := c.resolver.ResolveOrCreate(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		c.logger.Info("new player created",
			slog.String("player_id", string(player.ID)))
	}
	return player, nil
}

// Get fetches the record for an identifier without creating one
func (c *Controller) Get(ctx context.Context, user string) (*model.Player, error) {
	return c.resolver.Resolve(ctx, user)
}

// UpdateIdentity merges identity metadata onto an existing record
func (c *Controller) UpdateIdentity(ctx context.Context, user string, meta model.IdentityMetadata) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := c.resolver.MergeIdentity(ctx, player, meta); err != nil {
		return nil, err
	}
	return player, nil
}

// UpdateEconomy applies an economy update to an existing record,
// mirroring any currency change
func (c *Controller) UpdateEconomy(ctx context.Context, user string, update model.EconomyUpdate) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	events := detect.Economy(player, &update)
	update.Apply(player)

	if err := c.save(ctx, player); err != nil {
		return nil, err
	}
	c.dispatch(player, events)
	return player, nil
}

// UpdateScores applies a best-score update to an existing record,
// mirroring when any mode improved
func (c *Controller) UpdateScores(ctx context.Context, user string, update model.ScoreUpdate) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	events := detect.Scores(player, &update)
	update.Apply(player)

	if err := c.save(ctx, player); err != nil {
		return nil, err
	}
	c.dispatch(player, events)
	return player, nil
}

// UpdateVehicles applies a vehicle update to an existing record,
// mirroring a selection switch
func (c *Controller) UpdateVehicles(ctx context.Context, user string, update model.VehicleUpdate) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	events := detect.Vehicle(player, &update)
	update.Apply(player)

	if err := c.save(ctx, player); err != nil {
		return nil, err
	}
	c.dispatch(player, events)
	return player, nil
}

// UpdateCampaign applies campaign flag changes to an existing record,
// mirroring each newly achieved flag
func (c *Controller) UpdateCampaign(ctx context.Context, user string, update model.CampaignUpdate) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	events := detect.Campaign(player, &update)
	update.Apply(player)

	if err := c.save(ctx, player); err != nil {
		return nil, err
	}
	c.dispatch(player, events)
	return player, nil
}

// UpdateAll applies a full profile update in one write. Change
// detection runs per category against the pre-update record, and a
// session event fires unconditionally on top of whatever the
// categories produced.
func (c *Controller) UpdateAll(ctx context.Context, user string, update model.FullUpdate) (*model.Player, error) {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}

	// Identity metadata merges first so the mirrored events carry the
	// freshly supplied identifiers
	if update.Identity != nil {
		if err := c.resolver.MergeIdentity(ctx, player, *update.Identity); err != nil {
			return nil, err
		}
	}

	var events []model.MirrorEvent
	events = append(events, detect.Economy(player, update.Economy)...)
	events = append(events, detect.Scores(player, update.Scores)...)
	events = append(events, detect.Vehicle(player, update.Vehicles)...)
	events = append(events, detect.Campaign(player, &model.CampaignUpdate{Flags: update.Campaign})...)

	if update.Economy != nil {
		update.Economy.Apply(player)
	}
	if update.Scores != nil {
		update.Scores.Apply(player)
	}
	if update.Vehicles != nil {
		update.Vehicles.Apply(player)
	}
	model.CampaignUpdate{Flags: update.Campaign}.Apply(player)

	if err := c.save(ctx, player); err != nil {
		return nil, err
	}

	events = append(events, detect.Session(player, "all"))
	c.dispatch(player, events)
	return player, nil
}

// CheckAchievement reports whether the record known by the identifier
// has unlocked the flag. Every failure mode collapses to false; the
// third-party campaign caller only distinguishes achieved from not.
func (c *Controller) CheckAchievement(ctx context.Context, user, flag string) bool {
	player, err := c.resolver.Resolve(ctx, user)
	if err != nil {
		return false
	}
	return player.Campaign.Achieved(flag)
}

// Leaderboard returns the top players by currency
func (c *Controller) Leaderboard(ctx context.Context) ([]*model.Player, error) {
	return c.storage.ListPlayersByCurrency(ctx, leaderboardSize)
}

// ListPlayers returns every record ordered by currency descending
func (c *Controller) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return c.storage.ListPlayersByCurrency(ctx, 0)
}

func (c *Controller) save(ctx context.Context, player *model.Player) error {
	player.LastUpdated = c.clock.Now()
	return c.storage.SavePlayer(ctx, player)
}

// dispatch stamps identity onto the detected events and queues them.
// Runs only after the store write committed; score events additionally
// carry the post-update currency and play time their contract wants.
func (c *Controller) dispatch(player *model.Player, events []model.MirrorEvent) {
	for _, event := range events {
		event.Identifier = player.PrimaryIdentifier()
		event.Address = player.Identity.WalletAddress
		if event.Category == model.MirrorScore || event.Category == model.MirrorSession {
			event.Currency = player.Economy.Currency
			event.PlayTime = player.Economy.TotalPlayedTime
		}
		c.mirrors.Dispatch(event)
	}
}
