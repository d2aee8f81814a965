// Package resolver owns the find-before-create protocol: every lookup
// and login funnels through it so at most one record exists per
// distinct identifier value.
package resolver

import (
	"context"
	"strings"

	"github.com/highwayhustle/backend/internal/dependencies/clock"
	"github.com/highwayhustle/backend/internal/dependencies/random"
	"github.com/highwayhustle/backend/internal/identity"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/storage"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service resolves raw identifiers to player records
type Service struct {
	storage storage.Store
	clock   clock.Clock
	random  random.Random
}

// New creates a new resolver service
func New(storage storage.Store, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Candidate picks the identifier to resolve with from a login request.
// Explicit identifier wins, then the provider metadata fields, then the
// loose wallet fields. Returns false when every source is blank.
func Candidate(identifier string, meta model.IdentityMetadata, homeWallet, wallet string) (string, bool) {
	for _, c := range []string{
		identifier,
		meta.Address,
		meta.Email,
		meta.DiscordHandle,
		homeWallet,
		wallet,
	} {
		if strings.TrimSpace(c) != "" {
			return c, true
		}
	}
	return "", false
}

// Resolve finds the record known by the given raw identifier. The
// identifier is normalized before lookup, so any casing or surrounding
// whitespace resolves to the same record.
func (s *Service) Resolve(ctx context.Context, raw string) (*model.Player, error) {
	normalized, ok := identity.Normalize(raw)
	if !ok {
		return nil, model.ErrMissingIdentifier
	}
	return s.storage.FindPlayerByIdentifier(ctx, normalized)
}

// ResolveOrCreate finds the record for the identifier, creating a
// fresh one with starting state when none exists. The second return
// reports whether a record was created.
func (s *Service) ResolveOrCreate(ctx context.Context, raw string) (*model.Player, bool, error) {
	normalized, ok := identity.Normalize(raw)
	if !ok {
		return nil, false, model.ErrMissingIdentifier
	}

	player, err := s.storage.FindPlayerByIdentifier(ctx, normalized)
	if err == nil {
		return player, false, nil
	}
	if err != model.ErrPlayerNotFound {
		return nil, false, err
	}

	player = model.NewPlayer(s.newPlayerID(), s.clock.Now())
	identity.Assign(&player.Identity, normalized)

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, false, err
	}
	return player, true, nil
}

// MergeIdentity folds provider metadata into a record's identity.
// Only fields present in the metadata are written; a merge never
// clears an identifier learned earlier. The record is re-saved so the
// store indexes any newly learned identifiers.
func (s *Service) MergeIdentity(ctx context.Context, player *model.Player, meta model.IdentityMetadata) error {
	// The wallet candidate comes from the metadata bag only, address
	// field first; a wallet already on the record must not influence
	// the type of this login.
	walletCandidate, ok := identity.Normalize(meta.Address)
	if !ok {
		walletCandidate, _ = identity.Normalize(meta.WalletAddress)
	}
	if walletCandidate != "" {
		player.Identity.WalletAddress = walletCandidate
	}
	if normalized, ok := identity.Normalize(meta.Email); ok {
		player.Identity.Email = normalized
	}
	if normalized, ok := identity.Normalize(meta.DiscordHandle); ok {
		player.Identity.DiscordHandle = normalized
	}
	if normalized, ok := identity.Normalize(meta.DiscordID); ok {
		player.Identity.DiscordID = normalized
	}
	if normalized, ok := identity.Normalize(meta.TelegramHandle); ok {
		player.Identity.TelegramHandle = normalized
	}

	if meta.ProviderName != "" {
		player.Identity.ProviderName = meta.ProviderName
	}
	if meta.ChainID != "" {
		player.Identity.ChainID = meta.ChainID
	}
	if meta.ExternalUserID != "" {
		player.Identity.ExternalUserID = meta.ExternalUserID
	}

	now := s.clock.Now()
	player.Identity.Type = identity.DetermineType(meta, walletCandidate)
	player.Identity.RecordedAt = now
	player.LastUpdated = now

	return s.storage.SavePlayer(ctx, player)
}

// Login resolves (or creates) the record for the request's candidate
// identifier and merges the supplied metadata onto it
func (s *Service) Login(ctx context.Context, raw string, meta model.IdentityMetadata) (*model.Player, bool, error) {
	player, created, err := s.ResolveOrCreate(ctx, raw)
	if err != nil {
		return nil, false, err
	}
	if err := s.MergeIdentity(ctx, player, meta); err != nil {
		return nil, false, err
	}
	return player, created, nil
}

func (s *Service) newPlayerID() model.PlayerID {
	return model.PlayerID("p_" + s.random.String(16, idAlphabet))
}
