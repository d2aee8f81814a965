package request

import "github.com/highwayhustle/backend/internal/model"

// LoginRequest is the body of POST /api/player/login. Every field is
// optional; the identifier the record resolves with is derived from
// them in priority order.
type LoginRequest struct {
	Identifier        string                 `json:"identifier"`
	PrivyMetaData     model.IdentityMetadata `json:"privyMetaData"`
	HomeWalletAddress string                 `json:"homeWalletAddress"`
	WalletAddress     string                 `json:"walletAddress"`
}

// FullUpdateRequest is the body of POST /api/player/all
type FullUpdateRequest = model.FullUpdate

// IdentityUpdateRequest is the body of POST /api/player/privy
type IdentityUpdateRequest = model.IdentityMetadata

// EconomyUpdateRequest is the body of POST /api/player/game
type EconomyUpdateRequest = model.EconomyUpdate

// ScoreUpdateRequest is the body of POST /api/player/gamemode
type ScoreUpdateRequest = model.ScoreUpdate

// VehicleUpdateRequest is the body of POST /api/player/vehicle
type VehicleUpdateRequest = model.VehicleUpdate
