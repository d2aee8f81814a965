package model

import "time"

// PlayerID uniquely identifies a player record across the system
type PlayerID string

// IdentityType classifies which identifier a record was most recently
// authenticated with. Values match the provider metadata wire format.
type IdentityType string

const (
	IdentityTypeUnknown   IdentityType = "unknown"
	IdentityTypeWallet    IdentityType = "walletAddress"
	IdentityTypeEmail     IdentityType = "email"
	IdentityTypeDiscord   IdentityType = "discord"
	IdentityTypeDiscordID IdentityType = "discordId"
	IdentityTypeTelegram  IdentityType = "telegram"
)

// Vehicle indices as used by the game client and the vehicle contract
const (
	VehicleJeep = iota
	VehicleVan
	VehicleSierra
	VehicleSedan
	VehicleLamborghini
)

// VehicleName maps a vehicle index to its display name
func VehicleName(index int) string {
	switch index {
	case VehicleJeep:
		return "Jeep"
	case VehicleVan:
		return "Van"
	case VehicleSierra:
		return "Sierra"
	case VehicleSedan:
		return "Sedan"
	case VehicleLamborghini:
		return "Lamborghini"
	default:
		return "Unknown"
	}
}

// AchievementLongHaul is the campaign flag for driving 1000 metres,
// checked by the third-party campaign integration.
const AchievementLongHaul = "Achieved1000M"

// IdentityData is the set of identifiers a player record is known by.
// All identifier fields are stored normalized (lowercased, trimmed);
// empty means the field has never been supplied.
type IdentityData struct {
	WalletAddress  string
	Email          string
	DiscordHandle  string
	DiscordID      string
	TelegramHandle string

	// Carried verbatim from login metadata
	ProviderName   string
	ChainID        string
	ExternalUserID string

	Type       IdentityType
	RecordedAt time.Time
}

// EconomyData holds the player's currency and playtime accounting
type EconomyData struct {
	DisplayName      string
	Currency         int64
	LastWeekCurrency int64
	TotalPlayedTime  float64
}

// ScoreData holds the per-game-mode best scores
type ScoreData struct {
	OneWay     int64
	TwoWay     int64
	TimeAttack int64
	Bomb       int64
}

// Highest returns the largest best score across all modes and the
// index of its game mode (0=OneWay, 1=TwoWay, 2=TimeAttack, 3=Bomb).
// Ties resolve to the earliest mode.
func (s ScoreData) Highest() (mode int, score int64) {
	scores := [4]int64{s.OneWay, s.TwoWay, s.TimeAttack, s.Bomb}
	for i, v := range scores {
		if v > score {
			mode, score = i, v
		}
	}
	return mode, score
}

// VehicleData holds vehicle ownership counts and the active selection
type VehicleData struct {
	SelectedIndex int
	Jeep          int
	Van           int
	Sierra        int
	Sedan         int
	Lamborghini   int
}

// CampaignData is the set of named boolean achievement flags
type CampaignData map[string]bool

// Achieved reports whether the named flag has been unlocked
func (c CampaignData) Achieved(flag string) bool {
	return c != nil && c[flag]
}

// Player is the canonical record for one player. At most one record
// exists per distinct identifier value; the resolver's
// find-before-create protocol enforces this, not the store.
type Player struct {
	ID          PlayerID
	Identity    IdentityData
	Economy     EconomyData
	BestScores  ScoreData
	Vehicles    VehicleData
	Campaign    CampaignData
	CreatedAt   time.Time
	LastUpdated time.Time
}

// NewPlayer returns a record with the documented starting state:
// 20000 currency, the starter Jeep owned, zero scores, no achievements.
func NewPlayer(id PlayerID, now time.Time) *Player {
	return &Player{
		ID: id,
		Identity: IdentityData{
			Type:       IdentityTypeUnknown,
			RecordedAt: now,
		},
		Economy: EconomyData{
			DisplayName: "Unnamed",
			Currency:    20000,
		},
		Vehicles: VehicleData{
			SelectedIndex: VehicleJeep,
			Jeep:          1,
		},
		Campaign:    CampaignData{},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Identifiers returns the populated identifier values in lookup
// priority order (wallet, discord handle, telegram, email, discord id).
func (p *Player) Identifiers() []string {
	candidates := []string{
		p.Identity.WalletAddress,
		p.Identity.DiscordHandle,
		p.Identity.TelegramHandle,
		p.Identity.Email,
		p.Identity.DiscordID,
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// PrimaryIdentifier returns the identifier mirrored to the ledger:
// wallet address first, then email, discord handle, telegram handle.
func (p *Player) PrimaryIdentifier() string {
	for _, c := range []string{
		p.Identity.WalletAddress,
		p.Identity.Email,
		p.Identity.DiscordHandle,
		p.Identity.TelegramHandle,
	} {
		if c != "" {
			return c
		}
	}
	return "unknown"
}
