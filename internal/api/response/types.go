// Package response defines the wire shapes the game client consumes.
// Field names are part of the client contract and do not follow Go
// JSON conventions.
package response

import (
	"time"

	"github.com/highwayhustle/backend/internal/model"
)

// DataResponse wraps a successful payload
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// OKResponse is a bare success acknowledgement
type OKResponse struct {
	Success bool `json:"success"`
}

// PrivyData is the identity field group
type PrivyData struct {
	WalletAddress  string    `json:"walletAddress,omitempty"`
	Email          string    `json:"email,omitempty"`
	DiscordHandle  string    `json:"discord,omitempty"`
	DiscordID      string    `json:"discordId,omitempty"`
	TelegramHandle string    `json:"telegram,omitempty"`
	ProviderName   string    `json:"providerName,omitempty"`
	ChainID        string    `json:"chainId,omitempty"`
	ExternalUserID string    `json:"privyUserId,omitempty"`
	Type           string    `json:"type"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// UserGameData is the economy field group
type UserGameData struct {
	PlayerName       string  `json:"playerName"`
	Currency         int64   `json:"currency"`
	LastWeekCurrency int64   `json:"lastWeekCurrency"`
	TotalPlayedTime  float64 `json:"totalPlayedTime"`
}

// PlayerGameModeData is the per-mode best score field group
type PlayerGameModeData struct {
	BestScoreOneWay     int64 `json:"bestScoreOneWay"`
	BestScoreTwoWay     int64 `json:"bestScoreTwoWay"`
	BestScoreTimeAttack int64 `json:"bestScoreTimeAttack"`
	BestScoreBomb       int64 `json:"bestScoreBomb"`
}

// PlayerVehicleData is the vehicle ownership field group
type PlayerVehicleData struct {
	SelectedPlayerCarIndex int `json:"selectedPlayerCarIndex"`
	JeepOwned              int `json:"JeepOwned"`
	VanOwned               int `json:"VanOwned"`
	SierraOwned            int `json:"SierraOwned"`
	SedanOwned             int `json:"SedanOwned"`
	LamborghiniOwned       int `json:"LamborghiniOwned"`
}

// Player is the complete profile as served to the client
type Player struct {
	ID                 string             `json:"id"`
	PrivyData          PrivyData          `json:"privyData"`
	UserGameData       UserGameData       `json:"userGameData"`
	PlayerGameModeData PlayerGameModeData `json:"playerGameModeData"`
	PlayerVehicleData  PlayerVehicleData  `json:"playerVehicleData"`
	CampaignData       map[string]bool    `json:"campaignData"`
	CreatedAt          time.Time          `json:"createdAt"`
	LastUpdated        time.Time          `json:"lastUpdated"`
}

// PrivyDataFromModel converts the identity field group
func PrivyDataFromModel(i model.IdentityData) PrivyData {
	return PrivyData{
		WalletAddress:  i.WalletAddress,
		Email:          i.Email,
		DiscordHandle:  i.DiscordHandle,
		DiscordID:      i.DiscordID,
		TelegramHandle: i.TelegramHandle,
		ProviderName:   i.ProviderName,
		ChainID:        i.ChainID,
		ExternalUserID: i.ExternalUserID,
		Type:           string(i.Type),
		RecordedAt:     i.RecordedAt,
	}
}

// UserGameDataFromModel converts the economy field group
func UserGameDataFromModel(e model.EconomyData) UserGameData {
	return UserGameData{
		PlayerName:       e.DisplayName,
		Currency:         e.Currency,
		LastWeekCurrency: e.LastWeekCurrency,
		TotalPlayedTime:  e.TotalPlayedTime,
	}
}

// PlayerGameModeDataFromModel converts the score field group
func PlayerGameModeDataFromModel(s model.ScoreData) PlayerGameModeData {
	return PlayerGameModeData{
		BestScoreOneWay:     s.OneWay,
		BestScoreTwoWay:     s.TwoWay,
		BestScoreTimeAttack: s.TimeAttack,
		BestScoreBomb:       s.Bomb,
	}
}

// PlayerVehicleDataFromModel converts the vehicle field group
func PlayerVehicleDataFromModel(v model.VehicleData) PlayerVehicleData {
	return PlayerVehicleData{
		SelectedPlayerCarIndex: v.SelectedIndex,
		JeepOwned:              v.Jeep,
		VanOwned:               v.Van,
		SierraOwned:            v.Sierra,
		SedanOwned:             v.Sedan,
		LamborghiniOwned:       v.Lamborghini,
	}
}

// PlayerFromModel converts a full record
func PlayerFromModel(p *model.Player) Player {
	campaign := p.Campaign
	if campaign == nil {
		campaign = model.CampaignData{}
	}
	return Player{
		ID:                 string(p.ID),
		PrivyData:          PrivyDataFromModel(p.Identity),
		UserGameData:       UserGameDataFromModel(p.Economy),
		PlayerGameModeData: PlayerGameModeDataFromModel(p.BestScores),
		PlayerVehicleData:  PlayerVehicleDataFromModel(p.Vehicles),
		CampaignData:       campaign,
		CreatedAt:          p.CreatedAt,
		LastUpdated:        p.LastUpdated,
	}
}

// LeaderboardEntry is one row of the leaderboard and user listings
type LeaderboardEntry struct {
	WalletAddress string `json:"walletAddress,omitempty"`
	PlayerName    string `json:"playerName"`
	Currency      int64  `json:"currency"`
}

// LeaderboardEntryFromModel projects the fields the listings expose
func LeaderboardEntryFromModel(p *model.Player) LeaderboardEntry {
	return LeaderboardEntry{
		WalletAddress: p.Identity.WalletAddress,
		PlayerName:    p.Economy.DisplayName,
		Currency:      p.Economy.Currency,
	}
}

// LeaderboardResponse is the body of GET /api/leaderboard
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// UsersResponse is the body of GET /api/users
type UsersResponse struct {
	Success bool               `json:"success"`
	Users   []LeaderboardEntry `json:"users"`
}

// AchievementData carries the single flag the campaign integration
// checks
type AchievementData struct {
	Achieved1000M bool `json:"Achieved1000M"`
}

// AchievementResponse is the body of GET /api/check-user-achievement.
// The integration expects HTTP 200 with code 200 on every outcome,
// achieved or not.
type AchievementResponse struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    AchievementData `json:"data"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
