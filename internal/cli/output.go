package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case PrivyData:
		o.printPrivyData(v)
	case UserGameData:
		o.printUserGameData(v)
	case PlayerGameModeData:
		o.printGameModeData(v)
	case PlayerVehicleData:
		o.printVehicleData(v)
	case LeaderboardResult:
		o.printEntries("Leaderboard", v.Leaderboard)
	case UsersResult:
		o.printEntries("Users", v.Users)
	case AchievementResult:
		o.printAchievement(v)
	case LedgerStatusResult:
		o.printLedgerStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID                 string             `json:"id"`
	PrivyData          PrivyData          `json:"privyData"`
	UserGameData       UserGameData       `json:"userGameData"`
	PlayerGameModeData PlayerGameModeData `json:"playerGameModeData"`
	PlayerVehicleData  PlayerVehicleData  `json:"playerVehicleData"`
	CampaignData       map[string]bool    `json:"campaignData"`
}

// PrivyData response type
type PrivyData struct {
	WalletAddress string `json:"walletAddress"`
	Email         string `json:"email"`
	Discord       string `json:"discord"`
	Telegram      string `json:"telegram"`
	Type          string `json:"type"`
}

// UserGameData response type
type UserGameData struct {
	PlayerName       string  `json:"playerName"`
	Currency         int64   `json:"currency"`
	LastWeekCurrency int64   `json:"lastWeekCurrency"`
	TotalPlayedTime  float64 `json:"totalPlayedTime"`
}

// PlayerGameModeData response type
type PlayerGameModeData struct {
	BestScoreOneWay     int64 `json:"bestScoreOneWay"`
	BestScoreTwoWay     int64 `json:"bestScoreTwoWay"`
	BestScoreTimeAttack int64 `json:"bestScoreTimeAttack"`
	BestScoreBomb       int64 `json:"bestScoreBomb"`
}

// PlayerVehicleData response type
type PlayerVehicleData struct {
	SelectedPlayerCarIndex int `json:"selectedPlayerCarIndex"`
	JeepOwned              int `json:"JeepOwned"`
	VanOwned               int `json:"VanOwned"`
	SierraOwned            int `json:"SierraOwned"`
	SedanOwned             int `json:"SedanOwned"`
	LamborghiniOwned       int `json:"LamborghiniOwned"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	WalletAddress string `json:"walletAddress"`
	PlayerName    string `json:"playerName"`
	Currency      int64  `json:"currency"`
}

// LeaderboardResult response type
type LeaderboardResult struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// UsersResult response type
type UsersResult struct {
	Success bool               `json:"success"`
	Users   []LeaderboardEntry `json:"users"`
}

// AchievementResult response type
type AchievementResult struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    struct {
		Achieved1000M bool `json:"Achieved1000M"`
	} `json:"data"`
}

// CategoryStatus response type
type CategoryStatus struct {
	State      string `json:"state"`
	QueueDepth int    `json:"queueDepth"`
	Records    string `json:"records,omitempty"`
	Players    string `json:"players,omitempty"`
	StatsError string `json:"statsError,omitempty"`
}

// LedgerStatusResult response type
type LedgerStatusResult struct {
	Success bool                      `json:"success"`
	Data    map[string]CategoryStatus `json:"data"`
}

// HealthResult response type
type HealthResult struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.UserGameData.PlayerName, p.ID)
	o.printPrivyData(p.PrivyData)
	o.printUserGameData(p.UserGameData)
	o.printGameModeData(p.PlayerGameModeData)
	o.printVehicleData(p.PlayerVehicleData)
	if len(p.CampaignData) > 0 {
		flags := make([]string, 0, len(p.CampaignData))
		for flag, achieved := range p.CampaignData {
			if achieved {
				flags = append(flags, flag)
			}
		}
		sort.Strings(flags)
		fmt.Printf("Campaign (%d achieved):\n", len(flags))
		for _, flag := range flags {
			fmt.Printf("  - %s\n", flag)
		}
	}
}

func (o *Output) printPrivyData(d PrivyData) {
	fmt.Printf("Identity: %s\n", d.Type)
	if d.WalletAddress != "" {
		fmt.Printf("  Wallet: %s\n", d.WalletAddress)
	}
	if d.Email != "" {
		fmt.Printf("  Email: %s\n", d.Email)
	}
	if d.Discord != "" {
		fmt.Printf("  Discord: %s\n", d.Discord)
	}
	if d.Telegram != "" {
		fmt.Printf("  Telegram: %s\n", d.Telegram)
	}
}

func (o *Output) printUserGameData(d UserGameData) {
	fmt.Printf("Name: %s\n", d.PlayerName)
	fmt.Printf("Currency: %d\n", d.Currency)
	fmt.Printf("Played: %.1fs\n", d.TotalPlayedTime)
}

func (o *Output) printGameModeData(d PlayerGameModeData) {
	fmt.Printf("Best Scores:\n")
	fmt.Printf("  One Way: %d\n", d.BestScoreOneWay)
	fmt.Printf("  Two Way: %d\n", d.BestScoreTwoWay)
	fmt.Printf("  Time Attack: %d\n", d.BestScoreTimeAttack)
	fmt.Printf("  Bomb: %d\n", d.BestScoreBomb)
}

func (o *Output) printVehicleData(d PlayerVehicleData) {
	fmt.Printf("Selected Vehicle: %d\n", d.SelectedPlayerCarIndex)
	fmt.Printf("Owned: Jeep=%d Van=%d Sierra=%d Sedan=%d Lamborghini=%d\n",
		d.JeepOwned, d.VanOwned, d.SierraOwned, d.SedanOwned, d.LamborghiniOwned)
}

func (o *Output) printEntries(title string, entries []LeaderboardEntry) {
	fmt.Printf("%s (%d):\n", title, len(entries))
	for i, e := range entries {
		name := e.PlayerName
		if e.WalletAddress != "" {
			name = fmt.Sprintf("%s (%s)", name, e.WalletAddress)
		}
		fmt.Printf("  %2d. %s - %d\n", i+1, name, e.Currency)
	}
}

func (o *Output) printAchievement(a AchievementResult) {
	fmt.Printf("Result: %s\n", a.Message)
	fmt.Printf("Achieved1000M: %t\n", a.Data.Achieved1000M)
}

func (o *Output) printLedgerStatus(s LedgerStatusResult) {
	if len(s.Data) == 0 {
		fmt.Println("No mirror contracts configured")
		return
	}
	categories := make([]string, 0, len(s.Data))
	for category := range s.Data {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		status := s.Data[category]
		fmt.Printf("%s: %s (queued %d)\n", category, status.State, status.QueueDepth)
		if status.Records != "" {
			fmt.Printf("  records=%s players=%s\n", status.Records, status.Players)
		}
		if status.StatsError != "" {
			fmt.Printf("  stats error: %s\n", status.StatsError)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Uptime: %.1fs\n", h.Uptime)
}
