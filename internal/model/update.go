package model

// Per-category update structs. Each field is optional; only fields
// present in the request are applied, so an update can never clear
// state it does not mention.

// EconomyUpdate mutates the economy field group
type EconomyUpdate struct {
	DisplayName      *string  `json:"playerName,omitempty"`
	Currency         *int64   `json:"currency,omitempty"`
	LastWeekCurrency *int64   `json:"lastWeekCurrency,omitempty"`
	TotalPlayedTime  *float64 `json:"totalPlayedTime,omitempty"`
}

// Apply assigns the present fields onto the record
func (u EconomyUpdate) Apply(p *Player) {
	if u.DisplayName != nil {
		p.Economy.DisplayName = *u.DisplayName
	}
	if u.Currency != nil {
		p.Economy.Currency = *u.Currency
	}
	if u.LastWeekCurrency != nil {
		p.Economy.LastWeekCurrency = *u.LastWeekCurrency
	}
	if u.TotalPlayedTime != nil {
		p.Economy.TotalPlayedTime = *u.TotalPlayedTime
	}
}

// ScoreUpdate mutates the per-mode best scores
type ScoreUpdate struct {
	OneWay     *int64 `json:"bestScoreOneWay,omitempty"`
	TwoWay     *int64 `json:"bestScoreTwoWay,omitempty"`
	TimeAttack *int64 `json:"bestScoreTimeAttack,omitempty"`
	Bomb       *int64 `json:"bestScoreBomb,omitempty"`
}

// Apply assigns the present fields onto the record
func (u ScoreUpdate) Apply(p *Player) {
	if u.OneWay != nil {
		p.BestScores.OneWay = *u.OneWay
	}
	if u.TwoWay != nil {
		p.BestScores.TwoWay = *u.TwoWay
	}
	if u.TimeAttack != nil {
		p.BestScores.TimeAttack = *u.TimeAttack
	}
	if u.Bomb != nil {
		p.BestScores.Bomb = *u.Bomb
	}
}

// VehicleUpdate mutates vehicle ownership and selection
type VehicleUpdate struct {
	SelectedIndex *int `json:"selectedPlayerCarIndex,omitempty"`
	Jeep          *int `json:"JeepOwned,omitempty"`
	Van           *int `json:"VanOwned,omitempty"`
	Sierra        *int `json:"SierraOwned,omitempty"`
	Sedan         *int `json:"SedanOwned,omitempty"`
	Lamborghini   *int `json:"LamborghiniOwned,omitempty"`
}

// Apply assigns the present fields onto the record
func (u VehicleUpdate) Apply(p *Player) {
	if u.SelectedIndex != nil {
		p.Vehicles.SelectedIndex = *u.SelectedIndex
	}
	if u.Jeep != nil {
		p.Vehicles.Jeep = *u.Jeep
	}
	if u.Van != nil {
		p.Vehicles.Van = *u.Van
	}
	if u.Sierra != nil {
		p.Vehicles.Sierra = *u.Sierra
	}
	if u.Sedan != nil {
		p.Vehicles.Sedan = *u.Sedan
	}
	if u.Lamborghini != nil {
		p.Vehicles.Lamborghini = *u.Lamborghini
	}
}

// CampaignUpdate sets named achievement flags. Only the keys present
// in the map are touched.
type CampaignUpdate struct {
	Flags map[string]bool
}

// Apply assigns the present flags onto the record
func (u CampaignUpdate) Apply(p *Player) {
	if len(u.Flags) == 0 {
		return
	}
	if p.Campaign == nil {
		p.Campaign = CampaignData{}
	}
	for flag, v := range u.Flags {
		p.Campaign[flag] = v
	}
}

// FullUpdate carries every category at once, as sent by the game
// client at session end
type FullUpdate struct {
	Identity *IdentityMetadata `json:"privyData,omitempty"`
	Economy  *EconomyUpdate    `json:"userGameData,omitempty"`
	Scores   *ScoreUpdate      `json:"playerGameModeData,omitempty"`
	Vehicles *VehicleUpdate    `json:"playerVehicleData,omitempty"`
	Campaign map[string]bool   `json:"campaignData,omitempty"`
}

// IdentityMetadata is the bag of optional identity fields supplied at
// login by the auth provider. Empty strings mean "not supplied".
type IdentityMetadata struct {
	Address        string `json:"address,omitempty"`
	WalletAddress  string `json:"walletAddress,omitempty"`
	Email          string `json:"email,omitempty"`
	DiscordHandle  string `json:"discord,omitempty"`
	DiscordID      string `json:"discordId,omitempty"`
	TelegramHandle string `json:"telegram,omitempty"`
	ProviderName   string `json:"providerName,omitempty"`
	ChainID        string `json:"chainId,omitempty"`
	ExternalUserID string `json:"privyUserId,omitempty"`
	Type           string `json:"type,omitempty"`
}
