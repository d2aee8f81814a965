package model

// MirrorCategory names one of the per-category ledger contracts
type MirrorCategory string

const (
	MirrorSession MirrorCategory = "session"
	MirrorVehicle MirrorCategory = "vehicle"
	MirrorMission MirrorCategory = "mission"
	MirrorScore   MirrorCategory = "score"
	MirrorEconomy MirrorCategory = "economy"
)

// CurrencyKind classifies the direction of a currency change
type CurrencyKind string

const (
	CurrencyEarning CurrencyKind = "earning"
	CurrencySpend   CurrencyKind = "spend"
)

// MirrorEvent describes one off-chain state change queued for
// best-effort replication to the ledger. Events are value types;
// only the fields relevant to the category are populated. The
// outcome of a mirror submission is logged, never written back.
type MirrorEvent struct {
	Category   MirrorCategory
	Identifier string
	// Address is the player's 0x-prefixed wallet address, or the
	// zero address when no wallet is known
	Address string

	// economy
	Delta       int64
	Kind        CurrencyKind
	Description string

	// vehicle
	FromIndex int
	ToIndex   int

	// mission
	Achievement string

	// score: the full updated score set; the adapter submits only
	// the single highest score across modes
	Scores ScoreData

	// session (also reused by score submissions)
	SessionType string
	Currency    int64
	PlayTime    float64
}
