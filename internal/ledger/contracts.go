package ledger

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/highwayhustle/backend/internal/model"
)

// Each category mirrors onto its own contract. Only the mutating
// method each adapter submits, plus getStats for the connectivity
// check, is described here.

const sessionABIJSON = `[
  {"type":"function","name":"recordSession","stateMutability":"nonpayable",
   "inputs":[{"name":"_identifier","type":"string"},{"name":"_playerAddress","type":"address"},
             {"name":"_sessionType","type":"string"},{"name":"_currency","type":"uint256"},
             {"name":"_bestScore","type":"uint256"}],
   "outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getStats","stateMutability":"view","inputs":[],
   "outputs":[{"name":"_totalSessions","type":"uint256"},{"name":"_totalUniquePlayers","type":"uint256"},
              {"name":"_owner","type":"address"}]}
]`

const vehicleABIJSON = `[
  {"type":"function","name":"switchVehicle","stateMutability":"nonpayable",
   "inputs":[{"name":"_identifier","type":"string"},{"name":"_playerAddress","type":"address"},
             {"name":"_newVehicle","type":"uint8"}],
   "outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getStats","stateMutability":"view","inputs":[],
   "outputs":[{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"}]}
]`

const missionABIJSON = `[
  {"type":"function","name":"unlockAchievement","stateMutability":"nonpayable",
   "inputs":[{"name":"_identifier","type":"string"},{"name":"_playerAddress","type":"address"},
             {"name":"_achievementId","type":"string"}],
   "outputs":[{"type":"bool"}]},
  {"type":"function","name":"getStats","stateMutability":"view","inputs":[],
   "outputs":[{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"}]}
]`

const scoreABIJSON = `[
  {"type":"function","name":"submitScore","stateMutability":"nonpayable",
   "inputs":[{"name":"_identifier","type":"string"},{"name":"_playerAddress","type":"address"},
             {"name":"_gameMode","type":"uint8"},{"name":"_score","type":"uint256"},
             {"name":"_distance","type":"uint256"},{"name":"_currency","type":"uint256"},
             {"name":"_playTime","type":"uint256"}],
   "outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getStats","stateMutability":"view","inputs":[],
   "outputs":[{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"}]}
]`

const economyABIJSON = `[
  {"type":"function","name":"recordTransaction","stateMutability":"nonpayable",
   "inputs":[{"name":"_identifier","type":"string"},{"name":"_playerAddress","type":"address"},
             {"name":"_transactionType","type":"uint8"},{"name":"_amount","type":"int256"},
             {"name":"_description","type":"string"}],
   "outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getStats","stateMutability":"view","inputs":[],
   "outputs":[{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"}]}
]`

// Economy contract transaction type indices
const (
	txTypeGameEarning uint8 = 0
	txTypeOther       uint8 = 8
)

type contractSpec struct {
	abi    abi.ABI
	method string
}

func mustSpec(abiJSON, method string) contractSpec {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Sprintf("bad contract abi for %s: %v", method, err))
	}
	return contractSpec{abi: parsed, method: method}
}

var contractSpecs = map[model.MirrorCategory]contractSpec{
	model.MirrorSession: mustSpec(sessionABIJSON, "recordSession"),
	model.MirrorVehicle: mustSpec(vehicleABIJSON, "switchVehicle"),
	model.MirrorMission: mustSpec(missionABIJSON, "unlockAchievement"),
	model.MirrorScore:   mustSpec(scoreABIJSON, "submitScore"),
	model.MirrorEconomy: mustSpec(economyABIJSON, "recordTransaction"),
}

// specFor returns the contract binding for a category
func specFor(category model.MirrorCategory) (contractSpec, error) {
	spec, ok := contractSpecs[category]
	if !ok {
		return contractSpec{}, fmt.Errorf("no contract for category %q", category)
	}
	return spec, nil
}

// playerAddress parses the event's wallet address, falling back to the
// zero address when none is known
func playerAddress(event model.MirrorEvent) common.Address {
	if event.Address == "" || !common.IsHexAddress(event.Address) {
		return common.Address{}
	}
	return common.HexToAddress(event.Address)
}

// buildArgs maps an event onto the argument list of its category's
// mutating method. Returns false when the event carries nothing worth
// submitting (a score set whose highest value is zero).
func buildArgs(event model.MirrorEvent) ([]any, bool, error) {
	addr := playerAddress(event)

	switch event.Category {
	case model.MirrorSession:
		_, best := event.Scores.Highest()
		return []any{
			event.Identifier,
			addr,
			event.SessionType,
			big.NewInt(event.Currency),
			big.NewInt(best),
		}, true, nil

	case model.MirrorVehicle:
		return []any{
			event.Identifier,
			addr,
			uint8(event.ToIndex),
		}, true, nil

	case model.MirrorMission:
		return []any{
			event.Identifier,
			addr,
			event.Achievement,
		}, true, nil

	case model.MirrorScore:
		// Only the single highest score across modes is submitted,
		// regardless of which mode actually improved. A highest of
		// zero means there is nothing to submit.
		mode, best := event.Scores.Highest()
		if best == 0 {
			return nil, false, nil
		}
		return []any{
			event.Identifier,
			addr,
			uint8(mode),
			big.NewInt(best),
			big.NewInt(0),
			big.NewInt(event.Currency),
			big.NewInt(int64(event.PlayTime)),
		}, true, nil

	case model.MirrorEconomy:
		// The event delta is already signed; the contract takes it as-is
		txType := txTypeOther
		if event.Kind == model.CurrencyEarning {
			txType = txTypeGameEarning
		}
		return []any{
			event.Identifier,
			addr,
			txType,
			big.NewInt(event.Delta),
			event.Description,
		}, true, nil

	default:
		return nil, false, fmt.Errorf("no contract for category %q", event.Category)
	}
}
