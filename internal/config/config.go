// Package config loads application settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/highwayhustle/backend/internal/ledger"
	"github.com/highwayhustle/backend/internal/model"
	redisstorage "github.com/highwayhustle/backend/internal/storage/redis"
)

// Config holds the full application configuration
type Config struct {
	// Host and Port control the HTTP listen address
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"5001"`

	// AllowedOrigins restricts CORS; empty allows any origin
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	Redis redisstorage.Config

	Ledger LedgerConfig
}

// LedgerConfig holds the chain mirroring settings. Mirroring is
// enabled per category: a category with no contract address is
// skipped entirely.
type LedgerConfig struct {
	RPCURL     string `env:"LEDGER_RPC_URL" envDefault:"https://evmrpc-mainnet.0g.ai"`
	ChainID    int64  `env:"LEDGER_CHAIN_ID" envDefault:"16600"`
	PrivateKey string `env:"LEDGER_PRIVATE_KEY"`

	SessionContract string `env:"SESSION_CONTRACT_ADDRESS"`
	VehicleContract string `env:"VEHICLE_CONTRACT_ADDRESS"`
	MissionContract string `env:"MISSION_CONTRACT_ADDRESS"`
	ScoreContract   string `env:"SCORE_CONTRACT_ADDRESS"`
	EconomyContract string `env:"ECONOMY_CONTRACT_ADDRESS"`
}

// ContractAddresses returns the configured per-category contract
// addresses, omitting categories that are not configured.
func (c LedgerConfig) ContractAddresses() map[model.MirrorCategory]string {
	out := make(map[model.MirrorCategory]string, 5)
	for category, addr := range map[model.MirrorCategory]string{
		model.MirrorSession: c.SessionContract,
		model.MirrorVehicle: c.VehicleContract,
		model.MirrorMission: c.MissionContract,
		model.MirrorScore:   c.ScoreContract,
		model.MirrorEconomy: c.EconomyContract,
	} {
		if addr != "" {
			out[category] = addr
		}
	}
	return out
}

// AdapterConfig builds a ledger adapter config for one contract
func (c LedgerConfig) AdapterConfig(contractAddress string) ledger.Config {
	return ledger.Config{
		RPCURL:          c.RPCURL,
		ChainID:         c.ChainID,
		PrivateKey:      c.PrivateKey,
		ContractAddress: contractAddress,
	}
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
