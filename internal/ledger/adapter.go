package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/highwayhustle/backend/internal/model"
)

// State is the lifecycle state of an adapter's chain connection
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

// String returns the state name as reported by the status endpoint
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Result is the outcome of one mirror submission. Submissions never
// return errors; a failed submission is a Result with Success false.
type Result struct {
	Success bool
	TxHash  string
	GasUsed uint64
	Err     string
}

// Config holds the chain connection settings shared by all adapters
// plus the one contract address specific to a category
type Config struct {
	RPCURL          string
	ChainID         int64
	PrivateKey      string
	ContractAddress string

	ReceiptTimeout      time.Duration
	ReceiptPollInterval time.Duration
}

// Adapter submits one category's events to its contract. Connection
// setup is lazy: the first submission (or an explicit Init) dials the
// RPC endpoint and verifies the contract, and a failed setup is
// retried on the next submission rather than wedging the adapter.
type Adapter struct {
	category model.MirrorCategory
	spec     contractSpec
	contract common.Address
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
	logger   *slog.Logger

	receiptTimeout      time.Duration
	receiptPollInterval time.Duration

	dial func() (Backend, error)

	mu      sync.Mutex
	backend Backend
	state   State
}

// New creates an adapter that dials the configured RPC endpoint on
// first use
func New(category model.MirrorCategory, cfg Config, logger *slog.Logger) (*Adapter, error) {
	spec, err := specFor(category)
	if err != nil {
		return nil, err
	}
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("%s: contract address required", category)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("%s: invalid contract address %q", category, cfg.ContractAddress)
	}

	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse signing key: %w", category, err)
	}

	a := newAdapter(category, spec, cfg, key, logger)
	a.dial = func() (Backend, error) {
		return Dial(cfg.RPCURL)
	}
	return a, nil
}

// NewWithBackend creates an adapter over an existing backend (for
// testing)
func NewWithBackend(category model.MirrorCategory, backend Backend, cfg Config, logger *slog.Logger) (*Adapter, error) {
	spec, err := specFor(category)
	if err != nil {
		return nil, err
	}
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, err
	}

	a := newAdapter(category, spec, cfg, key, logger)
	a.dial = func() (Backend, error) {
		return backend, nil
	}
	return a, nil
}

func newAdapter(category model.MirrorCategory, spec contractSpec, cfg Config, key *ecdsa.PrivateKey, logger *slog.Logger) *Adapter {
	receiptTimeout := cfg.ReceiptTimeout
	if receiptTimeout == 0 {
		receiptTimeout = 60 * time.Second
	}
	pollInterval := cfg.ReceiptPollInterval
	if pollInterval == 0 {
		pollInterval = 2 * time.Second
	}

	return &Adapter{
		category:            category,
		spec:                spec,
		contract:            common.HexToAddress(cfg.ContractAddress),
		key:                 key,
		from:                gethcrypto.PubkeyToAddress(key.PublicKey),
		chainID:             big.NewInt(cfg.ChainID),
		logger:              logger.With(slog.String("category", string(category))),
		receiptTimeout:      receiptTimeout,
		receiptPollInterval: pollInterval,
	}
}

// Category returns the category this adapter submits for
func (a *Adapter) Category() model.MirrorCategory {
	return a.category
}

// State returns the adapter's current connection state
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Init eagerly establishes the chain connection and verifies the
// contract responds. Safe to call concurrently with submissions.
func (a *Adapter) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ensureReadyLocked(ctx)
}

// ensureReadyLocked dials, checks the signing wallet and verifies the
// contract via getStats. Ready state is sticky; failure leaves the
// adapter retryable.
func (a *Adapter) ensureReadyLocked(ctx context.Context) error {
	if a.state == StateReady {
		return nil
	}

	backend := a.backend
	dialed := false
	if backend == nil {
		var err error
		backend, err = a.dial()
		if err != nil {
			a.state = StateFailed
			return fmt.Errorf("dial: %w", err)
		}
		dialed = true
	}
	// A freshly dialed connection must not leak when a check below
	// fails; the next attempt dials again.
	fail := func(err error) error {
		if dialed {
			backend.Close()
		}
		a.state = StateFailed
		return err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return fail(fmt.Errorf("chain id: %w", err))
	}
	if a.chainID.Sign() > 0 && chainID.Cmp(a.chainID) != 0 {
		return fail(fmt.Errorf("chain id mismatch: have %s want %s", chainID, a.chainID))
	}

	balance, err := backend.BalanceAt(ctx, a.from, nil)
	if err != nil {
		return fail(fmt.Errorf("wallet balance: %w", err))
	}
	if balance.Sign() == 0 {
		a.logger.Warn("signing wallet has zero balance, submissions will fail",
			slog.String("wallet", a.from.Hex()))
	}

	// getStats doubles as the contract liveness check
	if _, _, err := a.statsLocked(ctx, backend); err != nil {
		return fail(fmt.Errorf("contract check: %w", err))
	}

	a.backend = backend
	a.state = StateReady
	a.logger.Info("ledger adapter ready",
		slog.String("contract", a.contract.Hex()),
		slog.String("wallet", a.from.Hex()))
	return nil
}

// Record submits one event to the category contract. It never returns
// an error: every failure mode collapses into a Result with Success
// false, and the caller's flow is unaffected either way.
func (a *Adapter) Record(ctx context.Context, event model.MirrorEvent) Result {
	a.mu.Lock()
	if err := a.ensureReadyLocked(ctx); err != nil {
		a.mu.Unlock()
		a.logger.Error("ledger submission skipped, adapter not ready", slog.Any("error", err))
		return Result{Err: err.Error()}
	}
	backend := a.backend
	a.mu.Unlock()

	args, submit, err := buildArgs(event)
	if err != nil {
		return Result{Err: err.Error()}
	}
	if !submit {
		return Result{Err: "no valid score to submit"}
	}

	result := a.submit(ctx, backend, args)
	if result.Success {
		a.logger.Info("ledger submission confirmed",
			slog.String("tx_hash", result.TxHash),
			slog.Uint64("gas_used", result.GasUsed))
	} else {
		a.logger.Error("ledger submission failed", slog.String("error", result.Err))
	}
	return result
}

func (a *Adapter) submit(ctx context.Context, backend Backend, args []any) Result {
	data, err := a.spec.abi.Pack(a.spec.method, args...)
	if err != nil {
		return Result{Err: fmt.Sprintf("pack %s: %v", a.spec.method, err)}
	}

	nonce, err := backend.PendingNonceAt(ctx, a.from)
	if err != nil {
		return Result{Err: fmt.Sprintf("nonce: %v", err)}
	}

	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return Result{Err: fmt.Sprintf("gas price: %v", err)}
	}

	gasEstimate, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:     a.from,
		To:       &a.contract,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		return Result{Err: fmt.Sprintf("estimate gas: %v", err)}
	}

	// 20% buffer over the estimate
	gasLimit := gasEstimate * 120 / 100

	tx := gethtypes.NewTx(&gethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &a.contract,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := gethtypes.SignTx(tx, gethtypes.LatestSignerForChainID(a.chainID), a.key)
	if err != nil {
		return Result{Err: fmt.Sprintf("sign: %v", err)}
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return Result{Err: fmt.Sprintf("send: %v", err)}
	}

	receipt, err := a.waitForReceipt(ctx, backend, signed.Hash())
	if err != nil {
		return Result{Err: fmt.Sprintf("confirm %s: %v", signed.Hash().Hex(), err)}
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return Result{TxHash: signed.Hash().Hex(), GasUsed: receipt.GasUsed,
			Err: fmt.Sprintf("transaction %s reverted", signed.Hash().Hex())}
	}

	return Result{
		Success: true,
		TxHash:  signed.Hash().Hex(),
		GasUsed: receipt.GasUsed,
	}
}

func (a *Adapter) waitForReceipt(ctx context.Context, backend Backend, txHash common.Hash) (*gethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, a.receiptTimeout)
	defer cancel()

	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.receiptPollInterval):
		}
	}
}

// Stats reads the contract's getStats counters. The first two outputs
// are record and player totals on every category contract.
func (a *Adapter) Stats(ctx context.Context) (records, players *big.Int, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ensureReadyLocked(ctx); err != nil {
		return nil, nil, err
	}
	return a.statsLocked(ctx, a.backend)
}

func (a *Adapter) statsLocked(ctx context.Context, backend Backend) (*big.Int, *big.Int, error) {
	data, err := a.spec.abi.Pack("getStats")
	if err != nil {
		return nil, nil, err
	}

	out, err := backend.CallContract(ctx, ethereum.CallMsg{
		To:   &a.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	values, err := a.spec.abi.Unpack("getStats", out)
	if err != nil {
		return nil, nil, err
	}
	if len(values) < 2 {
		return nil, nil, fmt.Errorf("getStats returned %d values", len(values))
	}

	records, ok := values[0].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected getStats output type %T", values[0])
	}
	players, ok := values[1].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected getStats output type %T", values[1])
	}
	return records, players, nil
}
