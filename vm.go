// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fracvm implements a chain of fractional custody vaults. A vault
// locks a non-divisible asset and issues fungible claims against it; claim
// holders can vote to sell the asset to a buyer and then redeem their claims
// for a share of the sale.
package fracvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/fracvm/api"
	"github.com/luxfi/fracvm/audit"
	"github.com/luxfi/fracvm/config"
	"github.com/luxfi/fracvm/genesis"
	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/metrics"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"
	"github.com/luxfi/fracvm/txs/executor"
	"github.com/luxfi/fracvm/utils/timer/mockable"

	jsonutil "github.com/luxfi/fracvm/utils/json"
)

const (
	Name    = "fracvm"
	version = "v1.0.0"
)

var (
	_ api.VM = (*VM)(nil)

	txPrefix   = []byte("tx")
	metaPrefix = []byte("meta")

	genesisTimestampKey = []byte("genesisTimestamp")

	ErrNotInitialized = errors.New("vm not initialized")
	ErrUnknownState   = errors.New("unknown state")
	ErrNotServing     = errors.New("vm is not accepting transactions")
	ErrDuplicateTx    = errors.New("duplicate transaction")
)

type VM struct {
	config config.Config

	log log.Logger

	// lock is held for writing for the whole of a transaction and for
	// reading by the API
	lock  sync.RWMutex
	state State

	// Used to check local time
	clock mockable.Clock

	baseDB database.Database
	txDB   database.Database
	metaDB database.Database

	chain  state.Chain
	ledger *ledger.State

	// vaultCache holds committed vault records and is evicted on every
	// commit that touches the vault
	vaultCache cache.Cacher[ids.ID, *state.Vault]

	metrics metrics.Metrics
	backend *executor.Backend

	genesisTimestamp time.Time
}

// Initialize opens the chain stored in [db]. [genesisBytes] is applied only
// the first time [db] is opened.
func (vm *VM) Initialize(
	_ context.Context,
	db database.Database,
	genesisBytes []byte,
	configBytes []byte,
	registerer prometheus.Registerer,
) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.log == nil {
		vm.log = log.NewNoOpLogger()
	}

	cfg, err := config.GetConfig(configBytes)
	if err != nil {
		return err
	}
	vm.config = *cfg

	vm.metrics, err = metrics.New(registerer)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	vm.baseDB = db
	vm.txDB = prefixdb.New(txPrefix, db)
	vm.metaDB = prefixdb.New(metaPrefix, db)
	vm.chain = state.New(db)
	vm.ledger = ledger.New(db)
	vm.vaultCache = lru.NewCache[ids.ID, *state.Vault](vm.config.VaultCacheSize)
	vm.backend = &executor.Backend{
		Config: &vm.config,
		Clk:    &vm.clock,
		Log:    vm.log,
	}

	if err := vm.initGenesis(genesisBytes); err != nil {
		return err
	}

	vm.state = Bootstrapping
	vm.log.Info("initialized vm",
		log.String("redemptionPolicy", string(vm.config.RedemptionPolicy)),
		log.Uint64("quorumPercentage", vm.config.QuorumPercentage),
		log.Time("genesisTimestamp", vm.genesisTimestamp),
	)
	return nil
}

func (vm *VM) initGenesis(genesisBytes []byte) error {
	timestamp, err := database.GetTimestamp(vm.metaDB, genesisTimestampKey)
	if err == nil {
		vm.genesisTimestamp = timestamp
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	g := &genesis.Genesis{}
	if len(genesisBytes) > 0 {
		g, err = genesis.Parse(genesisBytes)
		if err != nil {
			return err
		}
	}

	vdb := versiondb.New(vm.baseDB)
	if err := g.Apply(ledger.New(vdb)); err != nil {
		vdb.Abort()
		return fmt.Errorf("failed to apply genesis: %w", err)
	}
	// The key marks genesis as applied, so it must be written even when the
	// genesis timestamp is zero.
	timestamp = time.Unix(g.Timestamp, 0)
	if err := database.PutTimestamp(prefixdb.New(metaPrefix, vdb), genesisTimestampKey, timestamp); err != nil {
		vdb.Abort()
		return err
	}
	if err := vdb.Commit(); err != nil {
		return err
	}
	vm.genesisTimestamp = timestamp

	vm.log.Info("applied genesis",
		log.Int("allocations", len(g.Allocations)),
		log.Int("assets", len(g.Assets)),
	)
	return nil
}

func (vm *VM) SetState(_ context.Context, newState State) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.backend == nil {
		return ErrNotInitialized
	}
	switch newState {
	case Bootstrapping, NormalOp:
		vm.log.Info("vm changing state",
			log.Stringer("from", vm.state),
			log.Stringer("to", newState),
		)
		vm.state = newState
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownState, newState)
	}
}

// Ready reports whether the VM accepts transactions.
func (vm *VM) Ready() bool {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.state == NormalOp
}

// IssueTx parses and applies [txBytes].
func (vm *VM) IssueTx(ctx context.Context, txBytes []byte) (ids.ID, *executor.Result, error) {
	tx, err := txs.Parse(txs.Codec, txBytes)
	if err != nil {
		return ids.Empty, nil, fmt.Errorf("couldn't parse tx: %w", err)
	}
	result, err := vm.Issue(ctx, tx)
	return tx.ID(), result, err
}

// Issue applies [tx] atomically: either every write it makes is committed or
// none is.
func (vm *VM) Issue(_ context.Context, tx *txs.Tx) (*executor.Result, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state != NormalOp {
		return nil, fmt.Errorf("%w: %s", ErrNotServing, vm.state)
	}

	txID := tx.ID()
	has, err := vm.txDB.Has(txID[:])
	if err != nil {
		return nil, err
	}
	if has {
		err := fmt.Errorf("%w: %s", ErrDuplicateTx, txID)
		vm.metrics.MarkRejected(tx, err)
		return nil, err
	}

	vdb := versiondb.New(vm.baseDB)
	result, err := executor.Execute(vm.backend, state.New(vdb), ledger.New(vdb), tx)
	if err != nil {
		vdb.Abort()
		vm.metrics.MarkRejected(tx, err)
		vm.log.Debug("rejected tx",
			log.Stringer("txID", txID),
			log.Stringer("kind", executor.KindOf(err)),
			log.Err(err),
		)
		return nil, err
	}

	if err := prefixdb.New(txPrefix, vdb).Put(txID[:], tx.Bytes()); err != nil {
		vdb.Abort()
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tx %s: %w", txID, err)
	}
	vm.vaultCache.Evict(result.VaultID)

	if err := vm.metrics.MarkAccepted(tx, result); err != nil {
		vm.log.Warn("failed to record accepted tx",
			log.Stringer("txID", txID),
			log.Err(err),
		)
	}
	vm.log.Debug("accepted tx",
		log.Stringer("txID", txID),
		log.Stringer("vaultID", result.VaultID),
	)
	return result, nil
}

// HasTx reports whether [txID] was accepted.
func (vm *VM) HasTx(txID ids.ID) (bool, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.txDB.Has(txID[:])
}

// GetVault returns a copy of the committed vault record.
func (vm *VM) GetVault(vaultID ids.ID) (*state.Vault, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.getVault(vaultID)
}

func (vm *VM) getVault(vaultID ids.ID) (*state.Vault, error) {
	vault, ok := vm.vaultCache.Get(vaultID)
	if !ok {
		var err error
		vault, err = vm.chain.GetVault(vaultID)
		if err != nil {
			return nil, err
		}
		vm.vaultCache.Put(vaultID, vault)
	}
	cpy := *vault
	return &cpy, nil
}

func (vm *VM) GetVaultByAsset(assetID ids.ID) (*state.Vault, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.chain.GetVaultByAsset(assetID)
}

func (vm *VM) GetVaultIDs() ([]ids.ID, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.chain.GetVaultIDs()
}

func (vm *VM) GetVote(vaultID ids.ID, voter ids.ShortID) (*state.Vote, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.chain.GetVote(vaultID, voter)
}

func (vm *VM) GetVotes(vaultID ids.ID) ([]*state.Vote, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.chain.GetVotes(vaultID)
}

// AuditQuorum recounts the current vote cycle of [vaultID] from its ballots.
func (vm *VM) AuditQuorum(vaultID ids.ID) (*audit.Tally, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return audit.Recount(vm.chain, vaultID, vm.config.QuorumPercentage)
}

func (vm *VM) GetBalance(account ids.ShortID) (uint64, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.ledger.Balance(account)
}

func (vm *VM) GetClaims(vaultID ids.ID, holder ids.ShortID) (uint64, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	vault, err := vm.getVault(vaultID)
	if err != nil {
		return 0, err
	}
	return vm.ledger.BalanceOf(vault.ClaimMintID, holder)
}

// CreateHandlers returns the JSON-RPC handler, served at the VM's base path.
func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(jsonutil.NewCodec(), "application/json")
	server.RegisterCodec(jsonutil.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(api.NewService(vm), Name); err != nil {
		return nil, fmt.Errorf("failed to register %s service: %w", Name, err)
	}
	return map[string]http.Handler{
		"": server,
	}, nil
}

type Health struct {
	State            string `json:"state"`
	GenesisTimestamp int64  `json:"genesisTimestamp"`
	Vaults           int    `json:"vaults"`
}

func (vm *VM) HealthCheck(context.Context) (interface{}, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	health := Health{
		State:            vm.state.String(),
		GenesisTimestamp: vm.genesisTimestamp.Unix(),
	}
	if vm.state != NormalOp {
		return health, fmt.Errorf("%w: %s", ErrNotServing, vm.state)
	}
	vaultIDs, err := vm.chain.GetVaultIDs()
	if err != nil {
		return health, err
	}
	health.Vaults = len(vaultIDs)
	return health, nil
}

func (vm *VM) Version(context.Context) (string, error) {
	return version, nil
}

// Shutdown stops accepting transactions and closes the database.
func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.state == Stopped || vm.baseDB == nil {
		return nil
	}
	vm.state = Stopped
	vm.log.Info("shutting down vm")
	if err := vm.baseDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
