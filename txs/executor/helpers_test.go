// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"slices"
	"testing"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fracvm/config"
	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"
	"github.com/luxfi/fracvm/utils/timer/mockable"
)

const (
	testSupply       = 1_000_000
	testRoyaltyBps   = 500
	testBuyerFunds   = 10_000_000
	testGenesisTime  = 1_700_000_000
	testBuyoutPrice  = 100_000
	testPlatformFee  = 2_500
	testRoyalty      = 5_000
	testNetToVault   = 92_500
	testHolderClaims = 100_000
)

type testEnv struct {
	db      database.Database
	backend *Backend
	clk     *mockable.Clock

	authority  ids.ShortID
	buyer      ids.ShortID
	feeAccount ids.ShortID
	assetID    ids.ID
	vaultID    ids.ID
}

func newTestEnv(t *testing.T, modify func(*config.Config)) *testEnv {
	require := require.New(t)

	cfg := config.DefaultConfig()
	cfg.PlatformFeeAccount = ids.GenerateTestShortID()
	if modify != nil {
		modify(&cfg)
	}

	clk := &mockable.Clock{}
	clk.Set(time.Unix(testGenesisTime, 0))

	env := &testEnv{
		db: memdb.New(),
		backend: &Backend{
			Config: &cfg,
			Clk:    clk,
			Log:    log.NewNoOpLogger(),
		},
		clk:        clk,
		authority:  ids.GenerateTestShortID(),
		buyer:      ids.GenerateTestShortID(),
		feeAccount: cfg.PlatformFeeAccount,
		assetID:    ids.GenerateTestID(),
	}
	env.vaultID = state.VaultID(env.assetID)

	l := env.ledger()
	require.NoError(l.RegisterAsset(env.assetID, env.authority))
	require.NoError(l.Credit(env.buyer, testBuyerFunds))
	return env
}

func (env *testEnv) ledger() *ledger.State {
	return ledger.New(env.db)
}

func (env *testEnv) chain() state.Chain {
	return state.New(env.db)
}

// issue executes [unsigned] on a versiondb and commits it only on success.
// A rejected tx must leave the database untouched.
func (env *testEnv) issue(t *testing.T, unsigned txs.UnsignedTx) (*Result, error) {
	require := require.New(t)

	tx, err := txs.NewTx(unsigned)
	require.NoError(err)

	before := env.snapshot(t)
	vdb := versiondb.New(env.db)
	result, err := Execute(env.backend, state.New(vdb), ledger.New(vdb), tx)
	if err != nil {
		vdb.Abort()
		require.Equal(before, env.snapshot(t))
		return nil, err
	}
	require.NoError(vdb.Commit())
	return result, nil
}

func (env *testEnv) mustIssue(t *testing.T, unsigned txs.UnsignedTx) *Result {
	result, err := env.issue(t, unsigned)
	require.NoError(t, err)
	return result
}

func (env *testEnv) snapshot(t *testing.T) map[string][]byte {
	it := env.db.NewIterator()
	defer it.Release()

	kv := make(map[string][]byte)
	for it.Next() {
		kv[string(it.Key())] = slices.Clone(it.Value())
	}
	require.NoError(t, it.Error())
	return kv
}

func (env *testEnv) vault(t *testing.T) *state.Vault {
	vault, err := env.chain().GetVault(env.vaultID)
	require.NoError(t, err)
	return vault
}

func (env *testEnv) balance(t *testing.T, account ids.ShortID) uint64 {
	balance, err := env.ledger().Balance(account)
	require.NoError(t, err)
	return balance
}

func (env *testEnv) claims(t *testing.T, holder ids.ShortID) uint64 {
	balance, err := env.ledger().BalanceOf(state.ClaimMintID(env.vaultID), holder)
	require.NoError(t, err)
	return balance
}

func (env *testEnv) initialize(t *testing.T) {
	env.mustIssue(t, &txs.InitializeVaultTx{
		BaseTx:           txs.BaseTx{From: env.authority},
		AssetID:          env.assetID,
		ArtistRoyaltyBps: testRoyaltyBps,
	})
}

func (env *testEnv) fractionalize(t *testing.T, amount uint64) {
	env.initialize(t)
	env.mustIssue(t, &txs.FractionalizeTx{
		BaseTx:  txs.BaseTx{From: env.authority},
		VaultID: env.vaultID,
		Amount:  amount,
	})
}

// distribute hands claims from the authority to [holder], as trading would.
func (env *testEnv) distribute(t *testing.T, holder ids.ShortID, amount uint64) {
	require.NoError(t, env.ledger().TransferClaims(state.ClaimMintID(env.vaultID), env.authority, holder, amount))
}

func (env *testEnv) openBuyout(t *testing.T, price uint64) {
	env.mustIssue(t, &txs.OpenBuyoutTx{
		BaseTx:  txs.BaseTx{From: env.buyer},
		VaultID: env.vaultID,
		Price:   price,
	})
}

func (env *testEnv) vote(t *testing.T, voter ids.ShortID, forBuyout bool) error {
	_, err := env.issue(t, &txs.VoteBuyoutTx{
		BaseTx:        txs.BaseTx{From: voter},
		VaultID:       env.vaultID,
		VoteForBuyout: forBuyout,
	})
	return err
}

func (env *testEnv) endVote() {
	env.clk.Advance(env.backend.Config.VoteDuration)
}

func (env *testEnv) settle(t *testing.T) (*Result, error) {
	return env.issue(t, &txs.SettleBuyoutTx{
		BaseTx:  txs.BaseTx{From: env.buyer},
		VaultID: env.vaultID,
	})
}

func (env *testEnv) redeem(t *testing.T, holder ids.ShortID, amount uint64) (*Result, error) {
	return env.issue(t, &txs.RedeemTx{
		BaseTx:  txs.BaseTx{From: holder},
		VaultID: env.vaultID,
		Amount:  amount,
	})
}

// settled runs the lifecycle up to a settlement at [testBuyoutPrice] with
// the authority holding every claim.
func (env *testEnv) settled(t *testing.T) {
	env.fractionalize(t, testSupply)
	env.openBuyout(t, testBuyoutPrice)
	require.NoError(t, env.vote(t, env.authority, true))
	env.endVote()
	_, err := env.settle(t)
	require.NoError(t, err)
}

func requireRejected(t *testing.T, err error, kind Kind, expectedErr error) {
	t.Helper()
	require.ErrorIs(t, err, expectedErr)
	require.Equal(t, kind, KindOf(err))
}
