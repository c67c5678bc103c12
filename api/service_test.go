// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/crypto/address/formatting"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fracvm/audit"
	"github.com/luxfi/fracvm/config"
	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"
	"github.com/luxfi/fracvm/txs/executor"
	"github.com/luxfi/fracvm/utils/timer/mockable"

	jsonutil "github.com/luxfi/fracvm/utils/json"
)

type testVM struct {
	ready   bool
	db      database.Database
	backend *executor.Backend
	chain   state.Chain
	ledger  *ledger.State
}

func newTestVM() *testVM {
	db := memdb.New()
	cfg := config.DefaultConfig()
	return &testVM{
		ready: true,
		db:    db,
		backend: &executor.Backend{
			Config: &cfg,
			Clk:    &mockable.Clock{},
			Log:    log.NewNoOpLogger(),
		},
		chain:  state.New(db),
		ledger: ledger.New(db),
	}
}

func (vm *testVM) IssueTx(_ context.Context, txBytes []byte) (ids.ID, *executor.Result, error) {
	tx, err := txs.Parse(txs.Codec, txBytes)
	if err != nil {
		return ids.Empty, nil, err
	}
	vdb := versiondb.New(vm.db)
	result, err := executor.Execute(vm.backend, state.New(vdb), ledger.New(vdb), tx)
	if err != nil {
		vdb.Abort()
		return ids.Empty, nil, err
	}
	return tx.ID(), result, vdb.Commit()
}

func (vm *testVM) Ready() bool {
	return vm.ready
}

func (vm *testVM) GetVault(vaultID ids.ID) (*state.Vault, error) {
	return vm.chain.GetVault(vaultID)
}

func (vm *testVM) GetVaultByAsset(assetID ids.ID) (*state.Vault, error) {
	return vm.chain.GetVaultByAsset(assetID)
}

func (vm *testVM) GetVaultIDs() ([]ids.ID, error) {
	return vm.chain.GetVaultIDs()
}

func (vm *testVM) GetVote(vaultID ids.ID, voter ids.ShortID) (*state.Vote, error) {
	return vm.chain.GetVote(vaultID, voter)
}

func (vm *testVM) GetVotes(vaultID ids.ID) ([]*state.Vote, error) {
	return vm.chain.GetVotes(vaultID)
}

func (vm *testVM) AuditQuorum(vaultID ids.ID) (*audit.Tally, error) {
	return audit.Recount(vm.chain, vaultID, 75)
}

func (vm *testVM) GetBalance(account ids.ShortID) (uint64, error) {
	return vm.ledger.Balance(account)
}

func (vm *testVM) GetClaims(vaultID ids.ID, holder ids.ShortID) (uint64, error) {
	vault, err := vm.chain.GetVault(vaultID)
	if err != nil {
		return 0, err
	}
	return vm.ledger.BalanceOf(vault.ClaimMintID, holder)
}

func addTestVault(t *testing.T, vm *testVM) (*state.Vault, ids.ShortID) {
	require := require.New(t)

	vault := state.NewVault(
		ids.GenerateTestShortID(),
		ids.GenerateTestID(),
		500,
		250,
		state.None[uint64](),
		1_700_000_000,
	)
	vault.TotalSupply = 1_000_000
	vault.OpenBuyout(ids.GenerateTestShortID(), 100_000, 1_700_000_000, 1_700_604_800)
	vault.TotalVotesFor = 800_000
	require.NoError(vm.chain.AddVault(vault))

	voter := ids.GenerateTestShortID()
	require.NoError(vm.chain.PutVote(&state.Vote{
		VaultID:       vault.ID,
		Voter:         voter,
		Cycle:         vault.VoteCycle,
		TokenAmount:   800_000,
		VoteForBuyout: true,
	}))
	require.NoError(vm.ledger.CreateMint(vault.ClaimMintID, vault.Address))
	require.NoError(vm.ledger.Mint(vault.ClaimMintID, voter, 800_000, vault.Address))
	return vault, voter
}

func TestServiceReads(t *testing.T) {
	require := require.New(t)
	vm := newTestVM()
	vault, voter := addTestVault(t, vm)
	s := NewService(vm)

	vaultReply := &VaultReply{}
	require.NoError(s.GetVault(nil, &VaultArgs{VaultID: vault.ID}, vaultReply))
	require.Equal(vault, vaultReply.Vault)

	vaultReply = &VaultReply{}
	require.NoError(s.GetVaultByAsset(nil, &AssetArgs{AssetID: vault.AssetID}, vaultReply))
	require.Equal(vault.ID, vaultReply.Vault.ID)

	listReply := &ListVaultsReply{}
	require.NoError(s.ListVaults(nil, &EmptyArgs{}, listReply))
	require.Equal([]ids.ID{vault.ID}, listReply.VaultIDs)

	voteReply := &VoteReply{}
	require.NoError(s.GetVote(nil, &VoteArgs{VaultID: vault.ID, Voter: voter}, voteReply))
	require.Equal(uint64(800_000), voteReply.Vote.TokenAmount)
	require.True(voteReply.Counted)

	votesReply := &VotesReply{}
	require.NoError(s.GetVotes(nil, &VaultArgs{VaultID: vault.ID}, votesReply))
	require.Len(votesReply.Votes, 1)

	auditReply := &AuditQuorumReply{}
	require.NoError(s.AuditQuorum(nil, &VaultArgs{VaultID: vault.ID}, auditReply))
	require.True(auditReply.Tally.QuorumReached)
	require.True(auditReply.Tally.Consistent)

	claimsReply := &BalanceReply{}
	require.NoError(s.GetClaims(nil, &ClaimsArgs{VaultID: vault.ID, Holder: voter}, claimsReply))
	require.Equal(jsonutil.Uint64(800_000), claimsReply.Balance)

	balanceReply := &BalanceReply{}
	require.NoError(s.GetBalance(nil, &BalanceArgs{Address: voter}, balanceReply))
	require.Zero(balanceReply.Balance)
}

func TestServiceErrors(t *testing.T) {
	require := require.New(t)
	vm := newTestVM()
	vault, _ := addTestVault(t, vm)
	s := NewService(vm)

	err := s.GetVault(nil, &VaultArgs{VaultID: ids.GenerateTestID()}, &VaultReply{})
	require.ErrorIs(err, ErrVaultNotFound)

	err = s.GetVote(nil, &VoteArgs{VaultID: vault.ID, Voter: ids.GenerateTestShortID()}, &VoteReply{})
	require.ErrorIs(err, ErrVoteNotFound)

	err = s.AuditQuorum(nil, &VaultArgs{VaultID: ids.GenerateTestID()}, &AuditQuorumReply{})
	require.ErrorIs(err, ErrVaultNotFound)
	require.NotErrorIs(err, database.ErrNotFound)

	vm.ready = false
	statusReply := &StatusReply{}
	require.NoError(s.Status(nil, &EmptyArgs{}, statusReply))
	require.False(statusReply.Ready)

	err = s.GetVault(nil, &VaultArgs{VaultID: vault.ID}, &VaultReply{})
	require.ErrorIs(err, ErrNotReady)
}

func newTestServer(t *testing.T, vm VM) *rpc.Server {
	server := rpc.NewServer()
	server.RegisterCodec(jsonutil.NewCodec(), "application/json")
	require.NoError(t, server.RegisterService(NewService(vm), "fracvm"))
	return server
}

func call(t *testing.T, server *rpc.Server, method string, params any, result any) json.RawMessage {
	require := require.New(t)

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	if len(resp.Error) == 0 || string(resp.Error) == "null" {
		require.NoError(json.Unmarshal(resp.Result, result))
		return nil
	}
	return resp.Error
}

func TestIssueTxOverJSONRPC(t *testing.T) {
	require := require.New(t)
	vm := newTestVM()
	server := newTestServer(t, vm)

	owner := ids.GenerateTestShortID()
	assetID := ids.GenerateTestID()
	require.NoError(vm.ledger.RegisterAsset(assetID, owner))

	tx, err := txs.NewTx(&txs.InitializeVaultTx{
		BaseTx:           txs.BaseTx{From: owner},
		AssetID:          assetID,
		ArtistRoyaltyBps: 500,
	})
	require.NoError(err)
	encoded, err := formatting.Encode(formatting.Hex, tx.Bytes())
	require.NoError(err)

	args := &IssueTxArgs{Tx: encoded, Encoding: formatting.Hex}
	reply := &IssueTxReply{}
	require.Nil(call(t, server, "fracvm.issueTx", args, reply))
	require.Equal(tx.ID(), reply.TxID)
	require.Equal(state.VaultID(assetID), reply.Result.VaultID)

	vaultReply := &VaultReply{}
	require.Nil(call(t, server, "fracvm.getVaultByAsset", &AssetArgs{AssetID: assetID}, vaultReply))
	require.Equal(owner, vaultReply.Vault.Authority)

	// a second vault for the same asset is rejected
	rpcErr := call(t, server, "fracvm.issueTx", args, &IssueTxReply{})
	require.NotNil(rpcErr)
	require.Contains(string(rpcErr), "state violation")
}

func TestServiceOverJSONRPC(t *testing.T) {
	require := require.New(t)
	vm := newTestVM()
	vault, _ := addTestVault(t, vm)
	server := newTestServer(t, vm)

	reply := &VaultReply{}
	require.Nil(call(t, server, "fracvm.getVault", &VaultArgs{VaultID: vault.ID}, reply))
	require.Equal(vault.ID, reply.Vault.ID)
	require.Equal(vault.BuyoutPrice, reply.Vault.BuyoutPrice)
	require.Equal(vault.TotalVotesFor, reply.Vault.TotalVotesFor)

	balanceReply := &BalanceReply{}
	rpcErr := call(t, server, "fracvm.getClaims", &ClaimsArgs{VaultID: ids.GenerateTestID()}, balanceReply)
	require.Contains(string(rpcErr), ErrVaultNotFound.Error())
}
