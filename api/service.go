// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves JSON-RPC access to vaults, votes and the ledger. The
// only write is issueTx.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/luxfi/crypto/address/formatting"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/audit"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs/executor"

	jsonutil "github.com/luxfi/fracvm/utils/json"
)

var (
	ErrNotReady      = errors.New("vm is not serving")
	ErrVaultNotFound = errors.New("vault not found")
	ErrVoteNotFound  = errors.New("vote not found")
)

// VM is the view of the chain the service reads from.
type VM interface {
	Ready() bool
	GetVault(vaultID ids.ID) (*state.Vault, error)
	GetVaultByAsset(assetID ids.ID) (*state.Vault, error)
	GetVaultIDs() ([]ids.ID, error)
	GetVote(vaultID ids.ID, voter ids.ShortID) (*state.Vote, error)
	GetVotes(vaultID ids.ID) ([]*state.Vote, error)
	AuditQuorum(vaultID ids.ID) (*audit.Tally, error)
	GetBalance(account ids.ShortID) (uint64, error)
	GetClaims(vaultID ids.ID, holder ids.ShortID) (uint64, error)
	IssueTx(ctx context.Context, txBytes []byte) (ids.ID, *executor.Result, error)
}

// Service is the JSON-RPC service registered under the VM name.
type Service struct {
	vm VM
}

func NewService(vm VM) *Service {
	return &Service{vm: vm}
}

type EmptyArgs struct{}

type StatusReply struct {
	Ready bool `json:"ready"`
}

func (s *Service) Status(_ *http.Request, _ *EmptyArgs, reply *StatusReply) error {
	reply.Ready = s.vm.Ready()
	return nil
}

type VaultArgs struct {
	VaultID ids.ID `json:"vaultID"`
}

type AssetArgs struct {
	AssetID ids.ID `json:"assetID"`
}

type VaultReply struct {
	Vault *state.Vault `json:"vault"`
}

func (s *Service) GetVault(_ *http.Request, args *VaultArgs, reply *VaultReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	vault, err := s.vm.GetVault(args.VaultID)
	if err != nil {
		return notFound(err, ErrVaultNotFound, args.VaultID)
	}
	reply.Vault = vault
	return nil
}

func (s *Service) GetVaultByAsset(_ *http.Request, args *AssetArgs, reply *VaultReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	vault, err := s.vm.GetVaultByAsset(args.AssetID)
	if err != nil {
		return notFound(err, ErrVaultNotFound, args.AssetID)
	}
	reply.Vault = vault
	return nil
}

type ListVaultsReply struct {
	VaultIDs []ids.ID `json:"vaultIDs"`
}

func (s *Service) ListVaults(_ *http.Request, _ *EmptyArgs, reply *ListVaultsReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	vaultIDs, err := s.vm.GetVaultIDs()
	if err != nil {
		return err
	}
	reply.VaultIDs = vaultIDs
	return nil
}

type VoteArgs struct {
	VaultID ids.ID      `json:"vaultID"`
	Voter   ids.ShortID `json:"voter"`
}

type VoteReply struct {
	Vote *state.Vote `json:"vote"`
	// Counted is false for a ballot cast in an earlier vote cycle
	Counted bool `json:"counted"`
}

func (s *Service) GetVote(_ *http.Request, args *VoteArgs, reply *VoteReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	vault, err := s.vm.GetVault(args.VaultID)
	if err != nil {
		return notFound(err, ErrVaultNotFound, args.VaultID)
	}
	vote, err := s.vm.GetVote(args.VaultID, args.Voter)
	if err != nil {
		return notFound(err, ErrVoteNotFound, args.Voter)
	}
	reply.Vote = vote
	reply.Counted = vote.WeightIn(vault.VoteCycle) > 0
	return nil
}

type VotesReply struct {
	Votes []*state.Vote `json:"votes"`
}

func (s *Service) GetVotes(_ *http.Request, args *VaultArgs, reply *VotesReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	votes, err := s.vm.GetVotes(args.VaultID)
	if err != nil {
		return err
	}
	reply.Votes = votes
	return nil
}

type AuditQuorumReply struct {
	Tally *audit.Tally `json:"tally"`
}

func (s *Service) AuditQuorum(_ *http.Request, args *VaultArgs, reply *AuditQuorumReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	tally, err := s.vm.AuditQuorum(args.VaultID)
	if err != nil {
		return notFound(err, ErrVaultNotFound, args.VaultID)
	}
	reply.Tally = tally
	return nil
}

type BalanceArgs struct {
	Address ids.ShortID `json:"address"`
}

type BalanceReply struct {
	Balance jsonutil.Uint64 `json:"balance"`
}

func (s *Service) GetBalance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	balance, err := s.vm.GetBalance(args.Address)
	if err != nil {
		return err
	}
	reply.Balance = jsonutil.Uint64(balance)
	return nil
}

type ClaimsArgs struct {
	VaultID ids.ID      `json:"vaultID"`
	Holder  ids.ShortID `json:"holder"`
}

func (s *Service) GetClaims(_ *http.Request, args *ClaimsArgs, reply *BalanceReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	balance, err := s.vm.GetClaims(args.VaultID, args.Holder)
	if err != nil {
		return notFound(err, ErrVaultNotFound, args.VaultID)
	}
	reply.Balance = jsonutil.Uint64(balance)
	return nil
}

type IssueTxArgs struct {
	Tx       string              `json:"tx"`
	Encoding formatting.Encoding `json:"encoding"`
}

type IssueTxReply struct {
	TxID   ids.ID           `json:"txID"`
	Result *executor.Result `json:"result"`
}

// IssueTx applies a serialized transaction. A rejection is returned as the
// RPC error and leaves no trace in state.
func (s *Service) IssueTx(r *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	if err := s.ready(); err != nil {
		return err
	}
	txBytes, err := formatting.Decode(args.Encoding, args.Tx)
	if err != nil {
		return fmt.Errorf("problem decoding transaction: %w", err)
	}
	txID, result, err := s.vm.IssueTx(r.Context(), txBytes)
	if err != nil {
		return err
	}
	reply.TxID = txID
	reply.Result = result
	return nil
}

func (s *Service) ready() error {
	if !s.vm.Ready() {
		return ErrNotReady
	}
	return nil
}

func notFound(err error, sentinel error, id fmt.Stringer) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", sentinel, id)
	}
	return err
}
