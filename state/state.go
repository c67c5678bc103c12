// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists vault and vote records.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

var (
	_ Chain = (*state)(nil)

	ErrVaultExists = errors.New("vault already exists for asset")

	VaultPrefix      = []byte("vault")
	AssetIndexPrefix = []byte("asset")
	AddressPrefix    = []byte("address")
	VotePrefix       = []byte("vote")
)

// Chain is a read/write view of vault and vote records.
type Chain interface {
	// GetVault returns database.ErrNotFound if no vault has [vaultID].
	GetVault(vaultID ids.ID) (*Vault, error)
	// GetVaultByAsset resolves the vault custodying [assetID] through the
	// asset uniqueness index.
	GetVaultByAsset(assetID ids.ID) (*Vault, error)
	// AddVault stores a new vault and claims its asset in the uniqueness
	// index. It fails with ErrVaultExists if the asset already has a vault.
	AddVault(*Vault) error
	// PutVault overwrites an existing vault.
	PutVault(*Vault) error
	// IsVaultAddress reports whether [addr] is the ledger account of a
	// stored vault.
	IsVaultAddress(addr ids.ShortID) (bool, error)
	// GetVaultIDs returns every vault ID in key order.
	GetVaultIDs() ([]ids.ID, error)

	// GetVote returns database.ErrNotFound if [voter] never voted on
	// [vaultID].
	GetVote(vaultID ids.ID, voter ids.ShortID) (*Vote, error)
	PutVote(*Vote) error
	// GetVotes enumerates every vote record of a vault in voter order.
	GetVotes(vaultID ids.ID) ([]*Vote, error)
}

type state struct {
	vaultDB database.Database
	assetDB   database.Database
	addressDB database.Database
	voteDB    database.Database
}

// New returns a Chain stored in [db].
func New(db database.Database) Chain {
	return &state{
		vaultDB:   prefixdb.New(VaultPrefix, db),
		assetDB:   prefixdb.New(AssetIndexPrefix, db),
		addressDB: prefixdb.New(AddressPrefix, db),
		voteDB:    prefixdb.New(VotePrefix, db),
	}
}

func (s *state) GetVault(vaultID ids.ID) (*Vault, error) {
	b, err := s.vaultDB.Get(vaultID[:])
	if err != nil {
		return nil, err
	}
	v := &Vault{}
	if _, err := Codec.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("failed to parse vault %s: %w", vaultID, err)
	}
	return v, nil
}

func (s *state) GetVaultByAsset(assetID ids.ID) (*Vault, error) {
	b, err := s.assetDB.Get(assetID[:])
	if err != nil {
		return nil, err
	}
	vaultID, err := ids.ToID(b)
	if err != nil {
		return nil, fmt.Errorf("corrupt asset index for %s: %w", assetID, err)
	}
	return s.GetVault(vaultID)
}

func (s *state) AddVault(v *Vault) error {
	has, err := s.assetDB.Has(v.AssetID[:])
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrVaultExists, v.AssetID)
	}
	if err := s.assetDB.Put(v.AssetID[:], v.ID[:]); err != nil {
		return err
	}
	if err := s.addressDB.Put(v.Address[:], v.ID[:]); err != nil {
		return err
	}
	return s.putVault(v)
}

func (s *state) IsVaultAddress(addr ids.ShortID) (bool, error) {
	return s.addressDB.Has(addr[:])
}

func (s *state) PutVault(v *Vault) error {
	has, err := s.vaultDB.Has(v.ID[:])
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: vault %s", database.ErrNotFound, v.ID)
	}
	return s.putVault(v)
}

func (s *state) putVault(v *Vault) error {
	b, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return fmt.Errorf("failed to serialize vault %s: %w", v.ID, err)
	}
	return s.vaultDB.Put(v.ID[:], b)
}

func (s *state) GetVaultIDs() ([]ids.ID, error) {
	iter := s.vaultDB.NewIterator()
	defer iter.Release()

	var vaultIDs []ids.ID
	for iter.Next() {
		vaultID, err := ids.ToID(iter.Key())
		if err != nil {
			return nil, err
		}
		vaultIDs = append(vaultIDs, vaultID)
	}
	return vaultIDs, iter.Error()
}

func (s *state) GetVote(vaultID ids.ID, voter ids.ShortID) (*Vote, error) {
	b, err := s.voteDB.Get(voteKey(vaultID, voter))
	if err != nil {
		return nil, err
	}
	v := &Vote{}
	if _, err := Codec.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("failed to parse vote of %s on %s: %w", voter, vaultID, err)
	}
	return v, nil
}

func (s *state) PutVote(v *Vote) error {
	b, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return fmt.Errorf("failed to serialize vote of %s on %s: %w", v.Voter, v.VaultID, err)
	}
	return s.voteDB.Put(voteKey(v.VaultID, v.Voter), b)
}

func (s *state) GetVotes(vaultID ids.ID) ([]*Vote, error) {
	iter := s.voteDB.NewIteratorWithPrefix(vaultID[:])
	defer iter.Release()

	var votes []*Vote
	for iter.Next() {
		v := &Vote{}
		if _, err := Codec.Unmarshal(iter.Value(), v); err != nil {
			return nil, fmt.Errorf("failed to parse vote on %s: %w", vaultID, err)
		}
		votes = append(votes, v)
	}
	return votes, iter.Error()
}

func voteKey(vaultID ids.ID, voter ids.ShortID) []byte {
	key := make([]byte, 0, ids.IDLen+len(voter))
	key = append(key, vaultID[:]...)
	return append(key, voter[:]...)
}
