// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/fracvm/utils/math"
)

var (
	_ Ledger = (*State)(nil)

	errCorruptAmount = errors.New("corrupt amount")

	ownerPrefix     = []byte("owner")
	mintPrefix      = []byte("mint")
	supplyPrefix    = []byte("supply")
	claimPrefix     = []byte("claim")
	valuePrefix     = []byte("value")
	uint64ByteCount = 8
)

// State is a Ledger stored in a database. Wrapping the database in a
// versiondb makes a sequence of calls all-or-nothing.
type State struct {
	ownerDB  database.Database
	mintDB   database.Database
	supplyDB database.Database
	claimDB  database.Database
	valueDB  database.Database
}

// New returns a ledger stored in [db].
func New(db database.Database) *State {
	return &State{
		ownerDB:  prefixdb.New(ownerPrefix, db),
		mintDB:   prefixdb.New(mintPrefix, db),
		supplyDB: prefixdb.New(supplyPrefix, db),
		claimDB:  prefixdb.New(claimPrefix, db),
		valueDB:  prefixdb.New(valuePrefix, db),
	}
}

// RegisterAsset records [owner] as the holder of a newly issued asset.
func (s *State) RegisterAsset(assetID ids.ID, owner ids.ShortID) error {
	has, err := s.ownerDB.Has(assetID[:])
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrAssetExists, assetID)
	}
	return s.ownerDB.Put(assetID[:], owner[:])
}

func (s *State) OwnerOf(assetID ids.ID) (ids.ShortID, error) {
	b, err := s.ownerDB.Get(assetID[:])
	if errors.Is(err, database.ErrNotFound) {
		return ids.ShortEmpty, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}
	if err != nil {
		return ids.ShortEmpty, err
	}
	return ids.ToShortID(b)
}

func (s *State) Move(assetID ids.ID, from, to, authorizedBy ids.ShortID) error {
	owner, err := s.OwnerOf(assetID)
	if err != nil {
		return err
	}
	if owner != from {
		return fmt.Errorf("%w: %s is held by %s, not %s", ErrNotOwner, assetID, owner, from)
	}
	if authorizedBy != from {
		return fmt.Errorf("%w: %s may not move %s out of %s", ErrUnauthorized, authorizedBy, assetID, from)
	}
	return s.ownerDB.Put(assetID[:], to[:])
}

func (s *State) CreateMint(mintID ids.ID, authority ids.ShortID) error {
	has, err := s.mintDB.Has(mintID[:])
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: %s", ErrMintExists, mintID)
	}
	return s.mintDB.Put(mintID[:], authority[:])
}

func (s *State) Mint(mintID ids.ID, to ids.ShortID, amount uint64, authorizedBy ids.ShortID) error {
	if err := s.checkMintAuthority(mintID, authorizedBy); err != nil {
		return err
	}
	supply, err := getAmount(s.supplyDB, mintID[:])
	if err != nil {
		return err
	}
	newSupply, err := safemath.Add(supply, amount)
	if err != nil {
		return fmt.Errorf("minting %d of %s: %w", amount, mintID, err)
	}
	key := claimKey(mintID, to)
	balance, err := getAmount(s.claimDB, key)
	if err != nil {
		return err
	}
	// balance <= supply, so this cannot overflow once the supply did not
	if err := putAmount(s.claimDB, key, balance+amount); err != nil {
		return err
	}
	return putAmount(s.supplyDB, mintID[:], newSupply)
}

func (s *State) Burn(mintID ids.ID, from ids.ShortID, amount uint64, authorizedBy ids.ShortID) error {
	if err := s.checkMintAuthority(mintID, authorizedBy); err != nil {
		return err
	}
	key := claimKey(mintID, from)
	balance, err := getAmount(s.claimDB, key)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %s holds %d of %s, burning %d", ErrInsufficientBalance, from, balance, mintID, amount)
	}
	supply, err := getAmount(s.supplyDB, mintID[:])
	if err != nil {
		return err
	}
	newSupply, err := safemath.Sub(supply, amount)
	if err != nil {
		return fmt.Errorf("burning %d of %s: %w", amount, mintID, err)
	}
	if err := putAmount(s.claimDB, key, balance-amount); err != nil {
		return err
	}
	return putAmount(s.supplyDB, mintID[:], newSupply)
}

// TransferClaims moves claim units between holders. Holders trade claims
// outside of any vault operation, so this is not part of Claims.
func (s *State) TransferClaims(mintID ids.ID, from, to ids.ShortID, amount uint64) error {
	fromKey := claimKey(mintID, from)
	fromBalance, err := getAmount(s.claimDB, fromKey)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d of %s, sending %d", ErrInsufficientBalance, from, fromBalance, mintID, amount)
	}
	if from == to {
		return nil
	}
	toKey := claimKey(mintID, to)
	toBalance, err := getAmount(s.claimDB, toKey)
	if err != nil {
		return err
	}
	if err := putAmount(s.claimDB, fromKey, fromBalance-amount); err != nil {
		return err
	}
	// both balances are bounded by the mint supply
	return putAmount(s.claimDB, toKey, toBalance+amount)
}

func (s *State) BalanceOf(mintID ids.ID, owner ids.ShortID) (uint64, error) {
	return getAmount(s.claimDB, claimKey(mintID, owner))
}

func (s *State) SupplyOf(mintID ids.ID) (uint64, error) {
	has, err := s.mintDB.Has(mintID[:])
	if err != nil {
		return 0, err
	}
	if !has {
		return 0, fmt.Errorf("%w: %s", ErrMintNotFound, mintID)
	}
	return getAmount(s.supplyDB, mintID[:])
}

// Credit issues [amount] of value to [account]. It is used to seed genesis
// balances.
func (s *State) Credit(account ids.ShortID, amount uint64) error {
	balance, err := getAmount(s.valueDB, account[:])
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add(balance, amount)
	if err != nil {
		return fmt.Errorf("crediting %s: %w", account, err)
	}
	return putAmount(s.valueDB, account[:], newBalance)
}

func (s *State) Balance(account ids.ShortID) (uint64, error) {
	return getAmount(s.valueDB, account[:])
}

func (s *State) Transfer(from, to ids.ShortID, amount uint64) error {
	fromBalance, err := getAmount(s.valueDB, from[:])
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d, sending %d", ErrInsufficientBalance, from, fromBalance, amount)
	}
	if from == to {
		return nil
	}
	toBalance, err := getAmount(s.valueDB, to[:])
	if err != nil {
		return err
	}
	newToBalance, err := safemath.Add(toBalance, amount)
	if err != nil {
		return fmt.Errorf("crediting %s: %w", to, err)
	}
	if err := putAmount(s.valueDB, from[:], fromBalance-amount); err != nil {
		return err
	}
	return putAmount(s.valueDB, to[:], newToBalance)
}

func (s *State) checkMintAuthority(mintID ids.ID, authorizedBy ids.ShortID) error {
	b, err := s.mintDB.Get(mintID[:])
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrMintNotFound, mintID)
	}
	if err != nil {
		return err
	}
	authority, err := ids.ToShortID(b)
	if err != nil {
		return err
	}
	if authority != authorizedBy {
		return fmt.Errorf("%w: %s is not the authority of mint %s", ErrUnauthorized, authorizedBy, mintID)
	}
	return nil
}

func claimKey(mintID ids.ID, owner ids.ShortID) []byte {
	key := make([]byte, 0, ids.IDLen+len(owner))
	key = append(key, mintID[:]...)
	return append(key, owner[:]...)
}

func getAmount(db database.KeyValueReader, key []byte) (uint64, error) {
	b, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(b) != uint64ByteCount {
		return 0, fmt.Errorf("%w: %d bytes", errCorruptAmount, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func putAmount(db database.KeyValueWriter, key []byte, amount uint64) error {
	b := make([]byte, uint64ByteCount)
	binary.BigEndian.PutUint64(b, amount)
	return db.Put(key, b)
}
