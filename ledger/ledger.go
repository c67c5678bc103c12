// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger defines the custody, claim and value primitives a vault is
// built on, and provides a database-backed implementation of them.
package ledger

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/ledger.go -mock_names=Ledger=Ledger . Ledger

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrAssetExists         = errors.New("asset already registered")
	ErrNotOwner            = errors.New("asset not held by source account")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrMintNotFound        = errors.New("claim mint not found")
	ErrMintExists          = errors.New("claim mint already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Custody moves single units of non-divisible assets between accounts.
type Custody interface {
	// OwnerOf returns ErrAssetNotFound if the asset was never registered.
	OwnerOf(assetID ids.ID) (ids.ShortID, error)
	// Move transfers [assetID] from [from] to [to]. It fails with ErrNotOwner
	// if [from] does not hold the asset and with ErrUnauthorized unless the
	// holder authorized the move.
	Move(assetID ids.ID, from, to, authorizedBy ids.ShortID) error
}

// Claims issues fungible claim units. Only a mint's authority may mint or
// burn its units.
type Claims interface {
	CreateMint(mintID ids.ID, authority ids.ShortID) error
	Mint(mintID ids.ID, to ids.ShortID, amount uint64, authorizedBy ids.ShortID) error
	Burn(mintID ids.ID, from ids.ShortID, amount uint64, authorizedBy ids.ShortID) error
	BalanceOf(mintID ids.ID, owner ids.ShortID) (uint64, error)
	SupplyOf(mintID ids.ID) (uint64, error)
}

// Value moves the native unit of account between balance-holding accounts.
type Value interface {
	Balance(account ids.ShortID) (uint64, error)
	// Transfer fails with ErrInsufficientBalance, moving nothing, if [from]
	// holds less than [amount].
	Transfer(from, to ids.ShortID, amount uint64) error
}

// Ledger is the full set of primitives a vault operation may call.
type Ledger interface {
	Custody
	Claims
	Value
}
