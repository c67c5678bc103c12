// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/state"

	safemath "github.com/luxfi/fracvm/utils/math"
)

var (
	_ UnsignedTx = (*InitializeVaultTx)(nil)
	_ UnsignedTx = (*FractionalizeTx)(nil)
	_ UnsignedTx = (*RedeemTx)(nil)
)

// InitializeVaultTx creates the vault for an asset held by the caller. The
// caller becomes the vault authority and royalty recipient.
type InitializeVaultTx struct {
	BaseTx `serialize:"true"`

	AssetID          ids.ID                 `serialize:"true" json:"assetID"`
	ArtistRoyaltyBps uint64                 `serialize:"true" json:"artistRoyaltyBps"`
	RentPricePerDay  state.Optional[uint64] `serialize:"true" json:"rentPricePerDay"`
}

func (t *InitializeVaultTx) SyntacticVerify() error {
	switch {
	case t == nil:
		return ErrNilTx
	case t.AssetID == ids.Empty:
		return ErrEmptyAssetID
	case t.ArtistRoyaltyBps > safemath.BasisPointsDenominator:
		return ErrRoyaltyRange
	}
	return t.BaseTx.verify()
}

func (t *InitializeVaultTx) Visit(v Visitor) error {
	return v.InitializeVaultTx(t)
}

// FractionalizeTx moves the asset into custody and mints [Amount] claims to
// the authority.
type FractionalizeTx struct {
	BaseTx `serialize:"true"`

	VaultID ids.ID `serialize:"true" json:"vaultID"`
	Amount  uint64 `serialize:"true" json:"amount"`
}

func (t *FractionalizeTx) SyntacticVerify() error {
	switch {
	case t == nil:
		return ErrNilTx
	case t.Amount == 0:
		return ErrZeroAmount
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *FractionalizeTx) Visit(v Visitor) error {
	return v.FractionalizeTx(t)
}

// RedeemTx burns [Amount] claims for a pro-rata share of the settlement.
type RedeemTx struct {
	BaseTx `serialize:"true"`

	VaultID ids.ID `serialize:"true" json:"vaultID"`
	Amount  uint64 `serialize:"true" json:"amount"`
}

func (t *RedeemTx) SyntacticVerify() error {
	switch {
	case t == nil:
		return ErrNilTx
	case t.Amount == 0:
		return ErrZeroAmount
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *RedeemTx) Visit(v Visitor) error {
	return v.RedeemTx(t)
}
