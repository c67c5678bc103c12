// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var (
	_ UnsignedTx = (*OpenBuyoutTx)(nil)
	_ UnsignedTx = (*VoteBuyoutTx)(nil)
	_ UnsignedTx = (*SettleBuyoutTx)(nil)
	_ UnsignedTx = (*ExpireBuyoutTx)(nil)
)

// OpenBuyoutTx offers [Price] for the asset and starts a vote cycle.
type OpenBuyoutTx struct {
	BaseTx `serialize:"true"`

	VaultID ids.ID `serialize:"true" json:"vaultID"`
	Price   uint64 `serialize:"true" json:"price"`
}

func (t *OpenBuyoutTx) SyntacticVerify() error {
	switch {
	case t == nil:
		return ErrNilTx
	case t.Price == 0:
		return ErrZeroPrice
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *OpenBuyoutTx) Visit(v Visitor) error {
	return v.OpenBuyoutTx(t)
}

// VoteBuyoutTx casts the caller's whole claim balance on the open offer.
type VoteBuyoutTx struct {
	BaseTx `serialize:"true"`

	VaultID       ids.ID `serialize:"true" json:"vaultID"`
	VoteForBuyout bool   `serialize:"true" json:"voteForBuyout"`
}

func (t *VoteBuyoutTx) SyntacticVerify() error {
	if t == nil {
		return ErrNilTx
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *VoteBuyoutTx) Visit(v Visitor) error {
	return v.VoteBuyoutTx(t)
}

// SettleBuyoutTx completes an offer that reached quorum.
type SettleBuyoutTx struct {
	BaseTx `serialize:"true"`

	VaultID ids.ID `serialize:"true" json:"vaultID"`
}

func (t *SettleBuyoutTx) SyntacticVerify() error {
	if t == nil {
		return ErrNilTx
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *SettleBuyoutTx) Visit(v Visitor) error {
	return v.SettleBuyoutTx(t)
}

// ExpireBuyoutTx withdraws an offer whose vote ended short of quorum.
type ExpireBuyoutTx struct {
	BaseTx `serialize:"true"`

	VaultID ids.ID `serialize:"true" json:"vaultID"`
}

func (t *ExpireBuyoutTx) SyntacticVerify() error {
	if t == nil {
		return ErrNilTx
	}
	if err := verifyVaultID(t.VaultID); err != nil {
		return err
	}
	return t.BaseTx.verify()
}

func (t *ExpireBuyoutTx) Visit(v Visitor) error {
	return v.ExpireBuyoutTx(t)
}
