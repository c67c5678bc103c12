// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor verifies and applies vault transactions.
package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"
)

var _ txs.Visitor = (*StandardTxExecutor)(nil)

// Result describes what an accepted transaction did.
type Result struct {
	VaultID ids.ID `json:"vaultID"`
	// Split is set by a settlement
	Split *Split `json:"split,omitempty"`
	// Payout is the value paid to a redeemer
	Payout uint64 `json:"payout"`
}

// StandardTxExecutor applies one transaction to [State] and [Ledger]. The
// caller is expected to discard both on error.
type StandardTxExecutor struct {
	*Backend
	State  state.Chain
	Ledger ledger.Ledger
	Tx     *txs.Tx

	Result Result

	touched *state.Vault
}

// Execute verifies and applies [tx]. On error the writes already made to
// [chain] and [l] must be discarded.
//
// A vault's account only moves value through the vault's own logic, so no
// transaction may name it as the caller.
func Execute(b *Backend, chain state.Chain, l ledger.Ledger, tx *txs.Tx) (*Result, error) {
	if err := tx.SyntacticVerify(); err != nil {
		return nil, classifySyntax(err)
	}
	caller := tx.Unsigned.Caller()
	isVault, err := chain.IsVaultAddress(caller)
	if err != nil {
		return nil, err
	}
	if isVault {
		return nil, rejectf(KindAuthorization, ErrVaultCaller, "%s", caller)
	}
	e := &StandardTxExecutor{
		Backend: b,
		State:   chain,
		Ledger:  l,
		Tx:      tx,
	}
	if err := tx.Unsigned.Visit(e); err != nil {
		return nil, err
	}
	if err := e.verifyInvariants(); err != nil {
		return nil, err
	}
	return &e.Result, nil
}

func (e *StandardTxExecutor) getVault(vaultID ids.ID) (*state.Vault, error) {
	vault, err := e.State.GetVault(vaultID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, rejectf(KindState, ErrVaultNotFound, "%s", vaultID)
	}
	return vault, err
}

func (e *StandardTxExecutor) putVault(vault *state.Vault) error {
	e.touched = vault
	e.Result.VaultID = vault.ID
	return e.State.PutVault(vault)
}

// verifyInvariants checks the vault a transaction wrote against the ledger.
func (e *StandardTxExecutor) verifyInvariants() error {
	vault := e.touched
	if vault == nil {
		return nil
	}
	if err := vault.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariantBroken, err)
	}
	supply, err := e.Ledger.SupplyOf(vault.ClaimMintID)
	if err != nil {
		return err
	}
	if supply != vault.TotalSupply {
		return fmt.Errorf("%w: claim supply %d != vault supply %d", ErrInvariantBroken, supply, vault.TotalSupply)
	}
	owner, err := e.Ledger.OwnerOf(vault.AssetID)
	if err != nil {
		return err
	}
	inCustody := owner == vault.CustodyAccount
	switch {
	case vault.IsClosed && inCustody:
		return fmt.Errorf("%w: closed vault %s still holds its asset", ErrInvariantBroken, vault.ID)
	case !vault.IsClosed && vault.TotalSupply > 0 && !inCustody:
		return fmt.Errorf("%w: claims outstanding on %s without custody", ErrInvariantBroken, vault.ID)
	}
	return nil
}

// vaultSigner is the only way ledger calls are authorized by a vault. Every
// movement out of custody, every mint and burn and every payout from the
// vault account goes through it.
type vaultSigner struct {
	ledger ledger.Ledger
	vault  *state.Vault
}

func (s vaultSigner) mint(to ids.ShortID, amount uint64) error {
	return s.ledger.Mint(s.vault.ClaimMintID, to, amount, s.vault.Address)
}

func (s vaultSigner) burn(from ids.ShortID, amount uint64) error {
	return s.ledger.Burn(s.vault.ClaimMintID, from, amount, s.vault.Address)
}

func (s vaultSigner) release(to ids.ShortID) error {
	return s.ledger.Move(s.vault.AssetID, s.vault.CustodyAccount, to, s.vault.Address)
}

func (s vaultSigner) pay(to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	return s.ledger.Transfer(s.vault.Address, to, amount)
}

func (e *StandardTxExecutor) signer(vault *state.Vault) vaultSigner {
	return vaultSigner{
		ledger: e.Ledger,
		vault:  vault,
	}
}
