// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"

	"github.com/luxfi/database"
	"github.com/luxfi/log"

	"github.com/luxfi/fracvm/ledger"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"

	safemath "github.com/luxfi/fracvm/utils/math"
)

func (e *StandardTxExecutor) InitializeVaultTx(tx *txs.InitializeVaultTx) error {
	feeBps := e.Config.DefaultPlatformFeeBps
	if tx.ArtistRoyaltyBps > e.Config.MaxArtistRoyaltyBps {
		return rejectf(KindQuantity, ErrRoyaltyTooHigh, "%d > %d bps", tx.ArtistRoyaltyBps, e.Config.MaxArtistRoyaltyBps)
	}
	if fees, err := safemath.Add(feeBps, tx.ArtistRoyaltyBps); err != nil || fees > safemath.BasisPointsDenominator {
		return rejectf(KindQuantity, ErrFeesTooHigh, "%d + %d bps", feeBps, tx.ArtistRoyaltyBps)
	}

	_, err := e.State.GetVaultByAsset(tx.AssetID)
	switch {
	case err == nil:
		return rejectf(KindState, ErrVaultExists, "%s", tx.AssetID)
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	owner, err := e.Ledger.OwnerOf(tx.AssetID)
	switch {
	case errors.Is(err, ledger.ErrAssetNotFound):
		return rejectf(KindAuthorization, ErrAssetNotHeld, "%s", tx.AssetID)
	case err != nil:
		return err
	case owner != tx.From:
		return rejectf(KindAuthorization, ErrAssetNotHeld, "%s is held by %s", tx.AssetID, owner)
	}

	vault := state.NewVault(
		tx.From,
		tx.AssetID,
		tx.ArtistRoyaltyBps,
		feeBps,
		tx.RentPricePerDay,
		e.Clk.Unix(),
	)
	if err := e.Ledger.CreateMint(vault.ClaimMintID, vault.Address); err != nil {
		return classifyLedger(err)
	}
	if err := e.State.AddVault(vault); err != nil {
		if errors.Is(err, state.ErrVaultExists) {
			return reject(KindState, err)
		}
		return err
	}
	e.touched = vault
	e.Result.VaultID = vault.ID

	e.Log.Info("vault initialized",
		log.Stringer("vaultID", vault.ID),
		log.Stringer("assetID", vault.AssetID),
		log.Stringer("authority", vault.Authority),
		log.Uint64("artistRoyaltyBps", vault.ArtistRoyaltyBps),
		log.Uint64("platformFeeBps", vault.PlatformFeeBps),
	)
	return nil
}

func (e *StandardTxExecutor) FractionalizeTx(tx *txs.FractionalizeTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	switch {
	case vault.IsClosed:
		return rejectf(KindState, ErrVaultClosed, "%s", vault.ID)
	case vault.IsLocked:
		return rejectf(KindState, ErrVaultLocked, "%s", vault.ID)
	case tx.From != vault.Authority:
		return rejectf(KindAuthorization, ErrNotAuthority, "%s", tx.From)
	case tx.Amount < e.Config.MinFractionalAmount:
		return rejectf(KindQuantity, ErrAmountBelowMinimum, "%d < %d", tx.Amount, e.Config.MinFractionalAmount)
	}

	newSupply, err := safemath.Add(vault.TotalSupply, tx.Amount)
	if err != nil {
		return arithmetic(err, "claim supply %d + %d", vault.TotalSupply, tx.Amount)
	}

	owner, err := e.Ledger.OwnerOf(vault.AssetID)
	if err != nil {
		return err
	}
	if owner != tx.From {
		return rejectf(KindAuthorization, ErrAssetNotHeld, "%s is held by %s", vault.AssetID, owner)
	}

	if err := e.Ledger.Move(vault.AssetID, tx.From, vault.CustodyAccount, tx.From); err != nil {
		return classifyLedger(err)
	}
	if err := e.signer(vault).mint(tx.From, tx.Amount); err != nil {
		return classifyLedger(err)
	}
	vault.TotalSupply = newSupply
	if err := e.putVault(vault); err != nil {
		return err
	}

	e.Log.Info("vault fractionalized",
		log.Stringer("vaultID", vault.ID),
		log.Uint64("minted", tx.Amount),
		log.Uint64("totalSupply", vault.TotalSupply),
	)
	return nil
}
