// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/log"

	"github.com/luxfi/fracvm/config"
	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"

	safemath "github.com/luxfi/fracvm/utils/math"
)

func (e *StandardTxExecutor) RedeemTx(tx *txs.RedeemTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	switch {
	case vault.IsLocked:
		return rejectf(KindState, ErrVaultLocked, "%s", vault.ID)
	case vault.IsClosed && vault.TotalSupply == 0:
		return rejectf(KindState, ErrVaultDrained, "%s", vault.ID)
	case tx.Amount < e.Config.MinFractionalAmount:
		return rejectf(KindQuantity, ErrAmountBelowMinimum, "%d < %d", tx.Amount, e.Config.MinFractionalAmount)
	}

	balance, err := e.Ledger.BalanceOf(vault.ClaimMintID, tx.From)
	if err != nil {
		return err
	}
	if balance < tx.Amount {
		return rejectf(KindQuantity, ErrInsufficientClaims, "%s holds %d, redeeming %d", tx.From, balance, tx.Amount)
	}
	newSupply, err := safemath.Sub(vault.TotalSupply, tx.Amount)
	if err != nil {
		return arithmetic(err, "claim supply %d - %d", vault.TotalSupply, tx.Amount)
	}

	payout, err := RedemptionPayout(e.Config.RedemptionPolicy, vault, tx.Amount)
	if err != nil {
		return err
	}
	if payout > vault.SettlementBalance {
		return rejectf(KindQuantity, ErrSettlementExhausted, "%d > %d", payout, vault.SettlementBalance)
	}

	signer := e.signer(vault)
	if err := signer.burn(tx.From, tx.Amount); err != nil {
		return classifyLedger(err)
	}
	if err := signer.pay(tx.From, payout); err != nil {
		return classifyLedger(err)
	}
	vault.TotalSupply = newSupply
	vault.SettlementBalance -= payout
	if err := e.putVault(vault); err != nil {
		return err
	}
	e.Result.Payout = payout

	e.Log.Info("claims redeemed",
		log.Stringer("vaultID", vault.ID),
		log.Stringer("holder", tx.From),
		log.Uint64("burned", tx.Amount),
		log.Uint64("payout", payout),
		log.Uint64("totalSupply", vault.TotalSupply),
	)
	return nil
}

// RedemptionPayout returns the value owed for burning [amount] claims of
// [vault]. An unsettled vault pays nothing.
//
// RedeemNet pays the holder's share of the settlement balance, which already
// has fees deducted, so the last redeemer drains the vault exactly.
// RedeemGross takes the share of the settlement price and deducts the fee
// split from it again.
func RedemptionPayout(policy config.RedemptionPolicy, vault *state.Vault, amount uint64) (uint64, error) {
	if !vault.IsSettled() {
		return 0, nil
	}
	switch policy {
	case config.RedeemGross:
		raw, err := safemath.MulDiv(vault.SettlementPrice, amount, vault.SettledSupply)
		if err != nil {
			return 0, arithmetic(err, "share of %d", vault.SettlementPrice)
		}
		split, err := SplitPrice(raw, vault.PlatformFeeBps, vault.ArtistRoyaltyBps)
		if err != nil {
			return 0, err
		}
		return split.Net, nil
	default:
		payout, err := safemath.MulDiv(vault.SettlementBalance, amount, vault.TotalSupply)
		if err != nil {
			return 0, arithmetic(err, "share of %d", vault.SettlementBalance)
		}
		return payout, nil
	}
}
