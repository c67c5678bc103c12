// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/fracvm/state"
	"github.com/luxfi/fracvm/txs"

	safemath "github.com/luxfi/fracvm/utils/math"
)

func (e *StandardTxExecutor) OpenBuyoutTx(tx *txs.OpenBuyoutTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	switch {
	case vault.IsClosed:
		return rejectf(KindState, ErrVaultClosed, "%s", vault.ID)
	case vault.IsLocked:
		return rejectf(KindState, ErrVaultLocked, "%s", vault.ID)
	case vault.TotalSupply == 0:
		return rejectf(KindState, ErrNoClaims, "%s", vault.ID)
	case tx.Price < e.Config.MinBuyoutPrice:
		return rejectf(KindQuantity, ErrPriceBelowMinimum, "%d < %d", tx.Price, e.Config.MinBuyoutPrice)
	}
	if err := e.requireFunds(tx.From, tx.Price); err != nil {
		return err
	}

	start := e.Clk.Unix()
	end := start + int64(e.Config.VoteDuration/time.Second)
	vault.OpenBuyout(tx.From, tx.Price, start, end)
	if err := e.putVault(vault); err != nil {
		return err
	}

	e.Log.Info("buyout opened",
		log.Stringer("vaultID", vault.ID),
		log.Stringer("buyer", tx.From),
		log.Uint64("price", tx.Price),
		log.Uint64("cycle", vault.VoteCycle),
		log.Time("voteEnd", time.Unix(end, 0)),
	)
	return nil
}

func (e *StandardTxExecutor) VoteBuyoutTx(tx *txs.VoteBuyoutTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	now := e.Clk.Unix()
	switch {
	case vault.IsClosed:
		return rejectf(KindState, ErrVaultClosed, "%s", vault.ID)
	case !vault.VoteWindowSet() || now < vault.BuyoutVoteStart.Value:
		return rejectf(KindTemporal, ErrVoteNotActive, "%s", vault.ID)
	case !vault.VoteWindowOpen(now):
		return rejectf(KindTemporal, ErrVoteExpired, "ended at %d", vault.BuyoutVoteEnd.Value)
	}

	balance, err := e.Ledger.BalanceOf(vault.ClaimMintID, tx.From)
	if err != nil {
		return err
	}
	if balance == 0 {
		return rejectf(KindQuantity, ErrZeroBalance, "%s", tx.From)
	}

	prev, err := e.State.GetVote(vault.ID, tx.From)
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		return err
	case prev.WeightIn(vault.VoteCycle) != 0:
		return rejectf(KindGovernance, ErrDuplicateVote, "%s in cycle %d", tx.From, vault.VoteCycle)
	}

	if tx.VoteForBuyout {
		votesFor, err := safemath.Add(vault.TotalVotesFor, balance)
		if err != nil {
			return arithmetic(err, "votes %d + %d", vault.TotalVotesFor, balance)
		}
		vault.TotalVotesFor = votesFor
	}
	vote := &state.Vote{
		VaultID:       vault.ID,
		Voter:         tx.From,
		Cycle:         vault.VoteCycle,
		TokenAmount:   balance,
		VoteForBuyout: tx.VoteForBuyout,
	}
	if err := e.State.PutVote(vote); err != nil {
		return err
	}
	if err := e.putVault(vault); err != nil {
		return err
	}

	e.Log.Debug("buyout vote cast",
		log.Stringer("vaultID", vault.ID),
		log.Stringer("voter", tx.From),
		log.Uint64("weight", balance),
		log.Bool("for", tx.VoteForBuyout),
		log.Uint64("totalVotesFor", vault.TotalVotesFor),
	)
	return nil
}

func (e *StandardTxExecutor) SettleBuyoutTx(tx *txs.SettleBuyoutTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	if err := e.verifyElapsed(vault); err != nil {
		return err
	}
	buyer := vault.BuyoutBuyer.Value
	if tx.From != buyer {
		return rejectf(KindAuthorization, ErrNotBuyer, "%s", tx.From)
	}
	reached, threshold, err := e.quorumReached(vault)
	if err != nil {
		return err
	}
	if !reached {
		return rejectf(KindGovernance, ErrQuorumNotMet, "%d of %d votes for, %d needed",
			vault.TotalVotesFor, vault.TotalSupply, threshold)
	}

	price := vault.BuyoutPrice.Value
	split, err := SplitPrice(price, vault.PlatformFeeBps, vault.ArtistRoyaltyBps)
	if err != nil {
		return err
	}
	if err := e.requireFunds(buyer, price); err != nil {
		return err
	}

	payments := []struct {
		to     ids.ShortID
		amount uint64
	}{
		{to: e.Config.PlatformFeeAccount, amount: split.PlatformFee},
		{to: vault.Authority, amount: split.ArtistRoyalty},
		{to: vault.Address, amount: split.Net},
	}
	for _, p := range payments {
		if p.amount == 0 {
			continue
		}
		if err := e.Ledger.Transfer(buyer, p.to, p.amount); err != nil {
			return classifyLedger(err)
		}
	}
	if err := e.signer(vault).release(buyer); err != nil {
		return classifyLedger(err)
	}

	vault.ClearBuyout()
	vault.IsClosed = true
	vault.SettlementPrice = price
	vault.SettlementBalance = split.Net
	vault.SettledSupply = vault.TotalSupply
	if err := e.putVault(vault); err != nil {
		return err
	}
	e.Result.Split = &split

	e.Log.Info("buyout settled",
		log.Stringer("vaultID", vault.ID),
		log.Stringer("buyer", buyer),
		log.Uint64("price", price),
		log.Uint64("platformFee", split.PlatformFee),
		log.Uint64("artistRoyalty", split.ArtistRoyalty),
		log.Uint64("net", split.Net),
	)
	return nil
}

func (e *StandardTxExecutor) ExpireBuyoutTx(tx *txs.ExpireBuyoutTx) error {
	vault, err := e.getVault(tx.VaultID)
	if err != nil {
		return err
	}
	if err := e.verifyElapsed(vault); err != nil {
		return err
	}
	reached, threshold, err := e.quorumReached(vault)
	if err != nil {
		return err
	}
	if reached {
		return rejectf(KindGovernance, ErrQuorumReached, "%d of %d votes for, %d needed",
			vault.TotalVotesFor, vault.TotalSupply, threshold)
	}

	cycle := vault.VoteCycle
	vault.ClearBuyout()
	if err := e.putVault(vault); err != nil {
		return err
	}

	e.Log.Info("buyout expired",
		log.Stringer("vaultID", vault.ID),
		log.Uint64("cycle", cycle),
	)
	return nil
}

// verifyElapsed requires a buyout whose vote window has ended.
func (e *StandardTxExecutor) verifyElapsed(vault *state.Vault) error {
	switch {
	case vault.IsClosed:
		return rejectf(KindState, ErrVaultClosed, "%s", vault.ID)
	case !vault.VoteWindowSet() || !vault.BuyoutPrice.Set:
		return rejectf(KindTemporal, ErrVoteNotActive, "%s", vault.ID)
	case !vault.VoteWindowElapsed(e.Clk.Unix()):
		return rejectf(KindTemporal, ErrVoteNotElapsed, "ends at %d", vault.BuyoutVoteEnd.Value)
	}
	return nil
}

// quorumReached compares the votes for the buyout against the floored share
// of the supply set by QuorumPercentage.
func (e *StandardTxExecutor) quorumReached(vault *state.Vault) (bool, uint64, error) {
	threshold, err := safemath.PercentOf(vault.TotalSupply, e.Config.QuorumPercentage)
	if err != nil {
		return false, 0, arithmetic(err, "quorum of %d", vault.TotalSupply)
	}
	return vault.TotalVotesFor >= threshold, threshold, nil
}

func (e *StandardTxExecutor) requireFunds(account ids.ShortID, amount uint64) error {
	balance, err := e.Ledger.Balance(account)
	if err != nil {
		return err
	}
	if balance < amount {
		return rejectf(KindQuantity, ErrInsufficientFunds, "%s holds %d, needs %d", account, balance, amount)
	}
	return nil
}
