// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/fracvm/utils/math"
)

var (
	vaultSeed = []byte("vault")
	claimSeed = []byte("claims")

	ErrClosedVaultLocked    = errors.New("closed vault is locked")
	ErrClosedVaultHasOffer  = errors.New("closed vault carries a buyout offer")
	ErrOfferWithoutWindow   = errors.New("buyout offer without a vote window")
	ErrLockWithoutOffer     = errors.New("vault locked without a buyout offer")
	ErrVotesExceedSupply    = errors.New("votes for buyout exceed claim supply")
	ErrFeesExceedPrice      = errors.New("platform fee and royalty exceed 100%")
	ErrSettlementOverdrawn  = errors.New("settlement balance exceeds settlement price")
	ErrWindowBeforeStart    = errors.New("vote window ends before it starts")
	ErrUnexpectedSettlement = errors.New("open vault carries settlement value")
)

// VaultID derives the vault identity from the asset it custodies. Exactly one
// vault may exist per asset.
func VaultID(assetID ids.ID) ids.ID {
	return hash.ComputeHash256Array(append(append([]byte{}, vaultSeed...), assetID[:]...))
}

// VaultAddress is the ledger account owned by the vault. It holds the asset
// while in custody, receives settlement value and is the claim mint authority.
func VaultAddress(vaultID ids.ID) ids.ShortID {
	var addr ids.ShortID
	copy(addr[:], vaultID[:])
	return addr
}

// ClaimMintID derives the identity of the fungible claim issued by a vault.
func ClaimMintID(vaultID ids.ID) ids.ID {
	return hash.ComputeHash256Array(append(append([]byte{}, claimSeed...), vaultID[:]...))
}

// Vault binds one non-divisible asset to a pool of fungible claims.
type Vault struct {
	ID             ids.ID      `serialize:"true" json:"id"`
	Address        ids.ShortID `serialize:"true" json:"address"`
	Authority      ids.ShortID `serialize:"true" json:"authority"`
	AssetID        ids.ID      `serialize:"true" json:"assetID"`
	CustodyAccount ids.ShortID `serialize:"true" json:"custodyAccount"`
	ClaimMintID    ids.ID      `serialize:"true" json:"claimMintID"`

	TotalSupply uint64 `serialize:"true" json:"totalSupply"`

	// Buyout terms of the current vote cycle
	BuyoutPrice     Optional[uint64]      `serialize:"true" json:"buyoutPrice"`
	BuyoutBuyer     Optional[ids.ShortID] `serialize:"true" json:"buyoutBuyer"`
	BuyoutVoteStart Optional[int64]       `serialize:"true" json:"buyoutVoteStart"`
	BuyoutVoteEnd   Optional[int64]       `serialize:"true" json:"buyoutVoteEnd"`
	TotalVotesFor   uint64                `serialize:"true" json:"totalVotesFor"`
	VoteCycle       uint64                `serialize:"true" json:"voteCycle"`

	IsLocked bool `serialize:"true" json:"isLocked"`
	IsClosed bool `serialize:"true" json:"isClosed"`

	ArtistRoyaltyBps uint64 `serialize:"true" json:"artistRoyaltyBps"`
	PlatformFeeBps   uint64 `serialize:"true" json:"platformFeeBps"`

	// Fixed at settlement; redemption draws on SettlementBalance
	SettlementPrice   uint64 `serialize:"true" json:"settlementPrice"`
	SettlementBalance uint64 `serialize:"true" json:"settlementBalance"`
	SettledSupply     uint64 `serialize:"true" json:"settledSupply"`

	// Reserved for renting the asset out. No operation reads or writes these.
	RentPricePerDay Optional[uint64]      `serialize:"true" json:"rentPricePerDay"`
	IsRented        bool                  `serialize:"true" json:"isRented"`
	RentStart       Optional[int64]       `serialize:"true" json:"rentStart"`
	RentEnd         Optional[int64]       `serialize:"true" json:"rentEnd"`
	CurrentRenter   Optional[ids.ShortID] `serialize:"true" json:"currentRenter"`

	CreatedAt int64 `serialize:"true" json:"createdAt"`
}

// NewVault returns an open, empty vault for [assetID].
func NewVault(
	authority ids.ShortID,
	assetID ids.ID,
	artistRoyaltyBps uint64,
	platformFeeBps uint64,
	rentPricePerDay Optional[uint64],
	createdAt int64,
) *Vault {
	vaultID := VaultID(assetID)
	addr := VaultAddress(vaultID)
	return &Vault{
		ID:               vaultID,
		Address:          addr,
		Authority:        authority,
		AssetID:          assetID,
		CustodyAccount:   addr,
		ClaimMintID:      ClaimMintID(vaultID),
		ArtistRoyaltyBps: artistRoyaltyBps,
		PlatformFeeBps:   platformFeeBps,
		RentPricePerDay:  rentPricePerDay,
		CreatedAt:        createdAt,
	}
}

// IsSettled reports whether a buyout has fixed the vault's settlement value.
func (v *Vault) IsSettled() bool {
	return v.IsClosed && v.SettledSupply > 0
}

// VoteWindowSet reports whether a vote cycle is in progress.
func (v *Vault) VoteWindowSet() bool {
	return v.BuyoutVoteStart.Set && v.BuyoutVoteEnd.Set
}

// VoteWindowOpen reports whether votes are accepted at [now].
func (v *Vault) VoteWindowOpen(now int64) bool {
	return v.VoteWindowSet() && now < v.BuyoutVoteEnd.Value
}

// VoteWindowElapsed reports whether the current vote cycle is over at [now].
func (v *Vault) VoteWindowElapsed(now int64) bool {
	return v.VoteWindowSet() && now >= v.BuyoutVoteEnd.Value
}

// OpenBuyout starts a new vote cycle for [buyer] at [price].
func (v *Vault) OpenBuyout(buyer ids.ShortID, price uint64, start, end int64) {
	v.BuyoutPrice = Some(price)
	v.BuyoutBuyer = Some(buyer)
	v.BuyoutVoteStart = Some(start)
	v.BuyoutVoteEnd = Some(end)
	v.TotalVotesFor = 0
	v.VoteCycle++
	v.IsLocked = true
}

// ClearBuyout ends the current vote cycle and releases the lock.
func (v *Vault) ClearBuyout() {
	v.BuyoutPrice = None[uint64]()
	v.BuyoutBuyer = None[ids.ShortID]()
	v.BuyoutVoteStart = None[int64]()
	v.BuyoutVoteEnd = None[int64]()
	v.TotalVotesFor = 0
	v.IsLocked = false
}

// Verify checks the invariants that can be decided from the record alone.
func (v *Vault) Verify() error {
	fees, err := safemath.Add(v.PlatformFeeBps, v.ArtistRoyaltyBps)
	if err != nil || fees > safemath.BasisPointsDenominator {
		return fmt.Errorf("%w: %d + %d bps", ErrFeesExceedPrice, v.PlatformFeeBps, v.ArtistRoyaltyBps)
	}

	offer := v.BuyoutPrice.Set
	switch {
	case v.IsClosed && v.IsLocked:
		return ErrClosedVaultLocked
	case v.IsClosed && offer:
		return ErrClosedVaultHasOffer
	case offer && !v.VoteWindowSet():
		return ErrOfferWithoutWindow
	case v.IsLocked != offer:
		return ErrLockWithoutOffer
	case v.VoteWindowSet() && v.BuyoutVoteEnd.Value < v.BuyoutVoteStart.Value:
		return ErrWindowBeforeStart
	case v.IsLocked && v.TotalVotesFor > v.TotalSupply:
		return fmt.Errorf("%w: %d > %d", ErrVotesExceedSupply, v.TotalVotesFor, v.TotalSupply)
	case v.SettlementBalance > v.SettlementPrice:
		return ErrSettlementOverdrawn
	case !v.IsClosed && (v.SettlementPrice != 0 || v.SettlementBalance != 0 || v.SettledSupply != 0):
		return ErrUnexpectedSettlement
	}
	return nil
}
