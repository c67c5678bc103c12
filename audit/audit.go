// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package audit recomputes a vault's buyout tally from its vote records so
// that the running total kept on the vault can be checked independently.
package audit

import (
	"bytes"
	"fmt"

	"github.com/google/btree"
	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/state"

	safemath "github.com/luxfi/fracvm/utils/math"
)

const defaultTreeDegree = 2

var _ btree.LessFunc[*Ballot] = (*Ballot).Less

// Ballot is a vote counted in the vault's current cycle.
type Ballot struct {
	Voter         ids.ShortID `json:"voter"`
	Weight        uint64      `json:"weight"`
	VoteForBuyout bool        `json:"voteForBuyout"`
}

// A *Ballot is less than another when it carries more weight, so ascending
// iteration visits the heaviest ballots first. Ties are broken by voter.
func (b *Ballot) Less(than *Ballot) bool {
	if b.Weight != than.Weight {
		return b.Weight > than.Weight
	}
	return bytes.Compare(b.Voter[:], than.Voter[:]) < 0
}

// Tally is the result of recounting a vault's current vote cycle.
type Tally struct {
	VaultID          ids.ID `json:"vaultID"`
	Cycle            uint64 `json:"cycle"`
	TotalSupply      uint64 `json:"totalSupply"`
	QuorumPercentage uint64 `json:"quorumPercentage"`
	// QuorumThreshold is floor(TotalSupply * QuorumPercentage / 100)
	QuorumThreshold  uint64 `json:"quorumThreshold"`

	VotesFor     uint64 `json:"votesFor"`
	VotesAgainst uint64 `json:"votesAgainst"`
	// RecordedVotesFor is the running total stored on the vault
	RecordedVotesFor uint64 `json:"recordedVotesFor"`

	QuorumReached bool `json:"quorumReached"`
	// Consistent is false if the recount disagrees with the vault
	Consistent bool `json:"consistent"`

	// Ballots are ordered heaviest first
	Ballots []*Ballot `json:"ballots"`
}

// Recount enumerates every vote record of [vaultID] and tallies those cast in
// the vault's current cycle.
func Recount(chain state.Chain, vaultID ids.ID, quorumPercentage uint64) (*Tally, error) {
	vault, err := chain.GetVault(vaultID)
	if err != nil {
		return nil, err
	}
	votes, err := chain.GetVotes(vaultID)
	if err != nil {
		return nil, err
	}
	threshold, err := safemath.PercentOf(vault.TotalSupply, quorumPercentage)
	if err != nil {
		return nil, fmt.Errorf("quorum of %s: %w", vaultID, err)
	}

	tree := btree.NewG(defaultTreeDegree, (*Ballot).Less)
	tally := &Tally{
		VaultID:          vault.ID,
		Cycle:            vault.VoteCycle,
		TotalSupply:      vault.TotalSupply,
		QuorumPercentage: quorumPercentage,
		QuorumThreshold:  threshold,
		RecordedVotesFor: vault.TotalVotesFor,
	}
	for _, vote := range votes {
		weight := vote.WeightIn(vault.VoteCycle)
		if weight == 0 {
			continue
		}
		tree.ReplaceOrInsert(&Ballot{
			Voter:         vote.Voter,
			Weight:        weight,
			VoteForBuyout: vote.VoteForBuyout,
		})

		if vote.VoteForBuyout {
			tally.VotesFor, err = safemath.Add(tally.VotesFor, weight)
		} else {
			tally.VotesAgainst, err = safemath.Add(tally.VotesAgainst, weight)
		}
		if err != nil {
			return nil, fmt.Errorf("tallying %s: %w", vaultID, err)
		}
	}

	tally.Ballots = make([]*Ballot, 0, tree.Len())
	tree.Ascend(func(b *Ballot) bool {
		tally.Ballots = append(tally.Ballots, b)
		return true
	})

	// a settled or expired cycle clears the running total but keeps the
	// records, so only a locked vault can be compared
	if vault.IsLocked {
		tally.Consistent = tally.VotesFor == vault.TotalVotesFor
		tally.QuorumReached = tally.VotesFor >= threshold
	} else {
		tally.Consistent = vault.TotalVotesFor == 0
	}
	return tally, nil
}
