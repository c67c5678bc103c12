// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "github.com/luxfi/ids"

// Vote is a claim holder's ballot on a vault's buyout.
type Vote struct {
	VaultID ids.ID      `serialize:"true" json:"vaultID"`
	Voter   ids.ShortID `serialize:"true" json:"voter"`
	// Cycle is the vault vote cycle the ballot was cast in
	Cycle uint64 `serialize:"true" json:"cycle"`
	// TokenAmount is the voter's claim balance when the ballot was cast
	TokenAmount   uint64 `serialize:"true" json:"tokenAmount"`
	VoteForBuyout bool   `serialize:"true" json:"voteForBuyout"`
}

// WeightIn returns the ballot weight counted in vote cycle [cycle]. Ballots
// from earlier cycles count as empty.
func (v *Vote) WeightIn(cycle uint64) uint64 {
	if v == nil || v.Cycle != cycle {
		return 0
	}
	return v.TokenAmount
}
