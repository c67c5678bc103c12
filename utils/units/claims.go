// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Denominations of vault claims. Claims use 6 decimals, so a uint64 supply
// holds up to ~18.4 trillion whole claims.
const (
	ClaimDecimals uint8 = 6

	MicroClaim uint64 = 1                 // Base unit - 0.000001 claim
	MilliClaim uint64 = 1000 * MicroClaim // 0.001 claim
	Claim      uint64 = 1000 * MilliClaim // 1 claim = 10^6 microclaims
	KiloClaim  uint64 = 1000 * Claim
	MegaClaim  uint64 = 1000 * KiloClaim
)
