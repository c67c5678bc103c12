// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the platform parameters of the fractional vault VM.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/utils/units"

	safemath "github.com/luxfi/fracvm/utils/math"
)

var (
	ErrInvalidQuorum           = errors.New("quorum percentage must be in (0, 100]")
	ErrInvalidFee              = errors.New("fee exceeds 100%")
	ErrInvalidVoteDuration     = errors.New("vote duration must be at least one second")
	ErrMissingFeeAccount       = errors.New("platform fee charged without a fee account")
	ErrInvalidFractionalAmount = errors.New("minimum fractional amount must be positive")
	ErrUnknownPolicy           = errors.New("unknown redemption policy")
)

// RoyaltyCapBps is the highest royalty any vault may carry, whatever
// MaxArtistRoyaltyBps is set to.
const RoyaltyCapBps = 1000

// RedemptionPolicy selects how a settled vault pays out redeemed claims.
type RedemptionPolicy string

const (
	// RedeemNet pays each claim its pro-rata share of the net settlement
	// balance held by the vault. Fees are charged once, at settlement.
	RedeemNet RedemptionPolicy = "net"
	// RedeemGross computes the pro-rata share of the gross settlement price
	// and charges the platform fee and royalty on it again.
	RedeemGross RedemptionPolicy = "gross"
)

// Config contains the platform-wide parameters. It is loaded once at startup
// and never mutated afterwards.
type Config struct {
	// DefaultPlatformFeeBps is the platform fee stamped on every new vault,
	// in basis points (100 = 1%)
	DefaultPlatformFeeBps uint64 `json:"defaultPlatformFeeBps"`
	// MaxArtistRoyaltyBps caps the royalty a vault creator may set
	MaxArtistRoyaltyBps uint64 `json:"maxArtistRoyaltyBps"`
	// MinBuyoutPrice is the lowest price a buyout offer may carry
	MinBuyoutPrice uint64 `json:"minBuyoutPrice"`
	// PlatformFeeAccount receives the platform fee on settlement. It must be
	// set whenever DefaultPlatformFeeBps is non-zero.
	PlatformFeeAccount ids.ShortID `json:"platformFeeAccount"`

	// QuorumPercentage of the claim supply that must vote for a buyout
	QuorumPercentage uint64 `json:"quorumPercentage"`
	// VoteDuration is the length of a buyout voting window
	VoteDuration time.Duration `json:"voteDuration"`
	// MinFractionalAmount is the smallest number of claims that may be
	// minted or redeemed at once
	MinFractionalAmount uint64 `json:"minFractionalAmount"`
	// ClaimDecimals is informational; claim amounts are always raw units
	ClaimDecimals uint8 `json:"claimDecimals"`

	RedemptionPolicy RedemptionPolicy `json:"redemptionPolicy"`

	// VaultCacheSize is the number of vault records kept in the read cache
	VaultCacheSize int `json:"vaultCacheSize"`
}

// DefaultConfig returns the default platform parameters.
func DefaultConfig() Config {
	return Config{
		DefaultPlatformFeeBps: 250,           // 2.5%
		MaxArtistRoyaltyBps:   RoyaltyCapBps, // 10%
		MinBuyoutPrice:        1,
		PlatformFeeAccount:    ids.ShortEmpty,

		QuorumPercentage:    75,
		VoteDuration:        7 * 24 * time.Hour,
		MinFractionalAmount: units.Claim,
		ClaimDecimals:       units.ClaimDecimals,

		RedemptionPolicy: RedeemNet,

		VaultCacheSize: 2048,
	}
}

// GetConfig unmarshals [b] over the default parameters and verifies the
// result. The defaults charge a platform fee, so [b] must at least name the
// fee account.
func GetConfig(b []byte) (*Config, error) {
	c := DefaultConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Verify checks that the parameters are internally consistent.
func (c *Config) Verify() error {
	switch {
	case c.QuorumPercentage == 0 || c.QuorumPercentage > 100:
		return fmt.Errorf("%w: %d", ErrInvalidQuorum, c.QuorumPercentage)
	case c.DefaultPlatformFeeBps > safemath.BasisPointsDenominator:
		return fmt.Errorf("%w: platform fee %d bps", ErrInvalidFee, c.DefaultPlatformFeeBps)
	case c.MaxArtistRoyaltyBps > RoyaltyCapBps:
		return fmt.Errorf("%w: royalty cap %d bps above %d bps",
			ErrInvalidFee, c.MaxArtistRoyaltyBps, RoyaltyCapBps)
	case c.MaxArtistRoyaltyBps > safemath.BasisPointsDenominator-c.DefaultPlatformFeeBps:
		return fmt.Errorf("%w: royalty cap %d bps with platform fee %d bps",
			ErrInvalidFee, c.MaxArtistRoyaltyBps, c.DefaultPlatformFeeBps)
	case c.VoteDuration < time.Second:
		return fmt.Errorf("%w: %s", ErrInvalidVoteDuration, c.VoteDuration)
	case c.MinFractionalAmount == 0:
		return ErrInvalidFractionalAmount
	case c.DefaultPlatformFeeBps > 0 && c.PlatformFeeAccount == ids.ShortEmpty:
		return ErrMissingFeeAccount
	}
	switch c.RedemptionPolicy {
	case RedeemNet, RedeemGross:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.RedemptionPolicy)
	}
}
