// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	safemath "github.com/luxfi/fracvm/utils/math"
)

// Split is a price divided between the platform, the artist and the seller.
// The three parts always sum to the price.
type Split struct {
	PlatformFee   uint64 `json:"platformFee"`
	ArtistRoyalty uint64 `json:"artistRoyalty"`
	Net           uint64 `json:"net"`
}

// SplitPrice floors each fee independently and leaves the rounding remainder
// in Net.
func SplitPrice(price, platformFeeBps, artistRoyaltyBps uint64) (Split, error) {
	fee, err := safemath.BasisPoints(price, platformFeeBps)
	if err != nil {
		return Split{}, arithmetic(err, "platform fee on %d", price)
	}
	royalty, err := safemath.BasisPoints(price, artistRoyaltyBps)
	if err != nil {
		return Split{}, arithmetic(err, "artist royalty on %d", price)
	}
	net, err := safemath.Sub(price, fee)
	if err != nil {
		return Split{}, arithmetic(err, "net of platform fee")
	}
	net, err = safemath.Sub(net, royalty)
	if err != nil {
		return Split{}, arithmetic(err, "net of artist royalty")
	}
	return Split{
		PlatformFee:   fee,
		ArtistRoyalty: royalty,
		Net:           net,
	}, nil
}
