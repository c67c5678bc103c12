// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial ledger of a chain: value balances
// and the owners of the assets that may later be vaulted.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/fracvm/ledger"

	jsonutil "github.com/luxfi/fracvm/utils/json"
)

var (
	ErrEmptyAddress   = errors.New("allocation to empty address")
	ErrDuplicateAsset = errors.New("asset listed twice")
	ErrNegativeTime   = errors.New("negative genesis timestamp")
)

type Allocation struct {
	Address ids.ShortID     `json:"address"`
	Balance jsonutil.Uint64 `json:"balance"`
}

type Asset struct {
	AssetID ids.ID      `json:"assetID"`
	Owner   ids.ShortID `json:"owner"`
}

type Genesis struct {
	// Timestamp is the unix time the chain starts at
	Timestamp   int64        `json:"timestamp"`
	Allocations []Allocation `json:"allocations"`
	Assets      []Asset      `json:"assets"`
}

// Parse decodes and verifies a JSON genesis.
func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return g, g.Verify()
}

func (g *Genesis) Verify() error {
	if g.Timestamp < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTime, g.Timestamp)
	}
	for _, a := range g.Allocations {
		if a.Address == ids.ShortEmpty {
			return ErrEmptyAddress
		}
	}
	assets := make(map[ids.ID]struct{}, len(g.Assets))
	for _, a := range g.Assets {
		if _, ok := assets[a.AssetID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAsset, a.AssetID)
		}
		assets[a.AssetID] = struct{}{}
	}
	return nil
}

// Apply seeds [l] with the allocations and asset owners.
func (g *Genesis) Apply(l *ledger.State) error {
	for _, a := range g.Allocations {
		if err := l.Credit(a.Address, uint64(a.Balance)); err != nil {
			return fmt.Errorf("allocating to %s: %w", a.Address, err)
		}
	}
	for _, a := range g.Assets {
		if err := l.RegisterAsset(a.AssetID, a.Owner); err != nil {
			return err
		}
	}
	return nil
}
