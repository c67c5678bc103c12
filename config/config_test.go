// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func feeAccountJSON(t *testing.T) (ids.ShortID, string) {
	feeAccount := ids.GenerateTestShortID()
	b, err := json.Marshal(feeAccount)
	require.NoError(t, err)
	return feeAccount, string(b)
}

func TestGetConfigDefaults(t *testing.T) {
	require := require.New(t)

	feeAccount, feeAccountStr := feeAccountJSON(t)
	c, err := GetConfig([]byte(fmt.Sprintf(`{"platformFeeAccount": %s}`, feeAccountStr)))
	require.NoError(err)

	expected := DefaultConfig()
	expected.PlatformFeeAccount = feeAccount
	require.Equal(expected, *c)
}

func TestGetConfigRequiresFeeAccount(t *testing.T) {
	_, err := GetConfig(nil)
	require.ErrorIs(t, err, ErrMissingFeeAccount)
}

func TestGetConfigWithoutPlatformFee(t *testing.T) {
	require := require.New(t)

	c, err := GetConfig([]byte(`{"defaultPlatformFeeBps": 0}`))
	require.NoError(err)
	require.Equal(ids.ShortEmpty, c.PlatformFeeAccount)
}

func TestGetConfigOverrides(t *testing.T) {
	require := require.New(t)

	feeAccount, feeAccountStr := feeAccountJSON(t)
	b := []byte(fmt.Sprintf(`{
		"platformFeeAccount": %s,
		"quorumPercentage": 60,
		"voteDuration": 3600000000000,
		"redemptionPolicy": "gross"
	}`, feeAccountStr))
	c, err := GetConfig(b)
	require.NoError(err)

	expected := DefaultConfig()
	expected.PlatformFeeAccount = feeAccount
	expected.QuorumPercentage = 60
	expected.VoteDuration = time.Hour
	expected.RedemptionPolicy = RedeemGross
	require.Equal(expected, *c)
}

func TestGetConfigInvalidJSON(t *testing.T) {
	_, err := GetConfig([]byte(`{"quorumPercentage": "most"}`))
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectedErr error
	}{
		{
			name:        "valid",
			modify:      func(*Config) {},
			expectedErr: nil,
		},
		{
			name: "zero quorum",
			modify: func(c *Config) {
				c.QuorumPercentage = 0
			},
			expectedErr: ErrInvalidQuorum,
		},
		{
			name: "quorum above 100",
			modify: func(c *Config) {
				c.QuorumPercentage = 101
			},
			expectedErr: ErrInvalidQuorum,
		},
		{
			name: "platform fee above 100%",
			modify: func(c *Config) {
				c.DefaultPlatformFeeBps = 10_001
			},
			expectedErr: ErrInvalidFee,
		},
		{
			name: "royalty cap above 10%",
			modify: func(c *Config) {
				c.MaxArtistRoyaltyBps = RoyaltyCapBps + 1
			},
			expectedErr: ErrInvalidFee,
		},
		{
			name: "fee and royalty cap above 100%",
			modify: func(c *Config) {
				c.DefaultPlatformFeeBps = 9_500
				c.MaxArtistRoyaltyBps = RoyaltyCapBps
			},
			expectedErr: ErrInvalidFee,
		},
		{
			name: "no vote window",
			modify: func(c *Config) {
				c.VoteDuration = 0
			},
			expectedErr: ErrInvalidVoteDuration,
		},
		{
			name: "sub-second vote window",
			modify: func(c *Config) {
				c.VoteDuration = 999 * time.Millisecond
			},
			expectedErr: ErrInvalidVoteDuration,
		},
		{
			name: "one second vote window",
			modify: func(c *Config) {
				c.VoteDuration = time.Second
			},
			expectedErr: nil,
		},
		{
			name: "no fractional unit",
			modify: func(c *Config) {
				c.MinFractionalAmount = 0
			},
			expectedErr: ErrInvalidFractionalAmount,
		},
		{
			name: "fee without fee account",
			modify: func(c *Config) {
				c.PlatformFeeAccount = ids.ShortEmpty
			},
			expectedErr: ErrMissingFeeAccount,
		},
		{
			name: "no fee and no fee account",
			modify: func(c *Config) {
				c.DefaultPlatformFeeBps = 0
				c.PlatformFeeAccount = ids.ShortEmpty
			},
			expectedErr: nil,
		},
		{
			name: "unknown policy",
			modify: func(c *Config) {
				c.RedemptionPolicy = "float"
			},
			expectedErr: ErrUnknownPolicy,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultConfig()
			c.PlatformFeeAccount = ids.GenerateTestShortID()
			test.modify(&c)

			err := c.Verify()
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
