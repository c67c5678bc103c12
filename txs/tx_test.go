// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fracvm/state"
)

func TestParseKeepsID(t *testing.T) {
	require := require.New(t)

	unsigned := &InitializeVaultTx{
		BaseTx:           BaseTx{From: ids.GenerateTestShortID(), Nonce: 3},
		AssetID:          ids.GenerateTestID(),
		ArtistRoyaltyBps: 500,
		RentPricePerDay:  state.Some[uint64](10),
	}
	tx, err := NewTx(unsigned)
	require.NoError(err)
	require.NotEqual(ids.Empty, tx.ID())

	parsed, err := Parse(Codec, tx.Bytes())
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(unsigned, parsed.Unsigned)

	// a different nonce yields a different tx
	unsigned.Nonce++
	other, err := NewTx(unsigned)
	require.NoError(err)
	require.NotEqual(tx.ID(), other.ID())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(Codec, []byte{0x00, 0x00, 0xff})
	require.Error(t, err)
}

func TestSyntacticVerify(t *testing.T) {
	caller := BaseTx{From: ids.GenerateTestShortID()}
	vaultID := ids.GenerateTestID()

	tests := []struct {
		name        string
		tx          *Tx
		expectedErr error
	}{
		{
			name:        "nil tx",
			tx:          nil,
			expectedErr: ErrNilTx,
		},
		{
			name:        "nil unsigned",
			tx:          &Tx{},
			expectedErr: ErrNilTx,
		},
		{
			name: "valid initialize",
			tx: &Tx{Unsigned: &InitializeVaultTx{
				BaseTx:           caller,
				AssetID:          ids.GenerateTestID(),
				ArtistRoyaltyBps: 10_000,
			}},
		},
		{
			name: "initialize without asset",
			tx: &Tx{Unsigned: &InitializeVaultTx{
				BaseTx: caller,
			}},
			expectedErr: ErrEmptyAssetID,
		},
		{
			name: "initialize royalty above 100%",
			tx: &Tx{Unsigned: &InitializeVaultTx{
				BaseTx:           caller,
				AssetID:          ids.GenerateTestID(),
				ArtistRoyaltyBps: 10_001,
			}},
			expectedErr: ErrRoyaltyRange,
		},
		{
			name: "fractionalize zero",
			tx: &Tx{Unsigned: &FractionalizeTx{
				BaseTx:  caller,
				VaultID: vaultID,
			}},
			expectedErr: ErrZeroAmount,
		},
		{
			name: "fractionalize without caller",
			tx: &Tx{Unsigned: &FractionalizeTx{
				VaultID: vaultID,
				Amount:  1,
			}},
			expectedErr: ErrEmptyCaller,
		},
		{
			name: "open buyout at zero",
			tx: &Tx{Unsigned: &OpenBuyoutTx{
				BaseTx:  caller,
				VaultID: vaultID,
			}},
			expectedErr: ErrZeroPrice,
		},
		{
			name: "vote without vault",
			tx: &Tx{Unsigned: &VoteBuyoutTx{
				BaseTx:        caller,
				VoteForBuyout: true,
			}},
			expectedErr: ErrEmptyVaultID,
		},
		{
			name: "valid vote against",
			tx: &Tx{Unsigned: &VoteBuyoutTx{
				BaseTx:  caller,
				VaultID: vaultID,
			}},
		},
		{
			name: "settle without vault",
			tx: &Tx{Unsigned: &SettleBuyoutTx{
				BaseTx: caller,
			}},
			expectedErr: ErrEmptyVaultID,
		},
		{
			name: "expire without caller",
			tx: &Tx{Unsigned: &ExpireBuyoutTx{
				VaultID: vaultID,
			}},
			expectedErr: ErrEmptyCaller,
		},
		{
			name: "redeem zero",
			tx: &Tx{Unsigned: &RedeemTx{
				BaseTx:  caller,
				VaultID: vaultID,
			}},
			expectedErr: ErrZeroAmount,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.tx.SyntacticVerify()
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}
