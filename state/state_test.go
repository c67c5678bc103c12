// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func newTestVault() *Vault {
	return NewVault(
		ids.GenerateTestShortID(),
		ids.GenerateTestID(),
		500,
		250,
		Some[uint64](10),
		1_700_000_000,
	)
}

func TestVaultIdentityIsDeterministic(t *testing.T) {
	require := require.New(t)

	assetID := ids.GenerateTestID()
	require.Equal(VaultID(assetID), VaultID(assetID))
	require.NotEqual(VaultID(assetID), VaultID(ids.GenerateTestID()))

	vaultID := VaultID(assetID)
	require.NotEqual(vaultID, ClaimMintID(vaultID))

	addr := VaultAddress(vaultID)
	require.Equal(vaultID[:20], addr[:])
}

func TestAddAndGetVault(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	v := newTestVault()
	v.OpenBuyout(ids.GenerateTestShortID(), 100_000, 10, 20)
	require.NoError(s.AddVault(v))

	got, err := s.GetVault(v.ID)
	require.NoError(err)
	require.Equal(v, got)

	got, err = s.GetVaultByAsset(v.AssetID)
	require.NoError(err)
	require.Equal(v, got)
}

func TestAddVaultRejectsSecondVaultForAsset(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	v := newTestVault()
	require.NoError(s.AddVault(v))

	dup := NewVault(ids.GenerateTestShortID(), v.AssetID, 0, 250, None[uint64](), 0)
	err := s.AddVault(dup)
	require.ErrorIs(err, ErrVaultExists)

	got, err := s.GetVault(v.ID)
	require.NoError(err)
	require.Equal(v.Authority, got.Authority)
}

func TestIsVaultAddress(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	v := newTestVault()

	isVault, err := s.IsVaultAddress(v.Address)
	require.NoError(err)
	require.False(isVault)

	require.NoError(s.AddVault(v))

	isVault, err = s.IsVaultAddress(v.Address)
	require.NoError(err)
	require.True(isVault)

	isVault, err = s.IsVaultAddress(v.Authority)
	require.NoError(err)
	require.False(isVault)
}

func TestGetVaultNotFound(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	_, err := s.GetVault(ids.GenerateTestID())
	require.ErrorIs(err, database.ErrNotFound)

	_, err = s.GetVaultByAsset(ids.GenerateTestID())
	require.ErrorIs(err, database.ErrNotFound)
}

func TestPutVaultRequiresExistingVault(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	v := newTestVault()
	require.ErrorIs(s.PutVault(v), database.ErrNotFound)

	require.NoError(s.AddVault(v))
	v.TotalSupply = 42
	require.NoError(s.PutVault(v))

	got, err := s.GetVault(v.ID)
	require.NoError(err)
	require.Equal(uint64(42), got.TotalSupply)
}

func TestGetVaultIDs(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	expected := make(map[ids.ID]struct{})
	for range 3 {
		v := newTestVault()
		require.NoError(s.AddVault(v))
		expected[v.ID] = struct{}{}
	}

	vaultIDs, err := s.GetVaultIDs()
	require.NoError(err)
	require.Len(vaultIDs, len(expected))
	for _, vaultID := range vaultIDs {
		require.Contains(expected, vaultID)
	}
}

func TestVotesArePerVault(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	vaultA := ids.GenerateTestID()
	vaultB := ids.GenerateTestID()
	voter := ids.GenerateTestShortID()

	_, err := s.GetVote(vaultA, voter)
	require.ErrorIs(err, database.ErrNotFound)

	voteA := &Vote{VaultID: vaultA, Voter: voter, Cycle: 1, TokenAmount: 7, VoteForBuyout: true}
	voteB := &Vote{VaultID: vaultB, Voter: voter, Cycle: 3, TokenAmount: 9}
	otherA := &Vote{VaultID: vaultA, Voter: ids.GenerateTestShortID(), Cycle: 1, TokenAmount: 1}
	require.NoError(s.PutVote(voteA))
	require.NoError(s.PutVote(voteB))
	require.NoError(s.PutVote(otherA))

	got, err := s.GetVote(vaultA, voter)
	require.NoError(err)
	require.Equal(voteA, got)

	votes, err := s.GetVotes(vaultA)
	require.NoError(err)
	require.ElementsMatch([]*Vote{voteA, otherA}, votes)

	votes, err = s.GetVotes(vaultB)
	require.NoError(err)
	require.Equal([]*Vote{voteB}, votes)
}

func TestVoteWeightIn(t *testing.T) {
	require := require.New(t)

	var missing *Vote
	require.Zero(missing.WeightIn(1))

	v := &Vote{Cycle: 2, TokenAmount: 5}
	require.Equal(uint64(5), v.WeightIn(2))
	require.Zero(v.WeightIn(3))
}

func TestVaultVoteWindow(t *testing.T) {
	require := require.New(t)

	v := newTestVault()
	require.False(v.VoteWindowSet())
	require.False(v.VoteWindowOpen(0))
	require.False(v.VoteWindowElapsed(0))

	v.OpenBuyout(ids.GenerateTestShortID(), 1, 100, 200)
	require.Equal(uint64(1), v.VoteCycle)
	require.True(v.IsLocked)
	require.True(v.VoteWindowOpen(199))
	require.False(v.VoteWindowElapsed(199))
	require.False(v.VoteWindowOpen(200))
	require.True(v.VoteWindowElapsed(200))

	v.ClearBuyout()
	require.False(v.IsLocked)
	require.False(v.BuyoutPrice.Set)
	require.False(v.VoteWindowSet())
	require.Equal(uint64(1), v.VoteCycle)
}

func TestVaultVerify(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Vault)
		expectedErr error
	}{
		{
			name:   "open vault",
			mutate: func(*Vault) {},
		},
		{
			name: "active offer",
			mutate: func(v *Vault) {
				v.TotalSupply = 10
				v.OpenBuyout(ids.GenerateTestShortID(), 5, 1, 2)
				v.TotalVotesFor = 10
			},
		},
		{
			name: "settled",
			mutate: func(v *Vault) {
				v.IsClosed = true
				v.SettlementPrice = 100
				v.SettlementBalance = 92
				v.SettledSupply = 10
			},
		},
		{
			name: "fees above 100%",
			mutate: func(v *Vault) {
				v.ArtistRoyaltyBps = 9_800
			},
			expectedErr: ErrFeesExceedPrice,
		},
		{
			name: "closed and locked",
			mutate: func(v *Vault) {
				v.OpenBuyout(ids.GenerateTestShortID(), 5, 1, 2)
				v.IsClosed = true
			},
			expectedErr: ErrClosedVaultLocked,
		},
		{
			name: "closed with offer",
			mutate: func(v *Vault) {
				v.IsClosed = true
				v.BuyoutPrice = Some[uint64](5)
			},
			expectedErr: ErrClosedVaultHasOffer,
		},
		{
			name: "offer without window",
			mutate: func(v *Vault) {
				v.BuyoutPrice = Some[uint64](5)
				v.IsLocked = true
			},
			expectedErr: ErrOfferWithoutWindow,
		},
		{
			name: "lock without offer",
			mutate: func(v *Vault) {
				v.IsLocked = true
			},
			expectedErr: ErrLockWithoutOffer,
		},
		{
			name: "votes above supply",
			mutate: func(v *Vault) {
				v.TotalSupply = 10
				v.OpenBuyout(ids.GenerateTestShortID(), 5, 1, 2)
				v.TotalVotesFor = 11
			},
			expectedErr: ErrVotesExceedSupply,
		},
		{
			name: "settlement overdrawn",
			mutate: func(v *Vault) {
				v.IsClosed = true
				v.SettlementPrice = 1
				v.SettlementBalance = 2
			},
			expectedErr: ErrSettlementOverdrawn,
		},
		{
			name: "settlement on open vault",
			mutate: func(v *Vault) {
				v.SettlementPrice = 1
			},
			expectedErr: ErrUnexpectedSettlement,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := newTestVault()
			test.mutate(v)
			require.ErrorIs(t, v.Verify(), test.expectedErr)
		})
	}
}
