// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require := require.New(t)

	err := rejectf(KindGovernance, ErrQuorumNotMet, "%d of %d", 1, 2)
	require.Equal(KindGovernance, KindOf(err))
	require.ErrorIs(err, ErrQuorumNotMet)
	require.Equal("governance violation: quorum not reached for buyout: 1 of 2", err.Error())

	wrapped := fmt.Errorf("issuing tx: %w", err)
	require.Equal(KindGovernance, KindOf(wrapped))
	require.ErrorIs(wrapped, ErrQuorumNotMet)

	require.Equal(KindUnknown, KindOf(errors.New("disk full")))
	require.Equal(KindUnknown, KindOf(nil))
}

func TestKindString(t *testing.T) {
	require := require.New(t)
	require.Equal("state", KindState.String())
	require.Equal("authorization", KindAuthorization.String())
	require.Equal("quantity", KindQuantity.String())
	require.Equal("temporal", KindTemporal.String())
	require.Equal("governance", KindGovernance.String())
	require.Equal("unknown", Kind(42).String())
}

var errTestStorage = errors.New("storage failure")
