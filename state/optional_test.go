// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(None[uint64]())
	require.NoError(err)
	require.JSONEq(`null`, string(b))

	b, err = json.Marshal(Some[uint64](42))
	require.NoError(err)
	require.JSONEq(`42`, string(b))

	var o Optional[uint64]
	require.NoError(json.Unmarshal([]byte(`7`), &o))
	require.Equal(Some[uint64](7), o)

	require.NoError(json.Unmarshal([]byte(`null`), &o))
	_, ok := o.Get()
	require.False(ok)
	require.Nil(o.Ptr())
}
