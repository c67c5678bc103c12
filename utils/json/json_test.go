// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Uint64(18_446_744_073_709_551_615))
	require.NoError(err)
	require.Equal(`"18446744073709551615"`, string(b))

	var u Uint64
	require.NoError(json.Unmarshal([]byte(`"9250"`), &u))
	require.Equal(Uint64(9_250), u)

	require.NoError(json.Unmarshal([]byte(`92500`), &u))
	require.Equal(Uint64(92_500), u)

	require.NoError(json.Unmarshal([]byte(Null), &u))
	require.Equal(Uint64(92_500), u)

	require.Error(json.Unmarshal([]byte(`"-1"`), &u))
}
