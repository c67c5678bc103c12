// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
	"github.com/luxfi/constants"
)

const (
	CodecVersion = 0

	maxTxSize = constants.MiB
)

// Codec serializes transactions. Registration order fixes the type IDs on
// the wire and must not change.
var Codec codec.Manager

func init() {
	lc := linearcodec.NewDefault()
	Codec = codec.NewManager(maxTxSize)

	err := errors.Join(
		lc.RegisterType(&InitializeVaultTx{}),
		lc.RegisterType(&FractionalizeTx{}),
		lc.RegisterType(&OpenBuyoutTx{}),
		lc.RegisterType(&VoteBuyoutTx{}),
		lc.RegisterType(&SettleBuyoutTx{}),
		lc.RegisterType(&ExpireBuyoutTx{}),
		lc.RegisterType(&RedeemTx{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
