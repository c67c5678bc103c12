// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Visitor dispatches on the concrete transaction type.
type Visitor interface {
	InitializeVaultTx(*InitializeVaultTx) error
	FractionalizeTx(*FractionalizeTx) error
	OpenBuyoutTx(*OpenBuyoutTx) error
	VoteBuyoutTx(*VoteBuyoutTx) error
	SettleBuyoutTx(*SettleBuyoutTx) error
	ExpireBuyoutTx(*ExpireBuyoutTx) error
	RedeemTx(*RedeemTx) error
}
