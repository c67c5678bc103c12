// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/fracvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)
	_ txs.Visitor = (*txNamer)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs *prometheus.CounterVec
}

func newTxMetrics(registerer prometheus.Registerer) (*txMetrics, error) {
	m := &txMetrics{
		numTxs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txs_accepted",
				Help: "number of transactions accepted",
			},
			txLabels,
		),
	}
	return m, registerer.Register(m.numTxs)
}

func (m *txMetrics) InitializeVaultTx(*txs.InitializeVaultTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "initialize_vault",
	}).Inc()
	return nil
}

func (m *txMetrics) FractionalizeTx(*txs.FractionalizeTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "fractionalize",
	}).Inc()
	return nil
}

func (m *txMetrics) OpenBuyoutTx(*txs.OpenBuyoutTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "open_buyout",
	}).Inc()
	return nil
}

func (m *txMetrics) VoteBuyoutTx(*txs.VoteBuyoutTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "vote_buyout",
	}).Inc()
	return nil
}

func (m *txMetrics) SettleBuyoutTx(*txs.SettleBuyoutTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "settle_buyout",
	}).Inc()
	return nil
}

func (m *txMetrics) ExpireBuyoutTx(*txs.ExpireBuyoutTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "expire_buyout",
	}).Inc()
	return nil
}

func (m *txMetrics) RedeemTx(*txs.RedeemTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "redeem",
	}).Inc()
	return nil
}

// txNamer resolves the label of a rejected tx.
type txNamer struct {
	name string
}

func (n *txNamer) InitializeVaultTx(*txs.InitializeVaultTx) error {
	n.name = "initialize_vault"
	return nil
}

func (n *txNamer) FractionalizeTx(*txs.FractionalizeTx) error {
	n.name = "fractionalize"
	return nil
}

func (n *txNamer) OpenBuyoutTx(*txs.OpenBuyoutTx) error {
	n.name = "open_buyout"
	return nil
}

func (n *txNamer) VoteBuyoutTx(*txs.VoteBuyoutTx) error {
	n.name = "vote_buyout"
	return nil
}

func (n *txNamer) SettleBuyoutTx(*txs.SettleBuyoutTx) error {
	n.name = "settle_buyout"
	return nil
}

func (n *txNamer) ExpireBuyoutTx(*txs.ExpireBuyoutTx) error {
	n.name = "expire_buyout"
	return nil
}

func (n *txNamer) RedeemTx(*txs.RedeemTx) error {
	n.name = "redeem"
	return nil
}
