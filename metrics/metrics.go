// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics counts the transactions the VM accepts and rejects.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/fracvm/txs"
	"github.com/luxfi/fracvm/txs/executor"
)

const kindLabel = "kind"

var _ Metrics = (*metrics)(nil)

type Metrics interface {
	// MarkAccepted counts an accepted tx and the value it paid out.
	MarkAccepted(tx *txs.Tx, result *executor.Result) error
	// MarkRejected counts a rejected tx by the kind of its rejection.
	MarkRejected(tx *txs.Tx, err error)
}

type metrics struct {
	txMetrics *txMetrics

	rejected    *prometheus.CounterVec
	settlements prometheus.Counter
	settled     prometheus.Counter
	redeemed    prometheus.Counter
}

func New(registerer prometheus.Registerer) (Metrics, error) {
	txMetrics, err := newTxMetrics(registerer)
	if err != nil {
		return nil, err
	}

	m := &metrics{
		txMetrics: txMetrics,
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txs_rejected",
				Help: "number of transactions rejected",
			},
			[]string{txLabel, kindLabel},
		),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buyouts_settled",
			Help: "number of buyouts settled",
		}),
		settled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "buyout_value_settled",
			Help: "gross value paid by buyers at settlement",
		}),
		redeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redemption_value_paid",
			Help: "value paid out to redeemed claims",
		}),
	}
	err = errors.Join(
		registerer.Register(m.rejected),
		registerer.Register(m.settlements),
		registerer.Register(m.settled),
		registerer.Register(m.redeemed),
	)
	return m, err
}

func (m *metrics) MarkAccepted(tx *txs.Tx, result *executor.Result) error {
	if split := result.Split; split != nil {
		m.settlements.Inc()
		m.settled.Add(float64(split.PlatformFee + split.ArtistRoyalty + split.Net))
	}
	if result.Payout > 0 {
		m.redeemed.Add(float64(result.Payout))
	}
	return tx.Unsigned.Visit(m.txMetrics)
}

func (m *metrics) MarkRejected(tx *txs.Tx, err error) {
	name := "unknown"
	if tx != nil && tx.Unsigned != nil {
		namer := &txNamer{}
		_ = tx.Unsigned.Visit(namer)
		name = namer.name
	}
	m.rejected.With(prometheus.Labels{
		txLabel:   name,
		kindLabel: executor.KindOf(err).String(),
	}).Inc()
}
