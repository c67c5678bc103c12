// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics merges the registries of independent components into one
// gatherer, namespacing each component's metric names.
package metrics

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"
)

const namespaceSeparator = "_"

var (
	_ MultiGatherer = (*prefixGatherer)(nil)

	errOverlappingNamespaces = errors.New("prefix could create overlapping namespaces")
)

// MultiGatherer extends the Gatherer interface by allowing additional gatherers
// to be registered.
type MultiGatherer interface {
	prometheus.Gatherer

	// Register adds the outputs of [gatherer] to the results of future calls to
	// Gather with [prefix] prepended to the metric names.
	Register(prefix string, gatherer prometheus.Gatherer) error

	// Deregister removes the gatherer registered under [prefix]. Returns true
	// if it was found.
	Deregister(prefix string) bool
}

// NewPrefixGatherer returns a new MultiGatherer that merges metrics by adding a
// prefix to their names.
func NewPrefixGatherer() MultiGatherer {
	return &prefixGatherer{}
}

// MakeAndRegister returns a new registry whose metrics are gathered by
// [gatherer] under [prefix].
func MakeAndRegister(gatherer MultiGatherer, prefix string) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := gatherer.Register(prefix, reg); err != nil {
		return nil, fmt.Errorf("couldn't register %q metrics: %w", prefix, err)
	}
	return reg, nil
}

type prefixGatherer struct {
	lock      sync.RWMutex
	prefixes  []string
	gatherers []prometheus.Gatherer
}

func (g *prefixGatherer) Register(prefix string, gatherer prometheus.Gatherer) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	for _, existingPrefix := range g.prefixes {
		if eitherIsPrefix(prefix, existingPrefix) {
			return fmt.Errorf("%w: %q conflicts with %q",
				errOverlappingNamespaces,
				prefix,
				existingPrefix,
			)
		}
	}

	g.prefixes = append(g.prefixes, prefix)
	g.gatherers = append(g.gatherers, gatherer)
	return nil
}

func (g *prefixGatherer) Deregister(prefix string) bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	index := slices.Index(g.prefixes, prefix)
	if index == -1 {
		return false
	}
	g.prefixes = slices.Delete(g.prefixes, index, index+1)
	g.gatherers = slices.Delete(g.gatherers, index, index+1)
	return true
}

// Gather returns partially filled metrics in the case of an error, like the
// registries it wraps.
func (g *prefixGatherer) Gather() ([]*dto.MetricFamily, error) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	var (
		families []*dto.MetricFamily
		errs     []error
	)
	for i, gatherer := range g.gatherers {
		prefix := g.prefixes[i]
		gathered, err := gatherer.Gather()
		if err != nil {
			errs = append(errs, fmt.Errorf("gathering %q: %w", prefix, err))
		}
		for _, family := range gathered {
			family.Name = proto.String(appendNamespace(prefix, family.GetName()))
		}
		families = append(families, gathered...)
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	return families, errors.Join(errs...)
}

func appendNamespace(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + namespaceSeparator + name
	}
}

// eitherIsPrefix returns true if either [a] is a prefix of [b] or [b] is a
// prefix of [a].
//
// This function accounts for the usage of the namespace boundary, so "hello" is
// not considered a prefix of "helloworld". However, "hello" is considered a
// prefix of "hello_world".
func eitherIsPrefix(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return a == b[:len(a)] && // a is a prefix of b
		(len(a) == 0 || // a is empty
			len(a) == len(b) || // a is equal to b
			b[len(a)] == '_') // a ends at a namespace boundary of b
}
