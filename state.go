// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fracvm

// State is the lifecycle state of a VM instance.
type State uint8

const (
	// Unknown is the state before Initialize.
	Unknown State = iota

	// Bootstrapping indicates the VM is loading state and rejects
	// transactions.
	Bootstrapping

	// NormalOp indicates the VM accepts transactions and serves the API.
	NormalOp

	// Stopped indicates Shutdown was called.
	Stopped
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "Bootstrapping"
	case NormalOp:
		return "NormalOp"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
