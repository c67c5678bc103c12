// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/log"

	"github.com/luxfi/fracvm/config"
	"github.com/luxfi/fracvm/utils/timer/mockable"
)

// Backend is the process-wide context shared by every transaction. None of
// it is mutated by execution.
type Backend struct {
	Config *config.Config
	Clk    *mockable.Clock
	Log    log.Logger
}
