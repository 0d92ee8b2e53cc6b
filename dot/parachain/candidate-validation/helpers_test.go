// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"github.com/RainFallsSilent/polkadot/internal/log"
)

// discardLogger returns a Logger at the process-wide level (info unless changed), so
// tests don't print the debug logging the validators emit on every request.
func discardLogger() *log.Logger {
	return log.NewFromGlobal(log.AddContext("pkg", "candidate-validation-test"))
}
