// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"os"

	"github.com/saferwall/blotter/log"
)

// logger is used at migration and serialization boundaries only; nothing
// in this package changes behavior based on a log call, so a caller that
// never touches SetLogger still gets fully correct decode/encode/sandbox
// behavior, just without diagnostics.
var logger = log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelError)))

// SetLogger replaces the package-wide diagnostic logger used around
// Migrate and FromBlotterFile. The default logs only at error level to
// os.Stderr.
func SetLogger(l log.Logger) {
	logger = log.NewHelper(l)
}
