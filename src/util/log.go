package util

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ----------------------------
// ----- globals -----
// ----------------------------

// Log is the package-level logger every phase writes to, replacing bare
// fmt.Println calls scattered across phase boundaries with a single
// configured structured logger, the same instinct as vslc's optimise and
// validate passes (src/ir/optimise.go, src/ir/validate.go) routing their
// own diagnostics through one shared sink.
var Log = logrus.New()

// ---------------------
// ----- functions -----
// ---------------------

// InitLogging configures the package logger's level from Options.Verbose:
// Debug when -vb was passed, Warn otherwise, so routine phase timing is
// silent by default and only surfaces under -vb.
func InitLogging(opt Options) {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if opt.Verbose {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.WarnLevel)
	}
}

// Phase logs entry into a compiler phase at debug level and returns a
// function that logs its completion with elapsed time, for a one-line
// `defer util.Phase("ir-build")()` at the top of a phase function.
func Phase(name string) func() {
	start := time.Now()
	Log.Debugf("phase %s: start", name)
	return func() {
		Log.Debugf("phase %s: done in %s", name, time.Since(start))
	}
}
