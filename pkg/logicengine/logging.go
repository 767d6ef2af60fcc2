package logicengine

import "go.uber.org/zap"

// newNopLogger returns a logger that discards everything, the default
// for an Engine so library use carries no forced I/O (SPEC_FULL.md §4.7's
// ambient-logging design: observational only, never on the critical
// control-flow path).
func newNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
