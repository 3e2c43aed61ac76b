package alloc

// logging functions

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

const pkgName = "memkit/alloc"

// internal constants
const (
	pDBG   = "DBG: " + pkgName + ": "
	pWARN  = "WARNING: " + pkgName + ": "
	pERR   = "ERROR: " + pkgName + ": "
	pPANIC = pkgName + ": "
)

// Log is the package logger. Debug output is disabled by default;
// raise the level to slog.LDBG to trace alloc/free/coalesce decisions.
var Log slog.Log = slog.New(slog.LERR, slog.LbackTraceS|slog.LlocInfoS,
	slog.LStdErr)

// WARNon is a shorthand for checking if logging at LWARN level is enabled.
func WARNon() bool {
	return Log.WARNon()
}

// WARN is a shorthand for logging a warning message.
func WARN(f string, a ...interface{}) {
	Log.LLog(slog.LWARN, 1, pWARN, f, a...)
}

// ERRon is a shorthand for checking if logging at LERR level is enabled.
func ERRon() bool {
	return Log.ERRon()
}

// ERR is a shorthand for logging an error message.
func ERR(f string, a ...interface{}) {
	Log.LLog(slog.LERR, 1, pERR, f, a...)
}

// PANIC is a shorthand for log + panic. Used for heap corruption,
// which has no recovery path.
func PANIC(f string, a ...interface{}) {
	s := fmt.Sprintf(pPANIC+f, a...)
	Log.LLog(slog.LBUG, 1, "", "%s", s)
	panic(s)
}
