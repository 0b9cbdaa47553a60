// File: debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Diagnostic logging. Release builds stay silent; SetDebug(true) routes
// failure-path diagnostics to the standard logger.

package msgqueue

import "log"

var debugEnabled bool

// SetDebug enables or disables diagnostic logging for this process.
func SetDebug(enabled bool) { debugEnabled = enabled }

func debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf("msgqueue: "+format, args...)
	}
}
