package library

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/mborders/logmatic"
)

var (
	cliLevel = 4
	cliMu    sync.Mutex
)

// SetCLILevel sets the highest level LogCLI prints. Levels outside 0..5 are clamped.
func SetCLILevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	cliMu.Lock()
	cliLevel = level
	cliMu.Unlock()
}

// CLILevel returns the current LogCLI verbosity.
func CLILevel() int {
	cliMu.Lock()
	defer cliMu.Unlock()
	return cliLevel
}

// Logs to the terminal. Level options are: 0 fatal error (stack dump), 1 serious error (stack dump), 2 warning, 3 debug, 4 info, 5 trace (stack dump).
// Messages above the level set with SetCLILevel are dropped.
func LogCLI(message interface{}, level int) {
	if level > CLILevel() {
		return
	}
	l := logmatic.NewLogger()
	l.SetLevel(logmatic.TRACE)
	l.ExitOnFatal = false
	message = fmt.Sprint(message)
	switch level {
	case 5:
		debug.PrintStack()
		l.Trace("%v", message)
	case 4:
		l.Info("%v", message)
	case 3:
		l.Debug("%v", message)
	case 2:
		l.Warn("%v", message)
	case 1:
		debug.PrintStack()
		l.Error("%v", message)
	case 0:
		debug.PrintStack()
		l.Error("%v", message)
	}
}
