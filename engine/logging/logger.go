// Package logging is the mission log: leveled messages with structured context,
// persisted as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"rocketsim/engine/library"
)

// Fields is open key/value context attached to a log entry.
type Fields map[string]any

// Logger is what the mission controller needs from a log.
type Logger interface {
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(msg string, fields ...Fields)
}

// MissionLog writes entries through zerolog and optionally echoes them to the terminal.
type MissionLog struct {
	mu     sync.Mutex
	log    zerolog.Logger
	closer io.Closer
	echo   bool
}

// New returns a MissionLog writing to w.
func New(w io.Writer, echo bool) *MissionLog {
	return &MissionLog{
		log:  zerolog.New(w).With().Timestamp().Logger(),
		echo: echo,
	}
}

// Open appends to the log file at path, creating it if necessary.
func Open(path string, echo bool) (*MissionLog, error) {
	if err := library.Touch(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open mission log: %w", err)
	}
	l := New(f, echo)
	l.closer = f
	return l, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

func (l *MissionLog) Info(msg string, fields ...Fields) {
	l.write(zerolog.InfoLevel, msg, fields)
}

func (l *MissionLog) Warn(msg string, fields ...Fields) {
	l.write(zerolog.WarnLevel, msg, fields)
}

func (l *MissionLog) Error(msg string, fields ...Fields) {
	l.write(zerolog.ErrorLevel, msg, fields)
}

// Close releases the underlying file, if any.
func (l *MissionLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *MissionLog) write(level zerolog.Level, msg string, fields []Fields) {
	merged := merge(fields)
	l.mu.Lock()
	ev := l.log.WithLevel(level)
	if len(merged) > 0 {
		ev = ev.Fields(map[string]interface{}(merged))
	}
	ev.Msg(msg)
	l.mu.Unlock()

	if l.echo {
		library.LogCLI(echoLine(msg, merged), cliLevel(level))
	}
}

func merge(fields []Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return fields[0]
	}
	out := Fields{}
	for _, f := range fields {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}

func cliLevel(level zerolog.Level) int {
	switch level {
	case zerolog.ErrorLevel:
		return 1
	case zerolog.WarnLevel:
		return 2
	default:
		return 4
	}
}

func echoLine(msg string, fields Fields) string {
	if len(fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
