package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"rocketsim/engine/logging"
	"rocketsim/messaging/console"
)

type displayed struct {
	tone console.Tone
	line string
}

// scriptConsole feeds queued lines and records everything displayed.
type scriptConsole struct {
	mu      sync.Mutex
	input   []string
	prompts []string
	out     []displayed
}

func (s *scriptConsole) ReadLine(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.input) == 0 {
		return "", io.EOF
	}
	line := s.input[0]
	s.input = s.input[1:]
	return line, nil
}

func (s *scriptConsole) Display(tone console.Tone, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, displayed{tone: tone, line: line})
}

func (s *scriptConsole) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.out))
	for _, d := range s.out {
		out = append(out, d.line)
	}
	return out
}

type entry struct {
	level  string
	msg    string
	fields logging.Fields
}

type recordLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (r *recordLogger) add(level, msg string, fields []logging.Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := entry{level: level, msg: msg}
	if len(fields) > 0 {
		e.fields = fields[0]
	}
	r.entries = append(r.entries, e)
}

func (r *recordLogger) Info(msg string, fields ...logging.Fields)  { r.add("info", msg, fields) }
func (r *recordLogger) Warn(msg string, fields ...logging.Fields)  { r.add("warn", msg, fields) }
func (r *recordLogger) Error(msg string, fields ...logging.Fields) { r.add("error", msg, fields) }

func (r *recordLogger) messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func (r *recordLogger) withMessage(msg string) []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entry
	for _, e := range r.entries {
		if e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}

// recordSleeper never blocks, it only remembers what was asked for.
type recordSleeper struct {
	mu    sync.Mutex
	naps  []time.Duration
	onNap func(n int)
}

func (r *recordSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.naps = append(r.naps, d)
	n := len(r.naps)
	hook := r.onNap
	r.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return ctx.Err()
}

func (r *recordSleeper) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.naps)
}

type harness struct {
	ctl     *Controller
	console *scriptConsole
	log     *recordLogger
	sleeper *recordSleeper
}

func newHarness(input ...string) *harness {
	h := &harness{
		console: &scriptConsole{input: input},
		log:     &recordLogger{},
		sleeper: &recordSleeper{},
	}
	h.ctl = New(h.console, h.log, Options{
		TickInterval:   time.Second,
		ChecksDuration: 2 * time.Second,
		Sleep:          h.sleeper.Sleep,
	})
	return h
}
