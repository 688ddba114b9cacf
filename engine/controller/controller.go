// Package controller runs the mission: it reads commands, drives the rocket
// state forward and reports what happened.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sasha-s/go-deadlock"
	"rocketsim/engine/logging"
	"rocketsim/messaging/console"
	"rocketsim/state/rocket"
)

const (
	CommandPrompt = "Enter command (start_checks, launch, fast_forward X, or exit): "
	ExitPrompt    = "Are you sure you want to exit? (yes/no): "
)

// Mode is where the command loop is in its dialog.
type Mode int

const (
	AwaitingCommand Mode = iota
	AwaitingExitConfirmation
	Terminated
)

func (m Mode) String() string {
	switch m {
	case AwaitingCommand:
		return "AwaitingCommand"
	case AwaitingExitConfirmation:
		return "AwaitingExitConfirmation"
	default:
		return "Terminated"
	}
}

// SleepFunc suspends for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits on a timer. A zero or negative duration returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options tune the pacing of the simulation.
type Options struct {
	TickInterval   time.Duration
	ChecksDuration time.Duration
	Sleep          SleepFunc
}

// Controller owns one mission. It is driven from a single goroutine; State may
// be read from others.
type Controller struct {
	mu             *deadlock.Mutex
	state          rocket.RocketState
	checksComplete bool
	mode           Mode

	console console.Console
	log     logging.Logger
	opts    Options
}

// New returns a Controller for a rocket on the pad with checks not yet run.
func New(c console.Console, log logging.Logger, opts Options) *Controller {
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	return &Controller{
		mu:      &deadlock.Mutex{},
		state:   rocket.Initial(),
		mode:    AwaitingCommand,
		console: c,
		log:     log,
		opts:    opts,
	}
}

// State returns a snapshot of the rocket.
func (c *Controller) State() rocket.RocketState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ChecksComplete reports whether pre-launch checks have been run.
func (c *Controller) ChecksComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checksComplete
}

// Mode returns where the command loop is in its dialog.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Prompt returns the text to show before reading the next line.
func (c *Controller) Prompt() string {
	if c.Mode() == AwaitingExitConfirmation {
		return ExitPrompt
	}
	return CommandPrompt
}

// Run prompts for lines until the user confirms exit or input ends.
// Command failures are reported and never end the loop.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("Rocket Launch Simulator started")
	c.console.Display(console.Success, "Welcome to the Rocket Launch Simulator!")
	for c.Mode() != Terminated {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := c.console.ReadLine(c.Prompt())
		if errors.Is(err, io.EOF) {
			c.log.Info("Input closed, simulator exited")
			c.setMode(Terminated)
			return nil
		}
		if errors.Is(err, console.ErrLineTooLong) {
			c.Report(&Error{Kind: Unexpected, Err: err})
			continue
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		if err = c.ProcessCommand(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Report(err)
		}
	}
	return nil
}

// Report displays and logs a failed command.
func (c *Controller) Report(err error) {
	if KindOf(err) == Unexpected {
		c.console.Display(console.Danger, "An unexpected error occurred: "+err.Error())
		c.log.Error("An unexpected error occurred", logging.Fields{"error": err.Error()})
		return
	}
	c.console.Display(console.Danger, err.Error())
	c.log.Error(err.Error())
}

// ProcessCommand handles one line of input to completion.
func (c *Controller) ProcessCommand(ctx context.Context, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: Unexpected, Err: fmt.Errorf("panic while handling %q: %v", line, r)}
		}
	}()
	switch c.Mode() {
	case AwaitingExitConfirmation:
		c.confirmExit(line)
		return nil
	case Terminated:
		return &Error{Kind: Unexpected, Message: "simulator has exited"}
	}
	return c.dispatch(ctx, line)
}

func (c *Controller) setMode(m Mode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

func (c *Controller) setState(s rocket.RocketState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) setChecksComplete() {
	c.mu.Lock()
	c.checksComplete = true
	c.mu.Unlock()
}
