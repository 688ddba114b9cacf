package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"rocketsim/engine/logging"
	"rocketsim/messaging/console"
	"rocketsim/state/rocket"
)

const (
	CmdStartChecks = "start_checks"
	CmdLaunch      = "launch"
	CmdFastForward = "fast_forward"
	CmdExit        = "exit"
)

var affirmatives = []string{"yes", "y"}

func (c *Controller) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	command := ""
	if len(fields) > 0 {
		command = fields[0]
	}
	switch command {
	case CmdStartChecks:
		return c.startChecks(ctx)
	case CmdLaunch:
		return c.launch(ctx)
	case CmdFastForward:
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}
		return c.fastForward(arg)
	case CmdExit:
		c.setMode(AwaitingExitConfirmation)
		return nil
	default:
		return invalidCommand(command)
	}
}

func (c *Controller) startChecks(ctx context.Context) error {
	if stage := c.State().Stage; stage != rocket.PreLaunch {
		return invalidStage(stage, rocket.PreLaunch)
	}
	c.console.Display(console.Notice, "Performing pre-launch checks...")
	c.log.Info("Performing pre-launch checks")

	if err := c.opts.Sleep(ctx, c.opts.ChecksDuration); err != nil {
		return fmt.Errorf("pre-launch checks interrupted: %w", err)
	}

	c.console.Display(console.Success, "All systems are 'Go' for launch.")
	c.log.Info("Pre-launch checks completed successfully")
	c.setChecksComplete()
	return nil
}

func (c *Controller) launch(ctx context.Context) error {
	s := c.State()
	if s.Stage != rocket.PreLaunch {
		return invalidStage(s.Stage, rocket.PreLaunch)
	}
	if !c.ChecksComplete() {
		return preconditionNotMet("Cannot launch. Pre-launch checks have not been completed.")
	}

	c.console.Display(console.Caution, "Initiating launch sequence...")
	c.log.Info("Launch sequence initiated")
	s = rocket.Ignite(s)
	c.setState(s)

	for !s.IsTerminal() {
		if err := c.opts.Sleep(ctx, c.opts.TickInterval); err != nil {
			return fmt.Errorf("launch interrupted: %w", err)
		}
		s = c.tick(s, true)
		c.displayState(s)
	}
	return nil
}

// fastForward replays the mission from the pad for up to n ticks without pacing.
// Any mission in progress is discarded and checks are treated as done.
func (c *Controller) fastForward(arg string) error {
	seconds, err := strconv.Atoi(arg)
	if err != nil || seconds <= 0 {
		return preconditionNotMet("Invalid fast forward value. Please provide a positive number of seconds.")
	}

	c.console.Display(console.Caution, fmt.Sprintf("Fast forwarding %d seconds...", seconds))
	c.log.Info(fmt.Sprintf("Fast forwarding %d seconds", seconds))

	s := rocket.Initial()
	c.setState(s)
	if !c.ChecksComplete() {
		c.console.Display(console.Notice, "Performing pre-launch checks before fast forward...")
		c.setChecksComplete()
	}

	s = rocket.Ignite(s)
	c.setState(s)
	for i := 0; i < seconds && !s.IsTerminal(); i++ {
		s = c.tick(s, false)
	}
	c.displayState(s)
	return nil
}

// tick advances the rocket once and announces any stage change. Announcements
// are always logged but only displayed when show is set.
func (c *Controller) tick(prev rocket.RocketState, show bool) rocket.RocketState {
	next := rocket.Advance(prev)
	c.setState(next)
	a, ok := rocket.Transition(prev, next)
	if !ok {
		return next
	}
	if a.Warning {
		c.log.Warn(a.Log)
	} else {
		c.log.Info(a.Log)
	}
	if show {
		tone := console.Highlight
		switch a.Stage {
		case rocket.Failed:
			tone = console.Danger
		case rocket.Orbit:
			tone = console.Success
		}
		c.console.Display(tone, a.Display)
	}
	return next
}

func (c *Controller) displayState(s rocket.RocketState) {
	c.console.Display(console.Plain, s.String())
	c.log.Info("State update", logging.Fields{"state": s})
}

func (c *Controller) confirmExit(answer string) {
	if slices.Contains(affirmatives, strings.ToLower(strings.TrimSpace(answer))) {
		c.console.Display(console.Caution, "Exiting simulator. Goodbye!")
		c.log.Info("Simulator exited")
		c.setMode(Terminated)
		return
	}
	c.console.Display(console.Success, "Continuing simulator...")
	c.setMode(AwaitingCommand)
}
