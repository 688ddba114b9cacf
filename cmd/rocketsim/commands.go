package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"rocketsim/engine/actors"
	"rocketsim/engine/controller"
	"rocketsim/engine/library"
	"rocketsim/engine/logging"
	"rocketsim/messaging/console"
)

const shutdownGrace = 500 * time.Millisecond

func RootCommand() *cobra.Command {
	conf := viper.New()
	rootCmd := &cobra.Command{
		Use:          "rocketsim",
		Short:        "An interactive rocket launch simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := actors.InitConfig(conf); err != nil {
				return err
			}
			// make the config accessible globally
			actors.SetConfig(conf)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(cmd.Context(), conf, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("root-dir", "", "directory holding config.yaml and the mission log (default $HOME/rocketsim)")
	flags.Duration("tick-interval", 0, "pause between live launch ticks (default 1s)")
	flags.Duration("checks-duration", 0, "length of the pre-launch checks (default 2s)")
	flags.String("input", "", "line or keyboard")
	flags.Bool("color", true, "colour the output")
	flags.Bool("echo-logs", false, "echo mission log entries to the terminal")
	for key, flag := range map[string]string{
		"rootDir":        "root-dir",
		"tickInterval":   "tick-interval",
		"checksDuration": "checks-duration",
		"input":          "input",
		"color":          "color",
		"echoLogs":       "echo-logs",
	} {
		if err := conf.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			printConfig(cmd.OutOrStdout(), conf)
		},
	})
	return rootCmd
}

func printConfig(out io.Writer, conf *viper.Viper) {
	fmt.Fprintln(out, "CURRENT CONFIG")
	settings := conf.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "Key: %s; Value: %v\n", k, settings[k])
	}
}

func simulate(ctx context.Context, conf *viper.Viper, in io.Reader, out io.Writer) error {
	settings, err := actors.LoadSettings(conf)
	if err != nil {
		return err
	}
	library.SetCLILevel(settings.LogLevel)

	missionLog, err := logging.Open(settings.LogFile, settings.EchoLogs)
	if err != nil {
		return err
	}
	defer missionLog.Close()
	library.LogCLI("Mission log: "+settings.LogFile, 3)

	var term console.Console
	switch settings.Input {
	case actors.InputKeyboard:
		kb, err := console.OpenKeyboard(out, settings.Color)
		if err != nil {
			return err
		}
		defer kb.Close()
		term = kb
	default:
		term = console.NewTerminal(in, out, settings.Color)
	}

	ctl := controller.New(term, missionLog, controller.Options{
		TickInterval:   settings.TickInterval,
		ChecksDuration: settings.ChecksDuration,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run blocks on input, so an interrupt is observed here rather than inside the loop.
	done := make(chan error, 1)
	go func() {
		done <- ctl.Run(ctx)
	}()
	select {
	case err = <-done:
		if errors.Is(err, context.Canceled) {
			interrupted(missionLog, ctl)
			return nil
		}
		return err
	case <-ctx.Done():
		// Let a tick in flight finish logging before the mission log is closed.
		// Run stays blocked if it is waiting on input.
		select {
		case <-done:
		case <-time.After(shutdownGrace):
		}
		interrupted(missionLog, ctl)
		return nil
	}
}

func interrupted(log logging.Logger, ctl *controller.Controller) {
	log.Warn("Simulator interrupted", logging.Fields{"state": ctl.State()})
	library.LogCLI("Simulator interrupted", 2)
}
