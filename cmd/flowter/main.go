package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowter/internal/cli"
)

const (
	debugEnv = "FLOWTER_DEBUG"

	exitError       = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging (or set "+debugEnv+")")

	// Raise the level before the root pre-run so config loading is logged too.
	root.PersistentPreRunE = before(root.PersistentPreRunE, func(*cobra.Command, []string) error {
		if *verbose || os.Getenv(debugEnv) != "" {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	})

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil:
		return exitInterrupted
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", root.Name(), err)
		return exitError
	}
}

// before runs hook ahead of next, which may be nil.
func before(next, hook func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := hook(cmd, args); err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}
}
