package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/plotgen"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	out, errOut io.Writer

	configFile string
	verbose    bool
	log        *slog.Logger
	settings   settings
}

// newRootCmd builds the command tree writing to out and errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "plotgen",
		Short: "Generate procedural vector artwork as paths",
		Long: `plotgen evaluates one of the built-in algorithms for a seed, a noise
configuration and a canvas, and prints the resulting paths as JSON.

Settings come from plotgen.yaml (current directory or --config), PLOTGEN_*
environment variables and flags, in increasing precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Version:           plotgen.Version,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./plotgen.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.listCmd(),
		a.formulaCmd(),
		a.generateCmd(),
		a.batchCmd(),
	)
	return root
}

// setup installs the logger and loads settings before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	plotgen.SetLogger(a.log)

	s, err := loadSettings(a.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.settings = s
	return nil
}

// parseSeeds parses a comma separated list of unsigned seeds.
func parseSeeds(list string) ([]uint64, error) {
	var seeds []uint64
	for part := range strings.SplitSeq(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, userErrorf("invalid seed %q", part)
		}
		seeds = append(seeds, s)
	}
	if len(seeds) == 0 {
		return nil, userErrorf("no seeds given")
	}
	return seeds, nil
}
