package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace  *string
	config *string
}{}

// cfg holds the settings read from the file given by --config. It is the zero value when no
// file was given.
var cfg = &config{}

var rootCmd = &cobra.Command{
	Use:   "slrgen",
	Short: "Generate an SLR(1) parsing table from a grammar",
	Long: `slrgen builds the canonical LR(0) automaton of a context-free grammar, computes the
FIRST and FOLLOW sets, and merges them into SLR(1) ACTION and GOTO tables.
Conflicts are listed in a report instead of being resolved silently.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "TOML file providing default flag values")
}

func setUp(cmd *cobra.Command, args []string) error {
	if *rootFlags.config != "" {
		c, err := readConfig(*rootFlags.config)
		if err != nil {
			return err
		}
		cfg = c
	}

	level := *rootFlags.trace
	if !cmd.Flags().Changed("trace") && cfg.Trace != "" {
		level = cfg.Trace
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("slrgen").SetTraceLevel(tracing.TraceLevelFromString(level))

	return nil
}

func Execute() error {
	return rootCmd.Execute()
}
