package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Enter rules interactively and show the resulting table",
		Long: `prompt reads one rule per line, such as "E -> E + T | T".
An empty line ends the input; the grammar is then compiled and its table is shown.`,
		Args: cobra.NoArgs,
		RunE: runPrompt,
	}
	rootCmd.AddCommand(cmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("rule> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println("Enter one rule per line. An empty line compiles the grammar.")
	src, err := readRules(rl)
	if err != nil {
		return err
	}
	if src == "" {
		return nil
	}

	_, report, err := compileGrammar(strings.NewReader(src), "prompt", newCompileSettings(cmd, cfg))
	if report != nil {
		showTable(report)
	}
	return err
}

type lineReader interface {
	Readline() (string, error)
}

// readRules collects lines until an empty line or the end of input. Interrupting the prompt
// discards what was entered.
func readRules(r lineReader) (string, error) {
	var b strings.Builder
	for {
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, readline.ErrInterrupt) {
				return "", nil
			}
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
