package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	verr "github.com/nihei9/slrgen/error"
	"github.com/nihei9/slrgen/grammar"
	spec "github.com/nihei9/slrgen/spec/grammar"
	"github.com/nihei9/slrgen/spec/grammar/parser"
)

var compileFlags = struct {
	output    *string
	strict    *bool
	compress  *bool
	terminals *[]string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into an SLR(1) parsing table",
		Example: `  slrgen compile expr.grammar -o expr.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.strict = cmd.Flags().Bool("strict", false, "fail when the grammar has conflicts")
	compileFlags.compress = cmd.Flags().Bool("compress", false, "emit compressed ACTION and GOTO tables")
	compileFlags.terminals = cmd.Flags().StringSlice("terminals", nil, "accepted terminal symbols; other symbols must be non-terminals")
	rootCmd.AddCommand(cmd)
}

// compileSettings merges the flags of cmd with the config file.
type compileSettings struct {
	strict    bool
	compress  bool
	terminals []string
}

func newCompileSettings(cmd *cobra.Command, c *config) *compileSettings {
	s := &compileSettings{
		strict:    c.Strict,
		compress:  c.Compress,
		terminals: c.Terminals,
	}
	if cmd.Flags().Changed("strict") {
		s.strict = *compileFlags.strict
	}
	if cmd.Flags().Changed("compress") {
		s.compress = *compileFlags.compress
	}
	if cmd.Flags().Changed("terminals") {
		s.terminals = *compileFlags.terminals
	}
	return s
}

func (s *compileSettings) options() []grammar.CompileOption {
	var opts []grammar.CompileOption
	if s.strict {
		opts = append(opts, grammar.RejectConflicts())
	}
	if s.compress {
		opts = append(opts, grammar.CompressTables())
	}
	return opts
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	defer func() {
		var specErrs verr.SpecErrors
		if !errors.As(retErr, &specErrs) {
			return
		}
		for _, err := range specErrs {
			err.FilePath = grmPath
			if grmPath != "" {
				err.SourceName = grmPath
			} else {
				err.SourceName = "stdin"
			}
		}
	}()

	var src io.Reader = os.Stdin
	if grmPath != "" {
		f, err := os.Open(grmPath)
		if err != nil {
			return fmt.Errorf("Cannot open the grammar file %s: %w", grmPath, err)
		}
		defer f.Close()
		src = f
	}

	settings := newCompileSettings(cmd, cfg)
	cgram, report, err := compileGrammar(src, grammarName(grmPath), settings)
	if report != nil {
		sr, rr := report.ConflictCount()
		if sr+rr > 0 {
			fmt.Fprintf(os.Stdout, "%v conflicts (%v shift/reduce, %v reduce/reduce)\n", sr+rr, sr, rr)
		}
	}
	if err != nil {
		var cErr *grammar.ConflictError
		if errors.As(err, &cErr) && report != nil {
			if wErr := writeReportOnly(report, *compileFlags.output); wErr != nil {
				return fmt.Errorf("Cannot write the report: %w", wErr)
			}
		}
		return err
	}

	err = writeCompiledGrammarAndReport(cgram, report, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write an output files: %w", err)
	}

	return nil
}

// compileGrammar parses and compiles a grammar source. Malformed rules are printed as warnings
// and skipped.
func compileGrammar(src io.Reader, name string, settings *compileSettings) (*spec.CompiledGrammar, *spec.Report, error) {
	ast, err := parser.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	for _, mErr := range ast.MalformedRules {
		pterm.Warning.Println(mErr.Error())
	}

	b := grammar.GrammarBuilder{
		AST:       ast,
		Name:      name,
		Terminals: settings.terminals,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, nil, err
	}

	return grammar.Compile(gram, settings.options()...)
}

// grammarName derives a grammar name from the file name without its extension.
func grammarName(path string) string {
	if path == "" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeCompiledGrammarAndReport writes a compiled grammar and a report to a files located at a specified path.
// This function selects one of the following output methods depending on how the path is specified.
//
//  1. When the path is a directory path, this function writes the compiled grammar and the report to
//     <path>/<grammar-name>.json and <path>/<grammar-name>-report.json files, respectively.
//  2. When the path is a file path or a non-existent path, this function assumes that the path represents a file
//     path for the compiled grammar. Then it also writes the report in the same directory as the compiled grammar.
//  3. When the path is an empty string, this function writes the compiled grammar to the stdout and writes
//     the report to a file named <current-directory>/<grammar-name>-report.json.
func writeCompiledGrammarAndReport(cgram *spec.CompiledGrammar, report *spec.Report, path string) error {
	cgramPath, reportPath, err := makeOutputFilePaths(cgram.Name, path)
	if err != nil {
		return err
	}

	if cgramPath != "" {
		err = writeJSONFile(cgramPath, cgram)
	} else {
		err = writeJSON(os.Stdout, cgram)
	}
	if err != nil {
		return err
	}

	return writeJSONFile(reportPath, report)
}

func writeReportOnly(report *spec.Report, path string) error {
	_, reportPath, err := makeOutputFilePaths(report.Name, path)
	if err != nil {
		return err
	}
	return writeJSONFile(reportPath, report)
}

func writeJSONFile(path string, v interface{}) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeJSON(f, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}

func makeOutputFilePaths(gramName string, path string) (string, string, error) {
	reportFileName := gramName + "-report.json"

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", err
		}
		return "", filepath.Join(wd, reportFileName), nil
	}

	fi, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", "", err
	}
	if os.IsNotExist(err) || !fi.IsDir() {
		dir, _ := filepath.Split(path)
		return path, filepath.Join(dir, reportFileName), nil
	}

	return filepath.Join(path, gramName+".json"), filepath.Join(path, reportFileName), nil
}
