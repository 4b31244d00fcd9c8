package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	spec "github.com/nihei9/slrgen/spec/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the ACTION and GOTO tables of a report as a matrix",
		Example: `  slrgen show expr-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	showTable(report)
	return nil
}

func showTable(report *spec.Report) {
	sr, rr := report.ConflictCount()
	if sr+rr > 0 {
		pterm.Warning.Println(fmt.Sprintf("%v shift/reduce and %v reduce/reduce conflicts; cells marked with ! keep the adopted action", sr, rr))
	}
	pterm.DefaultTable.WithHasHeader().WithData(genTableData(report)).Render()
}

// genTableData lays out one row per state. The ACTION columns are the terminals in
// lexicographic order followed by the end marker, and the GOTO columns are the
// non-terminals in the order they were defined. Shifts are written sN, reductions rN,
// and accept acc.
func genTableData(report *spec.Report) pterm.TableData {
	var terms []*spec.Terminal
	for _, t := range report.Terminals {
		if t == nil || t.Number == report.EOFSymbol {
			continue
		}
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Name < terms[j].Name
	})
	terms = append(terms, report.Terminals[report.EOFSymbol])

	var nonTerms []*spec.NonTerminal
	for _, n := range report.NonTerminals {
		if n == nil || n.Name == report.AugmentedStartSymbol {
			continue
		}
		nonTerms = append(nonTerms, n)
	}

	termCol := map[int]int{}
	header := []string{"State"}
	for i, t := range terms {
		termCol[t.Number] = i + 1
		header = append(header, t.Name)
	}
	nonTermCol := map[int]int{}
	for i, n := range nonTerms {
		nonTermCol[n.Number] = len(terms) + i + 1
		header = append(header, n.Name)
	}

	data := pterm.TableData{header}
	for _, s := range report.States {
		row := make([]string, len(header))
		row[0] = fmt.Sprint(s.Number)
		for _, tran := range s.Shift {
			row[termCol[tran.Symbol]] = fmt.Sprintf("s%v", tran.State)
		}
		for _, r := range s.Reduce {
			for _, la := range r.LookAhead {
				row[termCol[la]] = fmt.Sprintf("r%v", r.Production)
			}
		}
		if s.Accept {
			row[termCol[report.EOFSymbol]] = "acc"
		}
		for _, tran := range s.GoTo {
			row[nonTermCol[tran.Symbol]] = fmt.Sprint(tran.State)
		}
		for _, c := range s.SRConflict {
			markConflict(row, termCol[c.Symbol])
		}
		for _, c := range s.RRConflict {
			markConflict(row, termCol[c.Symbol])
		}
		data = append(data, row)
	}

	return data
}

func markConflict(row []string, col int) {
	if strings.HasSuffix(row[col], "!") {
		return
	}
	row[col] += "!"
}
