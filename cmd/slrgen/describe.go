package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/nihei9/slrgen/grammar"
	spec "github.com/nihei9/slrgen/spec/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Print a report in a readable format",
		Example: `  slrgen describe expr-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	return writeDescription(os.Stdout, report)
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

const descTemplate = `# Conflicts

{{ printConflictSummary . }}

# Terminals

{{ range slice .Terminals 1 -}}
{{ printTerminal . }}
{{ end }}
# Non-terminals

{{ range slice .NonTerminals 1 -}}
{{ printNonTerminal . }}
{{ end }}
# Productions

{{ range slice .Productions 1 -}}
{{ printProduction . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ printItems . }}

{{ if .Accept -}}
accept      on {{ eof }}
{{ end -}}
{{ range .Shift -}}
{{ printShift . }}
{{ end -}}
{{ range .Reduce -}}
{{ printReduce . }}
{{ end -}}
{{ range .GoTo -}}
{{ printGoTo . }}
{{ end }}
{{ range .SRConflict -}}
{{ printSRConflict . }}
{{ end -}}
{{ range .RRConflict -}}
{{ printRRConflict . }}
{{ end -}}
{{ end }}`

func writeDescription(w io.Writer, report *spec.Report) error {
	termName := func(sym int) string {
		return report.Terminals[sym].Name
	}

	nonTermName := func(sym int) string {
		return report.NonTerminals[sym].Name
	}

	termNames := func(syms []int) string {
		names := make([]string, len(syms))
		for i, sym := range syms {
			names[i] = termName(sym)
		}
		return strings.Join(names, ", ")
	}

	printItem := func(item *spec.Item) string {
		prod := report.Productions[item.Production]

		var b strings.Builder
		fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
		for i, e := range prod.RHS {
			if i == item.Dot {
				fmt.Fprintf(&b, " ・")
			}
			fmt.Fprintf(&b, " %v", report.SymbolName(e))
		}
		if item.Dot >= len(prod.RHS) {
			fmt.Fprintf(&b, " ・")
		}
		return fmt.Sprintf("%4v %v", prod.Number, b.String())
	}

	fns := template.FuncMap{
		"eof": func() string {
			return termName(report.EOFSymbol)
		},
		"printConflictSummary": func(report *spec.Report) string {
			sr, rr := report.ConflictCount()
			switch count := sr + rr; {
			case count == 1:
				return "1 conflict was detected."
			case count > 1:
				return fmt.Sprintf("%v conflicts were detected.", count)
			}
			return "No conflict was detected."
		},
		"printTerminal": func(term *spec.Terminal) string {
			return fmt.Sprintf("%4v %v", term.Number, term.Name)
		},
		"printNonTerminal": func(nonTerm *spec.NonTerminal) string {
			first := termNames(nonTerm.First)
			if nonTerm.FirstContainsEmpty {
				if first != "" {
					first += ", "
				}
				first += "ε"
			}
			return fmt.Sprintf("%4v %v\n     FIRST:  {%v}\n     FOLLOW: {%v}", nonTerm.Number, nonTerm.Name, first, termNames(nonTerm.Follow))
		},
		"printProduction": func(prod *spec.Production) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%v →", nonTermName(prod.LHS))
			if len(prod.RHS) > 0 {
				for _, e := range prod.RHS {
					fmt.Fprintf(&b, " %v", report.SymbolName(e))
				}
			} else {
				fmt.Fprintf(&b, " ε")
			}

			return fmt.Sprintf("%4v %v", prod.Number, b.String())
		},
		// Kernel items are marked with *. The remaining items were added by the closure.
		"printItems": func(state *spec.State) string {
			kernel := map[spec.Item]struct{}{}
			for _, item := range state.Kernel {
				kernel[*item] = struct{}{}
			}

			lines := make([]string, len(state.Items))
			for i, item := range state.Items {
				mark := " "
				if _, ok := kernel[*item]; ok {
					mark = "*"
				}
				lines[i] = mark + printItem(item)
			}
			return strings.Join(lines, "\n")
		},
		"printShift": func(tran *spec.Transition) string {
			return fmt.Sprintf("shift  %4v on %v", tran.State, termName(tran.Symbol))
		},
		"printReduce": func(reduce *spec.Reduce) string {
			return fmt.Sprintf("reduce %4v on %v", reduce.Production, termNames(reduce.LookAhead))
		},
		"printGoTo": func(tran *spec.Transition) string {
			return fmt.Sprintf("goto   %4v on %v", tran.State, nonTermName(tran.Symbol))
		},
		"printSRConflict": func(sr *spec.SRConflict) string {
			var adopted string
			switch {
			case sr.AdoptedState != nil:
				adopted = fmt.Sprintf("shift %v", *sr.AdoptedState)
			case sr.AdoptedProduction != nil:
				adopted = fmt.Sprintf("reduce %v", *sr.AdoptedProduction)
			}
			return fmt.Sprintf("shift/reduce conflict (shift %v, reduce %v) on %v: %v adopted", sr.State, sr.Production, termName(sr.Symbol), adopted)
		},
		"printRRConflict": func(rr *spec.RRConflict) string {
			how := ""
			if rr.ResolvedBy == grammar.ResolvedByProdOrder.Int() {
				how = " (the production defined earlier)"
			}
			return fmt.Sprintf("reduce/reduce conflict (%v, %v) on %v: reduce %v adopted%v", rr.Production1, rr.Production2, termName(rr.Symbol), rr.AdoptedProduction, how)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(descTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, report)
}
