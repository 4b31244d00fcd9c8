package grammar

import (
	"github.com/npillmayer/schuko/tracing"

	verr "github.com/nihei9/slrgen/error"
	"github.com/nihei9/slrgen/grammar/symbol"
	"github.com/nihei9/slrgen/spec/grammar/parser"
)

func tracer() tracing.Trace {
	return tracing.Select("slrgen.grammar")
}

// augmentedStartSuffix is appended to the name of the start symbol to name the synthetic
// start symbol of the augmented grammar.
const augmentedStartSuffix = "'"

// Grammar is an augmented grammar whose symbols are classified. It is never modified after
// GrammarBuilder.Build returns it.
type Grammar struct {
	name                 string
	productionSet        *productionSet
	augmentedStartSymbol symbol.Symbol
	startSymbol          symbol.Symbol
	symbolTable          *symbol.SymbolTableReader
}

func (g *Grammar) Name() string {
	return g.name
}

// StartSymbol returns the name of the first left-hand side of the source.
func (g *Grammar) StartSymbol() string {
	text, _ := g.symbolTable.ToText(g.startSymbol)
	return text
}

// AugmentedStartSymbol returns the name of the synthetic start symbol.
func (g *Grammar) AugmentedStartSymbol() string {
	text, _ := g.symbolTable.ToText(g.augmentedStartSymbol)
	return text
}

// ProductionCount returns the number of productions including the augmented start production.
func (g *Grammar) ProductionCount() int {
	return g.productionSet.count()
}

type GrammarBuilder struct {
	AST *parser.RootNode

	// Name names the grammar in the compiled output.
	Name string

	// Terminals is the accepted terminal vocabulary. When it is nil, every symbol that does
	// not appear on a left-hand side is a terminal. Otherwise a symbol in neither set is an
	// undefined symbol.
	Terminals []string

	errs verr.SpecErrors
}

// Build classifies the symbols of the AST and derives the augmented grammar. All semantic
// errors found are returned together as a verr.SpecErrors.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			&verr.SpecError{
				Cause: semErrNoProduction,
			},
		}
	}

	b.checkReservedSymbols(b.AST)
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	startText := b.AST.Productions[0].LHS
	augStartSym, err := b.augmentedStartSymbol(w, startText)
	if err != nil {
		return nil, err
	}
	if augStartSym.IsNil() {
		return nil, b.errs
	}

	for _, prod := range b.AST.Productions {
		_, err := w.RegisterNonTerminalSymbol(prod.LHS)
		if err != nil {
			return nil, err
		}
	}

	var vocabulary map[string]struct{}
	if b.Terminals != nil {
		vocabulary = map[string]struct{}{}
		for _, t := range b.Terminals {
			vocabulary[t] = struct{}{}
		}
	}
	r := symTab.Reader()
	for _, prod := range b.AST.Productions {
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				if sym, ok := r.ToSymbol(elem.ID); ok && sym.IsNonTerminal() {
					continue
				}
				if vocabulary != nil {
					if _, ok := vocabulary[elem.ID]; !ok {
						b.errs = append(b.errs, &verr.SpecError{
							Cause:  semErrUndefinedSym,
							Detail: elem.ID,
							Row:    elem.Pos.Row,
							Col:    elem.Pos.Col,
						})
						continue
					}
				}
				_, err := w.RegisterTerminalSymbol(elem.ID)
				if err != nil {
					return nil, err
				}
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	prods := newProductionSet()
	for _, prod := range b.AST.Productions {
		lhsSym, _ := r.ToSymbol(prod.LHS)
		for _, alt := range prod.RHS {
			rhsSyms := make([]symbol.Symbol, len(alt.Elements))
			for i, elem := range alt.Elements {
				rhsSyms[i], _ = r.ToSymbol(elem.ID)
			}
			p, err := newProduction(lhsSym, rhsSyms)
			if err != nil {
				return nil, err
			}
			if !prods.append(p) {
				tracer().Infof("skipping a duplicate alternative of %v at line %v", prod.LHS, alt.Pos.Row)
			}
		}
	}

	startSym, _ := r.ToSymbol(startText)
	err = augment(prods, augStartSym, startSym)
	if err != nil {
		return nil, err
	}

	return &Grammar{
		name:                 b.Name,
		productionSet:        prods,
		augmentedStartSymbol: augStartSym,
		startSymbol:          startSym,
		symbolTable:          r,
	}, nil
}

func (b *GrammarBuilder) checkReservedSymbols(root *parser.RootNode) {
	for _, prod := range root.Productions {
		switch prod.LHS {
		case symbol.TextEOF:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrEOFSym,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
		case symbol.TextEpsilon:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrEpsilonLHS,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
		}
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				if elem.ID != symbol.TextEOF {
					continue
				}
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrEOFSym,
					Detail: elem.ID,
					Row:    elem.Pos.Row,
					Col:    elem.Pos.Col,
				})
			}
		}
	}
}

// augmentedStartSymbol registers the synthetic start symbol. It returns symbol.SymbolNil
// after recording an error when a user symbol already has its name.
func (b *GrammarBuilder) augmentedStartSymbol(w *symbol.SymbolTableWriter, startText string) (symbol.Symbol, error) {
	text := startText + augmentedStartSuffix
	for _, prod := range b.AST.Productions {
		if prod.LHS == text {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrAugStartSym,
				Detail: text,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
		}
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				if elem.ID != text {
					continue
				}
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrAugStartSym,
					Detail: text,
					Row:    elem.Pos.Row,
					Col:    elem.Pos.Col,
				})
			}
		}
	}
	if len(b.errs) > 0 {
		return symbol.SymbolNil, nil
	}

	return w.RegisterStartSymbol(text)
}

// augment adds the production S' → S.
func augment(prods *productionSet, augStartSym symbol.Symbol, startSym symbol.Symbol) error {
	p, err := newProduction(augStartSym, []symbol.Symbol{startSym})
	if err != nil {
		return err
	}
	prods.append(p)
	return nil
}
