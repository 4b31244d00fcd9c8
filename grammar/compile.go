package grammar

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/nihei9/slrgen/compressor"
	"github.com/nihei9/slrgen/grammar/symbol"
	spec "github.com/nihei9/slrgen/spec/grammar"
)

type compileConfig struct {
	rejectConflicts bool
	compressTables  bool
}

type CompileOption func(config *compileConfig)

// RejectConflicts makes Compile fail with a *ConflictError when the grammar is not SLR(1).
// By default the table is built anyway and the conflicts are listed in the report.
func RejectConflicts() CompileOption {
	return func(config *compileConfig) {
		config.rejectConflicts = true
	}
}

// CompressTables makes Compile emit the ACTION and GOTO tables in compressed form.
func CompressTables() CompileOption {
	return func(config *compileConfig) {
		config.compressTables = true
	}
}

// ConflictError reports a grammar that is not SLR(1). The report returned along with it lists
// every conflict.
type ConflictError struct {
	ShiftReduce  int
	ReduceReduce int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the grammar is not SLR(1): %v shift/reduce conflicts and %v reduce/reduce conflicts", e.ShiftReduce, e.ReduceReduce)
}

// Compile builds the SLR(1) parsing table of gram. Every call works on its own FIRST, FOLLOW,
// and automaton, so concurrent calls on one Grammar are safe.
func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	terms := gram.symbolTable.TerminalTexts()
	nonTerms, err := gram.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	firstSet, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, nil, err
	}

	followSet, err := genFollowSet(gram.productionSet, firstSet)
	if err != nil {
		return nil, nil, err
	}

	lr0, err := genLR0Automaton(gram.productionSet, gram.augmentedStartSymbol)
	if err != nil {
		return nil, nil, err
	}

	slr1, err := genSLR1Automaton(lr0, followSet)
	if err != nil {
		return nil, nil, err
	}

	b := &lrTableBuilder{
		automaton:    slr1.lr0Automaton,
		termCount:    len(terms),
		nonTermCount: len(nonTerms),
	}
	tab, err := b.build()
	if err != nil {
		return nil, nil, err
	}

	report, err := genReport(gram, slr1.lr0Automaton, tab, b.conflicts, firstSet, followSet)
	if err != nil {
		return nil, nil, err
	}

	tracer().Infof("%v: %v productions, %v states", gram.name, gram.productionSet.count(), tab.stateCount)
	if len(b.conflicts) > 0 {
		sr, rr := report.ConflictCount()
		tracer().Infof("%v: %v shift/reduce and %v reduce/reduce conflicts", gram.name, sr, rr)
		if config.rejectConflicts {
			return nil, report, &ConflictError{
				ShiftReduce:  sr,
				ReduceReduce: rr,
			}
		}
	}

	action := make([]int, len(tab.actionTable))
	for i, e := range tab.actionTable {
		action[i] = int(e)
	}
	goTo := make([]int, len(tab.goToTable))
	for i, e := range tab.goToTable {
		goTo[i] = int(e)
	}

	lhsSyms := make([]int, gram.productionSet.count()+1)
	altSymCounts := make([]int, gram.productionSet.count()+1)
	for _, p := range gram.productionSet.getAllProductions() {
		lhsSyms[p.num] = p.lhs.Num().Int()
		altSymCounts[p.num] = p.rhsLen
	}

	ptab := &spec.ParsingTable{
		Action:                  action,
		GoTo:                    goTo,
		StateCount:              tab.stateCount,
		InitialState:            tab.InitialState.Int(),
		StartProduction:         productionNumStart.Int(),
		LHSSymbols:              lhsSyms,
		AlternativeSymbolCounts: altSymCounts,
		Terminals:               terms,
		TerminalCount:           tab.terminalCount,
		NonTerminals:            nonTerms,
		NonTerminalCount:        tab.nonTerminalCount,
		EOFSymbol:               symbol.SymbolEOF.Num().Int(),
	}
	ptab.Fingerprint, err = genFingerprint(ptab)
	if err != nil {
		return nil, nil, err
	}

	if config.compressTables {
		err := compressTables(ptab)
		if err != nil {
			return nil, nil, err
		}
	}

	return &spec.CompiledGrammar{
		Name:         gram.name,
		ParsingTable: ptab,
	}, report, nil
}

type tableFingerprint struct {
	Action                  []int
	GoTo                    []int
	LHSSymbols              []int
	AlternativeSymbolCounts []int
	Terminals               []string
	NonTerminals            []string
}

func genFingerprint(tab *spec.ParsingTable) (string, error) {
	return structhash.Hash(tableFingerprint{
		Action:                  tab.Action,
		GoTo:                    tab.GoTo,
		LHSSymbols:              tab.LHSSymbols,
		AlternativeSymbolCounts: tab.AlternativeSymbolCounts,
		Terminals:               tab.Terminals,
		NonTerminals:            tab.NonTerminals,
	}, 1)
}

// compressTables replaces the dense tables of tab with their compressed forms.
func compressTables(tab *spec.ParsingTable) error {
	action, err := compressTable(tab.Action, tab.TerminalCount, int(actionEntryEmpty))
	if err != nil {
		return fmt.Errorf("failed to compress the ACTION table: %w", err)
	}
	goTo, err := compressTable(tab.GoTo, tab.NonTerminalCount, int(goToEntryEmpty))
	if err != nil {
		return fmt.Errorf("failed to compress the GOTO table: %w", err)
	}

	tab.Action = nil
	tab.GoTo = nil
	tab.CompressedAction = action
	tab.CompressedGoTo = goTo
	return nil
}

func compressTable(entries []int, colCount int, emptyValue int) (*compressor.UniqueEntriesTable, error) {
	orig, err := compressor.NewOriginalTable(entries, colCount)
	if err != nil {
		return nil, err
	}
	tab := compressor.NewUniqueEntriesTable(emptyValue)
	err = tab.Compress(orig)
	if err != nil {
		return nil, err
	}
	return tab, nil
}
