package grammar

import (
	"fmt"

	"github.com/nihei9/slrgen/compressor"
)

type CompiledGrammar struct {
	Name         string        `json:"name"`
	ParsingTable *ParsingTable `json:"parsing_table"`
}

// ParsingTable is the SLR(1) table of a grammar. An ACTION entry is negative for a shift to
// the state -entry, equal to StartProduction for accept, positive otherwise for a reduction by
// that production, and 0 for an error. A GOTO entry is the next state, or 0 when there is no
// transition.
//
// Exactly one of Action and CompressedAction is set, and likewise for GoTo.
type ParsingTable struct {
	Action                  []int                          `json:"action,omitempty"`
	GoTo                    []int                          `json:"goto,omitempty"`
	CompressedAction        *compressor.UniqueEntriesTable `json:"compressed_action,omitempty"`
	CompressedGoTo          *compressor.UniqueEntriesTable `json:"compressed_goto,omitempty"`
	StateCount              int                            `json:"state_count"`
	InitialState            int                            `json:"initial_state"`
	StartProduction         int                            `json:"start_production"`
	LHSSymbols              []int                          `json:"lhs_symbols"`
	AlternativeSymbolCounts []int                          `json:"alternative_symbol_counts"`
	Terminals               []string                       `json:"terminals"`
	TerminalCount           int                            `json:"terminal_count"`
	NonTerminals            []string                       `json:"non_terminals"`
	NonTerminalCount        int                            `json:"non_terminal_count"`
	EOFSymbol               int                            `json:"eof_symbol"`

	// Fingerprint is a structural hash of the dense tables and the symbol names. Two
	// compilations of one grammar have the same fingerprint.
	Fingerprint string `json:"fingerprint"`
}

// ActionEntry returns ACTION[state][terminal] from either representation.
func (t *ParsingTable) ActionEntry(state int, terminal int) (int, error) {
	if t.CompressedAction != nil {
		return t.CompressedAction.Lookup(state, terminal)
	}
	if state < 0 || state >= t.StateCount || terminal < 0 || terminal >= t.TerminalCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", state, terminal)
	}
	return t.Action[state*t.TerminalCount+terminal], nil
}

// GoToEntry returns GOTO[state][nonTerminal] from either representation.
func (t *ParsingTable) GoToEntry(state int, nonTerminal int) (int, error) {
	if t.CompressedGoTo != nil {
		return t.CompressedGoTo.Lookup(state, nonTerminal)
	}
	if state < 0 || state >= t.StateCount || nonTerminal < 0 || nonTerminal >= t.NonTerminalCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", state, nonTerminal)
	}
	return t.GoTo[state*t.NonTerminalCount+nonTerminal], nil
}
