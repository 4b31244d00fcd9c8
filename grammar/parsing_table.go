package grammar

import (
	"github.com/nihei9/slrgen/grammar/symbol"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// actionEntry packs an ACTION cell into an int. A negative value is a shift to the state
// -e, productionNumStart means accept, and any other positive value is a reduction by the
// production e.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	if productionNum(e) == productionNumStart {
		return ActionTypeAccept, stateNumInitial, productionNumStart
	}
	return ActionTypeReduce, stateNumInitial, productionNum(e)
}

type GoToType string

const (
	GoToTypeRegistered = GoToType("registered")
	GoToTypeError      = GoToType("error")
)

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (GoToType, stateNum) {
	if e == goToEntryEmpty {
		return GoToTypeError, stateNumInitial
	}
	return GoToTypeRegistered, stateNum(e)
}

type conflictResolutionMethod int

func (m conflictResolutionMethod) Int() int {
	return int(m)
}

const (
	ResolvedByShift     conflictResolutionMethod = 1
	ResolvedByProdOrder conflictResolutionMethod = 2
)

type conflict interface {
	conflict()
}

type shiftReduceConflict struct {
	state      stateNum
	sym        symbol.Symbol
	nextState  stateNum
	prodNum    productionNum
	resolvedBy conflictResolutionMethod
}

func (c *shiftReduceConflict) conflict() {
}

type reduceReduceConflict struct {
	state      stateNum
	sym        symbol.Symbol
	prodNum1   productionNum
	prodNum2   productionNum
	resolvedBy conflictResolutionMethod
}

func (c *reduceReduceConflict) conflict() {
}

var (
	_ conflict = &shiftReduceConflict{}
	_ conflict = &reduceReduceConflict{}
)

// ParsingTable holds the dense ACTION and GOTO tables. A row of ACTION is indexed by terminal
// numbers and a row of GOTO by non-terminal numbers.
type ParsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int

	InitialState stateNum
}

func (t *ParsingTable) getAction(state stateNum, sym symbol.SymbolNum) (ActionType, stateNum, productionNum) {
	pos := state.Int()*t.terminalCount + sym.Int()
	return t.actionTable[pos].describe()
}

func (t *ParsingTable) getGoTo(state stateNum, sym symbol.SymbolNum) (GoToType, stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Int()
	return t.goToTable[pos].describe()
}

func (t *ParsingTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.terminalCount+col]
}

func (t *ParsingTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.terminalCount+col] = act
}

func (t *ParsingTable) writeGoTo(state stateNum, sym symbol.Symbol, nextState stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Num().Int()
	t.goToTable[pos] = newGoToEntry(nextState)
}

type lrTableBuilder struct {
	automaton    *lr0Automaton
	termCount    int
	nonTermCount int

	conflicts []conflict
}

// build writes every transition first and the reductions afterwards, so a cell requested by
// both a shift and a reduction keeps the shift.
func (b *lrTableBuilder) build() (*ParsingTable, error) {
	ptab := &ParsingTable{
		actionTable:      make([]actionEntry, len(b.automaton.states)*b.termCount),
		goToTable:        make([]goToEntry, len(b.automaton.states)*b.nonTermCount),
		stateCount:       len(b.automaton.states),
		terminalCount:    b.termCount,
		nonTerminalCount: b.nonTermCount,
		InitialState:     b.automaton.initialState,
	}

	for _, state := range b.automaton.states {
		for _, sym := range state.nextSymbols() {
			nextState := state.next[sym]
			if sym.IsTerminal() {
				b.writeShiftAction(ptab, state.num, sym, nextState)
			} else {
				ptab.writeGoTo(state.num, sym, nextState)
			}
		}

		for _, item := range state.reducible {
			for _, a := range item.lookAhead.values() {
				if item.lhs.IsStart() {
					b.writeAcceptAction(ptab, state.num, a)
					continue
				}
				b.writeReduceAction(ptab, state.num, a, item.prodNum)
			}
		}
	}

	return ptab, nil
}

func (b *lrTableBuilder) writeShiftAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, nextState stateNum) {
	tab.writeAction(state.Int(), sym.Num().Int(), newShiftActionEntry(nextState))
}

// writeAcceptAction writes an accept action. Accepting is a reduction by the start production,
// so it takes part in conflicts like any other reduction.
func (b *lrTableBuilder) writeAcceptAction(tab *ParsingTable, state stateNum, sym symbol.Symbol) {
	b.writeReduceAction(tab, state, sym, productionNumStart)
}

// writeReduceAction writes a reduce action to the parsing table. When a shift/reduce conflict occurred,
// we prioritize the shift action, and when a reduce/reduce conflict we prioritize the action that reduces
// the production with higher priority. Productions defined earlier in the grammar file have a higher priority.
func (b *lrTableBuilder) writeReduceAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if act.isEmpty() {
		tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
		return
	}

	ty, s, p := act.describe()
	switch ty {
	case ActionTypeReduce, ActionTypeAccept:
		if p == prod {
			return
		}

		b.conflicts = append(b.conflicts, &reduceReduceConflict{
			state:      state,
			sym:        sym,
			prodNum1:   p,
			prodNum2:   prod,
			resolvedBy: ResolvedByProdOrder,
		})
		if prod < p {
			tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
		}
	case ActionTypeShift:
		b.conflicts = append(b.conflicts, &shiftReduceConflict{
			state:      state,
			sym:        sym,
			nextState:  s,
			prodNum:    prod,
			resolvedBy: ResolvedByShift,
		})
	}
}
