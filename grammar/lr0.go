package grammar

import (
	"fmt"

	"github.com/nihei9/slrgen/grammar/symbol"
)

type lrState struct {
	*lrItemSet
	num       stateNum
	next      map[symbol.Symbol]stateNum
	reducible []*lrItem
}

type lr0Automaton struct {
	initialState stateNum
	states       []*lrState
}

// genLR0Automaton builds the canonical collection of LR(0) item sets breadth-first. States are
// numbered in discovery order and the symbols of each state are visited in ascending order, so
// the numbering depends only on the grammar.
func genLR0Automaton(prods *productionSet, startSym symbol.Symbol) (*lr0Automaton, error) {
	if !startSym.IsStart() {
		return nil, fmt.Errorf("passed symbol is not a start symbol")
	}

	automaton := &lr0Automaton{
		initialState: stateNumInitial,
	}
	knownSets := map[itemSetID]stateNum{}
	var uncheckedStates []*lrState

	// Generate an initial state.
	{
		startProds, _ := prods.findByLHS(startSym)
		if len(startProds) == 0 {
			return nil, fmt.Errorf("the start symbol has no production")
		}
		initialItem, err := newLR0Item(startProds[0], 0)
		if err != nil {
			return nil, err
		}

		set, err := genLR0Closure([]*lrItem{initialItem}, prods)
		if err != nil {
			return nil, err
		}

		state := newLRState(set, stateNumInitial)
		automaton.states = append(automaton.states, state)
		knownSets[set.id] = state.num
		uncheckedStates = append(uncheckedStates, state)
	}

	for len(uncheckedStates) > 0 {
		state := uncheckedStates[0]
		uncheckedStates = uncheckedStates[1:]

		for _, sym := range state.nextSymbols() {
			set, err := genGoTo(state.lrItemSet, sym, prods)
			if err != nil {
				return nil, err
			}
			if set == nil {
				continue
			}

			num, known := knownSets[set.id]
			if !known {
				num = stateNum(len(automaton.states))
				next := newLRState(set, num)
				automaton.states = append(automaton.states, next)
				knownSets[set.id] = num
				uncheckedStates = append(uncheckedStates, next)

				tracer().Debugf("state %v: goto(%v, %v), %v items", num, state.num, sym, len(set.items))
			}
			state.next[sym] = num
		}
	}

	return automaton, nil
}

func newLRState(set *lrItemSet, num stateNum) *lrState {
	var reducible []*lrItem
	for _, item := range set.items {
		if item.reducible {
			reducible = append(reducible, item)
		}
	}
	return &lrState{
		lrItemSet: set,
		num:       num,
		next:      map[symbol.Symbol]stateNum{},
		reducible: reducible,
	}
}
