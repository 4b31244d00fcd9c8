package grammar

import (
	"fmt"
	"sort"

	"github.com/nihei9/slrgen/grammar/symbol"
	spec "github.com/nihei9/slrgen/spec/grammar"
)

func genReport(gram *Grammar, automaton *lr0Automaton, tab *ParsingTable, conflicts []conflict, first *firstSet, follow *followSet) (*spec.Report, error) {
	symTab := gram.symbolTable

	var terms []*spec.Terminal
	{
		termSyms := symTab.TerminalSymbols()
		terms = make([]*spec.Terminal, symTab.TerminalCount())
		for _, sym := range termSyms {
			name, ok := symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate terminals: symbol not found: %v", sym)
			}

			terms[sym.Num()] = &spec.Terminal{
				Number: sym.Num().Int(),
				Name:   name,
			}
		}
	}

	var nonTerms []*spec.NonTerminal
	{
		nonTermSyms := symTab.NonTerminalSymbols()
		nonTerms = make([]*spec.NonTerminal, symTab.NonTerminalCount())
		for _, sym := range nonTermSyms {
			name, ok := symTab.ToText(sym)
			if !ok {
				return nil, fmt.Errorf("failed to generate non-terminals: symbol not found: %v", sym)
			}

			fst := first.findBySymbol(sym)
			if fst == nil {
				return nil, fmt.Errorf("failed to generate non-terminals: an entry of FIRST was not found: %v", name)
			}
			flw, err := follow.find(sym)
			if err != nil {
				return nil, err
			}

			nonTerms[sym.Num()] = &spec.NonTerminal{
				Number:             sym.Num().Int(),
				Name:               name,
				First:              symbolNums(fst.terminals()),
				FirstContainsEmpty: fst.empty,
				Follow:             symbolNums(flw.lookAheads()),
			}
		}
	}

	var prods []*spec.Production
	{
		ps := gram.productionSet.getAllProductions()
		prods = make([]*spec.Production, len(ps)+1)
		for _, p := range ps {
			rhs := make([]int, len(p.rhs))
			for i, e := range p.rhs {
				if e.IsTerminal() {
					rhs[i] = e.Num().Int()
				} else {
					rhs[i] = e.Num().Int() * -1
				}
			}

			prods[p.num.Int()] = &spec.Production{
				Number: p.num.Int(),
				LHS:    p.lhs.Num().Int(),
				RHS:    rhs,
			}
		}
	}

	var states []*spec.State
	{
		srConflicts := map[stateNum][]*shiftReduceConflict{}
		rrConflicts := map[stateNum][]*reduceReduceConflict{}
		for _, con := range conflicts {
			switch c := con.(type) {
			case *shiftReduceConflict:
				srConflicts[c.state] = append(srConflicts[c.state], c)
			case *reduceReduceConflict:
				rrConflicts[c.state] = append(rrConflicts[c.state], c)
			}
		}

		states = make([]*spec.State, len(automaton.states))
		for _, s := range automaton.states {
			kernel := genReportItems(s.kernelItems())
			items := genReportItems(s.items)

			var shift []*spec.Transition
			var reduce []*spec.Reduce
			var goTo []*spec.Transition
			accept := false
			{
			TERMINALS_LOOP:
				for _, t := range symTab.TerminalSymbols() {
					act, next, prod := tab.getAction(s.num, t.Num())
					switch act {
					case ActionTypeShift:
						shift = append(shift, &spec.Transition{
							Symbol: t.Num().Int(),
							State:  next.Int(),
						})
					case ActionTypeAccept:
						accept = true
					case ActionTypeReduce:
						for _, r := range reduce {
							if r.Production == prod.Int() {
								r.LookAhead = append(r.LookAhead, t.Num().Int())
								continue TERMINALS_LOOP
							}
						}
						reduce = append(reduce, &spec.Reduce{
							LookAhead:  []int{t.Num().Int()},
							Production: prod.Int(),
						})
					}
				}

				for _, n := range symTab.NonTerminalSymbols() {
					ty, next := tab.getGoTo(s.num, n.Num())
					if ty == GoToTypeRegistered {
						goTo = append(goTo, &spec.Transition{
							Symbol: n.Num().Int(),
							State:  next.Int(),
						})
					}
				}

				sort.Slice(shift, func(i, j int) bool {
					return shift[i].State < shift[j].State
				})
				sort.Slice(reduce, func(i, j int) bool {
					return reduce[i].Production < reduce[j].Production
				})
				sort.Slice(goTo, func(i, j int) bool {
					return goTo[i].State < goTo[j].State
				})
			}

			sr := []*spec.SRConflict{}
			rr := []*spec.RRConflict{}
			{
				for _, c := range srConflicts[s.num] {
					conflict := &spec.SRConflict{
						Symbol:     c.sym.Num().Int(),
						State:      c.nextState.Int(),
						Production: c.prodNum.Int(),
						ResolvedBy: c.resolvedBy.Int(),
					}

					ty, next, p := tab.getAction(s.num, c.sym.Num())
					switch ty {
					case ActionTypeShift:
						n := next.Int()
						conflict.AdoptedState = &n
					case ActionTypeReduce, ActionTypeAccept:
						n := p.Int()
						conflict.AdoptedProduction = &n
					}

					sr = append(sr, conflict)
				}

				sort.SliceStable(sr, func(i, j int) bool {
					return sr[i].Symbol < sr[j].Symbol
				})

				for _, c := range rrConflicts[s.num] {
					conflict := &spec.RRConflict{
						Symbol:      c.sym.Num().Int(),
						Production1: c.prodNum1.Int(),
						Production2: c.prodNum2.Int(),
						ResolvedBy:  c.resolvedBy.Int(),
					}

					_, _, p := tab.getAction(s.num, c.sym.Num())
					conflict.AdoptedProduction = p.Int()

					rr = append(rr, conflict)
				}

				sort.SliceStable(rr, func(i, j int) bool {
					return rr[i].Symbol < rr[j].Symbol
				})
			}

			states[s.num.Int()] = &spec.State{
				Number:     s.num.Int(),
				Kernel:     kernel,
				Items:      items,
				Shift:      shift,
				Reduce:     reduce,
				GoTo:       goTo,
				Accept:     accept,
				SRConflict: sr,
				RRConflict: rr,
			}
		}
	}

	return &spec.Report{
		Name:                 gram.name,
		StartSymbol:          gram.StartSymbol(),
		AugmentedStartSymbol: gram.AugmentedStartSymbol(),
		EOFSymbol:            symbol.SymbolEOF.Num().Int(),
		Terminals:            terms,
		NonTerminals:         nonTerms,
		Productions:          prods,
		States:               states,
	}, nil
}

// genReportItems converts items that are already in canonical order.
func genReportItems(items []*lrItem) []*spec.Item {
	ris := make([]*spec.Item, len(items))
	for i, item := range items {
		ris[i] = &spec.Item{
			Production: item.prodNum.Int(),
			Dot:        item.dot,
		}
	}
	return ris
}

func symbolNums(syms []symbol.Symbol) []int {
	nums := make([]int, len(syms))
	for i, sym := range syms {
		nums[i] = sym.Num().Int()
	}
	return nums
}
