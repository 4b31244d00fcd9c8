package grammar

type slr1Automaton struct {
	*lr0Automaton
}

// genSLR1Automaton gives every reducible item the FOLLOW set of its LHS as look-ahead symbols.
func genSLR1Automaton(lr0 *lr0Automaton, follow *followSet) (*slr1Automaton, error) {
	for _, state := range lr0.states {
		for _, item := range state.reducible {
			flw, err := follow.find(item.lhs)
			if err != nil {
				return nil, err
			}
			item.lookAhead.add(flw.lookAheads()...)
		}
	}

	return &slr1Automaton{
		lr0Automaton: lr0,
	}, nil
}
