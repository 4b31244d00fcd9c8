package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/nihei9/slrgen/grammar/symbol"
)

type followEntry struct {
	symbols *treeset.Set
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: treeset.NewWith(symbol.Comparator),
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if e.symbols.Contains(sym) {
		return false
	}
	e.symbols.Add(sym)
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for _, v := range fst.symbols.Values() {
			if e.add(v.(symbol.Symbol)) {
				changed = true
			}
		}
	}

	if flw != nil {
		for _, v := range flw.symbols.Values() {
			if e.add(v.(symbol.Symbol)) {
				changed = true
			}
		}
		if flw.eof {
			if e.addEOF() {
				changed = true
			}
		}
	}

	return changed
}

// lookAheads returns the terminals of the entry in ascending order followed by the end
// marker when the entry contains it.
func (e *followEntry) lookAheads() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, e.symbols.Size()+1)
	for _, v := range e.symbols.Values() {
		syms = append(syms, v.(symbol.Symbol))
	}
	if e.eof {
		syms = append(syms, symbol.SymbolEOF)
	}
	return syms
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(prods *productionSet) *followSet {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, prod := range prods.getAllProductions() {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		flw.set[prod.lhs] = newFollowEntry()
	}
	return flw
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

type followComContext struct {
	prods  *productionSet
	first  *firstSet
	follow *followSet
}

func newFollowComContext(prods *productionSet, first *firstSet) *followComContext {
	return &followComContext{
		prods:  prods,
		first:  first,
		follow: newFollow(prods),
	}
}

func genFollowSet(prods *productionSet, first *firstSet) (*followSet, error) {
	var ntsyms []symbol.Symbol
	{
		known := map[symbol.Symbol]struct{}{}
		for _, prod := range prods.getAllProductions() {
			if _, ok := known[prod.lhs]; ok {
				continue
			}
			known[prod.lhs] = struct{}{}
			ntsyms = append(ntsyms, prod.lhs)
		}
	}

	cc := newFollowComContext(prods, first)
	for {
		more := false
		for _, ntsym := range ntsyms {
			e, err := cc.follow.find(ntsym)
			if err != nil {
				return nil, err
			}
			changed, err := genFollowEntry(cc, e, ntsym)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return cc.follow, nil
}

func genFollowEntry(cc *followComContext, acc *followEntry, ntsym symbol.Symbol) (bool, error) {
	changed := false

	if ntsym.IsStart() {
		if acc.addEOF() {
			changed = true
		}
	}
	for _, prod := range cc.prods.getAllProductions() {
		for i, sym := range prod.rhs {
			if sym != ntsym {
				continue
			}
			fst, err := cc.first.find(prod, i+1)
			if err != nil {
				return false, err
			}
			if acc.merge(fst, nil) {
				changed = true
			}
			if fst.empty {
				flw, err := cc.follow.find(prod.lhs)
				if err != nil {
					return false, err
				}
				if acc.merge(nil, flw) {
					changed = true
				}
			}
		}
	}

	return changed, nil
}
