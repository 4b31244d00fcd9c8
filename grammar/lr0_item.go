package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/nihei9/slrgen/grammar/symbol"
)

type lrItemID [32]byte

func (id lrItemID) String() string {
	return fmt.Sprintf("%x", id.num())
}

func (id lrItemID) num() uint32 {
	return binary.LittleEndian.Uint32(id[:])
}

type lookAhead struct {
	symbols *treeset.Set
}

func (la *lookAhead) add(syms ...symbol.Symbol) {
	if la.symbols == nil {
		la.symbols = treeset.NewWith(symbol.Comparator)
	}
	for _, sym := range syms {
		la.symbols.Add(sym)
	}
}

// values returns the look-ahead symbols in ascending order.
func (la *lookAhead) values() []symbol.Symbol {
	if la.symbols == nil {
		return nil
	}
	syms := make([]symbol.Symbol, 0, la.symbols.Size())
	for _, v := range la.symbols.Values() {
		syms = append(syms, v.(symbol.Symbol))
	}
	return syms
}

type lrItem struct {
	id      lrItemID
	prod    productionID
	prodNum productionNum
	lhs     symbol.Symbol

	// E → E + T
	//
	// Dot | Dotted Symbol | Item
	// ----+---------------+------------
	// 0   | E             | E →・E + T
	// 1   | +             | E → E・+ T
	// 2   | T             | E → E +・T
	// 3   | Nil           | E → E + T・
	dot          int
	dottedSymbol symbol.Symbol

	// When initial is true, the LHS of the production is the augmented start symbol and dot is 0.
	// It looks like S' →・S.
	initial bool

	// When reducible is true, the item looks like E → E + T・.
	reducible bool

	// When kernel is true, the item is kernel item.
	kernel bool

	// lookAhead is filled only for reducible items.
	lookAhead lookAhead
}

func newLR0Item(prod *production, dot int) (*lrItem, error) {
	if prod == nil {
		return nil, fmt.Errorf("production must be non-nil")
	}

	if dot < 0 || dot > prod.rhsLen {
		return nil, fmt.Errorf("dot must be between 0 and %v", prod.rhsLen)
	}

	var id lrItemID
	{
		b := []byte{}
		b = append(b, prod.id[:]...)
		bDot := make([]byte, 8)
		binary.LittleEndian.PutUint64(bDot, uint64(dot))
		b = append(b, bDot...)
		id = sha256.Sum256(b)
	}

	dottedSymbol := symbol.SymbolNil
	if dot < prod.rhsLen {
		dottedSymbol = prod.rhs[dot]
	}

	initial := false
	if prod.lhs.IsStart() && dot == 0 {
		initial = true
	}

	reducible := false
	if dot == prod.rhsLen {
		reducible = true
	}

	kernel := false
	if initial || dot > 0 {
		kernel = true
	}

	return &lrItem{
		id:           id,
		prod:         prod.id,
		prodNum:      prod.num,
		lhs:          prod.lhs,
		dot:          dot,
		dottedSymbol: dottedSymbol,
		initial:      initial,
		reducible:    reducible,
		kernel:       kernel,
	}, nil
}

type itemSetID [32]byte

func (id itemSetID) String() string {
	return fmt.Sprintf("%x", binary.LittleEndian.Uint32(id[:]))
}

// lrItemSet is a set of items in canonical order: by production number, then by dot. Two
// sets holding the same items have the same ID however the items were discovered.
type lrItemSet struct {
	id    itemSetID
	items []*lrItem
}

func newLRItemSet(items []*lrItem) (*lrItemSet, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("an item set needs at least one item")
	}

	var sortedItems []*lrItem
	{
		known := map[lrItemID]struct{}{}
		for _, item := range items {
			if _, ok := known[item.id]; ok {
				continue
			}
			known[item.id] = struct{}{}
			sortedItems = append(sortedItems, item)
		}
		sort.Slice(sortedItems, func(i, j int) bool {
			if sortedItems[i].prodNum != sortedItems[j].prodNum {
				return sortedItems[i].prodNum < sortedItems[j].prodNum
			}
			return sortedItems[i].dot < sortedItems[j].dot
		})
	}

	var id itemSetID
	{
		b := []byte{}
		for _, item := range sortedItems {
			b = append(b, item.id[:]...)
		}
		id = sha256.Sum256(b)
	}

	return &lrItemSet{
		id:    id,
		items: sortedItems,
	}, nil
}

func (s *lrItemSet) kernelItems() []*lrItem {
	var items []*lrItem
	for _, item := range s.items {
		if item.kernel {
			items = append(items, item)
		}
	}
	return items
}

// nextSymbols returns the symbols right after a dot in ascending order.
func (s *lrItemSet) nextSymbols() []symbol.Symbol {
	known := map[symbol.Symbol]struct{}{}
	var syms []symbol.Symbol
	for _, item := range s.items {
		if item.dottedSymbol.IsNil() {
			continue
		}
		if _, ok := known[item.dottedSymbol]; ok {
			continue
		}
		known[item.dottedSymbol] = struct{}{}
		syms = append(syms, item.dottedSymbol)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}

// genLR0Closure expands items until every item A → α・B β is followed by all the items
// B → ・γ.
func genLR0Closure(items []*lrItem, prods *productionSet) (*lrItemSet, error) {
	closure := []*lrItem{}
	knownItems := map[lrItemID]struct{}{}
	uncheckedItems := []*lrItem{}
	for _, item := range items {
		if _, exist := knownItems[item.id]; exist {
			continue
		}
		closure = append(closure, item)
		knownItems[item.id] = struct{}{}
		uncheckedItems = append(uncheckedItems, item)
	}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []*lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSymbol.IsNonTerminal() {
				continue
			}

			ps, _ := prods.findByLHS(item.dottedSymbol)
			for _, prod := range ps {
				newItem, err := newLR0Item(prod, 0)
				if err != nil {
					return nil, err
				}
				if _, exist := knownItems[newItem.id]; exist {
					continue
				}
				closure = append(closure, newItem)
				knownItems[newItem.id] = struct{}{}
				nextUncheckedItems = append(nextUncheckedItems, newItem)
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return newLRItemSet(closure)
}

// genGoTo advances the dot over sym and closes the result. It returns nil when no item of set
// has sym after its dot.
func genGoTo(set *lrItemSet, sym symbol.Symbol, prods *productionSet) (*lrItemSet, error) {
	var kItems []*lrItem
	for _, item := range set.items {
		if item.dottedSymbol != sym || sym.IsNil() {
			continue
		}
		prod, ok := prods.findByID(item.prod)
		if !ok {
			return nil, fmt.Errorf("a production was not found: %v", item.prod)
		}
		kItem, err := newLR0Item(prod, item.dot+1)
		if err != nil {
			return nil, err
		}
		kItems = append(kItems, kItem)
	}
	if len(kItems) == 0 {
		return nil, nil
	}

	return genLR0Closure(kItems, prods)
}
