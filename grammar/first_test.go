package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type first struct {
	lhs     string
	num     int
	dot     int
	symbols []string
	empty   bool
}

func TestGenFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		first   []first
	}{
		{
			caption: "productions contain only non-empty productions",
			src:     exprGrammarSrc,
			first: []first{
				{lhs: "E'", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "E", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "E", num: 0, dot: 1, symbols: []string{"+"}},
				{lhs: "E", num: 0, dot: 2, symbols: []string{"(", "id"}},
				{lhs: "E", num: 1, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "T", num: 0, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "T", num: 0, dot: 1, symbols: []string{"*"}},
				{lhs: "T", num: 0, dot: 2, symbols: []string{"(", "id"}},
				{lhs: "T", num: 1, dot: 0, symbols: []string{"(", "id"}},
				{lhs: "F", num: 0, dot: 0, symbols: []string{"("}},
				{lhs: "F", num: 0, dot: 1, symbols: []string{"(", "id"}},
				{lhs: "F", num: 0, dot: 2, symbols: []string{")"}},
				{lhs: "F", num: 0, dot: 3, symbols: []string{}, empty: true},
				{lhs: "F", num: 1, dot: 0, symbols: []string{"id"}},
			},
		},
		{
			caption: "productions contain the empty start production",
			src:     "s -> ε\n",
			first: []first{
				{lhs: "s'", num: 0, dot: 0, symbols: []string{}, empty: true},
				{lhs: "s", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "productions contain an empty production",
			src: `
s -> foo bar
foo ->
`,
			first: []first{
				{lhs: "s'", num: 0, dot: 0, symbols: []string{"bar"}, empty: false},
				{lhs: "s", num: 0, dot: 0, symbols: []string{"bar"}, empty: false},
				{lhs: "foo", num: 0, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "a start production contains a non-empty alternative and empty alternative",
			src:     "s -> foo | ε\n",
			first: []first{
				{lhs: "s'", num: 0, dot: 0, symbols: []string{"foo"}, empty: true},
				{lhs: "s", num: 0, dot: 0, symbols: []string{"foo"}},
				{lhs: "s", num: 1, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "a production contains non-empty alternative and empty alternative",
			src: `
s -> foo
foo -> bar |
`,
			first: []first{
				{lhs: "s'", num: 0, dot: 0, symbols: []string{"bar"}, empty: true},
				{lhs: "s", num: 0, dot: 0, symbols: []string{"bar"}, empty: true},
				{lhs: "foo", num: 0, dot: 0, symbols: []string{"bar"}},
				{lhs: "foo", num: 1, dot: 0, symbols: []string{}, empty: true},
			},
		},
		{
			caption: "mutually left-recursive non-terminals converge",
			src: `
A -> B x | y
B -> A z | ε
`,
			first: []first{
				{lhs: "A", num: 0, dot: 0, symbols: []string{"x", "y"}},
				{lhs: "A", num: 1, dot: 0, symbols: []string{"y"}},
				{lhs: "B", num: 0, dot: 0, symbols: []string{"x", "y"}},
				{lhs: "B", num: 1, dot: 0, symbols: []string{}, empty: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := genGrammar(t, tt.src)
			fst, err := genFirstSet(gram.productionSet)
			if err != nil {
				t.Fatal(err)
			}
			genSym := newTestSymbolGenerator(t, gram.symbolTable)

			for _, ttFirst := range tt.first {
				lhsSym := genSym(ttFirst.lhs)
				prod, ok := gram.productionSet.findByLHS(lhsSym)
				if !ok {
					t.Fatalf("a production was not found; LHS: %v (%v)", ttFirst.lhs, lhsSym)
				}

				actualFirst, err := fst.find(prod[ttFirst.num], ttFirst.dot)
				if err != nil {
					t.Fatalf("failed to get a FIRST set; LHS: %v (%v), num: %v, dot: %v, error: %v", ttFirst.lhs, lhsSym, ttFirst.num, ttFirst.dot, err)
				}

				if actualFirst.empty != ttFirst.empty {
					t.Errorf("empty is mismatched; LHS: %v, num: %v, dot: %v\nwant: %v\ngot: %v", ttFirst.lhs, ttFirst.num, ttFirst.dot, ttFirst.empty, actualFirst.empty)
				}
				testSymbols(t, genExpectedSymbols(t, genSym, ttFirst.symbols...), actualFirst.terminals())
			}
		})
	}
}

func TestGenFirst_EmptyNonTerminal(t *testing.T) {
	gram := genGrammar(t, `
S -> A B c
A -> a | ε
B -> A A
`)
	fst, err := genFirstSet(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	genSym := newTestSymbolGenerator(t, gram.symbolTable)

	for _, text := range []string{"A", "B"} {
		e := fst.findBySymbol(genSym(text))
		if !e.empty {
			t.Fatalf("FIRST(%v) must contain the empty string", text)
		}
	}
	e := fst.findBySymbol(genSym("S"))
	if e.empty {
		t.Fatalf("FIRST(S) must not contain the empty string")
	}
	testSymbols(t, genExpectedSymbols(t, genSym, "a", "c"), e.terminals())
}
