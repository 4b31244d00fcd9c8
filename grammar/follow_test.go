package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/nihei9/slrgen/grammar/symbol"
)

type follow struct {
	nonTerminal string
	symbols     []string
	eof         bool
}

func TestFollowSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.grammar")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		follow  []follow
	}{
		{
			caption: "productions contain only non-empty productions",
			src:     exprGrammarSrc,
			follow: []follow{
				{nonTerminal: "E'", symbols: []string{}, eof: true},
				{nonTerminal: "E", symbols: []string{"+", ")"}, eof: true},
				{nonTerminal: "T", symbols: []string{"+", "*", ")"}, eof: true},
				{nonTerminal: "F", symbols: []string{"+", "*", ")"}, eof: true},
			},
		},
		{
			caption: "a production contains an empty alternative",
			src: `
s -> foo bar
foo -> ε
`,
			follow: []follow{
				{nonTerminal: "s'", symbols: []string{}, eof: true},
				{nonTerminal: "s", symbols: []string{}, eof: true},
				{nonTerminal: "foo", symbols: []string{"bar"}},
			},
		},
		{
			caption: "a nullable suffix propagates FOLLOW of the LHS",
			src: `
S -> A B
A -> a
B -> b | ε
`,
			follow: []follow{
				{nonTerminal: "S", symbols: []string{}, eof: true},
				{nonTerminal: "A", symbols: []string{"b"}, eof: true},
				{nonTerminal: "B", symbols: []string{}, eof: true},
			},
		},
		{
			caption: "FOLLOW sets depending on each other converge",
			src: `
S -> A c
A -> x B | y
B -> z A | w
`,
			follow: []follow{
				{nonTerminal: "S", symbols: []string{}, eof: true},
				{nonTerminal: "A", symbols: []string{"c"}},
				{nonTerminal: "B", symbols: []string{"c"}},
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
			flw, err := genFollowSet(gram.productionSet, fst)
			if err != nil {
				t.Fatal(err)
			}
			genSym := newTestSymbolGenerator(t, gram.symbolTable)

			for _, ttFollow := range tt.follow {
				actual, err := flw.find(genSym(ttFollow.nonTerminal))
				if err != nil {
					t.Fatal(err)
				}
				if actual.eof != ttFollow.eof {
					t.Errorf("eof is mismatched; non-terminal: %v\nwant: %v\ngot: %v", ttFollow.nonTerminal, ttFollow.eof, actual.eof)
				}
				expected := genExpectedSymbols(t, genSym, ttFollow.symbols...)
				if ttFollow.eof {
					expected = append(expected, symbol.SymbolEOF)
				}
				testSymbols(t, expected, actual.lookAheads())
			}
		})
	}
}

func TestFollowSet_StartSymbolContainsEOF(t *testing.T) {
	srcs := []string{
		exprGrammarSrc,
		danglingElseGrammarSrc,
		"S -> ε\n",
		"S -> S a | b\n",
		"S -> A\nA -> S | x\n",
	}
	for _, src := range srcs {
		gram := genGrammar(t, src)
		fst, err := genFirstSet(gram.productionSet)
		if err != nil {
			t.Fatal(err)
		}
		flw, err := genFollowSet(gram.productionSet, fst)
		if err != nil {
			t.Fatal(err)
		}
		e, err := flw.find(gram.startSymbol)
		if err != nil {
			t.Fatal(err)
		}
		if !e.eof {
			t.Fatalf("FOLLOW of the start symbol must contain $; source: %q", src)
		}
	}
}
