package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/slrgen/grammar/symbol"
	"github.com/nihei9/slrgen/spec/grammar/parser"
)

const exprGrammarSrc = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

const danglingElseGrammarSrc = `
S -> if S | if S else S | other
`

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(ast.MalformedRules) > 0 {
		t.Fatalf("the source contains malformed rules: %v", ast.MalformedRules)
	}
	b := GrammarBuilder{
		AST:  ast,
		Name: "test",
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

// newTestProductionGenerator returns productions registered in prods, so the generated
// productions have their numbers.
func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator, prods *productionSet) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}
		registered, ok := prods.findByID(prod.id)
		if !ok {
			t.Fatalf("a production was not found: %v -> %v", lhs, rhs)
		}

		return registered
	}
}

type testLR0ItemGenerator func(lhs string, dot int, rhs ...string) *lrItem

func newTestLR0ItemGenerator(t *testing.T, genProd testProductionGenerator) testLR0ItemGenerator {
	return func(lhs string, dot int, rhs ...string) *lrItem {
		t.Helper()

		prod := genProd(lhs, rhs...)
		item, err := newLR0Item(prod, dot)
		if err != nil {
			t.Fatalf("failed to create a LR0 item: %v", err)
		}

		return item
	}
}

func genExpectedSymbols(t *testing.T, genSym testSymbolGenerator, texts ...string) []symbol.Symbol {
	t.Helper()

	syms := make([]symbol.Symbol, len(texts))
	for i, text := range texts {
		syms[i] = genSym(text)
	}
	return syms
}

func testSymbols(t *testing.T, expected, actual []symbol.Symbol) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("unexpected symbols; want: %v, got: %v", expected, actual)
	}
	want := map[symbol.Symbol]struct{}{}
	for _, sym := range expected {
		want[sym] = struct{}{}
	}
	for _, sym := range actual {
		if _, ok := want[sym]; !ok {
			t.Fatalf("unexpected symbols; want: %v, got: %v", expected, actual)
		}
	}
}
