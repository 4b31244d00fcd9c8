package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type expectedProduction struct {
	lhs  string
	alts [][]string
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.parser")
	defer teardown()

	tests := []struct {
		caption   string
		src       string
		prods     []expectedProduction
		malformed []int
	}{
		{
			caption: "the expression grammar",
			src: `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`,
			prods: []expectedProduction{
				{lhs: "E", alts: [][]string{{"E", "+", "T"}, {"T"}}},
				{lhs: "T", alts: [][]string{{"T", "*", "F"}, {"F"}}},
				{lhs: "F", alts: [][]string{{"(", "E", ")"}, {"id"}}},
			},
		},
		{
			caption: "rules sharing a left-hand side are merged in order",
			src: `
S -> a A
A -> b
S -> c
A -> d
`,
			prods: []expectedProduction{
				{lhs: "S", alts: [][]string{{"a", "A"}, {"c"}}},
				{lhs: "A", alts: [][]string{{"b"}, {"d"}}},
			},
		},
		{
			caption: "epsilon and empty alternatives denote the empty production",
			src: `
S -> A B
A -> a | ε
B -> b |
C ->
`,
			prods: []expectedProduction{
				{lhs: "S", alts: [][]string{{"A", "B"}}},
				{lhs: "A", alts: [][]string{{"a"}, {}}},
				{lhs: "B", alts: [][]string{{"b"}, {}}},
				{lhs: "C", alts: [][]string{{}}},
			},
		},
		{
			caption: "blank separators may be omitted around the arrow and bars",
			src:     "S->a S b|c\n",
			prods: []expectedProduction{
				{lhs: "S", alts: [][]string{{"a", "S", "b"}, {"c"}}},
			},
		},
		{
			caption: "tabs separate symbols and comment lines are ignored",
			src:     "# a comment\nS\t->\tx\ty\n\n",
			prods: []expectedProduction{
				{lhs: "S", alts: [][]string{{"x", "y"}}},
			},
		},
		{
			caption: "malformed rules are skipped and reported",
			src: `
S -> a
this line has no arrow
-> a
X Y -> a
S -> b -> c
S -> c
`,
			prods: []expectedProduction{
				{lhs: "S", alts: [][]string{{"a"}, {"c"}}},
			},
			malformed: []int{3, 4, 5, 6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			testProductions(t, root, tt.prods)

			if len(root.MalformedRules) != len(tt.malformed) {
				t.Fatalf("unexpected malformed rules; want: %v, got: %v", tt.malformed, root.MalformedRules)
			}
			for i, row := range tt.malformed {
				e := root.MalformedRules[i]
				if e.Row != row {
					t.Fatalf("unexpected row; want: %v, got: %v", row, e.Row)
				}
				if !errors.Is(e, ErrMalformedRule) {
					t.Fatalf("a malformed rule must be reported as ErrMalformedRule; got: %v", e)
				}
			}
		})
	}
}

func TestParse_NormalizesText(t *testing.T) {
	// "é" as a precomposed rune and as "e" followed by a combining acute accent.
	src := "S -> caf\u00e9 | cafe\u0301\n"
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	alts := root.Productions[0].RHS
	if len(alts) != 2 {
		t.Fatalf("unexpected alternative count: %v", len(alts))
	}
	if alts[0].Elements[0].ID != alts[1].Elements[0].ID {
		t.Fatalf("normalized symbols must be identical; got: %q and %q", alts[0].Elements[0].ID, alts[1].Elements[0].ID)
	}
}

func TestParse_Positions(t *testing.T) {
	root, err := Parse(strings.NewReader("\nS -> a b\n"))
	if err != nil {
		t.Fatal(err)
	}
	prod := root.Productions[0]
	if prod.Pos.Row != 2 || prod.Pos.Col != 1 {
		t.Fatalf("unexpected position of the production: %+v", prod.Pos)
	}
	for _, elem := range prod.RHS[0].Elements {
		if elem.Pos.Row != 2 {
			t.Fatalf("unexpected row of %v: %v", elem.ID, elem.Pos.Row)
		}
	}
}

func testProductions(t *testing.T, root *RootNode, expected []expectedProduction) {
	t.Helper()

	if len(root.Productions) != len(expected) {
		t.Fatalf("unexpected production count; want: %v, got: %v", len(expected), len(root.Productions))
	}
	for i, prod := range root.Productions {
		e := expected[i]
		if prod.LHS != e.lhs {
			t.Fatalf("unexpected LHS; want: %v, got: %v", e.lhs, prod.LHS)
		}
		if len(prod.RHS) != len(e.alts) {
			t.Fatalf("unexpected alternative count of %v; want: %v, got: %v", e.lhs, len(e.alts), len(prod.RHS))
		}
		for j, alt := range prod.RHS {
			if len(alt.Elements) != len(e.alts[j]) {
				t.Fatalf("unexpected alternative %v of %v; want: %v, got: %v elements", j, e.lhs, e.alts[j], len(alt.Elements))
			}
			for k, elem := range alt.Elements {
				if elem.ID != e.alts[j][k] {
					t.Fatalf("unexpected element; want: %v, got: %v", e.alts[j][k], elem.ID)
				}
			}
		}
	}
}
