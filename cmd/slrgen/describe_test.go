package main

import (
	"strings"
	"testing"
)

func TestWriteDescription(t *testing.T) {
	_, report, err := compileGrammar(strings.NewReader("S -> if S | if S else S | other\n"), "if", &compileSettings{})
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	err = writeDescription(&b, report)
	if err != nil {
		t.Fatal(err)
	}
	desc := b.String()

	for _, s := range []string{
		"conflict",
		"## State 0",
		"*   1 S' → ・ S",
		"FOLLOW: {else, $}",
		"accept      on $",
		"shift/reduce conflict",
	} {
		if !strings.Contains(desc, s) {
			t.Errorf("the description must contain %q:\n%v", s, desc)
		}
	}
}
