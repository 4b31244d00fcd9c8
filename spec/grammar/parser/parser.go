package parser

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"

	verr "github.com/nihei9/slrgen/error"
	"github.com/nihei9/slrgen/grammar/symbol"
)

const (
	separatorLHS         = "->"
	separatorAlternative = "|"
	commentMarker        = "#"
)

func tracer() tracing.Trace {
	return tracing.Select("slrgen.parser")
}

// RootNode holds the rules of a grammar source in the order their left-hand sides first
// appeared. Rules sharing a left-hand side are merged into one ProductionNode.
type RootNode struct {
	Productions []*ProductionNode

	// MalformedRules lists the rules that were skipped.
	MalformedRules verr.SpecErrors
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

// AlternativeNode is one body of a production. An empty Elements slice is the empty
// production.
type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

type ElementNode struct {
	ID  string
	Pos Position
}

// Parse reads rules of the form `LHS -> RHS1 | RHS2 | ...`, one per line. Blank lines and
// lines starting with # are ignored.
func Parse(src io.Reader) (*RootNode, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	lex, err := newLexer()
	if err != nil {
		return nil, err
	}
	p := &parser{
		lex:   lex,
		prods: linkedhashmap.New(),
	}

	s := bufio.NewScanner(strings.NewReader(norm.NFC.String(string(text))))
	row := 0
	for s.Scan() {
		row++
		err := p.parseRule(s.Text(), row)
		if err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	root := &RootNode{
		MalformedRules: p.errs,
	}
	for _, v := range p.prods.Values() {
		root.Productions = append(root.Productions, v.(*ProductionNode))
	}
	return root, nil
}

type parser struct {
	lex   *lexer
	prods *linkedhashmap.Map
	errs  verr.SpecErrors
}

func (p *parser) parseRule(line string, row int) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return nil
	}

	lhs, rhs, found := strings.Cut(line, separatorLHS)
	if !found {
		p.malformed(synErrNoArrow, trimmed, row, 0)
		return nil
	}
	if strings.Contains(rhs, separatorLHS) {
		p.malformed(synErrMultipleArrows, trimmed, row, 0)
		return nil
	}
	lhsCol := strings.IndexFunc(lhs, func(r rune) bool {
		return !unicode.IsSpace(r)
	}) + 1
	lhs = strings.TrimSpace(lhs)
	if lhs == "" {
		p.malformed(synErrNoProductionName, trimmed, row, 0)
		return nil
	}
	if strings.IndexFunc(lhs, unicode.IsSpace) >= 0 {
		p.malformed(synErrMultipleLHS, lhs, row, lhsCol)
		return nil
	}

	rhsCol := len(line) - len(rhs)
	toks, err := p.lex.tokenize(rhs, row, rhsCol)
	if err != nil {
		return err
	}
	alts, synErr, tok := parseAlternatives(toks, newPosition(row, rhsCol+1))
	if synErr != nil {
		p.malformed(synErr, tok.text, row, tok.pos.Col)
		return nil
	}

	if v, ok := p.prods.Get(lhs); ok {
		prod := v.(*ProductionNode)
		prod.RHS = append(prod.RHS, alts...)
		return nil
	}
	p.prods.Put(lhs, &ProductionNode{
		LHS: lhs,
		RHS: alts,
		Pos: newPosition(row, lhsCol),
	})
	return nil
}

func (p *parser) malformed(cause error, detail string, row int, col int) {
	tracer().Infof("skipping a malformed rule at line %v: %v", row, cause)
	p.errs = append(p.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    row,
		Col:    col,
	})
}

// parseAlternatives groups the tokens between separators. An epsilon element is the
// identity of concatenation and is dropped, so `A -> ε` and `A ->` both yield an empty
// alternative.
func parseAlternatives(toks []*token, start Position) ([]*AlternativeNode, *SyntaxError, *token) {
	var alts []*AlternativeNode
	alt := &AlternativeNode{
		Pos: start,
	}
	for _, tok := range toks {
		switch tok.kind {
		case tokenKindSymbol:
			if tok.text == symbol.TextEpsilon {
				continue
			}
			alt.Elements = append(alt.Elements, &ElementNode{
				ID:  tok.text,
				Pos: tok.pos,
			})
		case tokenKindOr, tokenKindEOF:
			alts = append(alts, alt)
			alt = &AlternativeNode{
				Pos: tok.pos,
			}
		default:
			return nil, synErrInvalidToken, tok
		}
	}
	return alts, nil, nil
}
