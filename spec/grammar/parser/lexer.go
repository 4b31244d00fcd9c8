package parser

import (
	"fmt"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindSymbol  = tokenKind("symbol")
	tokenKindOr      = tokenKind("|")
	tokenKindEOF     = tokenKind("eof")
	tokenKindInvalid = tokenKind("invalid")
)

const (
	lexKindWhiteSpace = mlspec.LexKindName("white_space")
	lexKindOr         = mlspec.LexKindName("or")
	lexKindSymbol     = mlspec.LexKindName("symbol")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// genAlternativesLexSpec describes the right-hand side of a rule. Symbols are any runs of
// characters other than blanks and the alternative separator.
func genAlternativesLexSpec() *mlspec.LexSpec {
	return &mlspec.LexSpec{
		Name: "alternatives",
		Entries: []*mlspec.LexEntry{
			{
				Kind:    lexKindWhiteSpace,
				Pattern: mlspec.LexPattern(`[\u{0009}\u{0020}]+`),
			},
			{
				Kind:    lexKindOr,
				Pattern: mlspec.LexPattern(mlspec.EscapePattern(separatorAlternative)),
			},
			{
				Kind:    lexKindSymbol,
				Pattern: mlspec.LexPattern(`[^\u{0009}\u{000A}\u{000D}\u{0020}\u{007C}]+`),
			},
		},
	}
}

// lexer tokenizes the alternatives of one rule at a time. The compiled lexical specification
// is immutable and shared by every rule of one Parse call.
type lexer struct {
	s *mlspec.CompiledLexSpec
}

func newLexer() (*lexer, error) {
	s, err, cErrs := mlcompiler.Compile(genAlternativesLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
			}
			return nil, fmt.Errorf("failed to compile the rule lexer: %v", b.String())
		}
		return nil, err
	}
	return &lexer{
		s: s,
	}, nil
}

// tokenize splits src into symbol and separator tokens. col is the column of src within its
// line, so positions refer to the original rule text.
func (l *lexer) tokenize(src string, row int, col int) ([]*token, error) {
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(l.s), strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	var toks []*token
	for {
		tok, err := d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			toks = append(toks, &token{
				kind: tokenKindEOF,
				pos:  newPosition(row, col+len(src)),
			})
			return toks, nil
		}
		pos := newPosition(row, col+tok.Col+1)
		if tok.Invalid {
			toks = append(toks, &token{
				kind: tokenKindInvalid,
				text: string(tok.Lexeme),
				pos:  pos,
			})
			continue
		}

		switch l.s.KindNames[tok.KindID] {
		case lexKindWhiteSpace:
			continue
		case lexKindOr:
			toks = append(toks, &token{
				kind: tokenKindOr,
				pos:  pos,
			})
		case lexKindSymbol:
			toks = append(toks, &token{
				kind: tokenKindSymbol,
				text: string(tok.Lexeme),
				pos:  pos,
			})
		default:
			toks = append(toks, &token{
				kind: tokenKindInvalid,
				text: string(tok.Lexeme),
				pos:  pos,
			})
		}
	}
}
