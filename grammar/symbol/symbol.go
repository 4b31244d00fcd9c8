package symbol

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/utils"
)

type Kind string

const (
	KindNonTerminal = Kind("non-terminal")
	KindTerminal    = Kind("terminal")
	KindEpsilon     = Kind("epsilon")
	KindEndMarker   = Kind("end-marker")
)

func (k Kind) String() string {
	return string(k)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

type Symbol uint16

func (s Symbol) String() string {
	var prefix string
	switch {
	case s.IsNil():
		return "nil"
	case s.IsStart():
		prefix = "s"
	case s.IsEOF():
		return "$"
	case s.IsEpsilon():
		return "ε"
	case s.IsNonTerminal():
		prefix = "n"
	default:
		prefix = "t"
	}
	return fmt.Sprintf("%v%v", prefix, s.Num())
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	// A non-terminal with this bit is the augmented start symbol; a terminal with this bit is
	// either the end marker or epsilon.
	maskSubKindPart = uint16(0x4000) // 0100 0000 0000 0000
	maskOrdinary    = uint16(0x0000) // 0000 0000 0000 0000
	maskSpecial     = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumStart   = uint16(0x0001)
	symbolNumEOF     = uint16(0x0001)
	symbolNumEpsilon = uint16(0x0002)

	SymbolNil     = Symbol(0)                                            // 0000 0000 0000 0000
	symbolStart   = Symbol(maskNonTerminal | maskSpecial | symbolNumStart) // 0100 0000 0000 0001
	SymbolEOF     = Symbol(maskTerminal | maskSpecial | symbolNumEOF)      // 1100 0000 0000 0001
	SymbolEpsilon = Symbol(maskTerminal | maskSpecial | symbolNumEpsilon)  // 1100 0000 0000 0010

	// TextEOF is reserved; user grammars must not use it as a symbol.
	TextEOF     = "$"
	TextEpsilon = "ε"

	nonTerminalNumMin = SymbolNum(2) // The number 1 is used by the augmented start symbol.
	terminalNumMin    = SymbolNum(2) // The number 1 is used by the end marker.
	symbolNumMax      = SymbolNum(0xffff) >> 2
)

func newSymbol(kind Kind, isStart bool, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	if kind == KindTerminal && isStart {
		return SymbolNil, fmt.Errorf("a start symbol must be a non-terminal symbol")
	}

	kindMask := maskNonTerminal
	if kind == KindTerminal {
		kindMask = maskTerminal
	}
	subKindMask := maskOrdinary
	if isStart {
		subKindMask = maskSpecial
	}
	return Symbol(kindMask | subKindMask | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	return SymbolNum(uint16(s) & maskNumberPart)
}

func (s Symbol) Byte() []byte {
	if s.IsNil() {
		return []byte{0, 0}
	}
	return []byte{byte(uint16(s) >> 8), byte(uint16(s) & 0x00ff)}
}

// Kind returns the classification the symbol received when it was registered.
func (s Symbol) Kind() Kind {
	switch {
	case s.IsEOF():
		return KindEndMarker
	case s.IsEpsilon():
		return KindEpsilon
	case uint16(s)&maskKindPart > 0:
		return KindTerminal
	}
	return KindNonTerminal
}

func (s Symbol) IsNil() bool {
	return s.Num() == 0
}

func (s Symbol) isSpecial() bool {
	return !s.IsNil() && uint16(s)&maskSubKindPart > 0
}

func (s Symbol) IsStart() bool {
	return s.isSpecial() && uint16(s)&maskKindPart == maskNonTerminal
}

func (s Symbol) IsEOF() bool {
	return s == SymbolEOF
}

func (s Symbol) IsEpsilon() bool {
	return s == SymbolEpsilon
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	return uint16(s)&maskKindPart == maskNonTerminal
}

// IsTerminal reports whether the symbol can label a column of the ACTION table. The end
// marker counts as a terminal; epsilon does not.
func (s Symbol) IsTerminal() bool {
	if s.IsNil() || s.IsEpsilon() {
		return false
	}
	return !s.IsNonTerminal()
}

// Comparator orders symbols by their encoded value: non-terminals first, then the start
// symbol, then terminals in registration order. It fits gods' utils.Comparator.
func Comparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(Symbol)), int(b.(Symbol)))
}

type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   SymbolNum
	termNum      SymbolNum
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			TextEOF:     SymbolEOF,
			TextEpsilon: SymbolEpsilon,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF:     TextEOF,
			SymbolEpsilon: TextEpsilon,
		},
		termTexts: []string{
			"",      // Nil
			TextEOF, // EOF
		},
		nonTermTexts: []string{
			"", // Nil
			"", // Start Symbol
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

func (w *SymbolTableWriter) RegisterStartSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok && sym != symbolStart {
		return SymbolNil, fmt.Errorf("the start symbol name is already in use: %v", text)
	}
	w.text2Sym[text] = symbolStart
	w.sym2Text[symbolStart] = text
	w.nonTermTexts[symbolStart.Num().Int()] = text
	return symbolStart, nil
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("a symbol is already registered as a %v: %v", sym.Kind(), text)
		}
		return sym, nil
	}
	sym, err := newSymbol(KindNonTerminal, false, w.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nonTermNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.nonTermTexts = append(w.nonTermTexts, text)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if sym.Kind() != KindTerminal {
			return SymbolNil, fmt.Errorf("a symbol is already registered as a %v: %v", sym.Kind(), text)
		}
		return sym, nil
	}
	sym, err := newSymbol(KindTerminal, false, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.termTexts = append(w.termTexts, text)
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

// TerminalSymbols returns the end marker and all user terminals in ascending order.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int())
	for sym := range r.sym2Text {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// TerminalTexts returns terminal names indexed by symbol number.
func (r *SymbolTableReader) TerminalTexts() []string {
	return r.termTexts
}

// TerminalCount is the width of a row of the ACTION table.
func (r *SymbolTableReader) TerminalCount() int {
	return r.termNum.Int()
}

// NonTerminalSymbols returns the augmented start symbol and all user non-terminals in
// ascending order of their numbers.
func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.nonTermNum.Int())
	for sym := range r.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// NonTerminalTexts returns non-terminal names indexed by symbol number.
func (r *SymbolTableReader) NonTerminalTexts() ([]string, error) {
	if r.nonTermTexts[symbolStart.Num().Int()] == "" {
		return nil, fmt.Errorf("symbol table has no start symbol")
	}
	return r.nonTermTexts, nil
}

// NonTerminalCount is the width of a row of the GOTO table.
func (r *SymbolTableReader) NonTerminalCount() int {
	return r.nonTermNum.Int()
}
