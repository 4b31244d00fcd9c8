package grammar

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// NonTerminal carries the FIRST and FOLLOW sets of the symbol as terminal numbers. FOLLOW may
// contain the end marker; FIRSTContainsEmpty tells whether the symbol derives the empty string.
type NonTerminal struct {
	Number             int    `json:"number"`
	Name               string `json:"name"`
	First              []int  `json:"first"`
	FirstContainsEmpty bool   `json:"first_contains_empty"`
	Follow             []int  `json:"follow"`
}

// Production describes a production. RHS holds terminal numbers as positive values and
// non-terminal numbers as negative values.
type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type Item struct {
	Production int `json:"production"`
	Dot        int `json:"dot"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

type SRConflict struct {
	Symbol            int  `json:"symbol"`
	State             int  `json:"state"`
	Production        int  `json:"production"`
	AdoptedState      *int `json:"adopted_state"`
	AdoptedProduction *int `json:"adopted_production"`
	ResolvedBy        int  `json:"resolved_by"`
}

type RRConflict struct {
	Symbol            int `json:"symbol"`
	Production1       int `json:"production_1"`
	Production2       int `json:"production_2"`
	AdoptedProduction int `json:"adopted_production"`
	ResolvedBy        int `json:"resolved_by"`
}

// State describes one state of the automaton. Kernel is a subset of Items.
type State struct {
	Number     int           `json:"number"`
	Kernel     []*Item       `json:"kernel"`
	Items      []*Item       `json:"items"`
	Shift      []*Transition `json:"shift"`
	Reduce     []*Reduce     `json:"reduce"`
	GoTo       []*Transition `json:"goto"`
	Accept     bool          `json:"accept"`
	SRConflict []*SRConflict `json:"sr_conflict"`
	RRConflict []*RRConflict `json:"rr_conflict"`
}

// Report describes the augmented grammar, its automaton and its parsing table. Terminals,
// NonTerminals, and Productions are indexed by their numbers; index 0 is unused.
type Report struct {
	Name                 string         `json:"name"`
	StartSymbol          string         `json:"start_symbol"`
	AugmentedStartSymbol string         `json:"augmented_start_symbol"`
	EOFSymbol            int            `json:"eof_symbol"`
	Terminals            []*Terminal    `json:"terminals"`
	NonTerminals         []*NonTerminal `json:"non_terminals"`
	Productions          []*Production  `json:"productions"`
	States               []*State       `json:"states"`
}

// ConflictCount returns the number of shift/reduce and reduce/reduce conflicts.
func (r *Report) ConflictCount() (int, int) {
	sr := 0
	rr := 0
	for _, s := range r.States {
		sr += len(s.SRConflict)
		rr += len(s.RRConflict)
	}
	return sr, rr
}

// SymbolName returns the name of a terminal (positive) or non-terminal (negative) as encoded
// in Production.RHS.
func (r *Report) SymbolName(sym int) string {
	if sym < 0 {
		return r.NonTerminals[-sym].Name
	}
	return r.Terminals[sym].Name
}
