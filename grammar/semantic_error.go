package grammar

import "errors"

// These sentinels are the causes of the SpecErrors returned by GrammarBuilder.Build. Test
// for them with errors.Is.
var (
	ErrEmptyGrammar    = errors.New("a grammar needs at least one production")
	ErrUndefinedSymbol = errors.New("undefined symbol")
	ErrReservedSymbol  = errors.New("reserved symbol")
	ErrSymbolCollision = errors.New("a symbol collides with the augmented start symbol")
)

type SemanticError struct {
	message string
	cause   error
}

func newSemanticError(cause error, message string) *SemanticError {
	return &SemanticError{
		message: message,
		cause:   cause,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

func (e *SemanticError) Unwrap() error {
	return e.cause
}

var (
	semErrNoProduction = newSemanticError(ErrEmptyGrammar, "a grammar needs at least one production")
	semErrUndefinedSym = newSemanticError(ErrUndefinedSymbol, "undefined symbol")
	semErrEOFSym       = newSemanticError(ErrReservedSymbol, "$ is reserved as the end-of-input marker")
	semErrEpsilonLHS   = newSemanticError(ErrReservedSymbol, "ε cannot be the left-hand side of a production")
	semErrAugStartSym  = newSemanticError(ErrSymbolCollision, "the name of the augmented start symbol is already in use")
)
