package board

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is the root of every parse failure in this package.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidFEN represents an unparseable or impossible position string.
	ErrInvalidFEN = fmt.Errorf("%w: invalid fen", ErrMalformedInput)

	// ErrInvalidMoveNotation represents an unparseable move string.
	ErrInvalidMoveNotation = fmt.Errorf("%w: invalid move notation", ErrMalformedInput)

	// ErrIllegalState signals a broken contract between a caller and the
	// board, such as undoing past the start of the history.
	ErrIllegalState = errors.New("illegal state")
)
