package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrReadOnly indicates a mutation was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrUnknownAttribute indicates an attribute name that is not recognized.
	ErrUnknownAttribute = errors.New("unknown attribute")

	// ErrWrongLevel indicates a character attribute where a line attribute
	// was expected, or the reverse.
	ErrWrongLevel = errors.New("attribute has the wrong level")
)
