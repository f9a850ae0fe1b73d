package recipes

import (
	"errors"
	"fmt"
)

// Kind classifies why a recipe request produced no recipes.
type Kind string

const (
	KindEmptyRequest          Kind = "EmptyRequest"
	KindGenerationUnavailable Kind = "GenerationUnavailable"
	KindMalformedOutput       Kind = "MalformedOutput"
	KindSchemaMismatch        Kind = "SchemaMismatch"
	KindNoValidRecipes        Kind = "NoValidRecipes"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the classification of err, or "" when err is not a
// recipe pipeline error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
