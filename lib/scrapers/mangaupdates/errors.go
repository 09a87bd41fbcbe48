package mangaupdates

import (
	"errors"
	"fmt"
)

// ErrNotPopulated is returned by every accessor that needs page data
// before the corresponding Populate has succeeded.
var ErrNotPopulated = errors.New("page has not been fetched, call Populate first")

// InvalidIDError reports a series id that is rejected before any
// network activity (zero or negative).
type InvalidIDError struct {
	ID int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid series id %d", e.ID)
}

// NotFoundError reports that the site answered with its "no such
// series" placeholder page for the given id.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("series %d does not exist", e.ID)
}

// InvalidListError reports a list name the site does not recognize.
type InvalidListError struct {
	Name string
}

func (e *InvalidListError) Error() string {
	return fmt.Sprintf("invalid list %q", e.Name)
}

// ParseError reports markup that does not have the shape a field parser
// expects: a missing section, a missing element, or a missing
// attribute. Field names the page region that failed.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected markup in %q", e.Field)
}

// PatternError reports text that an extraction pattern failed to match.
// It unwraps to a *ParseError so callers can treat both failures
// uniformly with errors.As.
type PatternError struct {
	Field   string
	Pattern string
	Input   string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q did not match %q in %q", e.Pattern, e.Input, e.Field)
}

func (e *PatternError) Unwrap() error {
	return &ParseError{Field: e.Field}
}
