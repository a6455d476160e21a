// Package errors defines the failure taxonomy shared by every pipeline stage:
// I/O failures, SDL parse failures and lookups of names that do not exist.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQueryField reports that the query root has no field returning the filter root.
	ErrNoQueryField = errors.New("no query field returns the root type")

	// ErrDuplicateID reports two concepts hashing to the same identifier.
	ErrDuplicateID = errors.New("duplicate concept id")
)

// QueryError is a located SDL diagnostic.
type QueryError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Rule      string     `json:"-"`
	Err       error      `json:"-"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

func (a Location) IsZero() bool {
	return a.Line == 0 && a.Column == 0
}

func Errorf(format string, a ...interface{}) *QueryError {
	qe := &QueryError{
		Message: fmt.Sprintf(format, a...),
	}
	for _, arg := range a {
		if err, ok := arg.(error); ok {
			qe.Err = err
			break
		}
	}
	return qe
}

func (err *QueryError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (line %d, column %d)", loc.Line, loc.Column)
	}
	return str
}

func (err *QueryError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.Err
}

var _ error = &QueryError{}

// IOError is a failure to read or write a schema, bundle or output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError is an SDL document that does not form a valid schema. File and
// the locations of Err refer to the original source file when known.
type ParseError struct {
	File string
	Err  *QueryError
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.File, e.Err.Error())
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError is a lookup of a named element that is absent from the schema.
type NotFoundError struct {
	Kind string
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s '%s' not found in schema: %v", e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s '%s' not found in schema", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// New returns an error that formats as the given text.
func New(text string) error { return errors.New(text) }
