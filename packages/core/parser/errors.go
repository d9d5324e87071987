package parser

import (
	"fmt"

	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
)

// Never is the error type of parsers that cannot fail. The only valid *Never
// value is nil.
//
// Go has no uninhabited type, so a non-nil *Never can be constructed; the
// conversions in this package treat one as a broken invariant and panic.
type Never struct {
	_ struct{}
}

func (*Never) Error() string {
	return "parser: infallible parser reported a failure"
}

// Edge is a declared conversion from error type E into error type F. Edges do
// not compose implicitly; use ChainEdge for multi-hop conversions.
type Edge[E, F Error] func(E) F

// FromNever is the universal edge out of the infallible error type.
func FromNever[F Error](n *Never) F {
	if n != nil {
		panic(n)
	}
	var ok F
	return ok
}

// ChainEdge composes two edges into one.
func ChainEdge[E, F, G Error](first Edge[E, F], second Edge[F, G]) Edge[E, G] {
	return func(e E) G {
		return second(first(e))
	}
}

// ConvertErr re-targets the error type of p. Successes pass through unchanged;
// every failure is converted through edge.
func ConvertErr[T any, E, F Error](p Parser[T, E], edge Edge[E, F]) Parser[T, F] {
	return func(c *cursor.Cursor) (T, F) {
		v, err := p(c)
		if Failed(err) {
			var zero T
			return zero, convert(err, edge)
		}
		var ok F
		return v, ok
	}
}

// convert applies edge to a failure. An edge that turns a failure into the
// zero value would make a failed parse look successful, so it panics instead.
func convert[E, F Error](err E, edge Edge[E, F]) F {
	converted := edge(err)
	if !Failed(converted) {
		panic(fmt.Sprintf("parser: edge from %T to %T mapped failure %q to success", err, converted, err.Error()))
	}
	return converted
}

// Lift gives an infallible parser any error type, so it can be sequenced with
// fallible parsers without declaring an edge.
func Lift[T any, F Error](p Parser[T, *Never]) Parser[T, F] {
	return ConvertErr[T, *Never, F](p, FromNever[F])
}

// Unrecoverable is implemented by error types that can mark a failure as
// committed. Rewind, Or, Maybe, Repeat and Many1 return such a failure where
// it happened instead of backtracking past it. Many and Optional cannot fail,
// so they still treat it as the end of the match.
type Unrecoverable interface {
	Unrecoverable() bool
}

// IsUnrecoverable reports whether err is a failure whose type marks it as
// unrecoverable.
func IsUnrecoverable[E Error](err E) bool {
	if !Failed(err) {
		return false
	}
	u, ok := any(err).(Unrecoverable)
	return ok && u.Unrecoverable()
}

// Commit passes every failure of p through mark, which decides whether it
// becomes unrecoverable. It is how a grammar cuts off backtracking once enough
// input has been seen to know which rule applies.
func Commit[T any, E Error](p Parser[T, E], mark Edge[E, E]) Parser[T, E] {
	return ConvertErr(p, mark)
}

// NonAdvancingError is the panic value raised by Many and Many1 when their
// sub-parser succeeds without consuming input, which would otherwise repeat
// forever.
type NonAdvancingError struct {
	Offset int
}

func (e *NonAdvancingError) Error() string {
	return fmt.Sprintf("parser: repeated parser succeeded without consuming input at offset %d", e.Offset)
}
