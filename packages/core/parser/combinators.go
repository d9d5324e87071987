package parser

import (
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
)

// Pair holds the outputs of two sequenced parsers.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Then runs first and then second, keeping both outputs. A failure in either
// step is returned as is and the cursor is left where the failing step left
// it; sequencing is not a backtrack point.
func Then[T, U any, E Error](first Parser[T, E], second Parser[U, E]) Parser[Pair[T, U], E] {
	return func(c *cursor.Cursor) (Pair[T, U], E) {
		var out Pair[T, U]
		a, err := first(c)
		if Failed(err) {
			return out, err
		}
		b, err := second(c)
		if Failed(err) {
			return out, err
		}
		out.First, out.Second = a, b
		return out, err
	}
}

// After runs primary and then ignored, keeping only primary's output.
func After[T, U any, E Error](primary Parser[T, E], ignored Parser[U, E]) Parser[T, E] {
	return Map(Then(primary, ignored), func(p Pair[T, U]) T {
		return p.First
	})
}

// Before runs ignored and then primary, keeping only primary's output.
func Before[T, U any, E Error](ignored Parser[T, E], primary Parser[U, E]) Parser[U, E] {
	return Map(Then(ignored, primary), func(p Pair[T, U]) U {
		return p.Second
	})
}

// Map transforms the output of p with an infallible function.
func Map[T, U any, E Error](p Parser[T, E], f func(T) U) Parser[U, E] {
	return func(c *cursor.Cursor) (U, E) {
		v, err := p(c)
		if Failed(err) {
			var zero U
			return zero, err
		}
		return f(v), err
	}
}

// AndThen post-processes the output of p with a function that may fail. The
// function's error is converted through edge. f is not called when p fails.
//
// The cursor is not rewound when f fails: the input matched, only its
// interpretation did not.
func AndThen[T, U any, E, F Error](p Parser[T, E], f func(T) (U, F), edge Edge[F, E]) Parser[U, E] {
	return func(c *cursor.Cursor) (U, E) {
		var zero U
		v, err := p(c)
		if Failed(err) {
			return zero, err
		}
		out, ferr := f(v)
		if Failed(ferr) {
			return zero, convert(ferr, edge)
		}
		return out, err
	}
}

// Spanned pairs a parser's output with the input it consumed.
type Spanned[T any] struct {
	Value T
	Span  cursor.Span
}

// WithSpan records the span of input consumed by a successful p.
func WithSpan[T any, E Error](p Parser[T, E]) Parser[Spanned[T], E] {
	return func(c *cursor.Cursor) (Spanned[T], E) {
		m := c.Mark()
		v, err := p(c)
		if Failed(err) {
			return Spanned[T]{}, err
		}
		return Spanned[T]{Value: v, Span: c.SliceFrom(m)}, err
	}
}

// Rewind restores the cursor to where it was if p fails. Unrecoverable
// failures are returned where they happened.
func Rewind[T any, E Error](p Parser[T, E]) Parser[T, E] {
	return func(c *cursor.Cursor) (T, E) {
		m := c.Mark()
		v, err := p(c)
		if Failed(err) && !IsUnrecoverable(err) {
			c.Restore(m)
		}
		return v, err
	}
}

// Or tries each alternative from the same starting position and returns the
// first success. If every alternative fails, the cursor is restored and the
// last alternative's error is returned. An unrecoverable failure ends the
// search at once, with the cursor left at the failure.
func Or[T any, E Error](alts ...Parser[T, E]) Parser[T, E] {
	if len(alts) == 0 {
		panic("parser: Or needs at least one alternative")
	}
	return func(c *cursor.Cursor) (T, E) {
		m := c.Mark()
		var err E
		for _, alt := range alts {
			var v T
			v, err = alt(c)
			if !Failed(err) {
				return v, err
			}
			if IsUnrecoverable(err) {
				var zero T
				return zero, err
			}
			c.Restore(m)
		}
		var zero T
		return zero, err
	}
}

// Optional runs p and returns a pointer to its output, or nil without
// consuming input if p fails. Every failure counts as absence; use Maybe when
// unrecoverable failures must be reported.
func Optional[T any, E Error](p Parser[T, E]) Parser[*T, *Never] {
	return func(c *cursor.Cursor) (*T, *Never) {
		m := c.Mark()
		v, err := p(c)
		if Failed(err) {
			c.Restore(m)
			return nil, nil
		}
		return &v, nil
	}
}

// Maybe is Optional for grammars with unrecoverable failures: a recoverable
// failure gives nil, an unrecoverable one is returned.
func Maybe[T any, E Error](p Parser[T, E]) Parser[*T, E] {
	return func(c *cursor.Cursor) (*T, E) {
		v, err := Rewind(p)(c)
		if IsUnrecoverable(err) {
			return nil, err
		}
		var ok E
		if Failed(err) {
			return nil, ok
		}
		return &v, ok
	}
}

// Many applies sub repeatedly until it fails and returns the outputs in match
// order. The failed attempt is rewound, so Many never fails; zero matches give
// an empty slice.
//
// sub must consume input on every success. Many panics with a
// *NonAdvancingError rather than loop forever when it does not.
func Many[T any, E Error](sub Parser[T, E]) Parser[[]T, *Never] {
	return func(c *cursor.Cursor) ([]T, *Never) {
		out, _ := repeat(c, sub, false)
		return out, nil
	}
}

// Repeat is Many for grammars with unrecoverable failures. A recoverable
// failure ends the repetition; an unrecoverable one fails the whole Repeat.
func Repeat[T any, E Error](sub Parser[T, E]) Parser[[]T, E] {
	return func(c *cursor.Cursor) ([]T, E) {
		out, err := repeat(c, sub, true)
		if IsUnrecoverable(err) {
			return nil, err
		}
		var ok E
		return out, ok
	}
}

// Many1 is like Many but fails with sub's error when sub does not match at
// least once, or when any attempt fails unrecoverably.
func Many1[T any, E Error](sub Parser[T, E]) Parser[[]T, E] {
	return func(c *cursor.Cursor) ([]T, E) {
		out, err := repeat(c, sub, true)
		if len(out) == 0 || IsUnrecoverable(err) {
			return nil, err
		}
		var ok E
		return out, ok
	}
}

// repeat runs sub until it fails and returns the outputs and the terminating
// error. The cursor is left after the last success, or at an unrecoverable
// failure when commit is set.
func repeat[T any, E Error](c *cursor.Cursor, sub Parser[T, E], commit bool) ([]T, E) {
	out := make([]T, 0)
	for {
		m := c.Mark()
		v, err := sub(c)
		if Failed(err) {
			if !commit || !IsUnrecoverable(err) {
				c.Restore(m)
			}
			return out, err
		}
		if c.Mark() == m {
			panic(&NonAdvancingError{Offset: int(m)})
		}
		out = append(out, v)
	}
}
