package builtin

import (
	"strconv"

	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Int reads a Word and converts it to an integer of type I. The cursor is
// restored if the word is not a valid I, including when it overflows.
//
//	n, err := builtin.Int[int32](c)
func Int[I constraints.Integer](c *cursor.Cursor) (I, *IntError) {
	m := c.Mark()
	word, werr := Word(c)
	if werr != nil {
		return 0, &IntError{Offset: werr.Offset, Word: werr}
	}
	n, err := parseInteger[I](word.String())
	if err != nil {
		c.Restore(m)
		return 0, &IntError{Offset: int(m), Parse: err}
	}
	return n, nil
}

// UUID reads a Word and parses it as a UUID in any form accepted by
// uuid.Parse.
func UUID(c *cursor.Cursor) (uuid.UUID, *UUIDError) {
	m := c.Mark()
	word, werr := Word(c)
	if werr != nil {
		return uuid.Nil, &UUIDError{Offset: werr.Offset, Word: werr}
	}
	id, err := uuid.Parse(word.String())
	if err != nil {
		c.Restore(m)
		return uuid.Nil, &UUIDError{Offset: int(m), Parse: err}
	}
	return id, nil
}

func parseInteger[I constraints.Integer](s string) (I, error) {
	signed := I(0)-1 < 0
	if signed {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		if int64(I(n)) != n {
			return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrRange}
		}
		return I(n), nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if uint64(I(n)) != n {
		return 0, &strconv.NumError{Func: "ParseUint", Num: s, Err: strconv.ErrRange}
	}
	return I(n), nil
}
