package builtin

import (
	"strings"

	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Quoted matches a string delimited by quote on a single line and returns its
// contents with backslash escapes (\n, \t, \r, \\ and the quote itself)
// decoded. Contents without escapes are returned without copying. A line
// break, escaped or not, leaves the string unterminated.
func Quoted(quote rune) parser.Parser[string, *QuoteError] {
	return func(c *cursor.Cursor) (string, *QuoteError) {
		m := c.Mark()
		if c.Peek() != quote {
			return "", &QuoteError{Quote: quote, Offset: int(m)}
		}
		c.Next()
		start := c.Mark()

		var b *strings.Builder
		for {
			r := c.Peek()
			switch r {
			case cursor.EOF, '\n':
				c.Restore(m)
				return "", &QuoteError{Quote: quote, Offset: int(m), Unterminated: true}
			case quote:
				raw := c.SliceFrom(start).String()
				c.Next()
				if b == nil {
					return raw, nil
				}
				return b.String(), nil
			case '\\':
				if b == nil {
					b = &strings.Builder{}
					b.WriteString(c.SliceFrom(start).String())
				}
				c.Next()
				esc := c.Next()
				switch esc {
				case cursor.EOF, '\n':
					c.Restore(m)
					return "", &QuoteError{Quote: quote, Offset: int(m), Unterminated: true}
				case 'n':
					b.WriteByte('\n')
				case 't':
					b.WriteByte('\t')
				case 'r':
					b.WriteByte('\r')
				default:
					b.WriteRune(esc)
				}
			default:
				c.Next()
				if b != nil {
					b.WriteRune(r)
				}
			}
		}
	}
}
