package library

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var errUnterminatedQuote = errors.New("quoted field not closed before end of file")

const fieldDelimiter = ','

type fieldState int

const (
	startField fieldState = iota
	inField
	inQuotedField
	quoteInQuotedField
)

type rawLine struct {
	text string
	num  int
}

// recordReader splits comma-separated text into records with lenient quoting:
// a quote opens a quoted field only at the start of a field, a doubled quote
// inside it is a literal quote, text after the closing quote is kept, and a
// quoted field may span lines. Blank lines are skipped.
//
// A quoted field still open at end of input makes its record malformed; the
// lines it swallowed are read again as records of their own.
type recordReader struct {
	br      *bufio.Reader
	pending []rawLine
	line    int
	err     error
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{br: bufio.NewReader(r)}
}

func (r *recordReader) next() (rawLine, error) {
	if len(r.pending) > 0 {
		l := r.pending[0]
		r.pending = r.pending[1:]
		return l, nil
	}
	if r.err != nil {
		return rawLine{}, r.err
	}
	s, err := r.br.ReadString('\n')
	if err != nil {
		r.err = err
		if s == "" {
			return rawLine{}, err
		}
	}
	r.line++
	return rawLine{text: s, num: r.line}, nil
}

// Read returns the next record and the line it starts on. The error is
// io.EOF at end of input, errUnterminatedQuote for a malformed record, or
// the underlying read error.
func (r *recordReader) Read() ([]string, int, error) {
	for {
		first, err := r.next()
		if err != nil {
			return nil, 0, err
		}
		if body, _ := splitLineEnd(first.text); body == "" {
			continue
		}
		fields, err := r.parse(first)
		return fields, first.num, err
	}
}

func (r *recordReader) parse(first rawLine) ([]string, error) {
	var (
		fields    []string
		field     strings.Builder
		state     = startField
		swallowed []rawLine
	)
	save := func() {
		fields = append(fields, field.String())
		field.Reset()
		state = startField
	}

	cur := first
	for {
		body, end := splitLineEnd(cur.text)
		for _, c := range body {
			switch state {
			case startField:
				switch c {
				case '"':
					state = inQuotedField
				case fieldDelimiter:
					save()
				default:
					field.WriteRune(c)
					state = inField
				}
			case inField:
				if c == fieldDelimiter {
					save()
				} else {
					field.WriteRune(c)
				}
			case inQuotedField:
				if c == '"' {
					state = quoteInQuotedField
				} else {
					field.WriteRune(c)
				}
			case quoteInQuotedField:
				switch c {
				case '"':
					field.WriteRune('"')
					state = inQuotedField
				case fieldDelimiter:
					save()
				default:
					field.WriteRune(c)
					state = inField
				}
			}
		}
		if state != inQuotedField {
			save()
			return fields, nil
		}

		field.WriteString(end)
		next, err := r.next()
		if err == io.EOF {
			r.pending = append(swallowed, r.pending...)
			return nil, errUnterminatedQuote
		}
		if err != nil {
			return nil, err
		}
		swallowed = append(swallowed, next)
		cur = next
	}
}

func splitLineEnd(s string) (body, end string) {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2], "\r\n"
	case strings.HasSuffix(s, "\n"):
		return s[:len(s)-1], "\n"
	}
	return s, ""
}
