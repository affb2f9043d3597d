package library

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Bytes that Windows-1252 leaves undefined. The x/text decoder passes them
// through as C1 control runes; they are substituted instead.
var undefinedCP1252 = [256]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// undecodableCounter counts the bytes of the underlying stream that have no
// Windows-1252 mapping.
type undecodableCounter struct {
	r io.Reader
	n int
}

func (c *undecodableCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for _, b := range p[:n] {
		if undefinedCP1252[b] {
			c.n++
		}
	}
	return n, err
}

// newLegacyReader decodes r as Windows-1252, replacing every undefined byte
// with U+FFFD. A leading UTF-8 byte order mark is dropped.
func newLegacyReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	substitute := runes.Map(func(r rune) rune {
		if r >= 0x80 && r <= 0x9F {
			return utf8.RuneError
		}
		return r
	})
	return transform.NewReader(br, transform.Chain(charmap.Windows1252.NewDecoder(), substitute))
}
