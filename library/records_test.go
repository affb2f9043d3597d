package library

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) (records [][]string, malformed []int) {
	t.Helper()
	r := newRecordReader(strings.NewReader(input))
	for {
		rec, line, err := r.Read()
		if err == io.EOF {
			return records, malformed
		}
		if err == errUnterminatedQuote {
			malformed = append(malformed, line)
			continue
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestRecordReader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      [][]string
		malformed []int
	}{
		{"plain", "a,b,c\nd,e,f\n", [][]string{{"a", "b", "c"}, {"d", "e", "f"}}, nil},
		{"empty fields", "a,,\n", [][]string{{"a", "", ""}}, nil},
		{"no final newline", "a,b", [][]string{{"a", "b"}}, nil},
		{"crlf", "a,b\r\nc\r\n", [][]string{{"a", "b"}, {"c"}}, nil},
		{"blank lines skipped", "a\n\n\r\nb\n", [][]string{{"a"}, {"b"}}, nil},
		{"quoted delimiter", `"a,b",c` + "\n", [][]string{{"a,b", "c"}}, nil},
		{"doubled quote", `"a""b"` + "\n", [][]string{{`a"b`}}, nil},
		{"text after closing quote", `"abc"x,y` + "\n", [][]string{{"abcx", "y"}}, nil},
		{"bare quote", `a"b,c` + "\n", [][]string{{`a"b`, "c"}}, nil},
		{"multi-line field", "\"a\nb\",c\nd\n", [][]string{{"a\nb", "c"}, {"d"}}, nil},
		{"unterminated quote", "x\n\"open,1\nnext,2\nlast,3\n", [][]string{{"x"}, {"next", "2"}, {"last", "3"}}, []int{2}},
		{"unterminated on last line", "a\n\"b", [][]string{{"a"}}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, malformed := readAll(t, tt.input)
			assert.Equal(t, tt.want, records)
			assert.Equal(t, tt.malformed, malformed)
		})
	}
}
