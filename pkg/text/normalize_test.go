package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", " \n\t \n", ""},
		{"spaces", "  Hello    World  ", "Hello World"},
		{"line breaks", "first line\r\nsecond   line", "first line\nsecond line"},
		{"paragraphs", "one\n\n\n  \n two\nthree", "one\n\ntwo\nthree"},
		{"form feed", "page one\n\f\npage two", "page one\n\npage two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
