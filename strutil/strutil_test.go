package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindNotEscaped(t *testing.T) {
	s := `Marry \t had a little lamb,\n little lamb. Marry had a \n little \" lamb who\'s fleece was white as snow!`

	t.Run("no occurrence", func(t *testing.T) {
		assert.Equal(t, len(s), FindNotEscaped(s, 0, len(s), '$', DefaultEscape))
	})

	t.Run("no unescaped occurrence", func(t *testing.T) {
		assert.Equal(t, len(s), FindNotEscaped(s, 0, len(s), '\'', DefaultEscape))
	})

	t.Run("unescaped after escaped", func(t *testing.T) {
		assert.Equal(t, 17, FindNotEscaped(s, 0, len(s), 't', DefaultEscape))
	})

	t.Run("no previous escape", func(t *testing.T) {
		assert.Equal(t, 1, FindNotEscaped(s, 0, len(s), 'a', DefaultEscape))
	})

	t.Run("custom escape", func(t *testing.T) {
		assert.Equal(t, 3, FindNotEscaped(s, 0, len(s), 'r', 'a'))
	})

	t.Run("match at scan start", func(t *testing.T) {
		assert.Equal(t, 8, FindNotEscaped(s, 8, len(s), ' ', DefaultEscape))
	})
}

func TestFindNotQuoted(t *testing.T) {
	s := `Jack was "nimble" "jack was \" quick$" jack jumped over "the candlestick"$`

	t.Run("no occurrence", func(t *testing.T) {
		assert.Equal(t, len(s), FindNotQuoted(s, 0, len(s), 'z'))
	})

	t.Run("no unquoted occurrence", func(t *testing.T) {
		assert.Equal(t, len(s), FindNotQuoted(s, 0, len(s), 'q'))
	})

	t.Run("unquoted after quoted", func(t *testing.T) {
		assert.Equal(t, 46, FindNotQuoted(s, 0, len(s), 'm'))
	})

	t.Run("no previously quoted", func(t *testing.T) {
		assert.Equal(t, 3, FindNotQuoted(s, 0, len(s), 'k'))
	})

	t.Run("unquoted after escaped quote", func(t *testing.T) {
		assert.Equal(t, 73, FindNotQuoted(s, 0, len(s), '$'))
	})
}

func TestFindNotEscapedStack(t *testing.T) {
	testCases := []struct {
		Name string
		In   string
		Out  int
	}{
		{"plain", `}{{}{{{}}{}}{}}{}{{}}}}`, 0},
		{"pairs", `{{}{{{}}{}}{}}{}{{}}}}`, 13},
		{"escaped", `\}{{}{{{}}{}}{}}{}{{}}}}`, 15},
		{"escaped pairs", `{\{}{{{}}{}}{}}{}{{}}}}`, 3},
		{"escaped with escaped pairs", `{\{\}{{{}}{}}{}}{}{{}}}}`, 15},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Out, FindNotEscapedStack(tc.In, 0, len(tc.In), '}', '{', DefaultEscape))
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		s := `{{}`
		assert.Equal(t, len(s), FindNotEscapedStack(s, 0, len(s), '}', '{', DefaultEscape))
	})
}

func TestFindAfterNewlineWS(t *testing.T) {
	t.Run("scan start counts as line start", func(t *testing.T) {
		s := "~tag~ rest"
		assert.Equal(t, 0, FindAfterNewlineWS(s, 0, len(s), '~'))
	})

	t.Run("mid line is skipped", func(t *testing.T) {
		s := "text ~tag~\n  ~end~"
		assert.Equal(t, 13, FindAfterNewlineWS(s, 0, len(s), '~'))
	})

	t.Run("indented line matches", func(t *testing.T) {
		s := "abc\n\t ~x~"
		assert.Equal(t, 6, FindAfterNewlineWS(s, 0, len(s), '~'))
	})

	t.Run("none", func(t *testing.T) {
		s := "abc def"
		assert.Equal(t, len(s), FindAfterNewlineWS(s, 0, len(s), '~'))
	})
}

func TestStartsWithTrailsNewlineWS(t *testing.T) {
	testCases := []struct {
		In     string
		Needle string
		Out    bool
	}{
		{"~tag~", "~tag~", true},
		{"~tag~   ", "~tag~", true},
		{"~tag~ \t\r\nmore", "~tag~", true},
		{"~tag~ text", "~tag~", false},
		{"~other~", "~tag~", false},
		{"~ta", "~tag~", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.Out, StartsWithTrailsNewlineWS(tc.In, 0, len(tc.In), tc.Needle), "in: %q", tc.In)
	}
}

func TestEndsWithNewlineWS(t *testing.T) {
	testCases := []struct {
		In  string
		Out bool
	}{
		{"abc\n", true},
		{"abc\n   ", true},
		{"abc\n\t\r", true},
		{"abc", false},
		{"abc\ndef", false},
		{"   ", false},
		{"", false},
		{"\n", true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.Out, EndsWithNewlineWS(tc.In), "in: %q", tc.In)
	}
}

func TestBinCompare(t *testing.T) {
	assert.Equal(t, 0, BinCompare("abc", "abc"))
	assert.Equal(t, -1, BinCompare("abb", "abc"))
	assert.Equal(t, 1, BinCompare("abd", "abc"))
	assert.Equal(t, -1, BinCompare("ab", "abc"))
	assert.Equal(t, 1, BinCompare("B", "A"))
}
