package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleStatement(t *testing.T) {
	forms, err := Parse(`(+  2 5)`)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	form := forms[0]
	require.True(t, form.Is(KindList))

	items := form.List()
	require.Len(t, items, 3)

	assert.True(t, items[0].Is(KindSymbol))
	assert.Equal(t, "+", items[0].Symbol().Token)

	assert.True(t, items[1].Is(KindNumber))
	assert.Equal(t, 2.0, items[1].Number())

	assert.True(t, items[2].Is(KindNumber))
	assert.Equal(t, 5.0, items[2].Number())
}

func TestParseStrings(t *testing.T) {
	forms, err := Parse(`"test String"
"test \t tab" "test \r\n newline" "test \" escape"`)
	require.NoError(t, err)
	require.Len(t, forms, 4)

	assert.Equal(t, "test String", forms[0].Text())
	assert.Equal(t, "test \t tab", forms[1].Text())
	assert.Equal(t, "test \n newline", forms[2].Text())
	assert.Equal(t, `test " escape`, forms[3].Text())
}

func TestParseAtoms(t *testing.T) {
	forms, err := Parse(`:test-atom`)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	require.True(t, forms[0].Is(KindAtom))
	assert.Equal(t, "test-atom", forms[0].Text())
}

func TestParseNil(t *testing.T) {
	forms, err := Parse(`nil`)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.True(t, forms[0].IsNil())
}

func TestParseSymbols(t *testing.T) {
	forms, err := Parse(`test-sym namespaced.sym deep.name.space`)
	require.NoError(t, err)
	require.Len(t, forms, 3)

	assert.Equal(t, Symbol{Token: "test-sym"}, forms[0].Symbol())
	assert.Equal(t, Symbol{NS: "namespaced", Token: "sym"}, forms[1].Symbol())
	assert.Equal(t, Symbol{NS: "deep.name", Token: "space"}, forms[2].Symbol())
}

func TestParseNumbers(t *testing.T) {
	forms, err := Parse(`1 2.4 -3 +8.25`)
	require.NoError(t, err)
	require.Len(t, forms, 4)

	assert.Equal(t, 1.0, forms[0].Number())
	assert.Equal(t, 2.4, forms[1].Number())
	assert.Equal(t, -3.0, forms[2].Number())
	assert.Equal(t, 8.25, forms[3].Number())
}

func TestParseBools(t *testing.T) {
	forms, err := Parse(`true false`)
	require.NoError(t, err)
	require.Len(t, forms, 2)

	assert.Equal(t, true, forms[0].Bool())
	assert.Equal(t, false, forms[1].Bool())
}

func TestParseVector(t *testing.T) {
	forms, err := Parse(`[+ 2 5]`)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	require.True(t, forms[0].Is(KindVector))
	items := forms[0].List()
	require.Len(t, items, 3)
	assert.Equal(t, "+", items[0].Symbol().Token)
	assert.Equal(t, 2.0, items[1].Number())
	assert.Equal(t, 5.0, items[2].Number())
}

func TestParseMap(t *testing.T) {
	forms, err := Parse(`{2 5}`)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	require.True(t, forms[0].Is(KindMap))
	m := forms[0].Map()
	require.Equal(t, 1, m.Len())

	k, v := m.Entry(0)
	assert.Equal(t, 2.0, k.Number())
	assert.Equal(t, 5.0, v.Number())
}

func TestParseMapMissingValue(t *testing.T) {
	forms, err := Parse(`{2 5 7}`)
	assert.Nil(t, forms)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing value in map")
}

func TestParseNestedForms(t *testing.T) {
	forms, err := Parse(`(outer [1 {:k (inner)}])`)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	items := forms[0].List()
	require.Len(t, items, 2)

	vec := items[1].List()
	require.Len(t, vec, 2)
	require.True(t, vec[1].Is(KindMap))

	_, v := vec[1].Map().Entry(0)
	assert.True(t, v.Is(KindList))
}

func TestParseBracketMismatch(t *testing.T) {
	testCases := []struct {
		In  string
		Msg string
	}{
		{`(]`, "unexpected token bracket_end"},
		{`[}`, "unexpected token brace_end"},
		{`{1 2))`, "unexpected token paren_end"},
		{`)`, "unexpected token paren_end"},
		{`(`, "unexpected EOF"},
		{`[1 2`, "unexpected EOF"},
	}

	for _, tc := range testCases {
		forms, err := Parse(tc.In)
		assert.Nil(t, forms, "input: %q", tc.In)
		require.Error(t, err, "input: %q", tc.In)
		assert.Contains(t, err.Error(), tc.Msg, "input: %q", tc.In)

		var perr *ParseError
		assert.ErrorAs(t, err, &perr, "input: %q", tc.In)
	}
}

func TestParseLexFailure(t *testing.T) {
	forms, err := Parse(`(add 1 ; 2)`)
	assert.Nil(t, forms)
	assert.Error(t, err)
}
