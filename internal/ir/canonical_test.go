package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -100, "-100"},
		{"max int64", int64(9223372036854775807), "9223372036854775807"},
		{"bool", true, "true"},
		{"null", nil, "null"},
		{"empty array", []string{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"simple object", map[string]int{"a": 1}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	result, err := MarshalCanonical(map[string]any{"z": 1, "a": 2, "m": map[string]any{"y": 1, "b": 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"m":{"b":2,"y":1},"z":1}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+E000 sorts after U+1F600 in UTF-8 but before it in UTF-16
	// (surrogate pairs start at 0xD800).
	result, err := MarshalCanonical(map[string]int{"\uE000": 2, "\U0001F600": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":1,\"\uE000\":2}", string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical("<a & b>")
	require.NoError(t, err)
	assert.Equal(t, `"<a & b>"`, string(result))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "e" + combining acute accent normalizes to precomposed U+00E9.
	result, err := MarshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalCanonicalLineSeparatorsNotEscaped(t *testing.T) {
	result, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(result))
}

func TestMarshalCanonicalLiteralBackslashU2028(t *testing.T) {
	// A literal backslash followed by the text "u2028" must stay escaped.
	result, err := MarshalCanonical(`\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"\\u2028"`, string(result))
}

func TestDigestIgnoresMapOrderAndTracksContent(t *testing.T) {
	a := NewPsmClass()
	a.SetIRI("https://example.org/class/a")
	b := NewPsmAttribute()
	b.SetIRI("https://example.org/attribute/b")

	d1, err := Digest(map[string]Resource{a.IRI(): a, b.IRI(): b})
	require.NoError(t, err)
	d2, err := Digest(map[string]Resource{b.IRI(): b, a.IRI(): a})
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	changed := a.Clone().(*PsmClass)
	changed.TechnicalLabel = "person"
	d3, err := Digest(map[string]Resource{changed.IRI(): changed, b.IRI(): b})
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
	assert.Len(t, d1, 64)
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}
