package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrderedPreservesMemberOrder(t *testing.T) {
	v, err := DecodeOrdered([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind)

	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}

	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestDecodeOrderedScalars(t *testing.T) {
	tests := []struct {
		input   string
		kind    ValueKind
		literal string
	}{
		{`"text"`, KindString, "text"},
		{`12.5`, KindNumber, "12.5"},
		{`true`, KindBool, "true"},
		{`null`, KindNull, ""},
	}

	for _, tt := range tests {
		v, err := DecodeOrdered([]byte(tt.input))
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.kind, v.Kind, tt.input)
		assert.Equal(t, tt.literal, v.Literal, tt.input)
	}
}

func TestDecodeOrderedRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{`{`, `{"a":}`, `[1, 2`, `{} trailing`, ``} {
		_, err := DecodeOrdered([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestValueMemberHelpers(t *testing.T) {
	v, err := DecodeOrdered([]byte(`{"type": "string", "nested": {"x": 1}, "gone": null}`))
	require.NoError(t, err)

	lit, ok := v.MemberLiteral("type")
	require.True(t, ok)
	assert.Equal(t, "string", lit)

	// Composite and null members carry no literal.
	_, ok = v.MemberLiteral("nested")
	assert.False(t, ok)
	_, ok = v.MemberLiteral("gone")
	assert.False(t, ok)

	assert.True(t, v.Has("nested"))
	assert.False(t, v.Has("missing"))
}
