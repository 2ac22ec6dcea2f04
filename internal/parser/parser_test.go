package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/apperr"
)

func TestParseFormatAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSONSchema},
		{"jsonschema", FormatJSONSchema},
		{"json-schema", FormatJSONSchema},
		{"JSON-Schema", FormatJSONSchema},
		{"xsd", FormatXSD},
		{"xml", FormatXSD},
		{" xsd ", FormatXSD},
	}

	for _, tt := range tests {
		format, err := ParseFormat(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, format, tt.input)
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	_, err := ParseFormat("avro")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSONSchema, FormatXSD} {
		parsed, err := ParseFormat(format.String())
		require.NoError(t, err)
		assert.Equal(t, format, parsed)
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []Format{FormatJSONSchema, FormatXSD} {
		p, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, format, p.Format())
	}

	_, err := ForFormat(Format(99))
	assert.Error(t, err)
}
