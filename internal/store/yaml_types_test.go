package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSourceRefListAcceptsShorthand(t *testing.T) {
	var m FieldMapping

	require.NoError(t, yaml.Unmarshal([]byte(`
targetFieldId: 4
sources: [9, 3, 6]
`), &m))

	assert.Equal(t, []int64{9, 3, 6}, m.SourceFieldIDs())
	assert.Equal(t, 1, m.Sources[1].OrderIndex)
}

func TestSourceRefListAcceptsRecords(t *testing.T) {
	var m FieldMapping

	require.NoError(t, yaml.Unmarshal([]byte(`
targetFieldId: 4
sources:
  - sourceFieldId: 9
    orderIndex: 0
  - sourceFieldId: 3
    orderIndex: 1
`), &m))

	assert.Equal(t, []int64{9, 3}, m.SourceFieldIDs())
}

func TestSourceRefListAcceptsBareScalar(t *testing.T) {
	var m FieldMapping

	require.NoError(t, yaml.Unmarshal([]byte(`
targetFieldId: 4
sources: 12
`), &m))

	assert.Equal(t, []int64{12}, m.SourceFieldIDs())
}

func TestSourceRefListRejectsMapping(t *testing.T) {
	var m FieldMapping

	err := yaml.Unmarshal([]byte(`
targetFieldId: 4
sources: {bad: true}
`), &m)
	assert.Error(t, err)
}

func TestSourceRefListMarshalsRecords(t *testing.T) {
	m := FieldMapping{
		TargetFieldID: 4,
		Sources:       SourceRefList{{SourceFieldID: 9, OrderIndex: 0}, {SourceFieldID: 3, OrderIndex: 1}},
	}

	data, err := yaml.Marshal(m)
	require.NoError(t, err)

	// Always the explicit record form, so order indexes survive.
	assert.Contains(t, string(data), "sourceFieldId: 9")
	assert.Contains(t, string(data), "orderIndex: 1")

	var back FieldMapping
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, m.Sources, back.Sources)
}
