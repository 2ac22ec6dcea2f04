package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mapforge/internal/field"
	"mapforge/internal/store"
)

func testArenas() (*field.Arena, *field.Arena) {
	source := field.NewArena([]field.FieldNode{
		{ID: 1, Path: "order.id", Name: "id"},
		{ID: 2, Path: "order.total", Name: "total"},
	})
	target := field.NewArena([]field.FieldNode{
		{ID: 10, Path: "invoice.number", Name: "number"},
		{ID: 11, Path: "invoice.amount", Name: "amount"},
	})

	return source, target
}

func TestBuildRows(t *testing.T) {
	source, target := testArenas()
	logic := "copy verbatim"

	rows, err := BuildRows([]store.FieldMapping{
		{TargetFieldID: 10, Sources: store.SourceRefList{{SourceFieldID: 1}}, TransformationLogic: &logic},
		{TargetFieldID: 11, Sources: store.SourceRefList{{SourceFieldID: 1}, {SourceFieldID: 2}}},
	}, source, target)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "invoice.number", rows[0].TargetPath)
	assert.Equal(t, []string{"order.id"}, rows[0].SourcePaths)
	assert.Equal(t, "copy verbatim", rows[0].Logic)

	assert.Equal(t, []string{"order.id", "order.total"}, rows[1].SourcePaths)
}

func TestBuildRowsDanglingID(t *testing.T) {
	source, target := testArenas()

	_, err := BuildRows([]store.FieldMapping{{TargetFieldID: 999}}, source, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target field 999")
}

func TestWriteWorkbook(t *testing.T) {
	rows := []Row{
		{TargetPath: "invoice.number", SourcePaths: []string{"order.id"}, Logic: "copy"},
		{TargetPath: "invoice.amount", SourcePaths: []string{"order.total", "order.tax"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "orders-to-invoices", rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Mappings")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"Target Field", "Source Fields", "Transformation Logic"}, got[0])
	assert.Equal(t, []string{"invoice.number", "order.id", "copy"}, got[1])
	assert.Equal(t, "order.total, order.tax", got[2][1])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "orders-to-invoices", props.Title)
}
