package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/apperr"
	"mapforge/internal/field"
)

func TestYAMLRepositorySchemaRoundTrip(t *testing.T) {
	repo, err := NewYAMLRepository(t.TempDir())
	require.NoError(t, err)

	desc := "order number"
	schema := &Schema{
		ID:     uuid.New(),
		Name:   "orders",
		Format: "jsonschema",
		Nodes: []field.FieldNode{
			{ID: 1, Path: "id", Name: "id", DataType: "string", IsMandatory: true, Description: &desc},
		},
	}

	require.NoError(t, repo.SaveSchema(schema))

	got, err := repo.GetSchema(schema.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.Name, got.Name)
	require.Len(t, got.Nodes, 1)
	assert.Equal(t, schema.Nodes[0], got.Nodes[0])
}

func TestYAMLRepositoryProfileRoundTrip(t *testing.T) {
	repo, err := NewYAMLRepository(t.TempDir())
	require.NoError(t, err)

	logic := "uppercase"
	first := int64(9)
	profile := &Profile{
		ID:             uuid.New(),
		Name:           "orders-to-invoices",
		SourceSchemaID: uuid.New(),
		TargetSchemaID: uuid.New(),
		Mappings: []FieldMapping{
			{
				TargetFieldID:       4,
				SourceFieldID:       &first,
				Sources:             SourceRefList{{SourceFieldID: 9, OrderIndex: 0}, {SourceFieldID: 3, OrderIndex: 1}},
				TransformationLogic: &logic,
			},
		},
	}

	require.NoError(t, repo.SaveProfile(profile))

	got, err := repo.GetProfile(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.Mappings, got.Mappings)
}

func TestYAMLRepositoryNotFound(t *testing.T) {
	repo, err := NewYAMLRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.GetSchema(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	err = repo.DeleteProfile(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestYAMLRepositoryListIgnoresForeignFiles(t *testing.T) {
	root := t.TempDir()

	repo, err := NewYAMLRepository(root)
	require.NoError(t, err)

	schema := &Schema{ID: uuid.New(), Name: "only", Format: "xsd"}
	require.NoError(t, repo.SaveSchema(schema))

	// Stray files in the workspace are not schema records.
	require.NoError(t, os.WriteFile(filepath.Join(root, "schemas", "notes.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "schemas", "README.md"), []byte("x"), 0o644))

	schemas, err := repo.ListSchemas()
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, "only", schemas[0].Name)
}

func TestYAMLRepositoryDeleteSchemaCascades(t *testing.T) {
	repo, err := NewYAMLRepository(t.TempDir())
	require.NoError(t, err)

	source := &Schema{ID: uuid.New(), Name: "src"}
	target := &Schema{ID: uuid.New(), Name: "dst"}
	require.NoError(t, repo.SaveSchema(source))
	require.NoError(t, repo.SaveSchema(target))

	profile := &Profile{ID: uuid.New(), Name: "p", SourceSchemaID: source.ID, TargetSchemaID: target.ID}
	other := &Profile{ID: uuid.New(), Name: "q", SourceSchemaID: target.ID, TargetSchemaID: target.ID}
	require.NoError(t, repo.SaveProfile(profile))
	require.NoError(t, repo.SaveProfile(other))

	require.NoError(t, repo.DeleteSchema(source.ID))

	_, err = repo.GetProfile(profile.ID)
	assert.True(t, apperr.IsNotFound(err))

	// Profiles not referencing the schema survive.
	_, err = repo.GetProfile(other.ID)
	assert.NoError(t, err)
}
