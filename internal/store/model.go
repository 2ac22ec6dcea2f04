// Package store persists ingested schemas and mapping profiles and
// implements the per-target-field mapping state machine: a target field is
// either unmapped (no record) or mapped (one record, zero or more ordered
// sources, optional transformation text).
package store

import (
	"github.com/google/uuid"

	"mapforge/internal/field"
)

// Schema is one ingested data object: the raw document reference plus the
// flat field-node collection produced by its parser run.
type Schema struct {
	ID     uuid.UUID `yaml:"id"`
	Name   string    `yaml:"name"`
	Format string    `yaml:"format"`

	// BlobRef references the stored raw document.
	BlobRef string `yaml:"blobRef,omitempty"`

	// ExampleRefs reference stored sample payloads, newest first.
	ExampleRefs []string `yaml:"exampleRefs,omitempty"`

	Nodes []field.FieldNode `yaml:"nodes"`
}

// Profile scopes one set of target-field mappings between a source and a
// target schema.
type Profile struct {
	ID             uuid.UUID `yaml:"id"`
	Name           string    `yaml:"name"`
	SourceSchemaID uuid.UUID `yaml:"sourceSchemaId"`
	TargetSchemaID uuid.UUID `yaml:"targetSchemaId"`

	Mappings []FieldMapping `yaml:"mappings,omitempty"`
}

// SourceRef is one ordered source contribution to a mapped target field.
type SourceRef struct {
	SourceFieldID int64 `yaml:"sourceFieldId"`
	OrderIndex    int   `yaml:"orderIndex"`
}

// FieldMapping is the resolved mapping of exactly one target field.
//
// SourceFieldID is the single-source field kept for records created before
// multi-source support existed; it always mirrors the first ordered source
// (nil when the source list is empty).
type FieldMapping struct {
	TargetFieldID int64 `yaml:"targetFieldId"`

	SourceFieldID *int64 `yaml:"sourceFieldId,omitempty"`

	Sources SourceRefList `yaml:"sources,omitempty"`

	TransformationLogic *string `yaml:"transformationLogic,omitempty"`
}

// SourceFieldIDs returns the ordered source field ids. Records without
// ordered-list entries fall back to the legacy single source id wrapped in a
// one-element list; this path must survive for old data.
func (m *FieldMapping) SourceFieldIDs() []int64 {
	if len(m.Sources) > 0 {
		ids := make([]int64, len(m.Sources))
		for i, ref := range m.Sources {
			ids[i] = ref.SourceFieldID
		}

		return ids
	}

	if m.SourceFieldID != nil {
		return []int64{*m.SourceFieldID}
	}

	return nil
}

// FindMapping returns the profile's mapping for the given target field.
func (p *Profile) FindMapping(targetFieldID int64) (*FieldMapping, bool) {
	for i := range p.Mappings {
		if p.Mappings[i].TargetFieldID == targetFieldID {
			return &p.Mappings[i], true
		}
	}

	return nil, false
}

// MappedTargetIDs returns the set of target field ids that carry a mapping.
func (p *Profile) MappedTargetIDs() map[int64]bool {
	mapped := make(map[int64]bool, len(p.Mappings))
	for i := range p.Mappings {
		mapped[p.Mappings[i].TargetFieldID] = true
	}

	return mapped
}
