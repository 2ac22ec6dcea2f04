// Package service wires the engine together: schema ingestion, example
// enrichment, mapping context assembly, suggestions, mapping persistence,
// and artifact generation. Each operation is a stateless, synchronous
// request; suspension happens only at the blob and repository boundaries.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mapforge/internal/apperr"
	"mapforge/internal/blob"
	"mapforge/internal/example"
	"mapforge/internal/export"
	"mapforge/internal/field"
	"mapforge/internal/gen"
	"mapforge/internal/match"
	"mapforge/internal/parser"
	"mapforge/internal/store"
)

// Service exposes the engine's operations over a mapping store and an
// optional blob store (raw documents are only retained when one is set).
type Service struct {
	store  *store.Store
	blobs  *blob.Store
	logger *zap.Logger

	matchOpts match.Options
}

// New creates a Service. blobs may be nil for purely in-memory use.
func New(st *store.Store, blobs *blob.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:     st,
		blobs:     blobs,
		logger:    logger,
		matchOpts: match.DefaultOptions(),
	}
}

// SetMatchThreshold overrides the minimum combined score a suggestion needs.
// Values outside (0, 100] keep the default.
func (s *Service) SetMatchThreshold(threshold float64) {
	if threshold > 0 && threshold <= 100 {
		s.matchOpts.Threshold = threshold
	}
}

// IngestSchema parses a raw schema document and persists the resulting
// field nodes as a new schema. Parsing is atomic: on failure nothing is
// stored.
func (s *Service) IngestSchema(ctx context.Context, name, formatName string, raw []byte) (*store.Schema, error) {
	if name == "" {
		return nil, apperr.Validationf("schema display name is required")
	}

	format, err := parser.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	p, err := parser.ForFormat(format)
	if err != nil {
		return nil, err
	}

	nodes, err := p.Parse(raw)
	if err != nil {
		return nil, err
	}

	schema := &store.Schema{
		ID:     uuid.New(),
		Name:   name,
		Format: format.String(),
		Nodes:  nodes,
	}

	if s.blobs != nil {
		ref, err := s.blobs.Put(ctx, schemaBlobName(schema.ID), raw)
		if err != nil {
			return nil, err
		}

		schema.BlobRef = ref
	}

	if err := s.store.Repository().SaveSchema(schema); err != nil {
		return nil, err
	}

	s.logger.Info("schema ingested",
		zap.String("schema", schema.ID.String()),
		zap.String("name", name),
		zap.String("format", schema.Format),
		zap.Int("fields", len(nodes)))

	return schema, nil
}

// AttachExample stores one sample payload for a schema. The payload is not
// walked here; extraction happens lazily when a tree is built, bounded to
// the newest files.
func (s *Service) AttachExample(ctx context.Context, schemaID uuid.UUID, raw []byte) error {
	schema, err := s.store.Repository().GetSchema(schemaID)
	if err != nil {
		return err
	}

	if s.blobs == nil {
		return apperr.Validationf("no blob store configured; example payloads cannot be attached")
	}

	name := fmt.Sprintf("%s/%d.sample", exampleBlobPrefix(schemaID), time.Now().UnixNano())

	ref, err := s.blobs.Put(ctx, name, raw)
	if err != nil {
		return err
	}

	// Newest first, so tree builds prefer recent payloads.
	schema.ExampleRefs = append([]string{ref}, schema.ExampleRefs...)

	return s.store.Repository().SaveSchema(schema)
}

// DeleteSchema removes a schema, its blobs, and (via the repository
// cascade) every profile referencing it.
func (s *Service) DeleteSchema(ctx context.Context, schemaID uuid.UUID) error {
	schema, err := s.store.Repository().GetSchema(schemaID)
	if err != nil {
		return err
	}

	if err := s.store.Repository().DeleteSchema(schemaID); err != nil {
		return err
	}

	if s.blobs != nil {
		if schema.BlobRef != "" {
			_ = s.blobs.Delete(ctx, schema.BlobRef)
		}

		for _, ref := range schema.ExampleRefs {
			_ = s.blobs.Delete(ctx, ref)
		}
	}

	s.logger.Info("schema deleted", zap.String("schema", schemaID.String()))

	return nil
}

// ListSchemas returns every ingested schema.
func (s *Service) ListSchemas() ([]*store.Schema, error) {
	return s.store.Repository().ListSchemas()
}

// CreateProfile creates a mapping profile between two ingested schemas.
func (s *Service) CreateProfile(name string, sourceSchemaID, targetSchemaID uuid.UUID) (*store.Profile, error) {
	return s.store.CreateProfile(name, sourceSchemaID, targetSchemaID)
}

// ListProfiles returns every mapping profile.
func (s *Service) ListProfiles() ([]*store.Profile, error) {
	return s.store.Repository().ListProfiles()
}

// DeleteProfile removes one mapping profile.
func (s *Service) DeleteProfile(profileID uuid.UUID) error {
	return s.store.Repository().DeleteProfile(profileID)
}

// BuildTree assembles the schema's field tree with example values joined in.
func (s *Service) BuildTree(ctx context.Context, schemaID uuid.UUID) ([]*field.TreeNode, error) {
	schema, err := s.store.Repository().GetSchema(schemaID)
	if err != nil {
		return nil, err
	}

	return s.buildSchemaTree(ctx, schema)
}

// MappingContext is everything a mapping session needs: both trees with
// examples attached plus the existing mapping set.
type MappingContext struct {
	Profile      *store.Profile
	SourceSchema *store.Schema
	TargetSchema *store.Schema
	SourceTree   []*field.TreeNode
	TargetTree   []*field.TreeNode
}

// MappingContext loads the profile and assembles both field trees.
func (s *Service) MappingContext(ctx context.Context, profileID uuid.UUID) (*MappingContext, error) {
	profile, err := s.store.Repository().GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	sourceSchema, err := s.store.Repository().GetSchema(profile.SourceSchemaID)
	if err != nil {
		return nil, err
	}

	targetSchema, err := s.store.Repository().GetSchema(profile.TargetSchemaID)
	if err != nil {
		return nil, err
	}

	sourceTree, err := s.buildSchemaTree(ctx, sourceSchema)
	if err != nil {
		return nil, err
	}

	targetTree, err := s.buildSchemaTree(ctx, targetSchema)
	if err != nil {
		return nil, err
	}

	return &MappingContext{
		Profile:      profile,
		SourceSchema: sourceSchema,
		TargetSchema: targetSchema,
		SourceTree:   sourceTree,
		TargetTree:   targetTree,
	}, nil
}

// SuggestMappings proposes correspondences for the profile's unmapped
// target fields. Suggestions are transient; nothing is persisted.
func (s *Service) SuggestMappings(ctx context.Context, profileID uuid.UUID) ([]match.Suggestion, error) {
	mc, err := s.MappingContext(ctx, profileID)
	if err != nil {
		return nil, err
	}

	suggestions := match.Suggest(
		field.Flatten(mc.SourceTree),
		field.Flatten(mc.TargetTree),
		mc.Profile.MappedTargetIDs(),
		s.matchOpts,
	)

	s.logger.Debug("suggestions computed",
		zap.String("profile", profileID.String()),
		zap.Int("count", len(suggestions)))

	return suggestions, nil
}

// SaveMapping validates the referenced fields and upserts the mapping.
// Saving an empty source list with no logic is equivalent to unmapping the
// target: any existing record is removed.
func (s *Service) SaveMapping(profileID uuid.UUID, targetFieldID int64, sourceFieldIDs []int64, logic *string) error {
	profile, err := s.store.Repository().GetProfile(profileID)
	if err != nil {
		return err
	}

	targetSchema, err := s.store.Repository().GetSchema(profile.TargetSchemaID)
	if err != nil {
		return err
	}

	if field.NewArena(targetSchema.Nodes).Get(targetFieldID) == nil {
		return apperr.NotFoundf("target field %d does not exist in schema %q", targetFieldID, targetSchema.Name)
	}

	sourceSchema, err := s.store.Repository().GetSchema(profile.SourceSchemaID)
	if err != nil {
		return err
	}

	sourceArena := field.NewArena(sourceSchema.Nodes)

	for _, id := range sourceFieldIDs {
		if sourceArena.Get(id) == nil {
			return apperr.NotFoundf("source field %d does not exist in schema %q", id, sourceSchema.Name)
		}
	}

	if len(sourceFieldIDs) == 0 && (logic == nil || *logic == "") {
		// Unmapped state: drop any existing record instead of storing an
		// empty one.
		if err := s.store.Delete(profileID, targetFieldID); err != nil && !apperr.IsNotFound(err) {
			return err
		}

		return nil
	}

	return s.store.Save(profileID, targetFieldID, sourceFieldIDs, logic)
}

// DeleteMapping removes the mapping for one target field.
func (s *Service) DeleteMapping(profileID uuid.UUID, targetFieldID int64) error {
	return s.store.Delete(profileID, targetFieldID)
}

// GenerateCode renders the profile's mapping set as Go mapper source.
func (s *Service) GenerateCode(ctx context.Context, profileID uuid.UUID, packageName string) (string, error) {
	mc, err := s.MappingContext(ctx, profileID)
	if err != nil {
		return "", err
	}

	return gen.Generate(gen.Request{
		PackageName:      packageName,
		ProfileName:      mc.Profile.Name,
		SourceSchemaName: mc.SourceSchema.Name,
		TargetSchemaName: mc.TargetSchema.Name,
		Mappings:         mc.Profile.Mappings,
		Source:           field.NewArena(mc.SourceSchema.Nodes),
		Target:           field.NewArena(mc.TargetSchema.Nodes),
	})
}

// ExportWorkbook writes the profile's mapping set as an xlsx workbook.
func (s *Service) ExportWorkbook(ctx context.Context, profileID uuid.UUID, w io.Writer) error {
	mc, err := s.MappingContext(ctx, profileID)
	if err != nil {
		return err
	}

	rows, err := export.BuildRows(
		mc.Profile.Mappings,
		field.NewArena(mc.SourceSchema.Nodes),
		field.NewArena(mc.TargetSchema.Nodes),
	)
	if err != nil {
		return err
	}

	return export.WriteWorkbook(w, mc.Profile.Name, rows)
}

// buildSchemaTree builds the tree with best-effort example enrichment from
// the schema's newest sample payloads.
func (s *Service) buildSchemaTree(ctx context.Context, schema *store.Schema) ([]*field.TreeNode, error) {
	examples := s.collectExamples(ctx, schema)

	return field.NewArena(schema.Nodes).Build(nil, examples)
}

// collectExamples merges extracted values from at most the three newest
// sample payloads. Every failure here degrades to fewer examples, never to
// a failed request.
func (s *Service) collectExamples(ctx context.Context, schema *store.Schema) map[string][]string {
	if s.blobs == nil {
		return nil
	}

	refs, err := s.blobs.ListNewest(ctx, exampleBlobPrefix(schema.ID), example.MaxFilesPerSchema)
	if err != nil {
		s.logger.Debug("example listing failed", zap.String("schema", schema.ID.String()), zap.Error(err))

		return nil
	}

	if len(refs) == 0 && len(schema.ExampleRefs) > 0 {
		refs = schema.ExampleRefs
		if len(refs) > example.MaxFilesPerSchema {
			refs = refs[:example.MaxFilesPerSchema]
		}
	}

	format, err := parser.ParseFormat(schema.Format)
	if err != nil {
		return nil
	}

	merged := make(map[string][]string)

	for _, ref := range refs {
		data, err := s.blobs.Get(ctx, ref)
		if err != nil {
			s.logger.Debug("example payload unreadable",
				zap.String("schema", schema.ID.String()),
				zap.String("ref", ref),
				zap.Error(err))

			continue
		}

		example.Merge(merged, example.Extract(data, format, s.logger))
	}

	return merged
}

func schemaBlobName(id uuid.UUID) string {
	return fmt.Sprintf("schemas/%s/document", id)
}

func exampleBlobPrefix(id uuid.UUID) string {
	return fmt.Sprintf("examples/%s", id)
}
