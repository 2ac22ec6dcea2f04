package store

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mapforge/internal/apperr"
	"mapforge/internal/common"
)

// Store is the mapping state machine over a Repository.
//
// Save and Delete are read-modify-write against the owning profile's mapping
// set; the store-level mutex linearizes them so concurrent saves to the same
// target field cannot produce duplicate records (last writer wins).
type Store struct {
	repo   Repository
	logger *zap.Logger

	mu sync.Mutex
}

// New creates a Store over the given repository.
func New(repo Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{repo: repo, logger: logger}
}

// Repository exposes the underlying persistence boundary.
func (s *Store) Repository() Repository {
	return s.repo
}

// CreateProfile validates both schema references and creates an empty
// mapping profile.
func (s *Store) CreateProfile(name string, sourceSchemaID, targetSchemaID uuid.UUID) (*Profile, error) {
	if name == "" {
		return nil, apperr.Validationf("profile name is required")
	}

	if _, err := s.repo.GetSchema(sourceSchemaID); err != nil {
		return nil, apperr.Validationf("source schema %s does not exist", sourceSchemaID)
	}

	if _, err := s.repo.GetSchema(targetSchemaID); err != nil {
		return nil, apperr.Validationf("target schema %s does not exist", targetSchemaID)
	}

	profile := &Profile{
		ID:             uuid.New(),
		Name:           name,
		SourceSchemaID: sourceSchemaID,
		TargetSchemaID: targetSchemaID,
	}

	if err := s.repo.SaveProfile(profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		zap.String("profile", profile.ID.String()),
		zap.String("name", name))

	return profile, nil
}

// Save upserts the mapping for one target field: an existing record's source
// list and transformation logic are replaced entirely (never merged), and
// the legacy single-source field is kept in sync with the first ordered
// source. The store does not reject duplicate source ids within the list;
// that is the caller's concern.
func (s *Store) Save(profileID uuid.UUID, targetFieldID int64, sourceFieldIDs []int64, logic *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.repo.GetProfile(profileID)
	if err != nil {
		return err
	}

	record := FieldMapping{
		TargetFieldID:       targetFieldID,
		Sources:             makeSourceRefs(sourceFieldIDs),
		TransformationLogic: logic,
	}

	if first, ok := common.First(sourceFieldIDs); ok {
		record.SourceFieldID = &first
	}

	if existing, ok := profile.FindMapping(targetFieldID); ok {
		*existing = record
	} else {
		profile.Mappings = append(profile.Mappings, record)
	}

	if err := s.repo.SaveProfile(profile); err != nil {
		return err
	}

	s.logger.Debug("mapping saved",
		zap.String("profile", profileID.String()),
		zap.Int64("target", targetFieldID),
		zap.Int("sources", len(sourceFieldIDs)))

	return nil
}

// Delete removes the mapping for one target field. Deleting a target with
// no record reports not-found and leaves the profile unchanged.
func (s *Store) Delete(profileID uuid.UUID, targetFieldID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.repo.GetProfile(profileID)
	if err != nil {
		return err
	}

	kept := profile.Mappings[:0]
	removed := false

	for _, m := range profile.Mappings {
		if m.TargetFieldID == targetFieldID {
			removed = true

			continue
		}

		kept = append(kept, m)
	}

	if !removed {
		return apperr.NotFoundf("no mapping exists for target field %d", targetFieldID)
	}

	profile.Mappings = kept

	return s.repo.SaveProfile(profile)
}

// Get returns every mapping of the profile in its stored order.
func (s *Store) Get(profileID uuid.UUID) ([]FieldMapping, error) {
	profile, err := s.repo.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	return profile.Mappings, nil
}

// makeSourceRefs wraps ordered ids as source refs with their positions.
func makeSourceRefs(ids []int64) SourceRefList {
	if len(ids) == 0 {
		return nil
	}

	refs := make(SourceRefList, len(ids))
	for i, id := range ids {
		refs[i] = SourceRef{SourceFieldID: id, OrderIndex: i}
	}

	return refs
}
