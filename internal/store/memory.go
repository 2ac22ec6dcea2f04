package store

import (
	"sync"

	"github.com/google/uuid"

	"mapforge/internal/apperr"
)

// MemoryRepository is an in-memory Repository, used by tests and as the
// default backend when no workspace is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	schemas  map[uuid.UUID]*Schema
	profiles map[uuid.UUID]*Profile

	// order keeps listing deterministic.
	schemaOrder  []uuid.UUID
	profileOrder []uuid.UUID
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		schemas:  make(map[uuid.UUID]*Schema),
		profiles: make(map[uuid.UUID]*Profile),
	}
}

// SaveSchema stores or replaces a schema.
func (r *MemoryRepository) SaveSchema(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[s.ID]; !exists {
		r.schemaOrder = append(r.schemaOrder, s.ID)
	}

	clone := *s
	r.schemas[s.ID] = &clone

	return nil
}

// GetSchema returns the schema or a not-found error.
func (r *MemoryRepository) GetSchema(id uuid.UUID) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[id]
	if !ok {
		return nil, apperr.NotFoundf("schema %s does not exist", id)
	}

	clone := *s

	return &clone, nil
}

// ListSchemas returns all schemas in insertion order.
func (r *MemoryRepository) ListSchemas() ([]*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Schema, 0, len(r.schemaOrder))

	for _, id := range r.schemaOrder {
		if s, ok := r.schemas[id]; ok {
			clone := *s
			out = append(out, &clone)
		}
	}

	return out, nil
}

// DeleteSchema removes the schema and cascades to every profile that
// references it.
func (r *MemoryRepository) DeleteSchema(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[id]; !ok {
		return apperr.NotFoundf("schema %s does not exist", id)
	}

	delete(r.schemas, id)
	r.schemaOrder = removeID(r.schemaOrder, id)

	for pid, p := range r.profiles {
		if p.SourceSchemaID == id || p.TargetSchemaID == id {
			delete(r.profiles, pid)
			r.profileOrder = removeID(r.profileOrder, pid)
		}
	}

	return nil
}

// SaveProfile stores or replaces a profile.
func (r *MemoryRepository) SaveProfile(p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.ID]; !exists {
		r.profileOrder = append(r.profileOrder, p.ID)
	}

	r.profiles[p.ID] = cloneProfile(p)

	return nil
}

// GetProfile returns the profile or a not-found error.
func (r *MemoryRepository) GetProfile(id uuid.UUID) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, apperr.NotFoundf("mapping profile %s does not exist", id)
	}

	return cloneProfile(p), nil
}

// ListProfiles returns all profiles in insertion order.
func (r *MemoryRepository) ListProfiles() ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.profileOrder))

	for _, id := range r.profileOrder {
		if p, ok := r.profiles[id]; ok {
			out = append(out, cloneProfile(p))
		}
	}

	return out, nil
}

// DeleteProfile removes the profile and its mappings.
func (r *MemoryRepository) DeleteProfile(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return apperr.NotFoundf("mapping profile %s does not exist", id)
	}

	delete(r.profiles, id)
	r.profileOrder = removeID(r.profileOrder, id)

	return nil
}

// cloneProfile copies a profile deeply enough that callers cannot mutate
// the stored mapping set in place.
func cloneProfile(p *Profile) *Profile {
	clone := *p
	clone.Mappings = make([]FieldMapping, len(p.Mappings))
	copy(clone.Mappings, p.Mappings)

	return &clone
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]

	for _, e := range ids {
		if e != id {
			out = append(out, e)
		}
	}

	return out
}
