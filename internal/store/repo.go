package store

import "github.com/google/uuid"

// Repository is the persistence boundary for schemas and profiles.
//
// Implementations must make DeleteSchema cascade: the schema's field nodes
// go with it, and so does every profile referencing the schema (whose
// mappings would otherwise dangle).
type Repository interface {
	SaveSchema(s *Schema) error
	GetSchema(id uuid.UUID) (*Schema, error)
	ListSchemas() ([]*Schema, error)
	DeleteSchema(id uuid.UUID) error

	SaveProfile(p *Profile) error
	GetProfile(id uuid.UUID) (*Profile, error)
	ListProfiles() ([]*Profile, error)
	DeleteProfile(id uuid.UUID) error
}
