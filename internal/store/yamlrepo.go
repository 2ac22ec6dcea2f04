package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"mapforge/internal/apperr"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// YAMLRepository persists schemas and profiles as YAML files under a
// workspace directory:
//
//	<root>/schemas/<id>.yaml
//	<root>/profiles/<id>.yaml
type YAMLRepository struct {
	root string
}

// NewYAMLRepository creates the workspace layout under root.
func NewYAMLRepository(root string) (*YAMLRepository, error) {
	for _, dir := range []string{filepath.Join(root, "schemas"), filepath.Join(root, "profiles")} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("creating workspace directory: %w", err)
		}
	}

	return &YAMLRepository{root: root}, nil
}

// SaveSchema writes the schema file.
func (r *YAMLRepository) SaveSchema(s *Schema) error {
	return writeYAML(r.schemaPath(s.ID), s)
}

// GetSchema reads one schema file.
func (r *YAMLRepository) GetSchema(id uuid.UUID) (*Schema, error) {
	var s Schema

	if err := readYAML(r.schemaPath(id), &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFoundf("schema %s does not exist", id)
		}

		return nil, err
	}

	return &s, nil
}

// ListSchemas reads every schema file, sorted by file name for determinism.
func (r *YAMLRepository) ListSchemas() ([]*Schema, error) {
	ids, err := listIDs(filepath.Join(r.root, "schemas"))
	if err != nil {
		return nil, err
	}

	out := make([]*Schema, 0, len(ids))

	for _, id := range ids {
		s, err := r.GetSchema(id)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

// DeleteSchema removes the schema file and every profile referencing it.
func (r *YAMLRepository) DeleteSchema(id uuid.UUID) error {
	if err := os.Remove(r.schemaPath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFoundf("schema %s does not exist", id)
		}

		return fmt.Errorf("deleting schema file: %w", err)
	}

	profiles, err := r.ListProfiles()
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if p.SourceSchemaID == id || p.TargetSchemaID == id {
			if err := r.DeleteProfile(p.ID); err != nil && !apperr.IsNotFound(err) {
				return err
			}
		}
	}

	return nil
}

// SaveProfile writes the profile file.
func (r *YAMLRepository) SaveProfile(p *Profile) error {
	return writeYAML(r.profilePath(p.ID), p)
}

// GetProfile reads one profile file.
func (r *YAMLRepository) GetProfile(id uuid.UUID) (*Profile, error) {
	var p Profile

	if err := readYAML(r.profilePath(id), &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFoundf("mapping profile %s does not exist", id)
		}

		return nil, err
	}

	return &p, nil
}

// ListProfiles reads every profile file, sorted by file name.
func (r *YAMLRepository) ListProfiles() ([]*Profile, error) {
	ids, err := listIDs(filepath.Join(r.root, "profiles"))
	if err != nil {
		return nil, err
	}

	out := make([]*Profile, 0, len(ids))

	for _, id := range ids {
		p, err := r.GetProfile(id)
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}

// DeleteProfile removes the profile file.
func (r *YAMLRepository) DeleteProfile(id uuid.UUID) error {
	if err := os.Remove(r.profilePath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFoundf("mapping profile %s does not exist", id)
		}

		return fmt.Errorf("deleting profile file: %w", err)
	}

	return nil
}

func (r *YAMLRepository) schemaPath(id uuid.UUID) string {
	return filepath.Join(r.root, "schemas", id.String()+".yaml")
}

func (r *YAMLRepository) profilePath(id uuid.UUID) string {
	return filepath.Join(r.root, "profiles", id.String()+".yaml")
}

// listIDs collects the uuid file names of a workspace subdirectory.
func listIDs(dir string) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var ids []uuid.UUID

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		id, err := uuid.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			continue
		}

		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids, nil
}

// writeYAML marshals v and writes it atomically enough for a single-writer
// workspace: temp file then rename.
func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}

	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}

// readYAML reads and unmarshals one file.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}
