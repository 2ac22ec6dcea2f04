// Package blob stores raw schema documents and example payloads behind the
// viant/afs abstract file storage, so a workspace can live on local disk or
// any scheme afs supports.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Store wraps an afs service rooted at a base URL.
type Store struct {
	fs      afs.Service
	baseURL string
}

// New creates a blob store rooted at baseURL (e.g. "file:///var/mapforge/blobs"
// or a plain directory path).
func New(baseURL string) *Store {
	return &Store{fs: afs.New(), baseURL: baseURL}
}

// Put stores the bytes under name and returns the opaque reference.
func (s *Store) Put(ctx context.Context, name string, data []byte) (string, error) {
	ref := url.Join(s.baseURL, name)

	if err := s.fs.Upload(ctx, ref, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("storing blob %s: %w", name, err)
	}

	return ref, nil
}

// Get reads the bytes behind a reference returned by Put.
func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", ref, err)
	}

	return data, nil
}

// Delete removes the blob; missing blobs are not an error.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if ok, _ := s.fs.Exists(ctx, ref); !ok {
		return nil
	}

	if err := s.fs.Delete(ctx, ref); err != nil {
		return fmt.Errorf("deleting blob %s: %w", ref, err)
	}

	return nil
}

// ListNewest returns up to limit blob references under the prefix, newest
// first. The extractor uses this to honor its three-file bound.
func (s *Store) ListNewest(ctx context.Context, prefix string, limit int) ([]string, error) {
	location := url.Join(s.baseURL, prefix)

	if ok, _ := s.fs.Exists(ctx, location); !ok {
		return nil, nil
	}

	objects, err := s.fs.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("listing blobs under %s: %w", prefix, err)
	}

	type entry struct {
		ref     string
		modTime int64
	}

	var entries []entry

	for _, obj := range objects {
		if obj.IsDir() || strings.HasSuffix(obj.URL(), "/") {
			continue
		}

		entries = append(entries, entry{ref: obj.URL(), modTime: obj.ModTime().UnixNano()})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].modTime != entries[j].modTime {
			return entries[i].modTime > entries[j].modTime
		}

		return entries[i].ref > entries[j].ref
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.ref
	}

	return refs, nil
}
