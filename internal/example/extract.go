// Package example extracts representative literal values from sample
// payloads, keyed by structural path. Extraction is best-effort enrichment:
// it never fails the surrounding operation, and it is bounded to at most
// three distinct values per path and three sample files per schema.
package example

import (
	"strings"

	"go.uber.org/zap"

	"mapforge/internal/apperr"
	"mapforge/internal/common"
	"mapforge/internal/field"
	"mapforge/internal/parser"
)

const (
	// MaxSamplesPerPath caps the number of distinct values kept per path.
	MaxSamplesPerPath = 3

	// MaxFilesPerSchema caps how many sample files are scanned per schema,
	// newest first.
	MaxFilesPerSchema = 3
)

// Extract walks one raw payload and returns up to MaxSamplesPerPath distinct
// literal values per structural path, in encounter order.
//
// Array elements collapse onto the enclosing property's path: no index or
// wildcard step is introduced. This is the example-path dialect; schema paths
// carry array markers and are translated at join time (see field.Build).
//
// Extraction errors never reach the caller: a payload that cannot be walked
// contributes an empty result and a debug log line.
func Extract(raw []byte, format parser.Format, logger *zap.Logger) map[string][]string {
	if logger == nil {
		logger = zap.NewNop()
	}

	samples := make(map[string][]string)

	switch format {
	case parser.FormatJSONSchema:
		value, err := parser.DecodeOrdered(raw)
		if err != nil {
			logger.Debug("example extraction skipped payload",
				zap.Error(apperr.Extraction("unreadable JSON sample", err)))

			return samples
		}

		walkJSON(value, "", samples)

	case parser.FormatXSD:
		if err := walkXMLDocument(raw, samples); err != nil {
			logger.Debug("example extraction skipped payload",
				zap.Error(apperr.Extraction("unreadable XML sample", err)))

			return make(map[string][]string)
		}

	default:
		logger.Debug("example extraction skipped payload", zap.Int("format", int(format)))
	}

	return samples
}

// Merge folds src into dst path by path using the same admission rule.
// Callers process files newest first, so earlier merges win the cap.
func Merge(dst, src map[string][]string) {
	for path, values := range src {
		for _, v := range values {
			admit(dst, path, v)
		}
	}
}

// admit appends value to the path's list if the list has room and does not
// already contain it.
func admit(samples map[string][]string, path, value string) {
	list := samples[path]

	if len(list) >= MaxSamplesPerPath {
		return
	}

	if common.Contains(list, value) {
		return
	}

	samples[path] = append(list, value)
}

// walkJSON recursively collects scalar literals. Objects append the member
// name to the path; arrays reuse the enclosing path for every element.
func walkJSON(v *parser.Value, path string, samples map[string][]string) {
	if v == nil {
		return
	}

	switch v.Kind {
	case parser.KindObject:
		for _, m := range v.Members {
			walkJSON(m.Value, field.ChildPath(path, m.Key), samples)
		}

	case parser.KindArray:
		for _, elem := range v.Elems {
			walkJSON(elem, path, samples)
		}

	case parser.KindNull:
		// Nulls carry no literal.

	default:
		if path == "" {
			return
		}

		if value := strings.TrimSpace(v.Literal); value != "" {
			admit(samples, path, value)
		}
	}
}
