// Package match scores fuzzy similarity between field names and paths and
// proposes one-to-one source/target correspondences. Scores rank candidates
// only; they never drive exact-match decisions.
package match

import (
	"fmt"
	"sort"

	"mapforge/internal/field"
)

// Suggestion is one proposed correspondence. Suggestions are advisory and
// transient: they are computed fresh per request and never persisted.
type Suggestion struct {
	SourceFieldID int64
	TargetFieldID int64

	// Confidence is the combined score scaled to [0, 1].
	Confidence float64

	// Reasoning names both fields and the numeric score.
	Reasoning string
}

// Options tunes the suggestion scoring.
type Options struct {
	// Threshold is the minimum combined score (0-100 scale) to keep a pair.
	Threshold float64

	// NameWeight and PathWeight combine the two partial scores.
	NameWeight float64
	PathWeight float64
}

// DefaultOptions returns the standard scoring weights.
func DefaultOptions() Options {
	return Options{
		Threshold:  70,
		NameWeight: 0.7,
		PathWeight: 0.3,
	}
}

// candidate is one scored pair awaiting greedy selection.
type candidate struct {
	source *field.TreeNode
	target *field.TreeNode
	total  float64
}

// Suggest proposes correspondences between the two flattened trees.
//
// Every (source, target) pair is scored as a weighted combination of
// token-sort name similarity and token-set path similarity; pairs below the
// threshold are dropped. The survivors are ranked by score (ties keep the
// source-major discovery order) and selected greedily so that each source id
// and each target id appears at most once across the result. Targets listed
// in mappedTargets are never considered.
//
// Greedy selection approximates a maximum-weight bipartite matching; an
// exact assignment solver is not warranted for advisory suggestions.
func Suggest(sources, targets []*field.TreeNode, mappedTargets map[int64]bool, opts Options) []Suggestion {
	if opts.NameWeight == 0 && opts.PathWeight == 0 {
		opts = DefaultOptions()
	}

	open := make([]*field.TreeNode, 0, len(targets))

	for _, t := range targets {
		if !mappedTargets[t.ID] {
			open = append(open, t)
		}
	}

	var candidates []candidate

	for _, s := range sources {
		for _, t := range open {
			nameScore := TokenSortRatio(s.Name, t.Name)
			pathScore := TokenSetRatio(s.Path, t.Path)
			total := opts.NameWeight*nameScore + opts.PathWeight*pathScore

			if total < opts.Threshold {
				continue
			}

			candidates = append(candidates, candidate{source: s, target: t, total: total})
		}
	}

	// Stable sort keeps the discovery order on equal scores, which makes
	// the greedy pass deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].total > candidates[j].total
	})

	usedSources := make(map[int64]bool)
	usedTargets := make(map[int64]bool)

	var suggestions []Suggestion

	for _, c := range candidates {
		if usedSources[c.source.ID] || usedTargets[c.target.ID] {
			continue
		}

		usedSources[c.source.ID] = true
		usedTargets[c.target.ID] = true

		suggestions = append(suggestions, Suggestion{
			SourceFieldID: c.source.ID,
			TargetFieldID: c.target.ID,
			Confidence:    c.total / 100,
			Reasoning: fmt.Sprintf("%s (%s) resembles %s (%s), similarity %.1f",
				c.source.Name, c.source.Path, c.target.Name, c.target.Path, c.total),
		})
	}

	return suggestions
}
