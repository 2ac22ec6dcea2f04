package field

import (
	"fmt"
)

// Arena is an id-indexed view over one schema's flat node collection.
// Parent/child relations are id references, never live pointers, so the
// arena itself can never form ownership cycles.
type Arena struct {
	nodes []FieldNode
	byID  map[int64]*FieldNode
}

// NewArena indexes the given flat node list.
func NewArena(nodes []FieldNode) *Arena {
	a := &Arena{
		nodes: nodes,
		byID:  make(map[int64]*FieldNode, len(nodes)),
	}

	for i := range a.nodes {
		a.byID[a.nodes[i].ID] = &a.nodes[i]
	}

	return a
}

// Get returns the node with the given id, or nil if absent.
func (a *Arena) Get(id int64) *FieldNode {
	return a.byID[id]
}

// Nodes returns the flat node list in its natural (parser emission) order.
func (a *Arena) Nodes() []FieldNode {
	return a.nodes
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Build reassembles the arena's flat nodes into root trees.
//
// Roots are the nodes accepted by rootFilter (every parentless node when
// rootFilter is nil). Children keep the flat list's natural order; no
// re-sorting happens at any level.
//
// examples maps example-dialect paths to extracted sample values. A node
// whose marker-stripped path is present receives the samples, and an empty
// ExampleValue is backfilled with the first sample. Enrichment happens on
// the tree copies only, before the tree is returned to any reader.
//
// A parent cycle anywhere in the flat data is a defect; Build fails fast on
// it, whether or not any root reaches the cycle.
func (a *Arena) Build(rootFilter func(*FieldNode) bool, examples map[string][]string) ([]*TreeNode, error) {
	if err := a.checkParentChains(); err != nil {
		return nil, err
	}

	childrenOf := make(map[int64][]*FieldNode)

	var roots []*FieldNode

	for i := range a.nodes {
		n := &a.nodes[i]

		isRoot := n.IsRoot()
		if rootFilter != nil {
			isRoot = rootFilter(n)
		}

		if isRoot {
			roots = append(roots, n)

			continue
		}

		if n.ParentID != nil {
			childrenOf[*n.ParentID] = append(childrenOf[*n.ParentID], n)
		}
	}

	built := make([]*TreeNode, 0, len(roots))

	for _, root := range roots {
		built = append(built, a.buildSubtree(root, childrenOf, examples))
	}

	return built, nil
}

// checkParentChains walks every node's parent chain to its root. A chain that
// revisits a node is a cycle. Cycle members always carry a parent, so they
// never sit under a parentless root and a reachability walk alone would skip
// them silently.
func (a *Arena) checkParentChains() error {
	cleared := make(map[int64]bool, len(a.nodes))

	for i := range a.nodes {
		walking := make(map[int64]bool)

		var chain []int64

		for n := &a.nodes[i]; n != nil && !cleared[n.ID]; {
			if walking[n.ID] {
				return fmt.Errorf("field tree cycle detected at node %d (%s)", n.ID, n.Path)
			}

			walking[n.ID] = true
			chain = append(chain, n.ID)

			if n.ParentID == nil {
				break
			}

			n = a.byID[*n.ParentID]
		}

		for _, id := range chain {
			cleared[id] = true
		}
	}

	return nil
}

// buildSubtree recursively materializes the tree below n. Parent chains are
// verified acyclic before any subtree is built.
func (a *Arena) buildSubtree(
	n *FieldNode,
	childrenOf map[int64][]*FieldNode,
	examples map[string][]string,
) *TreeNode {
	tree := &TreeNode{FieldNode: *n}
	attachExamples(tree, examples)

	for _, child := range childrenOf[n.ID] {
		tree.Children = append(tree.Children, a.buildSubtree(child, childrenOf, examples))
	}

	return tree
}

// attachExamples joins extracted sample values onto a tree copy.
// The example map is keyed by the collapsed path dialect, so the node's
// schema path is marker-stripped before lookup.
func attachExamples(tree *TreeNode, examples map[string][]string) {
	if len(examples) == 0 {
		return
	}

	samples, ok := examples[StripArrayMarkers(tree.Path)]
	if !ok || len(samples) == 0 {
		return
	}

	tree.SampleValues = samples

	if tree.ExampleValue == nil || *tree.ExampleValue == "" {
		first := samples[0]
		tree.ExampleValue = &first
	}
}
