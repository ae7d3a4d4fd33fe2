// Package discussion turns flat review and comment records into the
// structures a product page renders: threaded comment forests, the star
// rating histogram and the verified-review filter.
package discussion

import (
	"github.com/Divyeshhhh/steamy-sips/internal/domain"
)

// WarningReason classifies a comment left out of a forest.
type WarningReason string

const (
	// ReasonCycle marks a comment that is its own ancestor.
	ReasonCycle WarningReason = "cycle"
	// ReasonUnderCycle marks a comment whose ancestor chain ends in a cycle.
	ReasonUnderCycle WarningReason = "under_cycle"
	// ReasonDuplicateID marks a repeated comment id; the first occurrence is kept.
	ReasonDuplicateID WarningReason = "duplicate_id"
)

// IntegrityWarning reports a comment excluded from a forest because the
// parent graph is inconsistent.
type IntegrityWarning struct {
	CommentID int64            `json:"comment_id"`
	ReviewID  int64            `json:"review_id"`
	Parent    domain.ParentRef `json:"parent_comment_id"`
	Reason    WarningReason    `json:"reason"`
}

// Forest is the set of comment trees attached to one review.
type Forest struct {
	Roots    []*domain.CommentNode `json:"comments"`
	Warnings []IntegrityWarning    `json:"-"`
}

// BuildTree assembles the comments belonging to reviewID into a forest.
// Comments must be supplied in creation order; roots and children keep that
// order. A comment whose parent is not among the supplied comments becomes a
// root. Comments that cannot be reached from any root are left out and
// reported in Forest.Warnings.
func BuildTree(comments []domain.Comment, reviewID int64) Forest {
	forest := Forest{
		Roots:    make([]*domain.CommentNode, 0),
		Warnings: make([]IntegrityWarning, 0),
	}

	nodes := make([]*domain.CommentNode, 0, len(comments))
	byID := make(map[int64]*domain.CommentNode, len(comments))
	for _, c := range comments {
		if c.ReviewID != reviewID {
			continue
		}
		if _, dup := byID[c.ID]; dup {
			forest.Warnings = append(forest.Warnings, newWarning(c, ReasonDuplicateID))
			continue
		}
		node := &domain.CommentNode{Comment: c, Children: make([]*domain.CommentNode, 0)}
		byID[c.ID] = node
		nodes = append(nodes, node)
	}

	children := make(map[int64][]*domain.CommentNode)
	for _, node := range nodes {
		parentID, ok := node.Parent.Get()
		if _, known := byID[parentID]; !ok || !known {
			forest.Roots = append(forest.Roots, node)
			continue
		}
		children[parentID] = append(children[parentID], node)
	}

	// Breadth-first attachment from the roots. Every non-root node has exactly
	// one parent entry, so each node is attached at most once.
	reached := make(map[int64]bool, len(nodes))
	queue := append([]*domain.CommentNode(nil), forest.Roots...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		reached[node.ID] = true
		if kids, ok := children[node.ID]; ok {
			node.Children = kids
			queue = append(queue, kids...)
		}
	}

	if len(reached) == len(nodes) {
		return forest
	}

	onCycle := cycleMembers(nodes, byID, reached)
	for _, node := range nodes {
		if reached[node.ID] {
			continue
		}
		reason := ReasonUnderCycle
		if onCycle[node.ID] {
			reason = ReasonCycle
		}
		forest.Warnings = append(forest.Warnings, newWarning(node.Comment, reason))
	}

	return forest
}

// cycleMembers returns the ids of unreached nodes that lie on a parent cycle.
// Every unreached node has a known, unreached parent, so following parent
// links from one always ends on a cycle.
func cycleMembers(nodes []*domain.CommentNode, byID map[int64]*domain.CommentNode, reached map[int64]bool) map[int64]bool {
	const (
		unvisited = iota
		onPath
		done
	)

	state := make(map[int64]int)
	members := make(map[int64]bool)

	for _, start := range nodes {
		if reached[start.ID] || state[start.ID] != unvisited {
			continue
		}

		var path []int64
		id := start.ID
		for state[id] == unvisited {
			state[id] = onPath
			path = append(path, id)
			parentID, _ := byID[id].Parent.Get()
			id = parentID
		}

		if state[id] == onPath {
			for i := len(path) - 1; i >= 0; i-- {
				members[path[i]] = true
				if path[i] == id {
					break
				}
			}
		}
		for _, p := range path {
			state[p] = done
		}
	}

	return members
}

func newWarning(c domain.Comment, reason WarningReason) IntegrityWarning {
	return IntegrityWarning{
		CommentID: c.ID,
		ReviewID:  c.ReviewID,
		Parent:    c.Parent,
		Reason:    reason,
	}
}

// Walk visits every node of the forest depth-first in display order, passing
// the nesting depth (0 for roots). Returning false from fn stops the walk.
func (f Forest) Walk(fn func(node *domain.CommentNode, depth int) bool) {
	type frame struct {
		node  *domain.CommentNode
		depth int
	}

	stack := make([]frame, 0, len(f.Roots))
	for i := len(f.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{f.Roots[i], 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.node, top.depth) {
			return
		}
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Children[i], top.depth + 1})
		}
	}
}

// Count returns the number of comments in the forest.
func (f Forest) Count() int {
	n := 0
	f.Walk(func(*domain.CommentNode, int) bool {
		n++
		return true
	})
	return n
}
