package comment

import (
	"slices"

	"github.com/google/uuid"

	"maple-blog/internal/domain"
)

// RootOrder controls the direction roots are sorted in tree mode. Children
// are always ascending by creation time.
type RootOrder int

const (
	RootsAscending RootOrder = iota
	RootsDescending
)

// BuildTree arranges a flat batch of one scope into a forest. A comment whose
// parent is missing from the batch becomes a root. Every input comment
// appears exactly once in the output; ids are expected to be unique.
func BuildTree(comments []domain.Comment, order RootOrder) []*domain.CommentNode {
	nodes := make(map[uuid.UUID]*domain.CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &domain.CommentNode{
			Comment:  comments[i],
			Children: []*domain.CommentNode{},
		}
	}

	attached := make(map[*domain.CommentNode]*domain.CommentNode, len(comments))
	placed := make(map[*domain.CommentNode]bool, len(comments))
	roots := make([]*domain.CommentNode, 0)
	for i := range comments {
		node := nodes[comments[i].ID]
		if placed[node] {
			continue
		}
		placed[node] = true

		parent := resolveParent(node, nodes, attached)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		attached[node] = parent
		parent.Children = append(parent.Children, node)
	}

	slices.SortStableFunc(roots, func(a, b *domain.CommentNode) int {
		if order == RootsDescending {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	for _, root := range roots {
		arrange(root, 0)
	}
	return roots
}

// Flatten emits the forest depth-first with roots ascending. Each record
// keeps its level and drops its children.
func Flatten(comments []domain.Comment) []domain.FlatComment {
	out := make([]domain.FlatComment, 0, len(comments))
	var walk func(nodes []*domain.CommentNode)
	walk = func(nodes []*domain.CommentNode) {
		for _, node := range nodes {
			out = append(out, domain.FlatComment{Comment: node.Comment, Level: node.Level})
			walk(node.Children)
		}
	}
	walk(BuildTree(comments, RootsAscending))
	return out
}

// resolveParent returns the node's parent within the batch, or nil when the
// node must be a root. A parent whose attached ancestry already leads back
// to the node would close a loop, so that link is cut and the node becomes
// a root instead.
func resolveParent(node *domain.CommentNode, nodes map[uuid.UUID]*domain.CommentNode, attached map[*domain.CommentNode]*domain.CommentNode) *domain.CommentNode {
	if node.ParentID == nil {
		return nil
	}
	parent, ok := nodes[*node.ParentID]
	if !ok {
		return nil
	}
	for cur := parent; cur != nil; cur = attached[cur] {
		if cur == node {
			return nil
		}
	}
	return parent
}

func arrange(node *domain.CommentNode, level int) {
	node.Level = level
	slices.SortStableFunc(node.Children, func(a, b *domain.CommentNode) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	for _, child := range node.Children {
		arrange(child, level+1)
	}
}
