package service

import "github.com/stocknote/stocknote-backend/internal/domain"

// BuildCommentTree assembles flat comment rows into a forest. Rows must be in
// creation order (id ASC); that order is preserved among siblings at every
// level. A reply whose parent is missing from the input is dropped.
func BuildCommentTree(comments []*domain.Comment) []*domain.CommentResponse {
	nodes := make(map[int64]*domain.CommentResponse, len(comments))
	for _, c := range comments {
		nodes[c.ID] = c.ToResponse()
	}

	roots := make([]*domain.CommentResponse, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}
