package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ParentRef is an optional reference to a parent comment. The zero value is
// NoParent.
type ParentRef struct {
	id  int64
	set bool
}

// NoParent returns a reference marking a top-level comment.
func NoParent() ParentRef {
	return ParentRef{}
}

// ParentOf returns a reference to the comment with the given id.
func ParentOf(id int64) ParentRef {
	return ParentRef{id: id, set: true}
}

// ParentFromNullable converts a nullable database column into a ParentRef.
func ParentFromNullable(id *int64) ParentRef {
	if id == nil {
		return NoParent()
	}
	return ParentOf(*id)
}

// Get returns the parent id and true, or 0 and false for a top-level comment.
func (p ParentRef) Get() (int64, bool) {
	return p.id, p.set
}

// IsRoot reports whether the reference is NoParent.
func (p ParentRef) IsRoot() bool {
	return !p.set
}

func (p ParentRef) String() string {
	if !p.set {
		return "none"
	}
	return fmt.Sprintf("%d", p.id)
}

// MarshalJSON encodes NoParent as null and a parent as its numeric id.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.id)
}

// UnmarshalJSON accepts null or a numeric id.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NoParent()
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("parent comment id: %w", err)
	}
	*p = ParentOf(id)
	return nil
}

// Comment is a reply attached to a review, optionally nested under another
// comment of the same review.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ReviewID  int64     `json:"review_id"`
	Parent    ParentRef `json:"parent_comment_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode wraps a comment together with its replies, ordered by creation
// time ascending.
type CommentNode struct {
	Comment
	Children []*CommentNode `json:"children"`
}
