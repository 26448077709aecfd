// Package models contains data structures for the application's domain models.
package models

// MaxCommentLen is the comment length limit in characters.
const MaxCommentLen = 500

// Comment is a user-authored reply attached to a post. Comments are never
// mutated or deleted individually; they only disappear when the owning
// post's delete cascade removes them.
type Comment struct {
	ID       string `json:"id"`
	PostID   string `json:"post_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Text     string `json:"text"`
	// CreatedAt is store-assigned asynchronously and may be temporarily
	// unresolved right after submission.
	CreatedAt Timestamp `json:"created_at"`
}
