package models

// Like is a (post, user) endorsement record.
// At most one Like may exist per (PostID, UserID) pair. The store has no
// native uniqueness constraint on the pair, so the client guards on add.
type Like struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}
