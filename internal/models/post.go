package models

// Post is a user-authored feed entry. Posts are immutable once created;
// the only mutation in scope is a full delete.
type Post struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// CreatedAt is store-assigned and may be Absent until the server
	// has written it.
	CreatedAt Timestamp `json:"created_at"`
}
