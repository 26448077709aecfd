package models

// User is the viewer session snapshot yielded by the identity provider.
// A nil *User means the viewer is anonymous.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatar_url"`
}

// Name returns the best available display name, falling back to the
// email address and finally to "Anonymous", matching what gets written
// into username snapshots on posts and comments.
func (u *User) Name() string {
	if u == nil {
		return "Anonymous"
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Anonymous"
}
