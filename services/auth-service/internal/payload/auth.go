package payload

// UserResponse is the JSON shape of a user returned by the login callback.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// IdentityResponse is the JSON shape of a linked identity. Provider
// credentials are never included.
type IdentityResponse struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	UID      string `json:"uid"`
	UserID   string `json:"user_id,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
