package domain

// User represents a registered account. The ID is opaque: registration
// generates a UUID, but identities minted upstream are accepted as-is.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
}
