package identity

import "strings"

// Identity is the mock local identity assigned at login. The ID is derived
// deterministically from the entered name so the same student resumes the
// same transcript across page loads.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// FromName derives the identity for a display name. Returns the zero
// identity when the name is empty or whitespace.
func FromName(name string) Identity {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Identity{}
	}
	return Identity{
		ID:          "user_" + strings.ToLower(trimmed),
		DisplayName: trimmed,
	}
}

// Valid reports whether the identity carries a usable id.
func (i Identity) Valid() bool {
	return i.ID != ""
}
