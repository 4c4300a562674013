package users

import "time"

// User is the stored account document.
//
// PasswordHash is never serialized to JSON and is projected out of reads that
// feed principals; only the credential paths (login, password change) load it.
type User struct {
	ID    string `json:"id" bson:"_id"`
	Email string `json:"email" bson:"email"`
	Name  string `json:"name" bson:"name"`

	PasswordHash string `json:"-" bson:"password"`

	// Role is one of the rbac role constants.
	Role   string `json:"role" bson:"role"`
	Active bool   `json:"active" bson:"active"`

	// Permissions, when non-nil, overrides the role's default matrix
	// (resource -> action -> allowed). Mutated only via the admin-gated
	// permissions endpoint.
	Permissions map[string]map[string]bool `json:"permissions,omitempty" bson:"permissions,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
