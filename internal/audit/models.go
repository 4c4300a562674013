package audit

import "time"

// Entry is an immutable, append-only audit log record.
//
// Invariants:
// - Entries are never updated or deleted.
// - Actor and ip capture are best-effort; do not block critical flows on audit failures.
//
// Storage: the audit_logs collection is insert-only; nothing in this codebase
// issues updates or deletes against it.

type Entry struct {
	ID string `json:"id" bson:"_id"`

	// Actor is the authenticated principal that caused the entry.
	ActorID    string `json:"actor_id" bson:"actor_id"`
	ActorEmail string `json:"actor_email" bson:"actor_email"`
	ActorName  string `json:"actor_name" bson:"actor_name"`

	// Action is the verb declared at route registration, not inferred from
	// the HTTP method.
	Action   string `json:"action" bson:"action"`
	Resource string `json:"resource" bson:"resource"`

	ResourceID string `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	// ResourceName is a best-effort display name extracted from the request
	// body (name, then title, then email).
	ResourceName string `json:"resource_name,omitempty" bson:"resource_name,omitempty"`

	// Details is a short human-readable description for internal ops.
	Details string `json:"details,omitempty" bson:"details,omitempty"`

	// Changes lists field-level updates. OldValue is "N/A" when the handler
	// did not supply the pre-mutation document.
	Changes []FieldChange `json:"changes,omitempty" bson:"changes,omitempty"`

	IPAddress string `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty" bson:"user_agent,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type FieldChange struct {
	Field    string `json:"field" bson:"field"`
	OldValue string `json:"old_value" bson:"old_value"`
	NewValue string `json:"new_value" bson:"new_value"`
}

// Audit actions. Keep stable; they appear in stored entries and CSV exports.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionView   = "view"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// OldValueUnknown marks an update change whose pre-mutation value was not
// captured. Closing this gap requires the handler to pre-read the document
// and pass real changes via SetChanges.
const OldValueUnknown = "N/A"
