package rbac

import "jobboard-platform/internal/identity"

// Allowed decides whether p may perform action on resource.
//
// Rules:
// - admin bypasses the matrix entirely
// - a per-user override matrix, when present, replaces the role default
// - any missing resource or action key evaluates to deny (fail-closed)
//
// Deterministic and side-effect free; safe to call more than once per request.
func Allowed(p identity.Principal, resource, action string) bool {
	if IsAdmin(p.Role) {
		return true
	}

	var m Matrix
	if p.Overrides != nil {
		m = Matrix(p.Overrides)
	} else {
		m = defaultMatrices[p.Role]
	}
	if m == nil {
		return false
	}

	actions, ok := m[resource]
	if !ok {
		return false
	}
	return actions[action]
}
