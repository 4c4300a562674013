package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts and are
// stored on user documents.
const (
	RoleAdmin     = "admin"
	RoleHRManager = "hr_manager"
	RoleRecruiter = "recruiter"
	RoleViewer    = "viewer"
)

// Protected resource names. Every route registration uses one of these.
const (
	ResourceUsers        = "users"
	ResourceCompanies    = "companies"
	ResourceJobs         = "jobs"
	ResourceApplications = "applications"
)

// Actions.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHRManager, RoleRecruiter, RoleViewer:
		return true
	default:
		return false
	}
}

// Matrix maps resource -> action -> allowed.
// Absence of a resource or action key means deny (fail-closed).
type Matrix map[string]map[string]bool

// defaultMatrices is process-wide constant configuration, loaded once and
// never mutated at runtime. Per-user overrides are the only mutable layer;
// they live on the user document and are preferred by the evaluator.
var defaultMatrices = map[string]Matrix{
	RoleAdmin: {
		ResourceUsers:        {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		ResourceCompanies:    {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		ResourceJobs:         {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		ResourceApplications: {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
	},
	RoleHRManager: {
		ResourceUsers:        {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: false},
		ResourceCompanies:    {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: false},
		ResourceJobs:         {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: true},
		ResourceApplications: {ActionCreate: false, ActionRead: true, ActionUpdate: true, ActionDelete: false},
	},
	RoleRecruiter: {
		ResourceUsers:        {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
		ResourceCompanies:    {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
		ResourceJobs:         {ActionCreate: true, ActionRead: true, ActionUpdate: true, ActionDelete: false},
		ResourceApplications: {ActionCreate: false, ActionRead: true, ActionUpdate: true, ActionDelete: false},
	},
	RoleViewer: {
		ResourceUsers:        {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
		ResourceCompanies:    {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
		ResourceJobs:         {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
		ResourceApplications: {ActionCreate: false, ActionRead: true, ActionUpdate: false, ActionDelete: false},
	},
}

// DefaultMatrix returns a deep copy of the role's default matrix, or nil for
// an unknown role. Copying keeps the table immutable even if a caller edits
// the result (e.g., to seed a user override).
func DefaultMatrix(role string) Matrix {
	src, ok := defaultMatrices[role]
	if !ok {
		return nil
	}
	out := make(Matrix, len(src))
	for res, actions := range src {
		m := make(map[string]bool, len(actions))
		for a, v := range actions {
			m[a] = v
		}
		out[res] = m
	}
	return out
}
