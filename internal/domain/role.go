package domain

// Role is the immutable account type chosen at registration.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole returns the Role named by s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := Roles[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := Roles[r]
	return ok
}

func (r Role) String() string { return string(r) }

// RolePolicy holds every role-conditional rule of the system.
type RolePolicy struct {
	CanCreateJobs bool
	CanApply      bool
	// CanDeleteApplication is only checked together with OwnsApplication.
	CanDeleteApplication bool
	// OwnsApplication reports whether userID may act on app. jobOwnerID is
	// the owner of the job app refers to.
	OwnsApplication func(app *Application, jobOwnerID, userID string) bool
	// NewProfile returns an empty profile of the shape this role stores.
	NewProfile func() Profile
}

// Roles is the single role-keyed policy table.
var Roles = map[Role]RolePolicy{
	RoleCandidate: {
		CanApply:             true,
		CanDeleteApplication: true,
		OwnsApplication: func(app *Application, _, userID string) bool {
			return app.UserID == userID
		},
		NewProfile: func() Profile { return &CandidateProfile{} },
	},
	RoleRecruiter: {
		CanCreateJobs: true,
		OwnsApplication: func(_ *Application, jobOwnerID, userID string) bool {
			return jobOwnerID == userID
		},
		NewProfile: func() Profile { return &RecruiterProfile{} },
	},
}

// PolicyFor returns the policy of r. Unknown roles get a policy that allows nothing.
func PolicyFor(r Role) RolePolicy {
	if p, ok := Roles[r]; ok {
		return p
	}
	return RolePolicy{
		OwnsApplication: func(*Application, string, string) bool { return false },
		NewProfile:      func() Profile { return nil },
	}
}
