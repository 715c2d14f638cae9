package user

// Profile is the schemaless profile document stored under users/{namespace}/{uid}.
type Profile map[string]any

// FullName returns the profile's display name, or fallback when it has none.
func (p Profile) FullName(fallback string) string {
	if p == nil {
		return fallback
	}
	if s, ok := p["fullName"].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Identity is the tagged result of resolving a uid against every profile namespace.
// Role is RoleUnknown and Profile is nil when no namespace has the uid.
type Identity struct {
	UID     string
	Role    Role
	Profile Profile
}

func (i Identity) IsKnown() bool {
	return i.Role.IsValid()
}

func (i Identity) IsCustomer() bool { return i.Role == RoleCustomer }
func (i Identity) IsWorker() bool   { return i.Role == RoleWorker }
func (i Identity) IsAdmin() bool    { return i.Role == RoleAdmin }

// Resolve picks the identity from per-role lookups. found maps each role to the
// profile found in its namespace; absent roles had no profile.
func Resolve(uid string, found map[Role]Profile) Identity {
	for _, role := range ResolutionOrder {
		if p, ok := found[role]; ok {
			if p == nil {
				p = Profile{}
			}
			return Identity{UID: uid, Role: role, Profile: p}
		}
	}
	return Identity{UID: uid, Role: RoleUnknown}
}
