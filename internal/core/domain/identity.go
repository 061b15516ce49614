package domain

// Identity is the authenticated principal derived from a verified token. It is
// trusted for the lifetime of a single request.
type Identity struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Satisfies reports whether the identity passes a gate requiring role.
// Admins pass every gate.
func (i Identity) Satisfies(role Role) bool {
	return i.Role == role || i.IsAdmin()
}

// CanManage reports whether the identity may mutate a course owned by instructorID.
func (i Identity) CanManage(instructorID string) bool {
	return i.IsAdmin() || (i.ID != "" && i.ID == instructorID)
}
