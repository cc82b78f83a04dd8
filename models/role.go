package models

// Role is the kind of account a user holds. It is fixed when the user is created.
type Role string

const (
	RoleGuest   Role = ""
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleFaculty Role = "faculty"
)

// Capability names a permission checked before a gated route runs.
type Capability string

const (
	CapManageCatalog     Capability = "manage_catalog"
	CapManageCourseLists Capability = "manage_course_lists"
)

var roleCapabilities = map[Role][]Capability{
	RoleStaff:   {CapManageCatalog},
	RoleFaculty: {CapManageCourseLists},
}

// ParseRole maps a stored role string to a Role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleStudent, RoleStaff, RoleFaculty:
		return r, true
	}
	return RoleGuest, false
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	if r == RoleGuest {
		return "guest"
	}
	return string(r)
}
