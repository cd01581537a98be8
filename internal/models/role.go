package models

// UserRole gates which views and actions are available
type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleManager    UserRole = "Manager"
	RoleTechnician UserRole = "Technician"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician:
		return true
	}
	return false
}
