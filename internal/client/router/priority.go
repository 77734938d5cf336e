package router

import "slices"

// RoleHome binds a role to its landing path.
type RoleHome struct {
	Role string
	Path string
}

// RolePriority is ordered highest first. The first entry whose role the
// session holds decides the home path.
type RolePriority []RoleHome

// DefaultRolePriority is the precedence used when config does not
// override it.
func DefaultRolePriority() RolePriority {
	return RolePriority{
		{Role: RoleAdmin, Path: "/admin"},
		{Role: RoleInventoryManager, Path: "/inventory"},
		{Role: RoleDoctor, Path: "/doctor"},
		{Role: RoleNurse, Path: "/nurse"},
		{Role: RoleReceptionist, Path: "/receptionist"},
		{Role: RoleLabTechnician, Path: "/lab-tech"},
	}
}

// Home returns the landing path for roles, or DashboardPath when none of
// them is listed.
func (p RolePriority) Home(roles []string) string {
	for _, rh := range p {
		if slices.Contains(roles, rh.Role) {
			return rh.Path
		}
	}
	return DashboardPath
}
