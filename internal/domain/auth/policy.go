package auth

// Role policy: three pure predicates, the entire authorization model.
// Unknown or empty roles always come out false.

// CanViewDashboard — every recognized role may read.
func CanViewDashboard(r Role) bool {
	return r == RoleAdminGudang || r == RoleKaryawan || r == RoleKurir
}

// CanCreateMovement — IN/OUT transactions.
func CanCreateMovement(r Role) bool {
	return r == RoleAdminGudang || r == RoleKaryawan
}

// CanManageSparepart — catalog CRUD, admin only.
func CanManageSparepart(r Role) bool {
	return r == RoleAdminGudang
}
