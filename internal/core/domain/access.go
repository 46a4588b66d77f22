package domain

// Access policy predicates. Every ledger operation composes these;
// keeping them in one place avoids re-deriving role checks at each
// call site.

// CanViewAllHostels reports whether the role may read records across
// every hostel rather than only its own.
func CanViewAllHostels(r Role) bool {
	return r == RoleAdmin
}

// CanManageRebateStatus reports whether the role may approve or reject
// rebates.
func CanManageRebateStatus(r Role) bool {
	return r == RoleAdmin || r == RoleMHMC
}

// CanDeleteOrListRebates reports whether the role may list or delete
// hostel rebates.
func CanDeleteOrListRebates(r Role) bool {
	return r == RoleAdmin || r == RoleMHMC || r == RoleMunimji
}

// CanBillExtras reports whether the role may record extra-item
// purchases against a student.
func CanBillExtras(r Role) bool {
	return r == RoleAdmin || r == RoleMunimji
}

// CanModerate reports whether the role may moderate forum posts,
// notifications and menu polls.
func CanModerate(r Role) bool {
	return r == RoleAdmin || r == RoleMHMC
}

// SameHostel reports whether the actor may touch rows of the given
// hostel. Admins are hostel-unscoped; everyone else is restricted to
// their own hostel.
func (a Actor) SameHostel(hostelID uint) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.HostelID != nil && *a.HostelID == hostelID
}
