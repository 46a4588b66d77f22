package domain_test

import (
	"testing"

	"hmc-messhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	assert.True(t, domain.CanViewAllHostels(domain.RoleAdmin))
	assert.False(t, domain.CanViewAllHostels(domain.RoleMHMC))
	assert.False(t, domain.CanViewAllHostels(domain.RoleMunimji))
	assert.False(t, domain.CanViewAllHostels(domain.RoleStudent))

	assert.True(t, domain.CanManageRebateStatus(domain.RoleAdmin))
	assert.True(t, domain.CanManageRebateStatus(domain.RoleMHMC))
	assert.False(t, domain.CanManageRebateStatus(domain.RoleMunimji))
	assert.False(t, domain.CanManageRebateStatus(domain.RoleStudent))

	assert.True(t, domain.CanDeleteOrListRebates(domain.RoleMunimji))
	assert.False(t, domain.CanDeleteOrListRebates(domain.RoleStudent))

	// Billing extras is the counter's job, not the committee's
	assert.True(t, domain.CanBillExtras(domain.RoleMunimji))
	assert.True(t, domain.CanBillExtras(domain.RoleAdmin))
	assert.False(t, domain.CanBillExtras(domain.RoleMHMC))

	assert.True(t, domain.CanModerate(domain.RoleMHMC))
	assert.False(t, domain.CanModerate(domain.RoleMunimji))
}

func TestActorSameHostel(t *testing.T) {
	h1 := uint(1)

	student := domain.Actor{UserID: 10, Role: domain.RoleStudent, HostelID: &h1}
	assert.True(t, student.SameHostel(1))
	assert.False(t, student.SameHostel(2))

	// No hostel assignment means no hostel access for non-admins
	unassigned := domain.Actor{UserID: 11, Role: domain.RoleMHMC}
	assert.False(t, unassigned.SameHostel(1))

	// Admins are unscoped, assignment or not
	admin := domain.Actor{UserID: 12, Role: domain.RoleAdmin}
	assert.True(t, admin.SameHostel(1))
	assert.True(t, admin.SameHostel(99))
	scopedAdmin := domain.Actor{UserID: 13, Role: domain.RoleAdmin, HostelID: &h1}
	assert.True(t, scopedAdmin.SameHostel(2))
}

func TestRoleValid(t *testing.T) {
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleMHMC, domain.RoleStudent, domain.RoleMunimji} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, domain.Role("warden").Valid())
	assert.False(t, domain.Role("").Valid())
}

func TestRebateStatusValid(t *testing.T) {
	assert.True(t, domain.RebatePending.Valid())
	assert.True(t, domain.RebateApproved.Valid())
	assert.True(t, domain.RebateRejected.Valid())
	assert.False(t, domain.RebateStatus("cancelled").Valid())
}
