package workflow

import (
	"net/http"
	"testing"
	"time"

	"kasuwa/models"
)

func TestListingApprovalRoleGuard(t *testing.T) {
	err := ListingApproval.Transition("pending", "approved", "vendor")
	if _, ok := err.(*AuthorizationError); !ok {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if HTTPStatus(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", HTTPStatus(err))
	}
}

func TestListingApprovalEdges(t *testing.T) {
	if err := ListingApproval.Transition("pending", "approved", "admin"); err != nil {
		t.Fatalf("pending->approved should be legal: %v", err)
	}
	if err := ListingApproval.Transition("rejected", "approved", "superadmin"); err != nil {
		t.Fatalf("rejected->approved should be legal: %v", err)
	}

	err := ListingApproval.Transition("approved", "pending", "admin")
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("approved->pending should be a StateError, got %v", err)
	}
	if HTTPStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", HTTPStatus(err))
	}
}

func TestRoleCheckedBeforeState(t *testing.T) {
	// an illegal edge attempted by a forbidden role reports the role, not the
	// state
	err := BookingStatus.Transition("nonsense", "alsononsense", "user")
	if _, ok := err.(*AuthorizationError); !ok {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestBookingStatusFullyConnected(t *testing.T) {
	states := []string{"pending", "approved", "rejected", "cancelled"}
	for _, from := range states {
		for _, to := range states {
			if from == to {
				continue
			}
			if !BookingStatus.Can(from, to) {
				t.Errorf("expected %s -> %s to be legal", from, to)
			}
		}
	}
}

func TestApplyListingStatusTimestamps(t *testing.T) {
	now := time.Now()
	l := &models.Listing{Status: "pending"}

	if err := ApplyListingStatus(l, "approved", "admin", now); err != nil {
		t.Fatal(err)
	}
	if l.ApprovedAt == nil || !l.ApprovedAt.Equal(now) {
		t.Fatalf("approvedAt not stamped: %v", l.ApprovedAt)
	}

	if err := ApplyListingStatus(l, "rejected", "admin", now); err != nil {
		t.Fatal(err)
	}
	if l.ApprovedAt != nil {
		t.Fatal("approvedAt must clear when leaving approved")
	}
}

func TestApplyVendorDecisionFlipsFlags(t *testing.T) {
	now := time.Now()
	u := &models.User{Role: "vendor", Vendor: &models.VendorProfile{ApprovalStatus: "pending"}}

	if err := ApplyVendorDecision(u, "approved", "admin", now); err != nil {
		t.Fatal(err)
	}
	if !u.IsVerified || !u.IsActive || u.Vendor.ApprovedAt == nil {
		t.Fatalf("approval must verify and activate: %+v", u)
	}

	if err := ApplyVendorDecision(u, "rejected", "superadmin", now); err != nil {
		t.Fatal(err)
	}
	if u.IsVerified || u.IsActive || u.Vendor.ApprovedAt != nil {
		t.Fatalf("rejection must deactivate: %+v", u)
	}
}

func TestApplyVendorDecisionMissingProfile(t *testing.T) {
	err := ApplyVendorDecision(&models.User{Role: "vendor"}, "approved", "admin", time.Now())
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestApplyModeration(t *testing.T) {
	now := time.Now()
	rv := &models.Review{Status: "pending"}

	if err := ApplyModeration(rv, "approved", "admin", "adm1", "looks fine", now); err != nil {
		t.Fatal(err)
	}
	if rv.Status != "approved" || rv.ModeratedBy != "adm1" || rv.ModeratedAt == nil {
		t.Fatalf("moderation stamp missing: %+v", rv)
	}
}

func TestApplyModerationRejectsDeleted(t *testing.T) {
	rv := &models.Review{Status: "pending", IsDeleted: true}
	err := ApplyModeration(rv, "approved", "admin", "adm1", "", time.Now())
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("expected StateError for deleted review, got %v", err)
	}
}

func TestRedeemInvite(t *testing.T) {
	now := time.Now()
	expires := now.Add(10 * time.Minute)
	u := &models.User{
		Email: "new@admin.test",
		Admin: &models.AdminInvite{
			InvitationCode:    "123456",
			InvitationExpires: &expires,
			InvitationStatus:  InvitePending,
		},
	}

	if err := RedeemInvite(u, "123456", "new@admin.test", now); err != nil {
		t.Fatal(err)
	}
	if u.Admin.InvitationStatus != InviteApproved || u.Admin.InvitationCode != "" {
		t.Fatalf("invite not consumed: %+v", u.Admin)
	}
	if !u.IsVerified || !u.IsActive {
		t.Fatal("redeeming must activate the account")
	}

	// second redemption fails: the invite is no longer pending
	if err := RedeemInvite(u, "123456", "new@admin.test", now); err == nil {
		t.Fatal("expected error on double redemption")
	}
}

func TestRedeemInviteWrongCodeOrEmail(t *testing.T) {
	now := time.Now()
	expires := now.Add(10 * time.Minute)
	fresh := func() *models.User {
		return &models.User{
			Email: "new@admin.test",
			Admin: &models.AdminInvite{
				InvitationCode:    "123456",
				InvitationExpires: &expires,
				InvitationStatus:  InvitePending,
			},
		}
	}

	if err := RedeemInvite(fresh(), "000000", "new@admin.test", now); err == nil {
		t.Fatal("expected error for wrong code")
	}
	if err := RedeemInvite(fresh(), "123456", "other@admin.test", now); err == nil {
		t.Fatal("expected error for wrong email")
	}
}

func TestRedeemInviteExpired(t *testing.T) {
	now := time.Now()
	expires := now.Add(-time.Minute)
	u := &models.User{
		Email: "new@admin.test",
		Admin: &models.AdminInvite{
			InvitationCode:    "123456",
			InvitationExpires: &expires,
			InvitationStatus:  InvitePending,
		},
	}

	err := RedeemInvite(u, "123456", "new@admin.test", now)
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("expected StateError for expired invite, got %v", err)
	}
}

func TestRevokeInvite(t *testing.T) {
	u := &models.User{
		IsActive:   true,
		IsVerified: true,
		Admin:      &models.AdminInvite{InvitationStatus: InviteApproved},
	}

	if err := RevokeInvite(u, "user"); err == nil {
		t.Fatal("expected error for non-admin revoker")
	}

	if err := RevokeInvite(u, "superadmin"); err != nil {
		t.Fatal(err)
	}
	if u.Admin.InvitationStatus != InviteRevoked || u.IsActive || u.IsVerified {
		t.Fatalf("revocation incomplete: %+v", u)
	}

	// terminal: revoking again is a state error
	if err := RevokeInvite(u, "superadmin"); err == nil {
		t.Fatal("expected error on double revocation")
	}
}
