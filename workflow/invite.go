package workflow

import (
	"time"

	"kasuwa/globals"
	"kasuwa/models"
)

// Admin invitation states
const (
	InvitePending  = "pending"
	InviteApproved = "approved"
	InviteRevoked  = "revoked"
)

// RedeemInvite moves an invitation from pending to approved when the
// one-time code matches, the invite has not expired, and the email matches
// the invited account. Activation flags flip on success.
func RedeemInvite(u *models.User, code, email string, now time.Time) error {
	if u.Admin == nil || u.Admin.InvitationStatus != InvitePending {
		return &StateError{Entity: "invitation", From: inviteState(u), To: InviteApproved}
	}
	if u.Email != email || u.Admin.InvitationCode == "" || u.Admin.InvitationCode != code {
		return &AuthorizationError{Role: "invitee", Action: "redeem this invitation"}
	}
	if u.Admin.InvitationExpires == nil || now.After(*u.Admin.InvitationExpires) {
		return &StateError{Entity: "invitation", From: "expired", To: InviteApproved}
	}

	u.Admin.InvitationStatus = InviteApproved
	u.Admin.InvitationCode = ""
	u.Admin.InvitationExpires = nil
	u.IsVerified = true
	u.IsActive = true
	return nil
}

// RevokeInvite is admin-only and terminal: the invited account is
// deactivated whether or not the code was ever redeemed.
func RevokeInvite(u *models.User, role string) error {
	if role != globals.RoleAdmin && role != globals.RoleSuperadmin {
		return &AuthorizationError{Role: role, Action: "revoke an invitation"}
	}
	if u.Admin == nil || u.Admin.InvitationStatus == InviteRevoked {
		return &StateError{Entity: "invitation", From: inviteState(u), To: InviteRevoked}
	}

	u.Admin.InvitationStatus = InviteRevoked
	u.Admin.InvitationCode = ""
	u.Admin.InvitationExpires = nil
	u.IsVerified = false
	u.IsActive = false
	return nil
}

func inviteState(u *models.User) string {
	if u.Admin == nil {
		return "missing"
	}
	return u.Admin.InvitationStatus
}
