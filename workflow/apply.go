package workflow

import (
	"time"

	"kasuwa/models"
)

// ApplyListingStatus transitions a listing and keeps the approval timestamp
// consistent: non-nil iff the listing is approved.
func ApplyListingStatus(l *models.Listing, to, role string, now time.Time) error {
	if err := ListingApproval.Transition(l.Status, to, role); err != nil {
		return err
	}
	l.Status = to
	if to == models.StatusApproved {
		l.ApprovedAt = &now
	} else {
		l.ApprovedAt = nil
	}
	return nil
}

// ApplyBookingStatus transitions a booking. Notification dispatch is the
// caller's job; every successful transition must fire one.
func ApplyBookingStatus(b *models.Booking, to, role string, now time.Time) error {
	if err := BookingStatus.Transition(b.Status, to, role); err != nil {
		return err
	}
	b.Status = to
	b.UpdatedAt = now
	return nil
}

// ApplyVendorDecision transitions a vendor profile and flips the account
// flags with it: approved accounts are verified and active, anything else
// is neither.
func ApplyVendorDecision(u *models.User, to, role string, now time.Time) error {
	if u.Vendor == nil {
		return &StateError{Entity: "vendor", From: "missing", To: to}
	}
	if err := VendorApproval.Transition(u.Vendor.ApprovalStatus, to, role); err != nil {
		return err
	}
	u.Vendor.ApprovalStatus = to
	if to == models.StatusApproved {
		u.Vendor.ApprovedAt = &now
		u.IsVerified = true
		u.IsActive = true
	} else {
		u.Vendor.ApprovedAt = nil
		u.IsVerified = false
		u.IsActive = false
	}
	return nil
}

// ApplyModeration transitions a review's moderation sub-state and stamps the
// moderator. Deleted reviews cannot be moderated.
func ApplyModeration(rv *models.Review, to, role, moderatorID, reason string, now time.Time) error {
	if rv.IsDeleted {
		return &StateError{Entity: "review", From: "deleted", To: to}
	}
	if err := ReviewModeration.Transition(rv.Status, to, role); err != nil {
		return err
	}
	rv.Status = to
	rv.ModeratedBy = moderatorID
	rv.ModeratedAt = &now
	rv.ModerationReason = reason
	return nil
}
