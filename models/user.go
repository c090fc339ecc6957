package models

import "time"

// VendorProfile is the approval sub-state embedded in a vendor account.
// ApprovedAt is non-nil only while ApprovalStatus is "approved".
type VendorProfile struct {
	BusinessName   string     `json:"businessName,omitempty" bson:"businessName,omitempty"`
	ApprovalStatus string     `json:"approvalStatus" bson:"approvalStatus"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
}

// AdminInvite is the one-time-code invitation sub-state embedded in an admin
// account. The code gates activation; redeeming it sets the password.
type AdminInvite struct {
	InvitationCode    string     `json:"-" bson:"invitationCode,omitempty"`
	InvitationExpires *time.Time `json:"-" bson:"invitationExpires,omitempty"`
	InvitationStatus  string     `json:"invitationStatus,omitempty" bson:"invitationStatus,omitempty"`
}

type User struct {
	UserID     string         `json:"userid" bson:"userid"`
	FirstName  string         `json:"firstName" bson:"firstName"`
	LastName   string         `json:"lastName" bson:"lastName"`
	Email      string         `json:"email" bson:"email"`
	Phone      string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Password   string         `json:"-" bson:"password"`
	Role       string         `json:"role" bson:"role"`
	IsVerified bool           `json:"isVerified" bson:"isVerified"`
	IsActive   bool           `json:"isActive" bson:"isActive"`
	Vendor     *VendorProfile `json:"vendor,omitempty" bson:"vendor,omitempty"`
	Admin      *AdminInvite   `json:"admin,omitempty" bson:"admin,omitempty"`
	LastLogin  time.Time      `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}
