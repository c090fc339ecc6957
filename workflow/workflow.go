// Package workflow holds the role-gated status machines shared by listings,
// bookings, review moderation, vendor approval and admin invitations. The
// machines are pure: handlers apply the returned decision to the stored
// document and fire notifications afterwards.
package workflow

import (
	"fmt"
	"net/http"

	"kasuwa/globals"
)

// AuthorizationError means the acting role may not drive this machine.
type AuthorizationError struct {
	Role   string
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not allowed to %s", e.Role, e.Action)
}

// StateError means the transition itself is illegal.
type StateError struct {
	Entity string
	From   string
	To     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.From, e.To)
}

// HTTPStatus maps a transition failure onto the response code handlers
// return: role failures are 403, illegal transitions 400.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *AuthorizationError:
		return http.StatusForbidden
	case *StateError:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Machine is a status machine: which roles may transition, and which target
// states each current state allows.
type Machine struct {
	Entity      string
	Roles       []string
	Transitions map[string][]string
}

func (m Machine) allowedRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Can reports whether from -> to is a legal edge, ignoring roles.
func (m Machine) Can(from, to string) bool {
	for _, t := range m.Transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition checks the role guard first, then the edge. The role check
// comes first so a forbidden actor learns nothing about the current state.
func (m Machine) Transition(from, to, role string) error {
	if !m.allowedRole(role) {
		return &AuthorizationError{Role: role, Action: "update " + m.Entity + " status"}
	}
	if !m.Can(from, to) {
		return &StateError{Entity: m.Entity, From: from, To: to}
	}
	return nil
}

// Listings: admins decide, approval can be revisited in both directions.
var ListingApproval = Machine{
	Entity: "listing",
	Roles:  []string{globals.RoleAdmin, globals.RoleSuperadmin},
	Transitions: map[string][]string{
		"pending":  {"approved", "rejected"},
		"approved": {"rejected"},
		"rejected": {"approved"},
	},
}

// Bookings: vendors and admins move freely among the four states.
var BookingStatus = Machine{
	Entity: "booking",
	Roles:  []string{globals.RoleVendor, globals.RoleAdmin, globals.RoleSuperadmin},
	Transitions: map[string][]string{
		"pending":   {"approved", "rejected", "cancelled"},
		"approved":  {"pending", "rejected", "cancelled"},
		"rejected":  {"pending", "approved", "cancelled"},
		"cancelled": {"pending", "approved", "rejected"},
	},
}

// Review moderation: same shape as listing approval. Author edits reset the
// review to pending outside this machine.
var ReviewModeration = Machine{
	Entity: "review",
	Roles:  []string{globals.RoleAdmin, globals.RoleSuperadmin},
	Transitions: map[string][]string{
		"pending":  {"approved", "rejected"},
		"approved": {"rejected"},
		"rejected": {"approved"},
	},
}

// Vendor profiles: admins decide, and can reverse a decision later.
var VendorApproval = Machine{
	Entity: "vendor",
	Roles:  []string{globals.RoleAdmin, globals.RoleSuperadmin},
	Transitions: map[string][]string{
		"pending":  {"approved", "rejected"},
		"approved": {"rejected"},
		"rejected": {"approved"},
	},
}
