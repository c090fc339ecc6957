package utils

import (
	"kasuwa/globals"
	"net/http"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) string {
	role, _ := r.Context().Value(globals.RoleKey).(string)
	return role
}

// IsModerator reports whether the role may act on other users' content.
func IsModerator(role string) bool {
	return role == globals.RoleAdmin || role == globals.RoleSuperadmin
}
