package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromToken pulls the kiosk token's employee identity. Admin
// endpoints that act on another employee pass the ID explicitly instead.
func employeeIDFromToken(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", false
	}
	return employeeID, true
}

// actorFromToken identifies who performed an admin action for audit fields.
func actorFromToken(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}
