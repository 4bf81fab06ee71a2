// Package common contains shared constants and sentinel errors used across
// SchoolDesk components.
package common

// AuthorizationHeaderName carries the bearer credential on outbound HTTP
// requests; BearerPrefix precedes the token value.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// RequestIDHeaderName correlates client and server log lines.
const RequestIDHeaderName = "X-Request-ID"

// Roles known to the route table and the backend.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// DefaultRole is assigned on registration when none is given.
const DefaultRole = RoleStudent

// Endpoints, relative to the API base URL.
const (
	EndpointLogin    = "auth/login"
	EndpointRegister = "auth/register"
	EndpointMe       = "auth/me"
)

// Client-side navigation targets.
const (
	PathLogin        = "/auth/login"
	PathRegister     = "/auth/register"
	PathUnauthorized = "/pages/unauthorized"
	ReturnURLParam   = "returnUrl"
)

// LandingPath returns the page a freshly signed-in principal is sent to.
func LandingPath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleTeacher:
		return "/teacher/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	default:
		return "/"
	}
}
