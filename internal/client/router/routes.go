package router

import (
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
)

// Route is one entry of the navigation table, keyed by the first path
// segment. Gates run in the order given.
type Route struct {
	Segment string
	Title   string
	Gates   []Gate
	// Roles feeds RoleGate. nil and empty both mean no role restriction.
	Roles []string
	// RedirectTo, when set, forwards the navigation before any gate runs.
	RedirectTo string
	// Pages maps the path below Segment to the endpoint the page loads on
	// mount. The key "" is the route's own path.
	Pages map[string]string
}

// Endpoint returns the endpoint a page under this route loads, if any.
func (r *Route) Endpoint(p string) (string, bool) {
	rest := strings.Trim(strings.TrimPrefix(strings.TrimPrefix(p, "/"), r.Segment), "/")
	ep, ok := r.Pages[rest]
	return ep, ok
}

// DefaultRoutes is the SchoolDesk navigation table.
func DefaultRoutes(auth, role Gate) []Route {
	return []Route{
		{Segment: "auth", Title: "Account"},
		{
			Segment: "admin", Title: "Administration",
			Gates: []Gate{auth, role}, Roles: []string{common.RoleAdmin},
			Pages: map[string]string{"dashboard": "admin/dashboard"},
		},
		{
			Segment: "teacher", Title: "Teacher",
			Gates: []Gate{auth, role}, Roles: []string{common.RoleTeacher},
			Pages: map[string]string{"dashboard": "teacher/dashboard"},
		},
		{
			Segment: "student", Title: "Student",
			Gates: []Gate{auth, role}, Roles: []string{common.RoleStudent},
			Pages: map[string]string{"dashboard": "student/dashboard"},
		},
		{Segment: "", RedirectTo: "/dashboard"},
		{
			Segment: "dashboard", Title: "Dashboard",
			Gates: []Gate{auth},
			Pages: map[string]string{"": common.EndpointMe},
		},
		{Segment: "pages", Title: "Pages", Gates: []Gate{auth}},
		{Segment: "crypto-ico-landing", Title: "Landing"},
	}
}
