// Package router resolves navigation targets against the route table and
// runs each route's admission gates.
package router

import (
	"context"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

const maxRedirects = 8

// Outcome describes where a navigation ended up.
type Outcome struct {
	Requested string
	Location  string
	// Admitted is true when Location is the requested page (after forward
	// redirects such as "/" to "/dashboard").
	Admitted bool
	NotFound bool
	Route    *Route
	// Endpoint is what the page at Location loads on mount, if anything.
	Endpoint string
}

// Router holds the current location. It is safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	routes   []Route
	location string
	logger   logging.Logger
}

func New(routes []Route, l logging.Logger) *Router {
	logger := l.With("module", "router")
	for _, r := range routes {
		if r.Roles != nil && len(r.Roles) == 0 {
			logger.Warn(context.Background(), "route declares an empty role list; any signed-in user is admitted", "segment", r.Segment)
		}
	}
	return &Router{routes: routes, location: "/", logger: logger}
}

// Location is the page the user is on.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// Redirect moves to path without running any gate.
func (r *Router) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debug(context.Background(), "redirect", "from", r.location, "to", path)
	r.location = path
}

// Navigate runs the gates of the route matching target and moves the
// location to target or to wherever a gate redirected.
func (r *Router) Navigate(ctx context.Context, target string) Outcome {
	requested := normalize(target)
	current := requested
	forwarded := requested

	var out Outcome
	for hop := 0; ; hop++ {
		route := r.match(current)
		if route == nil {
			out = Outcome{Location: current, NotFound: true}
			break
		}
		if route.RedirectTo != "" && hop < maxRedirects {
			if current == forwarded {
				forwarded = route.RedirectTo
			}
			current = route.RedirectTo
			continue
		}

		denied := false
		for _, g := range route.Gates {
			d := g.Check(ctx, route, current)
			if d.Admit {
				continue
			}
			r.logger.Info(ctx, "navigation denied", "path", current, "redirect", d.Redirect)
			current = normalize(d.Redirect)
			denied = true
			break
		}
		if denied && hop < maxRedirects {
			continue
		}

		out = Outcome{Location: current, Route: route, Admitted: !denied && current == forwarded}
		if ep, ok := route.Endpoint(pathOf(current)); ok {
			out.Endpoint = ep
		}
		break
	}

	out.Requested = requested
	r.mu.Lock()
	r.location = out.Location
	r.mu.Unlock()
	return out
}

func (r *Router) match(target string) *Route {
	p := strings.Trim(pathOf(target), "/")
	segment, _, _ := strings.Cut(p, "/")
	for i := range r.routes {
		route := &r.routes[i]
		if route.Segment != segment {
			continue
		}
		if route.Segment == "" && p != "" {
			continue
		}
		return route
	}
	return nil
}

// ReturnURL pulls the returnUrl parameter out of a location like
// "/auth/login?returnUrl=%2Fadmin". Unsafe values are dropped.
func ReturnURL(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return SafeReturnURL(u.Query().Get(common.ReturnURLParam))
}

// SafeReturnURL accepts only local absolute paths that do not point back
// at the login page.
func SafeReturnURL(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	if p := path.Clean(u.Path); p == common.PathLogin || strings.HasPrefix(p, common.PathLogin+"/") {
		return ""
	}
	return next
}

// AfterLogin is where a freshly signed-in user goes: the return target left
// by a gate if there is one, else the landing page for the role.
func AfterLogin(location, role string) string {
	if next := ReturnURL(location); next != "" {
		return next
	}
	return common.LandingPath(role)
}

// normalize roots target and cleans its path, so dot segments cannot reach
// a route other than the one the cleaned path names. The query is kept.
func normalize(target string) string {
	p, q, hasQuery := strings.Cut(strings.TrimSpace(target), "?")
	p = path.Clean("/" + p)
	if hasQuery {
		return p + "?" + q
	}
	return p
}

func pathOf(target string) string {
	p, _, _ := strings.Cut(target, "?")
	return p
}
