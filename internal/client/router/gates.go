package router

import (
	"context"
	"net/url"
	"slices"

	"github.com/dmitrijs2005/schooldesk/internal/client/models"
	"github.com/dmitrijs2005/schooldesk/internal/common"
)

// Decision is the verdict of a Gate. When Admit is false, Redirect names
// where the user is sent instead.
type Decision struct {
	Admit    bool
	Redirect string
}

var admit = Decision{Admit: true}

// Gate decides synchronously whether a navigation may proceed. Gates never
// perform network I/O.
type Gate interface {
	Check(ctx context.Context, r *Route, requested string) Decision
}

// Authenticator reports whether a complete session is held.
type Authenticator interface {
	Authenticated(ctx context.Context) bool
}

// PrincipalSource returns the signed-in principal, or nil.
type PrincipalSource interface {
	CurrentUser() *models.Principal
}

// LoginURL is the login page carrying requested as the return target.
func LoginURL(requested string) string {
	return common.PathLogin + "?" + common.ReturnURLParam + "=" + url.QueryEscape(requested)
}

// AuthGate admits only an authenticated session.
type AuthGate struct {
	session Authenticator
}

func NewAuthGate(s Authenticator) *AuthGate {
	return &AuthGate{session: s}
}

func (g *AuthGate) Check(ctx context.Context, r *Route, requested string) Decision {
	if g.session.Authenticated(ctx) {
		return admit
	}
	return Decision{Redirect: LoginURL(requested)}
}

// RoleGate admits a principal whose effective role is among the route's
// roles. A route without roles admits anyone this gate sees.
type RoleGate struct {
	users PrincipalSource
}

func NewRoleGate(users PrincipalSource) *RoleGate {
	return &RoleGate{users: users}
}

func (g *RoleGate) Check(ctx context.Context, r *Route, requested string) Decision {
	if len(r.Roles) == 0 {
		return admit
	}

	p := g.users.CurrentUser()
	if p == nil {
		return Decision{Redirect: LoginURL(requested)}
	}

	role := p.EffectiveRole()
	if role == "" || !slices.Contains(r.Roles, role) {
		return Decision{Redirect: common.PathUnauthorized}
	}
	return admit
}
