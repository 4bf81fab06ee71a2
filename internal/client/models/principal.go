// Package models holds the client-side data types shared by the token store,
// the session services and the router.
package models

import "strings"

// Principal is the signed-in user as the client sees it. Username mirrors
// Email. Roles is only consulted when Role is empty.
type Principal struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username,omitempty"`
	Role     string   `json:"role,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Token    string   `json:"token,omitempty"`
}

// EffectiveRole returns Role, or the first entry of Roles when Role is empty.
func (p *Principal) EffectiveRole() string {
	if p == nil {
		return ""
	}
	if r := strings.TrimSpace(p.Role); r != "" {
		return r
	}
	if len(p.Roles) > 0 {
		return strings.TrimSpace(p.Roles[0])
	}
	return ""
}

// Clone returns a deep copy so observers cannot mutate shared state.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	c := *p
	if p.Roles != nil {
		c.Roles = append([]string(nil), p.Roles...)
	}
	return &c
}
