package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal_EffectiveRole(t *testing.T) {
	tests := []struct {
		name string
		p    *Principal
		want string
	}{
		{name: "nil", p: nil, want: ""},
		{name: "role wins", p: &Principal{Role: "teacher", Roles: []string{"admin"}}, want: "teacher"},
		{name: "falls back to roles", p: &Principal{Roles: []string{"admin", "teacher"}}, want: "admin"},
		{name: "blank role falls back", p: &Principal{Role: "  ", Roles: []string{"student"}}, want: "student"},
		{name: "none", p: &Principal{Email: "a@b.c"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.EffectiveRole())
		})
	}
}

func TestPrincipal_CloneIsDeep(t *testing.T) {
	p := &Principal{ID: 1, Roles: []string{"admin"}}
	c := p.Clone()
	c.Roles[0] = "student"
	c.ID = 2

	assert.Equal(t, "admin", p.Roles[0])
	assert.Equal(t, int64(1), p.ID)
	assert.Nil(t, (*Principal)(nil).Clone())
}

func TestPrincipalFrom(t *testing.T) {
	resp := &LoginResponse{Token: "t1", User: IdentityUser{ID: 7, Email: "ann@school.test", Role: "teacher"}}
	p := PrincipalFrom(resp)
	require.NotNil(t, p)
	assert.Equal(t, &Principal{ID: 7, Email: "ann@school.test", Username: "ann@school.test", Role: "teacher", Token: "t1"}, p)
}
