package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rinkside/rinkside/internal/session"
)

func TestResolve(t *testing.T) {
	coach := &session.User{ID: "1", Role: session.RoleCoach}
	skater := &session.User{ID: "2", Role: session.RoleSkater}

	tests := []struct {
		name  string
		state session.State
		want  Route
	}{
		{"empty", session.State{}, Unauthenticated},
		{"stale coach user, not authenticated", session.State{User: coach}, Unauthenticated},
		{"authenticated without user", session.State{Authenticated: true, Token: "tok"}, Unauthenticated},
		{"coach", session.State{Authenticated: true, User: coach}, CoachHome},
		{"skater", session.State{Authenticated: true, User: skater}, SkaterHome},
		{"empty role", session.State{Authenticated: true, User: &session.User{ID: "3"}}, Resolving},
		{"lowercase role", session.State{Authenticated: true, User: &session.User{ID: "3", Role: "coach"}}, Resolving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.state))
		})
	}
}

func TestResolve_FollowsSessionLifecycle(t *testing.T) {
	s := session.New()
	assert.Equal(t, Unauthenticated, Resolve(s.Snapshot()))

	s.Login(session.User{ID: "1", Role: session.RoleCoach}, "tok")
	assert.Equal(t, CoachHome, Resolve(s.Snapshot()))

	s.Logout()
	assert.Equal(t, Unauthenticated, Resolve(s.Snapshot()))
}

func TestDestinations(t *testing.T) {
	s := session.New()
	assert.Equal(t, []Destination{Welcome, Login, Register}, Destinations(s.Snapshot()))

	s.Login(session.User{ID: "1", Role: session.RoleCoach}, "tok")
	assert.Equal(t, []Destination{Home, Skaters, Programs, Education, Profile}, Destinations(s.Snapshot()))
	assert.False(t, Allows(s.Snapshot(), Training))

	s.Logout()
	s.Login(session.User{ID: "2", Role: session.RoleSkater, CoachID: "1"}, "tok2")
	assert.Equal(t, []Destination{Home, Training, Programs, Education, Profile}, Destinations(s.Snapshot()))
	assert.False(t, Allows(s.Snapshot(), Skaters))

	unknown := session.State{Authenticated: true, User: &session.User{ID: "3", Role: ""}}
	assert.Empty(t, Destinations(unknown))
}
