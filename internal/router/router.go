// Package router picks which navigation tree is active for a session.
//
// Resolve is a pure function of a session snapshot; nothing is stored, so
// callers re-run it whenever the session changes.
package router

import (
	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/session"
)

// Route is the top-level navigation tree.
type Route int

const (
	Unauthenticated Route = iota
	CoachHome
	SkaterHome
	// Resolving is shown while a user is present but their role is not one
	// the client knows.
	Resolving
)

func (r Route) String() string {
	switch r {
	case Unauthenticated:
		return "unauthenticated"
	case CoachHome:
		return "coach"
	case SkaterHome:
		return "skater"
	case Resolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Destination is a screen reachable from a route's menu.
type Destination string

const (
	Welcome   Destination = "Welcome"
	Login     Destination = "Login"
	Register  Destination = "Register"
	Home      Destination = "Home"
	Skaters   Destination = "Skaters"
	Training  Destination = "Training"
	Programs  Destination = "Programs"
	Education Destination = "Education"
	Profile   Destination = "Profile"
)

// Resolve maps a session snapshot to a route. An inconsistent snapshot
// (authenticated without a user, or a user without authenticated) maps to
// Unauthenticated.
func Resolve(st session.State) Route {
	if !st.Authenticated || st.User == nil {
		return Unauthenticated
	}
	switch st.User.Role {
	case session.RoleCoach:
		return CoachHome
	case session.RoleSkater:
		return SkaterHome
	default:
		return Resolving
	}
}

type entry struct {
	dest Destination
	need access.Capability
}

var authedTree = []entry{
	{Home, access.ViewHome},
	{Skaters, access.ManageSkaters},
	{Training, access.LogTraining},
	{Programs, access.ViewPrograms},
	{Education, access.ViewEducation},
	{Profile, access.EditProfile},
}

// Destinations returns the screens reachable from the route st resolves to,
// in menu order.
func Destinations(st session.State) []Destination {
	switch Resolve(st) {
	case Unauthenticated:
		return []Destination{Welcome, Login, Register}
	case CoachHome, SkaterHome:
		var out []Destination
		for _, e := range authedTree {
			if access.Can(st.User.Role, e.need) {
				out = append(out, e.dest)
			}
		}
		return out
	default:
		return nil
	}
}

// Allows reports whether dest is reachable for st.
func Allows(st session.State, dest Destination) bool {
	for _, d := range Destinations(st) {
		if d == dest {
			return true
		}
	}
	return false
}
