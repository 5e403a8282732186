// Package access decides what each role may do. The router and every screen
// or command consult the same matrix instead of comparing role strings.
package access

import (
	"errors"
	"fmt"

	"github.com/rinkside/rinkside/internal/session"
)

// Capability is a single action a user may be allowed to perform.
type Capability int

const (
	ViewHome Capability = iota
	ManageSkaters
	LogTraining
	ViewPrograms
	ManagePrograms
	CommentOnProgram
	UploadMusic
	PlayMusic
	ViewEducation
	ManageEducation
	EditProfile
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("permission denied")
)

var matrix = map[session.Role]map[Capability]bool{
	session.RoleCoach: {
		ViewHome:         true,
		ManageSkaters:    true,
		ViewPrograms:     true,
		CommentOnProgram: true,
		ViewEducation:    true,
		ManageEducation:  true,
		EditProfile:      true,
	},
	session.RoleSkater: {
		ViewHome:       true,
		LogTraining:    true,
		ViewPrograms:   true,
		ManagePrograms: true,
		UploadMusic:    true,
		PlayMusic:      true,
		ViewEducation:  true,
		EditProfile:    true,
	},
}

// Can reports whether role has capability c. Unknown roles have none.
func Can(role session.Role, c Capability) bool {
	caps, ok := matrix[role]
	if !ok {
		return false
	}
	return caps[c]
}

// Require returns nil if the session state allows c, ErrUnauthenticated if
// nobody is logged in, and a wrapped ErrForbidden otherwise.
func Require(st session.State, c Capability) error {
	if !st.Authenticated || st.User == nil {
		return ErrUnauthenticated
	}
	if !Can(st.User.Role, c) {
		return fmt.Errorf("%w: %s is not available to role %q", ErrForbidden, c, st.User.Role)
	}
	return nil
}

func (c Capability) String() string {
	switch c {
	case ViewHome:
		return "view_home"
	case ManageSkaters:
		return "manage_skaters"
	case LogTraining:
		return "log_training"
	case ViewPrograms:
		return "view_programs"
	case ManagePrograms:
		return "manage_programs"
	case CommentOnProgram:
		return "comment_on_program"
	case UploadMusic:
		return "upload_music"
	case PlayMusic:
		return "play_music"
	case ViewEducation:
		return "view_education"
	case ManageEducation:
		return "manage_education"
	case EditProfile:
		return "edit_profile"
	default:
		return "unknown"
	}
}
