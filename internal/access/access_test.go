package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rinkside/rinkside/internal/session"
)

func TestCan_Matrix(t *testing.T) {
	tests := []struct {
		cap    Capability
		coach  bool
		skater bool
	}{
		{ViewHome, true, true},
		{ManageSkaters, true, false},
		{LogTraining, false, true},
		{ViewPrograms, true, true},
		{ManagePrograms, false, true},
		{CommentOnProgram, true, false},
		{UploadMusic, false, true},
		{PlayMusic, false, true},
		{ViewEducation, true, true},
		{ManageEducation, true, false},
		{EditProfile, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			assert.Equal(t, tt.coach, Can(session.RoleCoach, tt.cap), "coach")
			assert.Equal(t, tt.skater, Can(session.RoleSkater, tt.cap), "skater")
			assert.False(t, Can(session.Role(""), tt.cap), "unknown role")
		})
	}
}

func TestRequire(t *testing.T) {
	skater := session.State{
		Authenticated: true,
		User:          &session.User{ID: "2", Role: session.RoleSkater, CoachID: "1"},
		Token:         "tok2",
	}

	assert.NoError(t, Require(skater, UploadMusic))

	err := Require(skater, ManageEducation)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "manage_education")

	assert.ErrorIs(t, Require(session.State{}, ViewHome), ErrUnauthenticated)
	assert.ErrorIs(t, Require(session.State{Authenticated: true}, ViewHome), ErrUnauthenticated)
}
