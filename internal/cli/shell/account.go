package shell

import (
	"fmt"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
	"github.com/rinkside/rinkside/internal/session"
)

func (s *Shell) welcome() error {
	fmt.Fprintln(s.out, "Welcome to rinkside.")
	fmt.Fprintln(s.out, "Coaches manage skaters, comment on programs and share educational material.")
	fmt.Fprintln(s.out, "Skaters log training, manage programs and their music.")
	fmt.Fprintln(s.out, "Log in, or register a new account to get started.")
	return nil
}

func (s *Shell) login() error {
	name, err := s.prompt.Input("Name", "")
	if err != nil {
		return err
	}
	surname, err := s.prompt.Input("Surname", "")
	if err != nil {
		return err
	}
	password, err := s.prompt.Password("Password")
	if err != nil {
		return err
	}

	resp, err := s.client.Login(name, surname, password)
	if err != nil {
		return fail("Login failed", err)
	}

	s.session.Login(resp.User.SessionUser(), resp.Token)
	return nil
}

func (s *Shell) register() error {
	roles := []session.Role{session.RoleCoach, session.RoleSkater}
	idx, err := s.pick("Register as", []string{string(roles[0]), string(roles[1])})
	if err != nil {
		return err
	}
	req := client.RegisterRequest{Role: roles[idx]}

	if req.Name, err = s.prompt.Input("Name", ""); err != nil {
		return err
	}
	if req.Surname, err = s.prompt.Input("Surname", ""); err != nil {
		return err
	}
	if req.Password, err = s.prompt.Password("Password"); err != nil {
		return err
	}

	if req.Role == session.RoleSkater {
		if req.CategoryID, err = s.pickCategory(""); err != nil {
			return fail("Registration failed", err)
		}
		if req.CoachID, err = s.pickCoach(); err != nil {
			return fail("Registration failed", err)
		}
	}

	if err := s.client.Register(req); err != nil {
		return fail("Registration failed", err)
	}

	fmt.Fprintln(s.out, "✓ Account created. You can now log in.")
	return nil
}

// pickCategory returns the chosen category ID, starting on current if set
func (s *Shell) pickCategory(current string) (string, error) {
	categories, err := s.client.ListCategories()
	if err != nil {
		return "", err
	}

	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Name
		if c.ID == current {
			labels[i] += " (current)"
		}
	}

	idx, err := s.pick("Category", labels)
	if err != nil {
		return "", err
	}
	return categories[idx].ID, nil
}

func (s *Shell) pickCoach() (string, error) {
	coaches, err := s.client.ListCoaches()
	if err != nil {
		return "", err
	}
	if len(coaches) == 0 {
		return "", fmt.Errorf("no coaches available yet")
	}

	labels := make([]string, len(coaches))
	for i, c := range coaches {
		labels[i] = fmt.Sprintf("%s %s", c.Name, c.Surname)
	}

	idx, err := s.pick("Coach", labels)
	if err != nil {
		return "", err
	}
	return coaches[idx].ID, nil
}

func (s *Shell) home() error {
	st := s.session.Snapshot()
	if err := access.Require(st, access.ViewHome); err != nil {
		return fail("Home", err)
	}

	fmt.Fprintf(s.out, "Role:      %s\n", st.User.Role)
	fmt.Fprintf(s.out, "User ID:   %s\n", st.User.ID)
	fmt.Fprintf(s.out, "Coach ID:  %s\n", orNotAssigned(st.User.CoachID))
	fmt.Fprintf(s.out, "Skater ID: %s\n", orNotAssigned(st.User.SkaterID))
	return nil
}

func (s *Shell) profile() error {
	return s.actionMenu("Profile", []action{
		{label: "Show profile", need: access.EditProfile, run: s.showProfile},
		{label: "Edit profile", need: access.EditProfile, run: s.editProfile},
	})
}

func (s *Shell) showProfile() error {
	p, err := s.client.GetProfile()
	if err != nil {
		return fail("Could not load profile", err)
	}

	fmt.Fprintf(s.out, "Name:    %s\n", p.Name)
	fmt.Fprintf(s.out, "Surname: %s\n", p.Surname)
	fmt.Fprintf(s.out, "ID:      %s\n", p.ID)
	return nil
}

func (s *Shell) editProfile() error {
	current, err := s.client.GetProfile()
	if err != nil {
		return fail("Could not load profile", err)
	}

	req := client.ProfileRequest{ID: current.ID}
	if req.Name, err = s.prompt.Input("Name", current.Name); err != nil {
		return err
	}
	if req.Surname, err = s.prompt.Input("Surname", current.Surname); err != nil {
		return err
	}

	updated, err := s.client.UpdateProfile(req)
	if err != nil {
		return fail("Could not update profile", err)
	}

	fmt.Fprintf(s.out, "✓ Profile updated: %s %s\n", updated.Name, updated.Surname)
	return nil
}
