package shell

import (
	"fmt"
	"text/tabwriter"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

func (s *Shell) skaters() error {
	return s.actionMenu("Skaters", []action{
		{label: "List skaters", need: access.ManageSkaters, run: s.listSkaters},
		{label: "Show skater", need: access.ManageSkaters, run: s.showSkater},
		{label: "Add skater", need: access.ManageSkaters, run: s.addSkater},
		{label: "Edit skater", need: access.ManageSkaters, run: s.editSkater},
		{label: "Delete skater", need: access.ManageSkaters, run: s.deleteSkater},
	})
}

func (s *Shell) listSkaters() error {
	skaters, err := s.client.ListSkaters()
	if err != nil {
		return fail("Could not load skaters", err)
	}

	if len(skaters) == 0 {
		fmt.Fprintln(s.out, "No skaters found.")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSURNAME\tCATEGORY\tID")
	fmt.Fprintln(w, "────\t───────\t────────\t──")
	for _, sk := range skaters {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sk.Name, sk.Surname, sk.CategoryName, sk.ID)
	}
	return w.Flush()
}

func (s *Shell) pickSkater() (*client.Skater, error) {
	skaters, err := s.client.ListSkaters()
	if err != nil {
		return nil, err
	}
	if len(skaters) == 0 {
		return nil, fmt.Errorf("no skaters yet")
	}

	labels := make([]string, len(skaters))
	for i, sk := range skaters {
		labels[i] = fmt.Sprintf("%s %s (%s)", sk.Name, sk.Surname, sk.CategoryName)
	}

	idx, err := s.pick("Skater", labels)
	if err != nil {
		return nil, err
	}
	return &skaters[idx], nil
}

func (s *Shell) showSkater() error {
	picked, err := s.pickSkater()
	if err != nil {
		return fail("Could not load skaters", err)
	}

	sk, err := s.client.GetSkater(picked.ID)
	if err != nil {
		return fail("Could not load skater", err)
	}

	fmt.Fprintf(s.out, "Name:     %s %s\n", sk.Name, sk.Surname)
	fmt.Fprintf(s.out, "Category: %s\n", sk.CategoryName)
	fmt.Fprintf(s.out, "ID:       %s\n", sk.ID)
	return nil
}

func (s *Shell) addSkater() error {
	var req client.SkaterRequest
	var err error

	if req.Name, err = s.prompt.Input("Name", ""); err != nil {
		return err
	}
	if req.Surname, err = s.prompt.Input("Surname", ""); err != nil {
		return err
	}
	if req.CategoryID, err = s.pickCategory(""); err != nil {
		return fail("Could not add skater", err)
	}

	if err := s.client.CreateSkater(req); err != nil {
		return fail("Could not add skater", err)
	}

	fmt.Fprintf(s.out, "✓ Added skater %s %s\n", req.Name, req.Surname)
	return nil
}

func (s *Shell) editSkater() error {
	picked, err := s.pickSkater()
	if err != nil {
		return fail("Could not load skaters", err)
	}

	current, err := s.client.GetSkater(picked.ID)
	if err != nil {
		return fail("Could not load skater", err)
	}

	req := client.SkaterRequest{CategoryID: current.CategoryID}
	if req.Name, err = s.prompt.Input("Name", current.Name); err != nil {
		return err
	}
	if req.Surname, err = s.prompt.Input("Surname", current.Surname); err != nil {
		return err
	}
	if req.CategoryID, err = s.pickCategory(current.CategoryID); err != nil {
		return fail("Could not update skater", err)
	}

	if err := s.client.UpdateSkater(current.ID, req); err != nil {
		return fail("Could not update skater", err)
	}

	fmt.Fprintf(s.out, "✓ Updated skater %s %s\n", req.Name, req.Surname)
	return nil
}

func (s *Shell) deleteSkater() error {
	picked, err := s.pickSkater()
	if err != nil {
		return fail("Could not load skaters", err)
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Delete %s %s", picked.Name, picked.Surname))
	if err != nil || !ok {
		return err
	}

	if err := s.client.DeleteSkater(picked.ID); err != nil {
		return fail("Could not delete skater", err)
	}

	fmt.Fprintf(s.out, "✓ Deleted skater %s %s\n", picked.Name, picked.Surname)
	return nil
}
