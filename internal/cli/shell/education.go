package shell

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

func (s *Shell) education() error {
	return s.actionMenu("Education", []action{
		{label: "Browse materials", need: access.ViewEducation, run: s.browseMaterials},
		{label: "Material details", need: access.ViewEducation, run: s.materialDetails},
		{label: "Create material", need: access.ManageEducation, run: s.createMaterial},
		{label: "Delete material", need: access.ManageEducation, run: s.deleteMaterial},
		{label: "Upload file", need: access.ManageEducation, run: s.uploadEducationalFile},
		{label: "Delete file", need: access.ManageEducation, run: s.deleteEducationalFile},
	})
}

func (s *Shell) browseMaterials() error {
	query, err := s.prompt.Input("Search by title (blank for all)", "")
	if err != nil {
		return err
	}

	materials, err := s.client.ListMaterials()
	if err != nil {
		return fail("Could not load materials", err)
	}

	materials = client.FilterMaterials(materials, query)
	if len(materials) == 0 {
		fmt.Fprintln(s.out, "No materials found.")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tFILES\tID")
	fmt.Fprintln(w, "─────\t─────\t──")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%d\t%s\n", m.Title, len(m.Files), m.ID)
	}
	return w.Flush()
}

func (s *Shell) pickMaterial() (*client.Material, error) {
	materials, err := s.client.ListMaterials()
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("no materials yet")
	}

	labels := make([]string, len(materials))
	for i, m := range materials {
		labels[i] = m.Title
	}

	idx, err := s.pick("Material", labels)
	if err != nil {
		return nil, err
	}
	return &materials[idx], nil
}

func (s *Shell) materialDetails() error {
	picked, err := s.pickMaterial()
	if err != nil {
		return fail("Could not load materials", err)
	}

	m, err := s.client.GetMaterial(picked.ID)
	if err != nil {
		return fail("Could not load material", err)
	}

	fmt.Fprintln(s.out, m.Title)
	if m.Description != "" {
		fmt.Fprintln(s.out, m.Description)
	}
	fmt.Fprintln(s.out, "\nFiles:")
	if len(m.Files) == 0 {
		fmt.Fprintln(s.out, "  No files attached.")
	}
	for _, f := range m.Files {
		url := f.FileURL
		if resolved, err := s.client.ResolveURL(f.FileURL); err == nil {
			url = resolved
		}
		fmt.Fprintf(s.out, "  %s (%s) %s\n", f.FileName, humanSize(f.FileSize), url)
	}
	return nil
}

func (s *Shell) createMaterial() error {
	var req client.MaterialRequest
	var err error

	if req.Title, err = s.prompt.Input("Title", ""); err != nil {
		return err
	}
	if req.Description, err = s.prompt.Input("Description", ""); err != nil {
		return err
	}

	m, err := s.client.CreateMaterial(req)
	if err != nil {
		return fail("Could not create material", err)
	}

	fmt.Fprintf(s.out, "✓ Created material %q\n", m.Title)
	return nil
}

func (s *Shell) deleteMaterial() error {
	picked, err := s.pickMaterial()
	if err != nil {
		return fail("Could not load materials", err)
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Delete %q and its files", picked.Title))
	if err != nil || !ok {
		return err
	}

	if err := s.client.DeleteMaterial(picked.ID); err != nil {
		return fail("Could not delete material", err)
	}

	fmt.Fprintln(s.out, "✓ Material deleted")
	return nil
}

func (s *Shell) uploadEducationalFile() error {
	picked, err := s.pickMaterial()
	if err != nil {
		return fail("Could not load materials", err)
	}

	path, err := s.prompt.Input("File path", "")
	if err != nil {
		return err
	}

	file, err := s.client.UploadEducationalFile(picked.ID, strings.TrimSpace(path))
	if err != nil {
		return fail("Upload failed", err)
	}

	fmt.Fprintf(s.out, "✓ Uploaded %s to %q\n", file.FileName, picked.Title)
	return nil
}

func (s *Shell) deleteEducationalFile() error {
	picked, err := s.pickMaterial()
	if err != nil {
		return fail("Could not load materials", err)
	}

	m, err := s.client.GetMaterial(picked.ID)
	if err != nil {
		return fail("Could not load material", err)
	}
	if len(m.Files) == 0 {
		return fail("Could not delete file", fmt.Errorf("%q has no files", m.Title))
	}

	labels := make([]string, len(m.Files))
	for i, f := range m.Files {
		labels[i] = f.FileName
	}
	idx, err := s.pick("File", labels)
	if err != nil {
		return err
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Delete %s", m.Files[idx].FileName))
	if err != nil || !ok {
		return err
	}

	if err := s.client.DeleteEducationalFile(m.Files[idx].ID); err != nil {
		return fail("Could not delete file", err)
	}

	fmt.Fprintln(s.out, "✓ File deleted")
	return nil
}
