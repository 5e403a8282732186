package shell

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/cli/client"
)

var programTypes = []string{client.ProgramFree, client.ProgramShort}

func (s *Shell) programs() error {
	return s.actionMenu("Programs", []action{
		{label: "List programs", need: access.ViewPrograms, run: s.listPrograms},
		{label: "Program details", need: access.ViewPrograms, run: s.programDetails},
		{label: "Create program", need: access.ManagePrograms, run: s.createProgram},
		{label: "Edit program", need: access.ManagePrograms, run: s.editProgram},
		{label: "Delete program", need: access.ManagePrograms, run: s.deleteProgram},
		{label: "Comment on program", need: access.CommentOnProgram, run: s.commentOnProgram},
		{label: "Upload music", need: access.UploadMusic, run: s.uploadMusic},
		{label: "Play music", need: access.PlayMusic, run: s.playMusic},
	})
}

func (s *Shell) listPrograms() error {
	programs, err := s.client.ListPrograms()
	if err != nil {
		return fail("Could not load programs", err)
	}

	if len(programs) == 0 {
		fmt.Fprintln(s.out, "No programs found.")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tTYPE\tDESCRIPTION\tID")
	fmt.Fprintln(w, "────\t────\t───────────\t──")
	for _, p := range programs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.Year, p.Type, p.Description, p.ID)
	}
	return w.Flush()
}

func (s *Shell) pickProgram() (*client.Program, error) {
	programs, err := s.client.ListPrograms()
	if err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return nil, fmt.Errorf("no programs yet")
	}

	labels := make([]string, len(programs))
	for i, p := range programs {
		labels[i] = fmt.Sprintf("%d %s: %s", p.Year, p.Type, p.Description)
	}

	idx, err := s.pick("Program", labels)
	if err != nil {
		return nil, err
	}
	return &programs[idx], nil
}

func (s *Shell) programDetails() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	details, err := s.client.GetProgramDetails(picked.ID)
	if err != nil {
		return fail("Could not load program", err)
	}

	p := details.Program
	fmt.Fprintf(s.out, "%d %s program\n", p.Year, p.Type)
	fmt.Fprintf(s.out, "%s\n\n", p.Description)

	fmt.Fprintln(s.out, "Music:")
	if len(details.MusicFiles) == 0 {
		fmt.Fprintln(s.out, "  No music uploaded.")
	}
	for _, f := range details.MusicFiles {
		fmt.Fprintf(s.out, "  %s (%s)\n", f.FileName, humanSize(f.FileSize))
	}

	fmt.Fprintln(s.out, "\nComments:")
	if len(details.Comments) == 0 {
		fmt.Fprintln(s.out, "  No comments yet.")
	}
	for _, c := range details.Comments {
		fmt.Fprintf(s.out, "  %s, %s: %s\n", c.CoachName, displayDate(c.CreatedAt), c.Comment)
	}
	return nil
}

func (s *Shell) programForm(req *client.ProgramRequest) error {
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	var err error
	if req.Year, err = s.inputInt("Year", year); err != nil {
		return err
	}

	idx, err := s.pick("Type", programTypes)
	if err != nil {
		return err
	}
	req.Type = programTypes[idx]

	req.Description, err = s.prompt.Input("Description", req.Description)
	return err
}

func (s *Shell) createProgram() error {
	var req client.ProgramRequest
	if err := s.programForm(&req); err != nil {
		return fail("Could not create program", err)
	}

	if err := s.client.CreateProgram(req); err != nil {
		return fail("Could not create program", err)
	}

	fmt.Fprintf(s.out, "✓ Created %d %s program\n", req.Year, req.Type)
	return nil
}

func (s *Shell) editProgram() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	req := client.ProgramRequest{Year: picked.Year, Type: picked.Type, Description: picked.Description}
	if err := s.programForm(&req); err != nil {
		return fail("Could not update program", err)
	}

	if err := s.client.UpdateProgram(picked.ID, req); err != nil {
		return fail("Could not update program", err)
	}

	fmt.Fprintln(s.out, "✓ Program updated")
	return nil
}

func (s *Shell) deleteProgram() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Delete %d %s program", picked.Year, picked.Type))
	if err != nil || !ok {
		return err
	}

	if err := s.client.DeleteProgram(picked.ID); err != nil {
		return fail("Could not delete program", err)
	}

	fmt.Fprintln(s.out, "✓ Program deleted")
	return nil
}

func (s *Shell) commentOnProgram() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	comment, err := s.prompt.Input("Comment", "")
	if err != nil {
		return err
	}

	if err := s.client.AddComment(picked.ID, comment); err != nil {
		return fail("Could not add comment", err)
	}

	fmt.Fprintln(s.out, "✓ Comment added")
	return nil
}

func (s *Shell) uploadMusic() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	path, err := s.prompt.Input("Music file path", "")
	if err != nil {
		return err
	}

	file, err := s.client.UploadMusic(picked.ID, strings.TrimSpace(path))
	if err != nil {
		return fail("Upload failed", err)
	}

	fmt.Fprintf(s.out, "✓ Uploaded %s (%s)\n", file.FileName, humanSize(file.FileSize))
	return nil
}

func (s *Shell) playMusic() error {
	picked, err := s.pickProgram()
	if err != nil {
		return fail("Could not load programs", err)
	}

	files, err := s.client.ListMusic(picked.ID)
	if err != nil {
		return fail("Could not load music", err)
	}
	if len(files) == 0 {
		return fail("Could not play music", fmt.Errorf("no music uploaded for this program"))
	}

	labels := make([]string, len(files))
	for i, f := range files {
		labels[i] = f.FileName
	}
	idx, err := s.pick("Track", labels)
	if err != nil {
		return err
	}

	target, err := s.client.ResolveURL(files[idx].FileURL)
	if err != nil {
		return fail("Could not play music", err)
	}

	fmt.Fprintf(s.out, "Playing %s (%s)\n", files[idx].FileName, target)
	if err := s.openURL(target); err != nil {
		return fail("Could not play music", err)
	}
	return nil
}
