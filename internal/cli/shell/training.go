package shell

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rinkside/rinkside/internal/access"
	"github.com/rinkside/rinkside/internal/analytics"
	"github.com/rinkside/rinkside/internal/cli/client"
)

var trainingTypes = []string{client.TrainingOnIce, client.TrainingOffIce}

func (s *Shell) training() error {
	return s.actionMenu("Training", []action{
		{label: "List trainings", need: access.LogTraining, run: s.listTrainings},
		{label: "Show training", need: access.LogTraining, run: s.showTraining},
		{label: "Log training", need: access.LogTraining, run: s.logTraining},
		{label: "Edit training", need: access.LogTraining, run: s.editTraining},
		{label: "Delete training", need: access.LogTraining, run: s.deleteTraining},
		{label: "Analytics", need: access.LogTraining, run: s.trainingAnalytics},
	})
}

// displayDate shows a backend date as YYYY-MM-DD, or as-is when unparseable
func displayDate(raw string) string {
	t, err := analytics.ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

func (s *Shell) listTrainings() error {
	trainings, err := s.client.ListTrainings()
	if err != nil {
		return fail("Could not load trainings", err)
	}

	if len(trainings) == 0 {
		fmt.Fprintln(s.out, "No trainings logged yet.")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tDURATION\tELEMENTS\tID")
	fmt.Fprintln(w, "────\t────\t────────\t────────\t──")
	for _, t := range trainings {
		fmt.Fprintf(w, "%s\t%s\t%d min\t%d\t%s\n", displayDate(t.Date), t.Type, t.Duration, len(t.ElementIDs()), t.ID)
	}
	return w.Flush()
}

func (s *Shell) pickTraining() (*client.Training, error) {
	trainings, err := s.client.ListTrainings()
	if err != nil {
		return nil, err
	}
	if len(trainings) == 0 {
		return nil, fmt.Errorf("no trainings logged yet")
	}

	labels := make([]string, len(trainings))
	for i, t := range trainings {
		labels[i] = fmt.Sprintf("%s %s (%d min)", displayDate(t.Date), t.Type, t.Duration)
	}

	idx, err := s.pick("Training", labels)
	if err != nil {
		return nil, err
	}
	return &trainings[idx], nil
}

func (s *Shell) showTraining() error {
	picked, err := s.pickTraining()
	if err != nil {
		return fail("Could not load trainings", err)
	}

	t, err := s.client.GetTraining(picked.ID)
	if err != nil {
		return fail("Could not load training", err)
	}

	var names []string
	if elements, err := s.client.ListTrainingElements(t.Type); err == nil {
		names = client.ElementNames(t.ElementIDs(), elements)
	} else {
		s.log.Debug().Err(err).Msg("Failed to load element names")
		names = t.ElementIDs()
	}

	fmt.Fprintf(s.out, "Date:     %s\n", displayDate(t.Date))
	fmt.Fprintf(s.out, "Type:     %s\n", t.Type)
	fmt.Fprintf(s.out, "Duration: %d min\n", t.Duration)
	fmt.Fprintf(s.out, "Elements: %s\n", strings.Join(names, ", "))
	if t.Notes != "" {
		fmt.Fprintf(s.out, "Notes:    %s\n", t.Notes)
	}
	return nil
}

// trainingForm fills req interactively, starting from its current values
func (s *Shell) trainingForm(req *client.TrainingRequest) error {
	idx, err := s.pick("Type", trainingTypes)
	if err != nil {
		return err
	}
	if req.Type != trainingTypes[idx] {
		req.Elements = nil
	}
	req.Type = trainingTypes[idx]

	day := req.Date
	if day.IsZero() {
		day = time.Now()
	}
	rawDate, err := s.prompt.Input("Date (YYYY-MM-DD)", day.Format("2006-01-02"))
	if err != nil {
		return err
	}
	if req.Date, err = analytics.ParseDate(rawDate); err != nil {
		return err
	}

	if req.Duration, err = s.inputInt("Duration (minutes)", req.Duration); err != nil {
		return err
	}

	elements, err := s.client.ListTrainingElements(req.Type)
	if err != nil {
		return err
	}
	labels := make([]string, len(elements))
	selected := make(map[int]bool)
	for i, e := range elements {
		labels[i] = e.Name
		for _, id := range req.Elements {
			if id == e.ID {
				selected[i] = true
			}
		}
	}
	chosen, err := s.pickMany("Elements", labels, selected)
	if err != nil {
		return err
	}
	req.Elements = req.Elements[:0]
	for _, i := range chosen {
		req.Elements = append(req.Elements, elements[i].ID)
	}

	req.Notes, err = s.prompt.Input("Notes", req.Notes)
	return err
}

func (s *Shell) logTraining() error {
	var req client.TrainingRequest
	if err := s.trainingForm(&req); err != nil {
		return fail("Could not log training", err)
	}

	if err := s.client.CreateTraining(req); err != nil {
		return fail("Could not log training", err)
	}

	fmt.Fprintf(s.out, "✓ Logged %d min %s training on %s\n", req.Duration, req.Type, req.Date.Format("2006-01-02"))
	return nil
}

func (s *Shell) editTraining() error {
	picked, err := s.pickTraining()
	if err != nil {
		return fail("Could not load trainings", err)
	}

	current, err := s.client.GetTraining(picked.ID)
	if err != nil {
		return fail("Could not load training", err)
	}

	req := client.TrainingRequest{
		Duration: current.Duration,
		Type:     current.Type,
		Elements: current.ElementIDs(),
		Notes:    current.Notes,
	}
	if d, err := analytics.ParseDate(current.Date); err == nil {
		req.Date = d
	}

	if err := s.trainingForm(&req); err != nil {
		return fail("Could not update training", err)
	}

	if err := s.client.UpdateTraining(current.ID, req); err != nil {
		return fail("Could not update training", err)
	}

	fmt.Fprintln(s.out, "✓ Training updated")
	return nil
}

func (s *Shell) deleteTraining() error {
	picked, err := s.pickTraining()
	if err != nil {
		return fail("Could not load trainings", err)
	}

	ok, err := s.prompt.Confirm(fmt.Sprintf("Delete %s training on %s", picked.Type, displayDate(picked.Date)))
	if err != nil || !ok {
		return err
	}

	if err := s.client.DeleteTraining(picked.ID); err != nil {
		return fail("Could not delete training", err)
	}

	fmt.Fprintln(s.out, "✓ Training deleted")
	return nil
}

func (s *Shell) trainingAnalytics() error {
	trainings, err := s.client.ListTrainings()
	if err != nil {
		return fail("Could not load trainings", err)
	}

	analytics.RenderChart(s.out, analytics.DailyDurations(trainings))
	return nil
}
