package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned by a Prompter when the user backs out of a prompt
var ErrAborted = errors.New("aborted")

// Prompter asks the user for input. Screens depend on this interface only.
type Prompter interface {
	// Select returns the index of the chosen item
	Select(label string, items []string) (int, error)
	// Input reads a line of text, pre-filled with initial
	Input(label, initial string) (string, error)
	// Password reads a line without echoing it
	Password(label string) (string, error)
	// Confirm asks a yes/no question
	Confirm(label string) (bool, error)
}

// PromptUI is the terminal Prompter
type PromptUI struct{}

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}",
	Active:   "> {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "{{ . | green }}",
}

func (PromptUI) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: selectTemplates,
		Size:      12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return 0, mapPromptErr(err)
	}
	return index, nil
}

func (PromptUI) Input(label, initial string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: initial != "",
	}

	value, err := prompt.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return value, nil
}

func (PromptUI) Password(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '●',
	}

	value, err := prompt.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return value, nil
}

func (PromptUI) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, mapPromptErr(err)
	}
	return true, nil
}

func mapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return fmt.Errorf("prompt failed: %w", err)
}
