package prompt

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
)

type confirmOption struct {
	Name  string
	Value bool
}

// Confirm asks a Yes/No question. Interrupts count as No.
func Confirm(label string) (bool, error) {
	options := []confirmOption{
		{"Yes", true},
		{"No", false},
	}
	sel := promptui.Select{
		Label: label,
		Items: options,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   fmt.Sprintf("%s {{ .Name | underline }}", promptui.IconSelect),
			Inactive: "  {{ .Name }}",
			Selected: fmt.Sprintf("  %s? {{ .Name }}", label),
		},
	}

	i, _, err := sel.Run()
	drainStdin()
	if err != nil {
		return false, err
	}
	return options[i].Value, nil
}

// ConfirmResume is the resume predicate for dismissed prompts.
func ConfirmResume(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	ok, err := Confirm("Resume")
	return err == nil && ok
}
