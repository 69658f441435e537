package cli

import (
	"errors"

	"github.com/alexanderramin/gantt/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errNeedsConfirmation is returned by destructive commands run without a
// terminal and without --yes.
var errNeedsConfirmation = errors.New("refusing to delete without confirmation (pass --yes)")

// ganttHuhTheme matches huh forms to the formatter palette.
func ganttHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm builds the yes/no form shared by `rm` commands and the board
// overlay. The answer lands in *answer.
func confirmForm(title, message string, answer *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(message).
				Affirmative("Delete").
				Negative("Cancel").
				Value(answer),
		),
	).WithTheme(ganttHuhTheme()).WithShowHelp(false)
}

// confirmDelete asks before a destructive command. --yes skips the prompt;
// without a terminal the command refuses.
func confirmDelete(app *App, yes bool, title, message string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errNeedsConfirmation
	}
	var answer bool
	if err := confirmForm(title, message, &answer).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return answer, nil
}
