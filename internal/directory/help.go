package directory

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the focused control.
func HelpBindings(focus Focus, submitLabel string) help.KeyMap {
	if focus == FocusList {
		return ListKeyMap()
	}
	return FormKeyMap(submitLabel)
}
