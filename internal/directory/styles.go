package directory

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// MinListWidth is the minimum character width for the list pane.
const MinListWidth = 44

// MinFormWidth is the minimum character width for the form pane.
const MinFormWidth = 30

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	red    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}

	titleText   = lipgloss.NewStyle().Bold(true)
	mutedText   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	labelText   = lipgloss.NewStyle()
	invalidText = lipgloss.NewStyle().Foreground(red)
	alertBox    = lipgloss.NewStyle().
			Foreground(red).
			Border(lipgloss.NormalBorder()).
			BorderForeground(red).
			Padding(0, 1)
	submitButton = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim)
}

// tableStyles returns the user table styles; the selected row is only
// highlighted while the table has focus.
func tableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dim).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

// PaneWidths calculates the list and form pane widths from a total width.
// The list gets 3/5 (minimum MinListWidth), the form the rest (minimum
// MinFormWidth when the terminal allows it).
func PaneWidths(totalWidth int) (list, form int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	list = totalWidth * 3 / 5
	if list < MinListWidth {
		list = MinListWidth
	}
	form = totalWidth - list
	if form < MinFormWidth {
		form = MinFormWidth
		list = totalWidth - form
	}
	if list < 0 {
		list = 0
	}
	return list, form
}

// phoneColumnWidth fits a 10-digit number plus its "Phone Number" header.
const phoneColumnWidth = 12

// columnsFor sizes the table columns to an inner pane width. Each column
// carries one cell of padding on each side.
func columnsFor(width int) []table.Column {
	name := (width - (phoneColumnWidth + 2) - 4) / 2
	if name < 8 {
		name = 8
	}
	return []table.Column{
		{Title: "First Name", Width: name},
		{Title: "Last Name", Width: name},
		{Title: "Phone Number", Width: phoneColumnWidth},
	}
}
