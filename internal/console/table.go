package console

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/smileynet/roster/internal/record"
)

// RenderTable renders users as a bordered table with 1-based row numbers.
func RenderTable(users []record.User) string {
	if len(users) == 0 {
		return "no users"
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "First Name", "Last Name", "Phone Number")
	for i, u := range users {
		t.Row(strconv.Itoa(i+1), u.FirstName, u.LastName, u.Phone)
	}
	return t.Render()
}
