package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/graphctl/internal/graph"
	"github.com/custodia-labs/graphctl/internal/history"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	failedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// renderTable lays out rows with padded columns and a styled header row.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	formatRow := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var sb strings.Builder
	sb.WriteString(tableHeaderStyle.Render(formatRow(header)))
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(formatRow(row))
	}
	return sb.String()
}

// renderUserTable renders search results as a table.
func renderUserTable(users []graph.User) string {
	if len(users) == 0 {
		return "No users found."
	}

	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{
			user.DisplayName,
			user.UserPrincipalName,
			user.Mail,
			user.ID,
		})
	}
	return renderTable([]string{"DISPLAY NAME", "UPN", "MAIL", "ID"}, rows)
}

// renderHistoryTable renders recorded operations as a table.
func renderHistoryTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		result := okStyle.Render("ok")
		if !entry.Succeeded {
			result = failedStyle.Render("failed")
		}
		rows = append(rows, []string{
			entry.CreatedAt.Local().Format(time.DateTime),
			entry.Action,
			entry.Target,
			result,
		})
	}
	return renderTable([]string{"TIME", "ACTION", "TARGET", "RESULT"}, rows)
}
