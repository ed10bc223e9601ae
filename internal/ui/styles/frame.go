package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// Frame draws content in a rounded box of exactly width x height cells with
// left and right titles set into the top edge. Empty titles are omitted, and
// titles that do not fit are dropped right first, then truncated.
func Frame(content, leftTitle, rightTitle string, width, height int, titleColor lipgloss.TerminalColor) string {
	border := lipgloss.NewStyle().Foreground(BorderDefaultColor)
	title := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	body := lipgloss.NewStyle().Width(inner).Height(rows).MaxHeight(rows).Render(content)
	lines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(topEdge(leftTitle, rightTitle, inner, border, title))
	for i := range rows {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n")
		b.WriteString(border.Render(edgeVertical) + line + border.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(border.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, inner) + cornerBottomRight))
	return b.String()
}

// topEdge renders ╭─ Left ──── Right ─╮ in exactly inner+2 cells.
func topEdge(left, right string, inner int, border, title lipgloss.Style) string {
	plain := func() string {
		return border.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, inner) + cornerTopRight)
	}

	// Each title takes its text plus "─ " and " " (3 cells); at least one dash separates them.
	need := func(s string) int {
		if s == "" {
			return 0
		}
		return lipgloss.Width(s) + 3
	}
	if need(left)+need(right)+1 > inner {
		right = ""
	}
	if left != "" && need(left)+1 > inner {
		left = Truncate(left, inner-4)
	}
	if left == "" && right == "" {
		return plain()
	}

	var b strings.Builder
	used := 0
	b.WriteString(border.Render(cornerTopLeft))
	if left != "" {
		b.WriteString(border.Render(edgeHorizontal+" ") + title.Render(left) + border.Render(" "))
		used += need(left)
	}
	fill := inner - used - need(right)
	b.WriteString(border.Render(strings.Repeat(edgeHorizontal, max(fill, 0))))
	if right != "" {
		b.WriteString(border.Render(" ") + title.Render(right) + border.Render(" "+edgeHorizontal))
	}
	b.WriteString(border.Render(cornerTopRight))
	return b.String()
}

// Truncate shortens s to maxWidth cells, ending in "…" when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
