package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func frameLines(t *testing.T, s string) []string {
	t.Helper()
	return strings.Split(ansi.Strip(s), "\n")
}

func TestFrame_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		left, right   string
	}{
		{name: "both titles", width: 40, height: 6, left: "DinoGuessr", right: "Score 3"},
		{name: "left only", width: 30, height: 4, left: "DinoGuessr"},
		{name: "right only", width: 30, height: 4, right: "Round 1 / 5"},
		{name: "no titles", width: 20, height: 3},
		{name: "too narrow for right", width: 18, height: 3, left: "DinoGuessr", right: "Round 10 / 10"},
		{name: "too narrow for left", width: 8, height: 3, left: "DinoGuessr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := frameLines(t, Frame("hello\nworld", tt.left, tt.right, tt.width, tt.height, AccentColor))
			require.Len(t, lines, tt.height)
			for i, l := range lines {
				require.Equal(t, tt.width, lipgloss.Width(l), "line %d: %q", i, l)
			}
			require.True(t, strings.HasPrefix(lines[0], cornerTopLeft))
			require.True(t, strings.HasSuffix(lines[len(lines)-1], cornerBottomRight))
		})
	}
}

func TestFrame_Titles(t *testing.T) {
	lines := frameLines(t, Frame("", "Left", "Right", 30, 3, AccentColor))
	require.Contains(t, lines[0], "─ Left ─")
	require.Contains(t, lines[0], "─ Right ─╮")

	narrow := frameLines(t, Frame("", "DinoGuessr", "Round 10 / 10", 18, 3, AccentColor))
	require.Contains(t, narrow[0], "DinoGuessr")
	require.NotContains(t, narrow[0], "Round")
}

func TestFrame_ClipsContent(t *testing.T) {
	lines := frameLines(t, Frame("a\nb\nc\nd", "", "", 10, 4, AccentColor))
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "a")
	require.Contains(t, lines[2], "b")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Tyrannosaurus", 20, "Tyrannosaurus"},
		{"Tyrannosaurus", 6, "Tyran…"},
		{"Tyrannosaurus", 1, "…"},
		{"Tyrannosaurus", 0, ""},
		{"", 5, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Truncate(tt.in, tt.max), "Truncate(%q, %d)", tt.in, tt.max)
	}
}
