package game

import (
	"fmt"
	"strings"

	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/quiz"
	"github.com/zjrosen/dinoguessr/internal/session"
	"github.com/zjrosen/dinoguessr/internal/ui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Click zone IDs.
const (
	zoneStart     = "start"
	zoneHint      = "hint"
	zonePlayAgain = "play-again"
	zoneHome      = "home"
)

func optionZone(i int) string { return fmt.Sprintf("option-%d", i) }

func difficultyZone(d quiz.Difficulty) string { return "difficulty-" + string(d) }

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	inner := max(m.width-4, 10)
	var body string
	switch m.ctrl.Phase() {
	case session.PhaseIdle:
		body = m.startView(inner)
	case session.PhaseLoading:
		body = m.loadingView()
	case session.PhasePlaying:
		body = m.playingView(inner)
	case session.PhaseFinished:
		body = m.finishedView(inner)
	}

	var volume string
	if m.volume != nil {
		volume = styles.FormatVolume(m.volume.Volume())
	}
	body = lipgloss.NewStyle().Padding(1, 1).Render(body)
	return m.zones.Scan(styles.Frame(body, "DinoGuessr", volume, m.width, m.height, styles.AccentColor))
}

func (m Model) startView(width int) string {
	var buttons []string
	for _, d := range quiz.Difficulties() {
		style := styles.Button
		if d == m.ctrl.Difficulty() {
			style = styles.Selected
		}
		buttons = append(buttons, m.zones.Mark(difficultyZone(d), style.Render(d.Label())))
	}

	lines := []string{
		styles.Title.Render("🦖 Dino Guessr"),
		"",
		styles.Text.Render(wordwrap.String("A picture of a dinosaur will be revealed. Guess its name as fast as you can!", width)),
		"",
		styles.Emphasis.Render("Select Difficulty:"),
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		styles.Muted.Render(fmt.Sprintf("%d rounds, %d options each", m.ctrl.Difficulty().Rounds(), m.ctrl.Difficulty().Options())),
		"",
		m.zones.Mark(zoneStart, styles.Selected.Render("[ Start Game ]")),
	}
	if m.notice != "" {
		lines = append(lines, "", styles.Error.Render(m.notice))
	}
	lines = append(lines, "", m.helpView(m.keys.Prev, m.keys.Start, m.keys.VolumeUp, m.keys.Quit))
	return center(width, lines)
}

func (m Model) loadingView() string {
	return m.spinner.View() + " " + styles.Text.Render("Digging up dinosaurs...")
}

func (m Model) playingView(width int) string {
	q, ok := m.ctrl.Current()
	if !ok {
		return ""
	}
	s := m.ctrl.State()

	round := styles.Text.Render("Round ") + styles.Emphasis.Render(fmt.Sprint(s.Round+1)) + styles.Text.Render(fmt.Sprintf(" / %d", s.Total))
	score := styles.Text.Render("Score: ") + styles.Emphasis.Render(fmt.Sprint(s.Score))
	gap := max(width-lipgloss.Width(round)-lipgloss.Width(score), 1)

	var b strings.Builder
	b.WriteString(round + strings.Repeat(" ", gap) + score)
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("🖼  " + styles.Truncate(q.ImageURL, width-4)))
	b.WriteString("\n")
	b.WriteString(m.meter.ViewAs(m.reveal))
	b.WriteString("\n\n")

	switch {
	case s.HintShown:
		b.WriteString(styles.Muted.Render(wordwrap.String("💡 "+q.Hint, width)))
	case !s.Answered:
		b.WriteString(m.zones.Mark(zoneHint, styles.Button.Render("💡 Hint")))
	default:
		b.WriteString(styles.Disabled.Render("💡 Hint"))
	}
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, styles.Truncate(opt, width-8))
		b.WriteString(m.zones.Mark(optionZone(i), optionStyle(opt, q, s).Render(label)))
		b.WriteString("\n")
	}

	if s.Answered {
		b.WriteString("\n")
		if s.Selected == q.CorrectAnswer {
			b.WriteString(styles.Correct.Render("Correct!"))
		} else {
			b.WriteString(styles.Incorrect.Render("Not quite. It was " + q.CorrectAnswer + "."))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpView(m.keys.Answer, m.keys.Hint, m.keys.VolumeUp, m.keys.Quit))
	return b.String()
}

func optionStyle(opt string, q quiz.Question, s session.State) lipgloss.Style {
	switch {
	case !s.Answered:
		return styles.Button
	case opt == q.CorrectAnswer:
		return styles.Correct
	case opt == s.Selected:
		return styles.Incorrect
	default:
		return styles.Disabled
	}
}

func (m Model) finishedView(width int) string {
	s := m.ctrl.State()
	lines := []string{
		styles.Title.Render("Game Over!"),
		"",
		styles.Text.Render("Your Final Score:"),
		styles.Emphasis.Render(styles.FormatScore(s.Score, s.Total)),
	}
	if len(s.RoundTimes) > 0 {
		lines = append(lines,
			"",
			styles.Text.Render("Average Answer Time:"),
			styles.Emphasis.Render(domain.FormatSeconds(m.ctrl.AverageTime())+"s"),
		)
	}
	if q, ok := m.ctrl.Current(); ok && q.FunFact != "" {
		lines = append(lines, "", styles.Muted.Render(wordwrap.String("Did you know? "+q.FunFact, width)))
	}
	lines = append(lines,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.zones.Mark(zonePlayAgain, styles.Selected.Render("[ Play Again ]")),
			m.zones.Mark(zoneHome, styles.Button.Render("[ Home ]")),
		),
		"",
		m.helpView(m.keys.PlayAgain, m.keys.Home, m.keys.Quit),
	)
	return center(width, lines)
}

func (m Model) helpView(bindings ...key.Binding) string {
	return m.help.ShortHelpView(bindings)
}

func center(width int, lines []string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}
