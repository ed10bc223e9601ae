package styles

import (
	"fmt"
	"math"
)

// FormatVolume renders a volume level as a speaker glyph and percentage.
func FormatVolume(v float64) string {
	pct := int(math.Round(v * 100))
	switch {
	case pct <= 0:
		return "🔇 muted"
	case pct <= 50:
		return fmt.Sprintf("🔉 %d%%", pct)
	default:
		return fmt.Sprintf("🔊 %d%%", pct)
	}
}

// FormatScore renders "score / total".
func FormatScore(score, total int) string {
	return fmt.Sprintf("%d / %d", score, total)
}
