// Package ui renders progression state for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
)

const (
	IconShard   = "💎"
	IconTrophy  = "🏆"
	IconLock    = "🔒"
	IconRelic   = "🔮"
	IconPerk    = "⚔️"
	IconTalent  = "🌳"
	IconUpgrade = "⚡"
	IconWarn    = "⚠️"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

// DisableColor strips ANSI colors from every style, for pipes and files.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TierText colors an achievement tier by difficulty.
func TierText(t achievements.Tier) string {
	switch t {
	case achievements.TierEasy:
		return Good.Render(string(t))
	case achievements.TierMedium:
		return H2.Render(string(t))
	case achievements.TierHard:
		return Warn.Render(string(t))
	case achievements.TierVeryHard:
		return Bad.Render(string(t))
	case achievements.TierLegendary:
		return Gold.Render(string(t))
	default:
		return Muted.Render(string(t))
	}
}

// Bar renders a fixed-width progress bar.
func Bar(current, target, width int) string {
	if target <= 0 || width <= 0 {
		return ""
	}
	filled := current * width / target
	filled = min(max(filled, 0), width)
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
