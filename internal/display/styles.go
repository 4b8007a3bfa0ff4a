package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	header   lipgloss.Style
	street   lipgloss.Style
	red      lipgloss.Style
	black    lipgloss.Style
	action   lipgloss.Style
	forced   lipgloss.Style
	winner   lipgloss.Style
	info     lipgloss.Style
	prompt   lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		street: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		red: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		black: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		action: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		forced: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		winner: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		errorMsg: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
	}
}

// profile picks the colour profile for the output. NoColor forces plain text.
func profile(noColor bool, out *termenv.Output) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	return out.EnvColorProfile()
}
