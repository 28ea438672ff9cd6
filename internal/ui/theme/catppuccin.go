package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Bad   = lipgloss.NewStyle().Foreground(Red)
	Warn  = lipgloss.NewStyle().Foreground(Yellow)

	FieldError = lipgloss.NewStyle().Foreground(Red).PaddingLeft(2)

	Tab       = lipgloss.NewStyle().Foreground(Subtext0).Padding(0, 1)
	TabActive = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Bold(true).Padding(0, 1)

	Toast = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Background(Mantle).
		Padding(0, 1)
)

// ToastStyle picks the border color for a toast severity.
func ToastStyle(severity string) lipgloss.Style {
	switch severity {
	case "success":
		return Toast.BorderForeground(Green).Foreground(Green)
	case "error":
		return Toast.BorderForeground(Red).Foreground(Red)
	default:
		return Toast.BorderForeground(Sapphire).Foreground(Text)
	}
}

// StatePill renders a check state such as "authorized" or "unavailable".
func StatePill(state string) string {
	switch state {
	case "authorized", "ok":
		return Good.Render("● " + state)
	case "failed", "unavailable":
		return Bad.Render("● " + state)
	case "checking":
		return Warn.Render("● " + state)
	default:
		return Muted.Render("● " + state)
	}
}
