package components

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the root model to change location. Views never switch
// screens themselves.
type NavigateMsg struct {
	Path string
}

// SessionExpiredMsg is sent into the program when the API rejected the
// stored token.
type SessionExpiredMsg struct{}

func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Notifier publishes user-visible toasts. It is safe to call from commands.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}
