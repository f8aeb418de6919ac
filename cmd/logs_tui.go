package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/miralabs/mira/tui"
	"github.com/miralabs/mira/tui/components/logviewer"
	"github.com/miralabs/mira/tui/theme"
)

// logsTUI wraps the logviewer component in a standalone program for
// `mira logs --tui`. Tailing starts on the first window size message so
// the viewport has real dimensions before lines arrive.
type logsTUI struct {
	viewer  logviewer.Model
	files   map[string]string
	started bool
}

func newLogsTUI(files map[string]string) logsTUI {
	return logsTUI{
		viewer: logviewer.New(0, 0),
		files:  files,
	}
}

func (m logsTUI) Init() tea.Cmd {
	return nil
}

func (m logsTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sized := msg
		sized.Height = msg.Height - 1 // status line
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(sized)
		if !m.started {
			m.started = true
			return m, tea.Batch(cmd, m.viewer.Start(m.files))
		}
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.viewer.Stop()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

func (m logsTUI) View() string {
	follow := "following"
	if !m.viewer.IsFollowing() {
		follow = "paused"
	}
	status := theme.DefaultTheme.Muted.Render(
		" " + follow + " · f toggles follow · q quits",
	)
	return m.viewer.View() + "\n" + status
}

func runLogsTUI(files map[string]string) error {
	tui.InitializeTUI()
	p := tea.NewProgram(newLogsTUI(files), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
