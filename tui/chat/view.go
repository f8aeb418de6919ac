package chat

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	mchat "github.com/miralabs/mira/chat"
	"github.com/miralabs/mira/tui/components"
	"github.com/miralabs/mira/tui/theme"
)

// View renders the conversation over the composer line.
func (m Model) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small. Please resize."
	}

	if m.help.ShowAll {
		return m.help.View()
	}

	t := theme.DefaultTheme

	header := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Orange).
		Width(m.width-4).
		Align(lipgloss.Center).
		Bold(true).
		Render(fmt.Sprintf("%s %s", theme.IconChat, m.conversationID))

	thread := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Border).
		Width(m.width - 4).
		Render(m.vp.View())

	prompt := "> "
	if m.attachMode {
		prompt = theme.IconUpload + " "
	}
	inputLine := prompt + m.input.View()

	var left []string
	if a := m.composer.Attachment(); a != nil {
		chip := fmt.Sprintf("%s %s (%s)", attachmentIcon(string(a.Kind)), path.Base(a.URI), a.Kind)
		left = append(left, t.Info.Render(chip))
	}
	if m.status != "" {
		left = append(left, t.Warning.Render(m.status))
	}

	pending, failed := m.deliveryCounts()
	var right []string
	if pending > 0 {
		right = append(right, t.Muted.Render(fmt.Sprintf("%s %d sending", theme.IconPending, pending)))
	}
	if failed > 0 {
		right = append(right, t.Error.Render(fmt.Sprintf("%s %d failed", theme.IconFailed, failed)))
	}

	footer := strings.Join([]string{
		components.RenderDivider(m.width - 4),
		components.RenderStatusBar(strings.Join(left, "  "), strings.Join(right, "  "), m.width-4),
		m.help.View(),
	}, "\n")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, header, thread, inputLine, footer)
}

// syncViewport re-renders the thread into the scrollback viewport.
func (m *Model) syncViewport() {
	atBottom := m.vp.AtBottom()
	m.vp.SetContent(m.renderThread())
	if atBottom {
		m.vp.GotoBottom()
	}
}

func (m Model) renderThread() string {
	t := theme.DefaultTheme

	if len(m.thread.Messages) == 0 {
		return t.Muted.Render("No messages yet. Say something kind.")
	}

	width := m.vp.Width - 2
	if width < 20 {
		width = 20
	}

	var lines []string
	for _, msg := range m.thread.Messages {
		lines = append(lines, m.renderMessage(msg, width))
	}
	return strings.Join(lines, "\n")
}

// renderMessage draws one outgoing message with its delivery state.
func (m Model) renderMessage(msg mchat.Message, width int) string {
	t := theme.DefaultTheme

	var icon string
	style := t.MessageOutgoing
	switch msg.Status {
	case mchat.StatusPending:
		icon = t.Muted.Render(theme.IconPending)
		style = t.MessagePending
	case mchat.StatusConfirmed:
		icon = t.Success.Render(theme.IconConfirmed)
	case mchat.StatusFailed:
		icon = t.Error.Render(theme.IconFailed)
	}

	body := msg.Body
	if msg.Attachment != nil {
		tag := fmt.Sprintf("[%s %s]", attachmentIcon(string(msg.Attachment.Kind)), path.Base(msg.Attachment.URI))
		if body == "" {
			body = tag
		} else {
			body = tag + " " + body
		}
	}

	line := fmt.Sprintf("%s %s %s",
		t.Muted.Render(msg.SentAt.Format("15:04")),
		icon,
		style.Render(truncate(body, width-12)))

	if msg.Status == mchat.StatusFailed && msg.FailReason != "" {
		line += "\n" + strings.Repeat(" ", 8) +
			t.Error.Render(theme.IconWarning+" "+msg.FailReason+" (ctrl+r retries, ctrl+d dismisses)")
	}
	return line
}

// deliveryCounts tallies in-flight and failed messages in the thread.
func (m Model) deliveryCounts() (pending, failed int) {
	for _, msg := range m.thread.Messages {
		switch msg.Status {
		case mchat.StatusPending:
			pending++
		case mchat.StatusFailed:
			failed++
		}
	}
	return pending, failed
}

func attachmentIcon(kind string) string {
	switch kind {
	case "audio":
		return theme.IconAudio
	case "video":
		return theme.IconVideo
	default:
		return theme.IconPhoto
	}
}

func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
