package setup

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui/components"
	"github.com/miralabs/mira/tui/theme"
	"github.com/miralabs/mira/wizard"
)

// View renders the wizard screen for the current step.
func (m Model) View() string {
	if m.width < 40 || m.height < 12 {
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
		Render(fmt.Sprintf("%s MIRA · PRIVATE PROFILE SETUP", theme.IconHeart))

	var body string
	switch m.step {
	case wizard.StepPhotos:
		body = m.viewPhotos()
	case wizard.StepIntents:
		body = m.viewIntents()
	case wizard.StepDesire:
		body = m.viewDesire()
	case wizard.StepReview:
		body = m.viewReview()
	}

	main := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Border).
		Width(m.width - 4).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.breadcrumb(), "", body))

	footerText := m.status
	if footerText == "" {
		footerText = m.help.View()
	} else {
		footerText = t.Warning.Render(footerText)
	}
	footer := lipgloss.NewStyle().
		Width(m.width - 4).
		PaddingLeft(1).
		Render(footerText)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, header, main, footer)
}

// breadcrumb renders the step trail with the current step highlighted and
// completed steps checked.
func (m Model) breadcrumb() string {
	t := theme.DefaultTheme
	snap := m.store.Snapshot()
	failed := m.store.FailedURLs()

	parts := make([]string, 0, wizard.StepCount*2)
	for i, step := range wizard.Steps() {
		label := step.String()
		if step != wizard.StepReview && wizard.StepComplete(step, snap.State, failed, m.th) {
			label = theme.IconSuccess + " " + label
		}
		switch {
		case step == m.step:
			parts = append(parts, t.Highlight.Render(label))
		default:
			parts = append(parts, t.Muted.Render(label))
		}
		if i < wizard.StepCount-1 {
			parts = append(parts, t.Muted.Render(theme.IconArrow))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewPhotos() string {
	t := theme.DefaultTheme
	grid := m.grid()
	selected := m.selectedSet()
	snap := m.store.Snapshot()

	cellWidth := clamp((m.width-14)/gridColumns, 14, 26)
	var rows []string
	for start := 0; start < len(grid); start += gridColumns {
		end := start + gridColumns
		if end > len(grid) {
			end = len(grid)
		}
		cells := make([]string, 0, gridColumns)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderSlot(grid[i], i == m.cursor, selected, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	blur := theme.IconUnselect
	if snap.BlurMyPhoto {
		blur = theme.IconSelect
	}
	blurLine := fmt.Sprintf("%s %s Blur my photos until a match (b)", blur, theme.IconBlur)

	title := t.Header.Render(fmt.Sprintf("%s Pick your photos", theme.IconPhoto))
	hint := t.Muted.Render(fmt.Sprintf("space selects %s enter continues", theme.IconBullet))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(rows, "\n"),
		"",
		blurLine,
		hint,
	)
}

// renderSlot draws one grid cell: a photo with selection mark, the upload
// affordance, or an empty placeholder.
func (m Model) renderSlot(slot media.Slot, underCursor bool, selected map[string]bool, width int) string {
	t := theme.DefaultTheme

	border := theme.DefaultColors.Border
	if underCursor {
		border = theme.DefaultColors.Orange
	}
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center)

	switch slot.Kind {
	case media.SlotPhoto:
		mark := theme.IconUnselect
		style := t.Muted
		if selected[slot.URL] {
			mark = theme.IconSelect
			style = t.Success
		}
		name := shortenURL(slot.URL, width-6)
		return cell.Render(style.Render(mark) + " " + theme.IconCamera + "\n" + name)
	case media.SlotUpload:
		return cell.Render(t.Info.Render(theme.IconUpload + " add photo"))
	default:
		return cell.Render(t.Muted.Render("·"))
	}
}

func (m Model) viewIntents() string {
	t := theme.DefaultTheme
	snap := m.store.Snapshot()
	chosen := make(map[string]bool, len(snap.IntentKeys))
	for _, k := range snap.IntentKeys {
		chosen[k] = true
	}

	var lines []string
	for i, intent := range IntentCatalog {
		mark := theme.IconUnselect
		style := lipgloss.NewStyle()
		if chosen[intent.Key] {
			mark = theme.IconSelect
			style = t.Success
		}
		line := fmt.Sprintf("%s %s", style.Render(mark), intent.Label)
		if i == m.cursor {
			line = t.Highlight.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	title := t.Header.Render(fmt.Sprintf("%s What are you looking for?", theme.IconHeart))
	limit := t.Muted.Render(fmt.Sprintf("Pick %d to %d", m.th.MinIntents, m.th.MaxIntents))

	return lipgloss.JoinVertical(lipgloss.Left,
		title, limit, "", strings.Join(lines, "\n"))
}

func (m Model) viewDesire() string {
	t := theme.DefaultTheme
	snap := m.store.Snapshot()

	title := t.Header.Render(fmt.Sprintf("%s Your desire, in your words", theme.IconChat))
	length := bioLength(m.currentBio(snap.PrivateBio))
	counter := lipgloss.JoinHorizontal(lipgloss.Center,
		components.RenderProgress(length, m.th.MaxBio, clamp(m.width-30, 20, 40)),
		t.Muted.Render(fmt.Sprintf("  %d/%d characters (min %d)", length, m.th.MaxBio, m.th.MinBio)),
	)

	var body string
	if m.bioEdit {
		body = m.bio.View() + "\n" + t.Muted.Render("esc saves and closes the editor")
	} else if strings.TrimSpace(snap.PrivateBio) == "" {
		body = t.Muted.Render("Nothing yet. Press e to write your private bio.")
	} else {
		body = lipgloss.NewStyle().Width(clamp(m.width-12, 20, 80)).Render(snap.PrivateBio) +
			"\n" + t.Muted.Render("e edits")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, counter, "", body)
}

func (m Model) viewReview() string {
	t := theme.DefaultTheme
	snap := m.store.Snapshot()
	failed := m.store.FailedURLs()

	var lines []string
	lines = append(lines, t.Header.Render(fmt.Sprintf("%s Review", theme.IconInfo)), "")

	lines = append(lines, components.RenderKeyValue(theme.IconPhoto+" Photos",
		fmt.Sprintf("%d selected", len(snap.SelectedPhotoURLs))))
	for _, u := range snap.SelectedPhotoURLs {
		lines = append(lines, "   "+t.Muted.Render(shortenURL(u, 48)))
	}

	labels := make([]string, 0, len(snap.IntentKeys))
	for _, k := range snap.IntentKeys {
		labels = append(labels, intentLabel(k))
	}
	lines = append(lines, components.RenderKeyValue(theme.IconHeart+" Intents", strings.Join(labels, ", ")))

	bio := strings.TrimSpace(snap.PrivateBio)
	if len(bio) > 60 {
		bio = bio[:60] + "…"
	}
	lines = append(lines, components.RenderKeyValue(theme.IconChat+" Bio", bio))

	blur := "off"
	if snap.BlurMyPhoto {
		blur = "on"
	}
	lines = append(lines, components.RenderKeyValue(theme.IconBlur+" Photo blur", blur), "")

	switch {
	case m.completed && snap.SetupComplete:
		lines = append(lines, t.Success.Render(theme.IconConfirmed+" Your private profile is already set up."))
	case wizard.AllComplete(snap.State, failed, m.th):
		lines = append(lines, t.Success.Render(theme.IconSuccess+" Everything looks good. Press enter to finish."))
	default:
		for _, hint := range wizard.MissingRequirements(wizard.StepReview, snap.State, failed, m.th) {
			lines = append(lines, t.Warning.Render(theme.IconWarning+" "+hint))
		}
	}

	return strings.Join(lines, "\n")
}

// currentBio prefers the live editor draft over the persisted value.
func (m Model) currentBio(persisted string) string {
	if m.bioEdit {
		return m.bio.Value()
	}
	return persisted
}

func bioLength(s string) int {
	return len([]rune(strings.TrimSpace(s)))
}

func intentLabel(key string) string {
	for _, intent := range IntentCatalog {
		if intent.Key == key {
			return intent.Label
		}
	}
	return key
}

// shortenURL reduces a photo URI to something that fits a grid cell.
func shortenURL(url string, max int) string {
	name := path.Base(strings.TrimPrefix(url, "file://"))
	if max > 3 && len(name) > max {
		name = name[:max-1] + "…"
	}
	return name
}
