package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	normalHelp = "Press N/P to move between pages.  Press f to search for a term\n" +
		"Press J/K to change the highlighted crate and press C to copy its Cargo.toml string"
	inputHelp   = "Type to enter your search term.  Press Enter to confirm.  Press ESC to cancel"
	sortingHelp = "Press J/K to move between options.  Press Enter to confirm.  Press ESC to cancel"

	maxCards = 5
)

// View implements tea.Model. It renders the current state snapshot and
// mutates nothing.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeInput:
		return m.viewInputOverlay()
	case modeSorting:
		return m.viewSortingOverlay()
	}
	return m.viewNormal()
}

// viewNormal renders the three-region browse layout: help header, result
// card grid, page footer.
func (m *Model) viewNormal() string {
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("crateseek (a crates.io quick search TUI)"))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(normalHelp))
	b.WriteString("\n\n")
	b.WriteString(m.viewCards(width))
	b.WriteString("\n")
	b.WriteString(m.viewFooter(width))

	return m.styles.Frame.Render(b.String())
}

// viewCards renders up to five percentage-width crate cards, the selected
// one with a highlighted border.
func (m *Model) viewCards(width int) string {
	if m.crates == nil {
		return m.styles.CardMeta.Render("No results yet.")
	}
	if len(m.crates) == 0 {
		return m.styles.CardMeta.Render(fmt.Sprintf("No crates matched %q.", m.query))
	}

	cardWidth := width/maxCards - 2 // border columns
	if cardWidth < 16 {
		cardWidth = 16
	}

	cards := make([]string, 0, maxCards)
	for i, crate := range m.crates {
		if i >= maxCards {
			break
		}

		style := m.styles.Card
		if i == m.selection {
			style = m.styles.CardSelected
		}

		var c strings.Builder
		c.WriteString(m.styles.CardName.Render(truncate(crate.Name, cardWidth-2)))
		c.WriteString("\n")
		c.WriteString(m.styles.CardVersion.Render(truncate("v"+crate.MaxVersion, cardWidth-2)))
		c.WriteString("\n\n")
		c.WriteString(wrap(crate.Description, cardWidth-2, 4))
		c.WriteString("\n\n")
		c.WriteString(m.styles.CardMeta.Render(fmt.Sprintf("%s downloads", formatCount(crate.Downloads))))
		c.WriteString("\n")
		c.WriteString(m.styles.CardMeta.Render(fmt.Sprintf("%s recent", formatCount(crate.RecentDownloads))))

		cards = append(cards, style.Width(cardWidth).Render(c.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// viewFooter renders the page number plus any transient status.
func (m *Model) viewFooter(width int) string {
	left := m.styles.Footer.Render(fmt.Sprintf("Page %d", m.page))

	var right string
	switch {
	case m.searching > 0:
		right = m.styles.Status.Render(m.spinner.View() + "searching...")
	case m.lastErr != nil:
		right = m.styles.StatusError.Render(truncate("search failed: "+m.lastErr.Error(), width-12))
	case m.statusMsg != "":
		right = m.styles.Status.Render(m.statusMsg)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// viewInputOverlay replaces the frame with the query editor. Cursor
// visibility follows the tick counter's parity.
func (m *Model) viewInputOverlay() string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render("Enter your search term"))
	b.WriteString("\n")
	b.WriteString(m.input.buffer)
	if m.input.ticks&1 == 0 {
		b.WriteString(m.styles.Cursor.Render(" "))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render(inputHelp))

	return m.styles.Overlay.Render(b.String())
}

// viewSortingOverlay replaces the frame with the sort picker.
func (m *Model) viewSortingOverlay() string {
	var b strings.Builder
	b.WriteString(m.styles.OverlayTitle.Render("Select your sorting method"))
	b.WriteString("\n")
	for i, opt := range m.sorting.options {
		if i == m.sorting.selection {
			b.WriteString(m.styles.OptionActive.Render("> " + opt.Label()))
		} else {
			b.WriteString(m.styles.Option.Render("  " + opt.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(sortingHelp))

	return m.styles.Overlay.Render(b.String())
}

func (m *Model) contentWidth() int {
	if m.width <= 4 {
		return 100
	}
	return m.width - 4 // frame border + padding
}

// truncate shortens s to at most width cells, appending an ellipsis.
func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// wrap breaks s into at most maxLines lines of the given width.
func wrap(s string, width, maxLines int) string {
	if width < 4 {
		width = 4
	}
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
		} else if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
		if len(lines) == maxLines {
			break
		}
	}
	if line != "" && len(lines) < maxLines {
		lines = append(lines, truncate(line, width))
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// formatCount renders a download count compactly, e.g. 1234567 -> "1.2M".
func formatCount(n uint64) string {
	const (
		k = 1_000
		m = 1_000_000
	)
	switch {
	case n >= m:
		return fmt.Sprintf("%.1fM", float64(n)/m)
	case n >= k:
		return fmt.Sprintf("%.1fk", float64(n)/k)
	default:
		return fmt.Sprintf("%d", n)
	}
}
