package tui

import (
	"fmt"
	"strings"

	"github.com/morenav/morenav/internal/menu"
)

// pageView renders the page behind the active link.
func pageView(active menu.Item, width, height int) string {
	var body string
	if active.ID == "" {
		body = panelTitleStyle.Render("Welcome") + "\n\n" +
			labelStyle.Render("Pick a link from the bar. Resize the terminal to watch items move into \"More\".")
	} else {
		href := active.Href
		if href == "" {
			href = "(no link)"
		}
		body = panelTitleStyle.Render(active.Name) + "\n\n" +
			labelStyle.Render("id   ") + active.ID + "\n" +
			labelStyle.Render("href ") + hrefStyle.Render(href)
	}
	return panelStyle.Width(width - 2).Height(height - 2).Render(body)
}

// fitView renders the measured fit: the cached thresholds, the trigger width
// and where the bar splits for the current width.
func fitView(n navModel, width, height int) string {
	title := panelTitleStyle.Render("Fit")
	inner := width - 6

	var lines []string
	if !n.tracker.Measured() {
		lines = append(lines,
			"  State:     "+labelStyle.Render("unmeasured"),
			fmt.Sprintf("  Items:     %d inline", len(n.items)),
		)
	} else {
		d := n.tracker.Snapshot()
		p := n.partition()
		lines = append(lines,
			fmt.Sprintf("  State:     measured (last %d)", n.tracker.Last()),
			fmt.Sprintf("  Container: %d cols", d.ContainerWidth),
			fmt.Sprintf("  Trigger:   %d cols", d.MoreWidth),
			fmt.Sprintf("  Inline:    %d", len(p.Visible)),
			fmt.Sprintf("  Overflow:  %d", len(p.Overflow)),
			"  Widths:    "+truncate(joinInts(d.NecessaryWidths), inner-13),
		)
	}

	content := title + "\n"
	for i, l := range lines {
		if i >= height-3 {
			break
		}
		content += l + "\n"
	}
	return panelStyle.Width(width - 2).Height(height - 2).Render(content)
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}
