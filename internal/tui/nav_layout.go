package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morenav/morenav/internal/menu"
)

const (
	brandLabel = "morenav"

	navKey     = "nav"
	triggerKey = "nav:more"

	triggerClosed = "More ▾"
	triggerOpen   = "More ▴"
)

func itemKey(id string) string { return "nav:item:" + id }

// segment is one child of the bar as it is drawn.
type segment struct {
	key     string
	text    string
	trigger bool
}

// barLayout records where each segment of the header row landed, in
// absolute terminal columns. It backs both the probe and mouse hit tests.
type barLayout struct {
	container menu.Geometry
	attached  bool
	keys      []string
	triggers  map[string]bool
	boxes     map[string]menu.Geometry
}

func layoutBar(segs []segment, left, width int) (string, barLayout) {
	l := barLayout{
		container: menu.Geometry{Left: left, Width: width},
		attached:  width > 0,
		keys:      make([]string, 0, len(segs)),
		triggers:  make(map[string]bool, 1),
		boxes:     make(map[string]menu.Geometry, len(segs)),
	}

	x := left
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		w := lipgloss.Width(s.text)
		l.boxes[s.key] = menu.Geometry{Left: x, Width: w}
		l.keys = append(l.keys, s.key)
		if s.trigger {
			l.triggers[s.key] = true
		}
		parts = append(parts, s.text)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...), l
}

func (l barLayout) measure(key string) (menu.Geometry, bool) {
	if !l.attached {
		return menu.Geometry{}, false
	}
	if key == navKey {
		return l.container, true
	}
	g, ok := l.boxes[key]
	return g, ok
}

// containerNode describes the bar as the prober sees it.
func (l barLayout) containerNode() menu.Container {
	c := menu.Container{Key: navKey, Children: make([]menu.Node, 0, len(l.keys))}
	for _, k := range l.keys {
		c.Children = append(c.Children, menu.Node{Key: k, Trigger: l.triggers[k]})
	}
	return c
}

// hit returns the segment under column x.
func (l barLayout) hit(x int) (string, bool) {
	for _, k := range l.keys {
		g := l.boxes[k]
		if x >= g.Left && x < g.Left+g.Width {
			return k, true
		}
	}
	return "", false
}

// fitRow pads or clips a rendered row to exactly width cells.
func fitRow(row string, width int) string {
	if width <= 0 {
		return ""
	}
	style := navBarStyle.MaxWidth(width)
	if lipgloss.Width(row) < width {
		style = style.Width(width)
	}
	return style.Render(row)
}

// panelBox is the overflow dropdown's placement under the bar.
type panelBox struct {
	left  int
	top   int
	inner int
	rows  int
}

// row returns the panel item under (x, y).
func (p panelBox) row(x, y int) (int, bool) {
	if x < p.left+1 || x >= p.left+1+p.inner {
		return 0, false
	}
	i := y - (p.top + 1)
	if i < 0 || i >= p.rows {
		return 0, false
	}
	return i, true
}

func renderPanel(items []menu.Item, cursor, anchor, width int) (string, panelBox) {
	inner := 0
	for _, it := range items {
		if w := lipgloss.Width(navPanelItemStyle.Render(it.Name)); w > inner {
			inner = w
		}
	}

	if limit := width - navPanelStyle.GetHorizontalFrameSize(); inner > limit {
		inner = max(limit, 0)
	}
	text := inner - navPanelItemStyle.GetHorizontalFrameSize()

	lines := make([]string, 0, len(items))
	for i, it := range items {
		style := navPanelItemStyle
		if i == cursor {
			style = navPanelCursorStyle
		}
		lines = append(lines, style.Width(inner).Render(truncate(it.Name, text)))
	}
	box := navPanelStyle.Render(strings.Join(lines, "\n"))

	left := anchor
	if bw := lipgloss.Width(box); left+bw > width {
		left = width - bw
	}
	if left < 0 {
		left = 0
	}
	p := panelBox{left: left, top: 1, inner: inner, rows: len(items)}
	return lipgloss.NewStyle().PaddingLeft(left).MaxWidth(width).Render(box), p
}
