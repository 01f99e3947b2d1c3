package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morenav/morenav/internal/menu"
	"github.com/morenav/morenav/internal/metrics"
)

// frameDelay approximates one rendered frame. The mount probe waits this long
// so it runs after the first paint.
const frameDelay = time.Second / 60

// mountedMsg fires once after the bar is first drawn.
type mountedMsg struct{ gen int }

// navigateMsg is emitted when a menu link is followed.
type navigateMsg struct{ Item menu.Item }

// navModel is the responsive navigation bar. It owns the visible/overflow
// partition and the dropdown flag; the fit itself lives in menu.Tracker.
type navModel struct {
	items   []menu.Item
	tracker *menu.Tracker
	signal  *menu.Signal
	cancel  func()
	rec     metrics.Recorder
	gap     int
	gen     int
	probed  bool // the after-first-paint probe has run for this mount

	width  int // terminal width
	active string
	open   bool
	hidden bool

	cursor      int
	panelCursor int
}

func newNavModel(items []menu.Item, signal *menu.Signal, rec metrics.Recorder, gap int) navModel {
	if rec == nil {
		rec = metrics.Nop{}
	}
	n := navModel{
		items:   items,
		tracker: menu.NewTracker(),
		signal:  signal,
		rec:     rec,
		gap:     gap,
	}
	n.attach()
	return n
}

// attach subscribes to resize notifications for a new mount.
func (n *navModel) attach() {
	n.gen++
	tracker, rec, left := n.tracker, n.rec, n.left()
	n.cancel = n.signal.Subscribe(func(width int) {
		last, changed := tracker.Resize(containerWidth(width, left))
		if changed {
			rec.ObserveResolve(tracker.Snapshot(), last)
		}
	})
}

// detach tears the mount down; resizes no longer reach the tracker.
func (n *navModel) detach() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.tracker.Detach()
}

func (n navModel) mountCmd() tea.Cmd {
	gen := n.gen
	return tea.Tick(frameDelay, func(time.Time) tea.Msg {
		return mountedMsg{gen: gen}
	})
}

// left is the column where the bar container starts, after the brand.
func (n navModel) left() int {
	return lipgloss.Width(brandStyle.Render(brandLabel))
}

func containerWidth(termWidth, left int) int {
	if w := termWidth - left; w > 0 {
		return w
	}
	return 0
}

// probe draws every item plus the trigger and measures the result.
func (n navModel) probe() menu.Dimensions {
	_, layout := layoutBar(n.segments(n.items, true), n.left(), containerWidth(n.width, n.left()))
	return menu.Probe(layout.containerNode(), layout.measure, n.gap)
}

// tryMount runs the probe while the bar is still unmeasured.
func (n *navModel) tryMount() {
	if n.hidden || n.tracker.Measured() {
		return
	}
	dims := n.probe()
	n.rec.ObserveProbe(dims)
	if n.tracker.Mount(dims) {
		n.rec.ObserveResolve(dims, n.tracker.Last())
	}
	n.clamp()
}

func (n navModel) partition() menu.Partition {
	return menu.Split(n.items, n.tracker.Last())
}

func (n navModel) triggerShown() bool {
	return n.tracker.Measured() && n.partition().HasOverflow()
}

// slots is the number of focusable bar positions: visible items plus the
// trigger when it is drawn.
func (n navModel) slots() int {
	s := len(n.partition().Visible)
	if n.triggerShown() {
		s++
	}
	return s
}

func (n *navModel) clamp() {
	if s := n.slots(); n.cursor >= s {
		n.cursor = s - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
	if o := len(n.partition().Overflow); n.panelCursor >= o {
		n.panelCursor = o - 1
	}
	if n.panelCursor < 0 {
		n.panelCursor = 0
	}
}

func (n navModel) onTrigger() bool {
	return n.triggerShown() && n.cursor == len(n.partition().Visible)
}

// setWidth records a new terminal width. The resize itself reaches the
// tracker through the signal; this only retries a mount probe that came back
// empty.
func (n *navModel) setWidth(width int) {
	n.width = width
	if n.probed {
		n.tryMount()
	}
	n.clamp()
}

func (n navModel) Update(msg tea.Msg) (navModel, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.gen != n.gen {
			return n, nil
		}
		n.probed = true
		n.tryMount()
		return n, nil

	case tea.KeyMsg:
		return n.handleKey(msg)

	case tea.MouseMsg:
		return n.handleMouse(msg)
	}
	return n, nil
}

func (n navModel) handleKey(msg tea.KeyMsg) (navModel, tea.Cmd) {
	if key.Matches(msg, keys.Hide) {
		return n.toggleHidden()
	}
	if n.hidden {
		return n, nil
	}

	if n.open && n.triggerShown() {
		overflow := n.partition().Overflow
		switch {
		case key.Matches(msg, keys.Close):
			n.open = false
			return n, nil
		case key.Matches(msg, keys.Up):
			if n.panelCursor > 0 {
				n.panelCursor--
			}
			return n, nil
		case key.Matches(msg, keys.Down):
			if n.panelCursor < len(overflow)-1 {
				n.panelCursor++
			}
			return n, nil
		case key.Matches(msg, keys.Follow) && n.onTrigger():
			return n.follow(overflow[n.panelCursor])
		}
	}

	switch {
	case key.Matches(msg, keys.Left):
		if n.cursor > 0 {
			n.cursor--
		}
	case key.Matches(msg, keys.Right):
		if n.cursor < n.slots()-1 {
			n.cursor++
		}
	case key.Matches(msg, keys.More):
		if n.triggerShown() {
			n.open = !n.open
			n.cursor = len(n.partition().Visible)
		}
	case key.Matches(msg, keys.Close):
		n.open = false
	case key.Matches(msg, keys.Follow):
		if n.onTrigger() {
			n.open = !n.open
			return n, nil
		}
		visible := n.partition().Visible
		if n.cursor < len(visible) {
			return n.follow(visible[n.cursor])
		}
	}
	return n, nil
}

func (n navModel) handleMouse(msg tea.MouseMsg) (navModel, tea.Cmd) {
	if n.hidden || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return n, nil
	}

	if msg.Y == 0 {
		_, layout := n.bar()
		k, ok := layout.hit(msg.X)
		if !ok {
			return n, nil
		}
		if k == triggerKey {
			n.open = !n.open
			n.cursor = len(n.partition().Visible)
			return n, nil
		}
		for i, it := range n.partition().Visible {
			if itemKey(it.ID) == k {
				n.cursor = i
				return n.follow(it)
			}
		}
		return n, nil
	}

	if n.open && n.triggerShown() {
		_, box := n.panel()
		if i, ok := box.row(msg.X, msg.Y); ok {
			n.panelCursor = i
			return n.follow(n.partition().Overflow[i])
		}
	}
	return n, nil
}

func (n navModel) follow(it menu.Item) (navModel, tea.Cmd) {
	n.active = it.ID
	n.open = false
	return n, func() tea.Msg { return navigateMsg{Item: it} }
}

func (n navModel) toggleHidden() (navModel, tea.Cmd) {
	if !n.hidden {
		n.hidden = true
		n.open = false
		n.detach()
		return n, nil
	}
	n.hidden = false
	n.probed = false
	n.tracker.Reset()
	n.cursor, n.panelCursor = 0, 0
	n.attach()
	return n, n.mountCmd()
}

// segments renders each item, plus the trigger when requested, in bar order.
func (n navModel) segments(items []menu.Item, trigger bool) []segment {
	segs := make([]segment, 0, len(items)+1)
	for i, it := range items {
		style := navItemStyle
		switch {
		case i == n.cursor:
			style = navItemCursorStyle
		case it.ID == n.active:
			style = navItemActiveStyle
		}
		segs = append(segs, segment{key: itemKey(it.ID), text: style.Render(it.Name)})
	}
	if trigger {
		label := triggerClosed
		if n.open {
			label = triggerOpen
		}
		style := navTriggerStyle
		if n.cursor == len(items) {
			style = navItemCursorStyle
		}
		segs = append(segs, segment{key: triggerKey, text: style.Render(label), trigger: true})
	}
	return segs
}

// bar renders the header row for the current state.
func (n navModel) bar() (string, barLayout) {
	p := n.partition()
	return layoutBar(n.segments(p.Visible, n.triggerShown()), n.left(), containerWidth(n.width, n.left()))
}

func (n navModel) panel() (string, panelBox) {
	_, layout := n.bar()
	anchor := layout.boxes[triggerKey].Left
	return renderPanel(n.partition().Overflow, n.panelCursor, anchor, n.width)
}

func (n navModel) View() string {
	if n.hidden || n.width <= 0 {
		return ""
	}
	brand := brandStyle.Render(brandLabel)
	row, _ := n.bar()
	header := brand + fitRow(row, containerWidth(n.width, n.left()))

	if !n.open || !n.triggerShown() {
		return header
	}
	panel, _ := n.panel()
	return lipgloss.JoinVertical(lipgloss.Left, header, panel)
}

// panelHeight is the number of rows the open dropdown adds under the bar.
func (n navModel) panelHeight() int {
	if n.hidden || !n.open || !n.triggerShown() {
		return 0
	}
	panel, _ := n.panel()
	return strings.Count(panel, "\n") + 1
}

// RenderBar lays the bar out once at the given width, the way a fresh mount
// would, and returns it with the dropdown expanded when anything overflowed.
func RenderBar(items []menu.Item, gap, width int) string {
	n := newNavModel(items, menu.NewSignal(), nil, gap)
	defer n.detach()

	n.setWidth(width)
	n, _ = n.Update(mountedMsg{gen: n.gen})
	n.open = n.triggerShown()
	n.cursor, n.panelCursor = -1, -1 // no focus highlight
	return n.View()
}
