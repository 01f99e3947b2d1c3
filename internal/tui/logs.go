package tui

import (
	"fmt"
	"sort"
	"strings"
)

const maxLogEntries = 500

type logsModel struct {
	entries []Event
	width   int
	height  int
	offset  int
}

func newLogsModel() logsModel {
	return logsModel{}
}

func (l *logsModel) addEntry(e Event) {
	l.entries = append(l.entries, e)
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	if len(l.entries) > visible {
		l.offset = len(l.entries) - visible
	}
}

func (l logsModel) View() string {
	title := panelTitleStyle.Render("Activity")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}

	start := l.offset
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(l.entries) {
		end = len(l.entries)
	}
	if start > end {
		start = end
	}

	var lines []string
	for _, e := range l.entries[start:end] {
		ts := logTimestamp.Render(e.Timestamp.Format("15:04:05"))
		lines = append(lines, fmt.Sprintf(" %s %s", ts, l.formatEntry(e)))
	}

	if len(lines) == 0 {
		lines = append(lines, logTimestamp.Render("  Waiting for events..."))
	}

	content := title + "\n" + strings.Join(lines, "\n")
	return panelStyle.Width(l.width).Height(l.height).Render(content)
}

func (l logsModel) formatEntry(e Event) string {
	room := l.width - 22
	switch data := e.Data.(type) {
	case NavigateEvent:
		msg := "→ " + data.ItemID
		if data.Href != "" {
			msg += " (" + data.Href + ")"
		}
		if data.Session != "" {
			msg = data.Session + " " + msg
		}
		return logNav.Render("NAV  ") + " " + truncate(msg, room)
	case LogEvent:
		var levelStr string
		switch data.Level {
		case "info", "INFO":
			levelStr = logInfo.Render("INFO ")
		case "warn", "WARN":
			levelStr = logWarn.Render("WARN ")
		case "error", "ERROR":
			levelStr = logError.Render("ERROR")
		default:
			levelStr = logDebug.Render("DEBUG")
		}
		return levelStr + " " + truncate(data.Message+formatFields(data.Fields), room)
	}
	return ""
}

// formatFields renders log attributes as sorted key=value pairs.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}
