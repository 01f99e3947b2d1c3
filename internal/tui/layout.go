package tui

// LayoutMode describes the responsive layout tier of the body under the bar.
type LayoutMode int

const (
	LayoutCompact LayoutMode = iota // < 60 cols: page only
	LayoutNormal                    // 60-100 cols: page + fit panel, 60/40
	LayoutWide                      // > 100 cols: page + fit panel, 50/50
)

func layoutMode(width int) LayoutMode {
	switch {
	case width < 60:
		return LayoutCompact
	case width <= 100:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

func layoutColumns(width int, mode LayoutMode) (left, right int) {
	switch mode {
	case LayoutCompact:
		return width, 0
	case LayoutNormal:
		left = width * 60 / 100
		right = width - left
		return left, right
	default: // LayoutWide
		left = width / 2
		right = width - left
		return left, right
	}
}

// bodyHeights splits the rows left under the header into the page row and
// the log panel. Both keep at least 3 rows.
func bodyHeights(height, headerRows int) (page, logs int) {
	main := height - headerRows - 1 // help line
	if main < 6 {
		main = 6
	}
	page = main * 2 / 3
	if page < 3 {
		page = 3
	}
	logs = main - page
	if logs < 3 {
		logs = 3
	}
	return page, logs
}
