package menu

// Resolve returns the index of the last item that stays inline.
//
// The trigger width is reserved only when not everything fits, and the
// result never drops below 0 so the bar is never empty. Resolve is total:
// negative widths are a caller error and are not checked.
func Resolve(d Dimensions) int {
	n := len(d.NecessaryWidths)
	if n == 0 {
		return 0
	}
	if d.NecessaryWidths[n-1] < d.ContainerWidth {
		return n - 1
	}

	fit := 0
	for _, w := range d.NecessaryWidths {
		if w+d.MoreWidth < d.ContainerWidth {
			fit++
		}
	}
	if fit == 0 {
		return 0
	}
	return fit - 1
}

// NeedsTrigger reports whether the overflow trigger must be shown when items
// up to index are inline.
func NeedsTrigger(d Dimensions, index int) bool {
	if d.Empty() {
		return false
	}
	return index < len(d.NecessaryWidths)-1
}
