package menu

// UnmeasuredIndex is the visibility sentinel used before the first probe.
const UnmeasuredIndex = -1

// Partition splits items into the inline prefix and the overflow suffix.
type Partition struct {
	Visible  []Item
	Overflow []Item
}

// HasOverflow reports whether the trigger has anything to open.
func (p Partition) HasOverflow() bool {
	return len(p.Overflow) > 0
}

// Split partitions items so that items[0..last] are visible. The sentinel
// renders everything inline; any other out-of-range index is clamped.
func Split(items []Item, last int) Partition {
	if last == UnmeasuredIndex || last >= len(items)-1 {
		return Partition{Visible: items}
	}
	if last < 0 {
		last = 0
	}
	return Partition{
		Visible:  items[:last+1],
		Overflow: items[last+1:],
	}
}
