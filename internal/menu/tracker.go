package menu

// Tracker owns the "last visible item" state of one mounted bar.
//
// It starts Unmeasured (Last() == UnmeasuredIndex). The first non-empty probe
// passed to Mount caches the widths and moves it to Measured. From then on
// Resize only re-resolves against the cached widths; nothing recomputes them
// until Reset, which models a remount.
type Tracker struct {
	dims     Dimensions
	last     int
	measured bool
	attached bool
}

// NewTracker returns an unmeasured, detached tracker.
func NewTracker() *Tracker {
	return &Tracker{last: UnmeasuredIndex}
}

// Mount records the first successful probe. It returns false and leaves the
// tracker unmeasured when d is empty, and ignores d once already measured.
func (t *Tracker) Mount(d Dimensions) bool {
	t.attached = true
	if t.measured {
		return false
	}
	if d.Empty() {
		return false
	}
	t.dims = d
	t.last = Resolve(d)
	t.measured = true
	return true
}

// Resize re-resolves for a new container width. changed is false when the
// resolved index is the same, so callers can skip a redundant re-render.
func (t *Tracker) Resize(width int) (last int, changed bool) {
	if !t.attached || !t.measured {
		return t.last, false
	}
	t.dims.ContainerWidth = width
	next := Resolve(t.dims)
	if next == t.last {
		return t.last, false
	}
	t.last = next
	return t.last, true
}

// Detach stops the tracker from reacting to resizes.
func (t *Tracker) Detach() {
	t.attached = false
}

// Reset returns the tracker to its just-constructed state.
func (t *Tracker) Reset() {
	*t = Tracker{last: UnmeasuredIndex}
}

// Last is the index of the last inline item, or UnmeasuredIndex.
func (t *Tracker) Last() int { return t.last }

func (t *Tracker) Measured() bool { return t.measured }

func (t *Tracker) Attached() bool { return t.attached }

// Snapshot returns the cached probe with the most recent container width.
func (t *Tracker) Snapshot() Dimensions { return t.dims }
