package menu

// DefaultGap is the right-hand safety margin, in cells, added to every
// cumulative width. It absorbs rounding and border artifacts.
const DefaultGap = 1

// Geometry is one measured box on the rendering surface.
type Geometry struct {
	Left  int
	Width int
}

// Node is a direct child of the container. The overflow trigger is marked by
// Trigger, never by its position.
type Node struct {
	Key     string
	Trigger bool
}

// Container is the rendered bar that holds the items and the trigger.
type Container struct {
	Key      string
	Children []Node
}

// MeasureFunc reads the geometry of a rendered element. It reports false when
// the element is not attached or cannot be measured.
type MeasureFunc func(key string) (Geometry, bool)

// Dimensions is the snapshot taken by Probe. NecessaryWidths[i] is the
// smallest container width that fits items 0..i, without the trigger.
type Dimensions struct {
	NecessaryWidths []int
	MoreWidth       int
	ContainerWidth  int
}

// Empty reports whether the snapshot carries no measurements.
func (d Dimensions) Empty() bool {
	return len(d.NecessaryWidths) == 0
}

// WithWidth returns a copy of d for a different container width. The cached
// widths are shared, not recomputed.
func (d Dimensions) WithWidth(width int) Dimensions {
	d.ContainerWidth = width
	return d
}

// Probe measures the container and its children. An unmeasurable container,
// one with zero width, or one without children yields an empty snapshot.
func Probe(c Container, measure MeasureFunc, gap int) Dimensions {
	if measure == nil || len(c.Children) == 0 {
		return Dimensions{}
	}
	box, ok := measure(c.Key)
	if !ok || box.Width <= 0 {
		return Dimensions{}
	}

	d := Dimensions{
		NecessaryWidths: make([]int, 0, len(c.Children)),
		ContainerWidth:  box.Width,
	}
	for _, child := range c.Children {
		g, ok := measure(child.Key)
		if !ok {
			continue
		}
		if child.Trigger {
			d.MoreWidth = g.Width
			continue
		}
		d.NecessaryWidths = append(d.NecessaryWidths, g.Width+(g.Left-box.Left)+gap)
	}
	if len(d.NecessaryWidths) == 0 {
		return Dimensions{}
	}
	return d
}
