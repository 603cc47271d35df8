// Package window computes the minimal slice of a large list that must be
// materialized for the current viewport (list virtualization).
package window

// DefaultOverscan is the number of extra rows rendered on each side of the
// viewport to absorb fast scrolling.
const DefaultOverscan = 3

// Range is the part of a list a renderer must materialize. All fields are
// non-negative except End, which is -1 when the range is empty. OffsetY is
// the pixel offset of Start from the top of the full list.
type Range struct {
	Start   int
	End     int
	OffsetY int
}

// Empty reports whether the range contains no renderable items.
func (r Range) Empty() bool { return r.End < r.Start }

// Count returns the number of items in the range.
func (r Range) Count() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Visible converts item geometry and a scroll position into the index range
// that intersects the viewport, padded by overscan rows:
//
//	Start = max(0, floor(scrollTop/itemHeight) - overscan)
//	End   = min(totalItems-1, ceil((scrollTop+containerHeight)/itemHeight) + overscan)
//
// An empty list (and a non-positive item height) yields Range{Start: 0,
// End: -1}; negative scrollTop clamps to zero. Pure function, safe to call
// on every scroll event.
func Visible(totalItems, itemHeight, containerHeight, scrollTop, overscan int) Range {
	if totalItems <= 0 || itemHeight <= 0 {
		return Range{Start: 0, End: -1}
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	start := scrollTop/itemHeight - overscan
	if start < 0 {
		start = 0
	}

	bottom := scrollTop + containerHeight
	end := (bottom+itemHeight-1)/itemHeight + overscan
	if end > totalItems-1 {
		end = totalItems - 1
	}

	return Range{
		Start:   start,
		End:     end,
		OffsetY: start * itemHeight,
	}
}
