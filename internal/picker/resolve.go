package picker

// Resolve infers the padded index of the centred slot from the index of the
// topmost visible slot and the sub-slot scroll offset of that slot.
//
// Scroll surfaces report the topmost slot reliably but not the centred one,
// particularly within the first two slots. Any non-zero offset counts as a
// partial scroll past visibleIndex regardless of sign or magnitude; snapping
// keeps it below one slot in practice.
//
//	offset  visibleIndex  centre
//	0       0             0
//	0       1             1
//	!=0     0             1
//	0       >1            visibleIndex
//	!=0     >=1           visibleIndex+1
//
// The result is clamped to [0, paddedCount-1]. Out-of-range or negative
// combinations fall back to the last slot. Resolve never fails.
func Resolve(offset, visibleIndex, paddedCount int) int {
	var selected int
	switch {
	case visibleIndex < 0:
		selected = -1
	case offset == 0 && visibleIndex == 0:
		selected = 0
	case offset == 0 && visibleIndex == 1:
		selected = 1
	case offset != 0 && visibleIndex == 0:
		selected = 1
	case offset == 0 && visibleIndex > 1:
		selected = visibleIndex
	default:
		selected = visibleIndex + 1
	}
	return clampSlot(selected, paddedCount)
}

func clampSlot(selected, paddedCount int) int {
	last := paddedCount - 1
	if last < 0 {
		last = 0
	}
	switch {
	case selected == 0:
		return 0
	case selected == last:
		return last
	case selected > 0 && selected < last:
		return selected
	default:
		return last
	}
}
