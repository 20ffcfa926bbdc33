package screenline

// HunkCursor walks a hunk list in ascending OldStart order, handing them
// to the assembler one at a time as the current buffer position reaches
// them (spec §4.2). It never looks ahead past what SkipBefore/ConsumeAt
// have already confirmed, so the assembler controls the pace.
type HunkCursor struct {
	hunks []Hunk
	pos   int
}

// NewHunkCursor wraps hunks, which must already be sorted ascending by
// OldStart (the contract DisplayLayer.HunksInNewRange honors).
func NewHunkCursor(hunks []Hunk) *HunkCursor {
	return &HunkCursor{hunks: hunks}
}

// SkipBefore advances past any hunk whose OldEnd lies strictly before p;
// a hunk ending exactly at p is kept. Used when the assembler jumps the
// buffer position forward (a fold consuming several rows) and hunks
// wholly inside the consumed span must never be replayed.
func (c *HunkCursor) SkipBefore(p Point) {
	for c.pos < len(c.hunks) && c.hunks[c.pos].OldEnd.LessThan(p) {
		c.pos++
	}
}

// Peek returns the next unconsumed hunk without advancing, and whether
// one exists.
func (c *HunkCursor) Peek() (Hunk, bool) {
	if c.pos >= len(c.hunks) {
		return Hunk{}, false
	}
	return c.hunks[c.pos], true
}

// ConsumeAt returns and advances past the next hunk if its OldStart
// equals p exactly. A hunk whose OldStart is still ahead of p is left
// for a later call.
func (c *HunkCursor) ConsumeAt(p Point) (Hunk, bool) {
	h, ok := c.Peek()
	if !ok || !h.OldStart.Equal(p) {
		return Hunk{}, false
	}
	c.pos++
	return h, true
}
