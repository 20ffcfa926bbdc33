package displaylayer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stlalpha/screenlayer/internal/screenline"
)

// Span is a collapsed buffer region: [Start, End) in buffer coordinates.
type Span struct {
	Start screenline.Point
	End   screenline.Point
}

// FoldIndex tracks an ordered, non-overlapping set of collapsed buffer
// spans. It has no analog in the teacher's editor (vision3 has no code
// folding); it is built directly from spec.md §3's description of a
// fold hunk.
type FoldIndex struct {
	mu    sync.RWMutex
	spans []Span
}

// NewFoldIndex returns an empty index.
func NewFoldIndex() *FoldIndex {
	return &FoldIndex{}
}

// AddFold records a new collapsed span. It fails if the span overlaps
// an existing one.
func (f *FoldIndex) AddFold(start, end screenline.Point) error {
	if !start.LessThan(end) {
		return fmt.Errorf("displaylayer: fold span start %v must be before end %v", start, end)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := sort.Search(len(f.spans), func(i int) bool { return !f.spans[i].Start.LessThan(start) })
	if i > 0 && f.spans[i-1].End.GreaterThan(start) {
		return fmt.Errorf("displaylayer: fold span %v-%v overlaps existing fold %v-%v", start, end, f.spans[i-1].Start, f.spans[i-1].End)
	}
	if i < len(f.spans) && end.GreaterThan(f.spans[i].Start) {
		return fmt.Errorf("displaylayer: fold span %v-%v overlaps existing fold %v-%v", start, end, f.spans[i].Start, f.spans[i].End)
	}

	f.spans = append(f.spans, Span{})
	copy(f.spans[i+1:], f.spans[i:])
	f.spans[i] = Span{Start: start, End: end}
	return nil
}

// RemoveFold removes the fold starting exactly at start, reporting
// whether one was found.
func (f *FoldIndex) RemoveFold(start screenline.Point) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, s := range f.spans {
		if s.Start.Equal(start) {
			f.spans = append(f.spans[:i], f.spans[i+1:]...)
			return true
		}
	}
	return false
}

// FoldsIn returns, in ascending order, every fold span whose start lies
// in [rangeStart, rangeEnd).
func (f *FoldIndex) FoldsIn(rangeStart, rangeEnd screenline.Point) []Span {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []Span
	for _, s := range f.spans {
		if s.Start.LessThan(rangeStart) {
			continue
		}
		if !s.Start.LessThan(rangeEnd) {
			break
		}
		out = append(out, s)
	}
	return out
}

// FoldContaining returns the fold span that covers p, if any.
func (f *FoldIndex) FoldContaining(p screenline.Point) (Span, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, s := range f.spans {
		if !p.LessThan(s.Start) && p.LessThan(s.End) {
			return s, true
		}
	}
	return Span{}, false
}

// RowSwallowed reports whether row is wholly absorbed into an earlier
// row by a fold spanning multiple buffer rows (the fold's own start row
// is never considered swallowed — it begins the merged screen row).
func (f *FoldIndex) RowSwallowed(row int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.spans {
		if row > s.Start.Row && row <= s.End.Row {
			return true
		}
	}
	return false
}

// Len returns the number of folds currently tracked.
func (f *FoldIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.spans)
}
