package displaylayer

import (
	"sort"
	"unicode/utf8"

	"github.com/stlalpha/screenlayer/internal/screenline"
	"github.com/stlalpha/screenlayer/internal/textbuffer"
)

// Layer is the concrete screenline.DisplayLayer backing the demo and
// report binaries: a textbuffer.Buffer, a set of active folds, render
// configuration, and a tag registry. Grounded on internal/editor/screen.go's
// geometry-and-config-carrying Screen struct.
type Layer struct {
	Buffer *textbuffer.Buffer
	Folds  *FoldIndex
	Config Config
	Tags   *TagRegistry
}

// NewLayer returns a Layer over buf with the given folds, configuration
// and tag registry.
func NewLayer(buf *textbuffer.Buffer, folds *FoldIndex, cfg Config, tags *TagRegistry) *Layer {
	return &Layer{Buffer: buf, Folds: folds, Config: cfg, Tags: tags}
}

func (l *Layer) TabLength() int {
	if l.Config.TabLength <= 0 {
		return 1
	}
	return l.Config.TabLength
}

func (l *Layer) FoldCharacter() string                    { return l.Config.FoldCharacter }
func (l *Layer) Invisibles() screenline.Invisibles        { return l.Config.Invisibles }
func (l *Layer) ShowIndentGuides() bool                    { return l.Config.ShowIndentGuides }
func (l *Layer) CodeForOpenTag(name string) int            { return l.Tags.CodeForOpenTag(name) }
func (l *Layer) CodeForCloseTag(name string) int           { return l.Tags.CodeForCloseTag(name) }

func (l *Layer) EOLInvisibles() map[screenline.LineEndingKind]string {
	if l.Config.EOLInvisibles == nil {
		return map[screenline.LineEndingKind]string{}
	}
	return l.Config.EOLInvisibles
}

// LeadingWhitespaceLengthForSurroundingLines infers an indent amount for
// a blank row from the nearest non-blank rows above and below it,
// returning the smaller of the two when both exist.
func (l *Layer) LeadingWhitespaceLengthForSurroundingLines(row int) int {
	above, haveAbove := 0, false
	for r := row - 1; r >= 0; r-- {
		if !l.Buffer.IsLineEmpty(r) {
			above, haveAbove = l.Buffer.LeadingWhitespaceLength(r), true
			break
		}
	}
	below, haveBelow := 0, false
	for r := row + 1; r < l.Buffer.Lines(); r++ {
		if !l.Buffer.IsLineEmpty(r) {
			below, haveBelow = l.Buffer.LeadingWhitespaceLength(r), true
			break
		}
	}
	switch {
	case haveAbove && haveBelow:
		if above < below {
			return above
		}
		return below
	case haveAbove:
		return above
	case haveBelow:
		return below
	default:
		return 0
	}
}

// findWrapPosition mirrors wordwrap.go's findWrapPosition: the last
// space at or before width, else the first space after it, else -1 (no
// break point — caller hard-breaks at width).
func findWrapPosition(line []rune, width int) int {
	if width <= 0 || width >= len(line) {
		return -1
	}
	for i := width; i > 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	for i := width; i < len(line); i++ {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

// wrapPositions returns the buffer-column offsets at which row should
// break if it exceeds WrapWidth. A zero WrapWidth disables wrapping
// entirely.
func (l *Layer) wrapPositions(row int) []int {
	if l.Config.WrapWidth <= 0 {
		return nil
	}
	text := []rune(l.Buffer.LineForRow(row))
	var positions []int
	pos := 0
	for len(text)-pos > l.Config.WrapWidth {
		wrapAt := findWrapPosition(text[pos:], l.Config.WrapWidth)
		if wrapAt <= 0 {
			wrapAt = l.Config.WrapWidth
		}
		pos += wrapAt
		positions = append(positions, pos)
	}
	return positions
}

// screenRowsForBufferRow returns how many screen rows row alone
// contributes once wrapping is applied (fold-driven row skipping is
// handled separately by the caller).
func (l *Layer) screenRowsForBufferRow(row int) int {
	return len(l.wrapPositions(row)) + 1
}

// ScreenLineCount implements screenline.DisplayLayer.
func (l *Layer) ScreenLineCount() int {
	total := 0
	for row := 0; row < l.Buffer.Lines(); row++ {
		if l.Folds.RowSwallowed(row) {
			continue
		}
		total += l.screenRowsForBufferRow(row)
	}
	return total
}

// TranslateScreenPosition implements screenline.DisplayLayer. It
// resolves a screen row to the buffer row whose expansion contains it
// and, when that screen row is itself a wrapped continuation of the
// buffer row rather than its first segment, the buffer column the
// continuation resumes at (the wrap point that ends the segment before
// it) — a soft wrap never changes buffer row (spec §3), so the column is
// the only thing that needs resolving here.
func (l *Layer) TranslateScreenPosition(p screenline.Point) screenline.Point {
	count := 0
	total := l.Buffer.Lines()
	for row := 0; row < total; row++ {
		if l.Folds.RowSwallowed(row) {
			continue
		}
		positions := l.wrapPositions(row)
		rows := len(positions) + 1
		if p.Row < count+rows {
			seg := p.Row - count
			col := 0
			if seg > 0 {
				col = positions[seg-1]
			}
			return screenline.Point{Row: row, Column: col}
		}
		count += rows
	}
	return screenline.Point{Row: total, Column: 0}
}

// HunksInNewRange implements screenline.DisplayLayer, synthesizing a
// fold hunk for every active fold starting in range and a soft-wrap
// hunk at every wrap point row's current width demands.
func (l *Layer) HunksInNewRange(screenStart, screenEnd screenline.Point) []screenline.Hunk {
	if screenEnd.Row <= screenStart.Row {
		return nil
	}
	firstRow := l.TranslateScreenPosition(screenStart).Row
	lastRow := l.TranslateScreenPosition(screenline.Point{Row: screenEnd.Row - 1}).Row

	var hunks []screenline.Hunk
	for row := firstRow; row <= lastRow && row < l.Buffer.Lines(); row++ {
		if l.Folds.RowSwallowed(row) {
			continue
		}

		var rowHunks []screenline.Hunk
		for _, span := range l.Folds.FoldsIn(screenline.Point{Row: row}, screenline.Point{Row: row + 1}) {
			glyphLen := utf8.RuneCountInString(l.Config.FoldCharacter)
			rowHunks = append(rowHunks, screenline.Hunk{
				OldStart: span.Start,
				OldEnd:   span.End,
				NewText:  l.Config.FoldCharacter,
				NewEnd:   screenline.Point{Row: span.Start.Row, Column: span.Start.Column + glyphLen},
			})
		}

		indent := l.Buffer.LeadingWhitespaceLength(row)
		for _, col := range l.wrapPositions(row) {
			rowHunks = append(rowHunks, screenline.Hunk{
				OldStart: screenline.Point{Row: row, Column: col},
				OldEnd:   screenline.Point{Row: row, Column: col},
				NewText:  "",
				NewEnd:   screenline.Point{Row: row, Column: indent},
			})
		}

		// Stable: spec §4.2 requires hunks sharing an OldStart to be
		// consumed in list order, not reordered by the sort.
		sort.SliceStable(rowHunks, func(i, j int) bool { return rowHunks[i].OldStart.LessThan(rowHunks[j].OldStart) })
		hunks = append(hunks, rowHunks...)
	}
	return hunks
}
