package screenline

// DecorationFlags is a bitmask over the fixed set of decoration kinds a
// character or synthesized column can carry. The zero value means
// "plain text, no decoration".
type DecorationFlags uint8

const (
	HardTab DecorationFlags = 1 << iota
	LeadingWhitespace
	TrailingWhitespace
	InvisibleCharacter
	IndentGuide
	LineEnding
	Fold
)

// LineEndingKind indexes into a display layer's EOL invisible-glyph
// table. The underlying text buffer reports one of these per row.
type LineEndingKind int

const (
	LF LineEndingKind = iota
	CRLF
	CR
	NoNewline
)

// Invisibles names the glyphs substituted for whitespace characters. A
// zero-value (empty string) field means that whitespace kind is rendered
// literally.
type Invisibles struct {
	Tab   string
	Space string
}

// ScreenLine is one rendered row: the visible text plus the tag stream
// describing which decoration scopes cover which runs of it.
//
// Invariants on TagCodes (see spec §3):
//  1. The sum of positive length-prefix elements equals len([]rune(Text)).
//  2. Every open code is closed later in the same stream, LIFO-nested.
//  3. TagCodes is never empty; an empty Text still carries a single 0
//     length-prefix element.
type ScreenLine struct {
	ID       uint64
	Text     string
	TagCodes []int
}

// Hunk is a display-layer rewrite instruction. Its kind is determined by
// shape, not by an explicit field: a fold collapses a nonempty buffer
// span to the fold glyph, a soft wrap has zero old extent and begins a
// new screen line.
type Hunk struct {
	OldStart Point
	OldEnd   Point
	NewText  string
	NewEnd   Point
}

// HunkKind classifies a Hunk for the builder's purposes.
type HunkKind int

const (
	OtherHunk HunkKind = iota
	FoldHunk
	SoftWrapHunk
)

// Kind classifies h given the display layer's configured fold glyph.
func (h Hunk) Kind(foldCharacter string) HunkKind {
	if h.NewText == foldCharacter && h.OldEnd.GreaterThan(h.OldStart) {
		return FoldHunk
	}
	if h.OldStart == h.OldEnd {
		return SoftWrapHunk
	}
	return OtherHunk
}
