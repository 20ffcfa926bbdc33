package screenline

import (
	"strings"
	"unicode/utf8"
)

// LineAssembler drives the per-buffer-line pass described in spec §4.5:
// tab expansion, invisible substitution, fold replacement and soft-wrap
// flush/indent reconstruction. One assembler is reused across every
// buffer row in a single Builder call so its HunkCursor keeps advancing
// in lock-step with the buffer position across row boundaries (a fold
// can jump several rows in one step).
type LineAssembler struct {
	buffer TextBuffer
	layer  DisplayLayer
	cursor *HunkCursor
	nextID func() uint64
}

// NewLineAssembler returns an assembler reading from buffer, configured
// by layer, consuming hunks from cursor. nextID supplies this assembler's
// producer-scoped ScreenLine.ID sequence (ordinarily a Builder's).
func NewLineAssembler(buffer TextBuffer, layer DisplayLayer, cursor *HunkCursor, nextID func() uint64) *LineAssembler {
	return &LineAssembler{buffer: buffer, layer: layer, cursor: cursor, nextID: nextID}
}

// ProcessBufferRow assembles every screen line produced from bufferRow,
// starting at startCol — ordinarily 0, but a nonzero value when the
// caller's first wanted screen row is itself a wrapped continuation
// segment rather than the row's first segment (TranslateScreenPosition
// resolves which column that is; a soft wrap never changes buffer row,
// spec §3, so resuming mid-row never needs a different row). Ordinarily
// produces one screen line, more if soft-wrap hunks split it, and the
// row fetched may itself change mid-pass if a fold hunk jumps the cursor
// forward. Returns the produced screen lines and the buffer row the
// caller should resume from.
func (a *LineAssembler) ProcessBufferRow(bufferRow, startCol int) ([]ScreenLine, int) {
	tabLength := a.layer.TabLength()
	invisibles := a.layer.Invisibles()
	guidesEnabled := a.layer.ShowIndentGuides()
	foldCharacter := a.layer.FoldCharacter()
	codeForOpen := a.layer.CodeForOpenTag
	codeForClose := a.layer.CodeForCloseTag

	row := bufferRow
	lineEnding := a.buffer.LineEndingForRow(row)
	bufferLine := []rune(a.buffer.LineForRow(row))
	trailingStart := computeTrailingWhitespaceStart(bufferLine)
	lineEmpty := len(bufferLine) == 0

	classifier := NewWhitespaceClassifier(trailingStart)
	emitter := NewTokenEmitter()
	var text strings.Builder
	var lines []ScreenLine

	screenCol := 0
	bufferCol := startCol
	if startCol > 0 {
		classifier.inLeading = false
	}

	refetchRow := func(newRow, newCol int) {
		row = newRow
		bufferCol = newCol
		lineEnding = a.buffer.LineEndingForRow(row)
		bufferLine = []rune(a.buffer.LineForRow(row))
		trailingStart = computeTrailingWhitespaceStart(bufferLine)
		lineEmpty = len(bufferLine) == 0
		classifier = NewWhitespaceClassifier(trailingStart)
		if newCol > 0 {
			classifier.inLeading = false
		}
		a.cursor.SkipBefore(Point{Row: newRow, Column: newCol})
	}

	// startCol > 0 means the caller resumed exactly at a soft-wrap point
	// (the only kind of hunk TranslateScreenPosition resolves a mid-row
	// column from). Apply its indent reconstruction here, without the
	// flush-and-append the same hunk triggers mid-pass below, since there
	// is no accumulated text yet at the start of this call to close out.
	if startCol > 0 {
		pos := Point{Row: row, Column: bufferCol}
		for {
			h, ok := a.cursor.ConsumeAt(pos)
			if !ok {
				break
			}
			if h.Kind(foldCharacter) == SoftWrapHunk {
				indentLen := h.NewEnd.Column
				a.writeIndentGuideRun(&text, emitter, indentLen, tabLength, guidesEnabled, codeForOpen, codeForClose)
				screenCol = indentLen
			}
		}
	}

	for bufferCol <= len(bufferLine) {
		pos := Point{Row: row, Column: bufferCol}
		for {
			h, ok := a.cursor.ConsumeAt(pos)
			if !ok {
				break
			}
			switch h.Kind(foldCharacter) {
			case FoldHunk:
				glyphLen := utf8.RuneCountInString(foldCharacter)
				emitter.Apply(Fold, glyphLen, true, codeForOpen, codeForClose)
				text.WriteString(foldCharacter)
				refetchRow(h.OldEnd.Row, h.OldEnd.Column)
				pos = Point{Row: row, Column: bufferCol}
			case SoftWrapHunk:
				codes := emitter.Flush(codeForClose)
				lines = append(lines, ScreenLine{ID: a.nextID(), Text: text.String(), TagCodes: codes})
				text.Reset()
				emitter.Reset()
				screenCol = 0
				indentLen := h.NewEnd.Column
				a.writeIndentGuideRun(&text, emitter, indentLen, tabLength, guidesEnabled, codeForOpen, codeForClose)
				screenCol = indentLen
			case OtherHunk:
				// ignored per spec §3
			}
		}

		if bufferCol == len(bufferLine) {
			a.finalizeLine(&text, emitter, lineEnding, lineEmpty, guidesEnabled, row, codeForOpen, codeForClose)
			codes := emitter.Flush(codeForClose)
			lines = append(lines, ScreenLine{ID: a.nextID(), Text: text.String(), TagCodes: codes})
			break
		}

		ch := bufferLine[bufferCol]
		flags, forced := classifier.Classify(bufferCol, ch, screenCol, tabLength, invisibles, guidesEnabled)

		switch {
		case ch == '\t':
			dist := tabLength - (screenCol % tabLength)
			if invisibles.Tab != "" {
				text.WriteString(invisibles.Tab)
				text.WriteString(strings.Repeat(" ", dist-1))
			} else {
				text.WriteString(strings.Repeat(" ", dist))
			}
			emitter.Apply(flags, dist, forced, codeForOpen, codeForClose)
			screenCol += dist
		case ch == ' ' && flags&InvisibleCharacter != 0:
			text.WriteString(invisibles.Space)
			emitter.Apply(flags, 1, forced, codeForOpen, codeForClose)
			screenCol++
		default:
			text.WriteRune(ch)
			emitter.Apply(flags, 1, forced, codeForOpen, codeForClose)
			screenCol++
		}
		bufferCol++
	}

	return lines, row + 1
}

// finalizeLine implements spec §4.5 step 5: the end-of-line compound tag
// and, for an empty line with guides enabled, the synthesized indent run
// inferred from surrounding lines.
func (a *LineAssembler) finalizeLine(text *strings.Builder, emitter *TokenEmitter, lineEnding LineEndingKind, lineEmpty, guidesEnabled bool, row int, codeForOpen, codeForClose func(string) int) {
	if glyph := a.layer.EOLInvisibles()[lineEnding]; glyph != "" {
		flags := InvisibleCharacter | LineEnding
		if lineEmpty && guidesEnabled {
			flags |= IndentGuide
		}
		emitter.Apply(flags, utf8.RuneCountInString(glyph), true, codeForOpen, codeForClose)
		text.WriteString(glyph)
	}

	if lineEmpty && guidesEnabled {
		target := a.layer.LeadingWhitespaceLengthForSurroundingLines(row)
		a.writeIndentGuideRun(text, emitter, target, a.layer.TabLength(), true, codeForOpen, codeForClose)
	}
}

// writeIndentGuideRun synthesizes length columns of indentation, either
// as tab-stop-aligned indent-guide blocks or, when asGuides is false, as
// a single bare length prefix (spec §4.5 step 3's soft-wrap indent
// reconstruction and step 5's empty-line indent reconstruction share
// this logic; the former may render bare, the latter is only invoked
// once guides are already known to be enabled).
func (a *LineAssembler) writeIndentGuideRun(text *strings.Builder, emitter *TokenEmitter, length, tabLength int, asGuides bool, codeForOpen, codeForClose func(string) int) {
	if length <= 0 {
		return
	}
	if !asGuides {
		text.WriteString(strings.Repeat(" ", length))
		emitter.Apply(0, length, false, codeForOpen, codeForClose)
		return
	}
	col := 0
	remaining := length
	for remaining > 0 {
		chunk := tabLength - (col % tabLength)
		if chunk > remaining {
			chunk = remaining
		}
		text.WriteString(strings.Repeat(" ", chunk))
		emitter.Apply(IndentGuide, chunk, true, codeForOpen, codeForClose)
		col += chunk
		remaining -= chunk
	}
}
