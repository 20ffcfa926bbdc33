// Package textbuffer is the underlying text storage the screen-line
// builder reads from: a dynamically growing line list addressed by
// 0-based row, each row carrying its own line-ending kind and a
// hard/soft break flag.
package textbuffer

import (
	"strings"

	"github.com/stlalpha/screenlayer/internal/screenline"
)

// Buffer holds the lines of a single file or message under edit.
type Buffer struct {
	lines     []string
	endings   []screenline.LineEndingKind
	hardBreak []bool // true = user-created line break; false = auto soft wrap
}

// New returns a one-line empty buffer.
func New() *Buffer {
	return Load("")
}

// Load splits content into rows, recording each row's original line
// ending (LF, CRLF, or CR) and marking every resulting row a hard break,
// the way MessageBuffer.LoadContent treats loaded content as real line
// breaks rather than wraps.
func Load(content string) *Buffer {
	lines, endings := splitLines(content)
	hard := make([]bool, len(lines))
	for i := range hard {
		hard[i] = true
	}
	return &Buffer{lines: lines, endings: endings, hardBreak: hard}
}

func splitLines(content string) ([]string, []screenline.LineEndingKind) {
	var lines []string
	var endings []screenline.LineEndingKind
	var cur strings.Builder

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, cur.String())
			endings = append(endings, screenline.LF)
			cur.Reset()
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				lines = append(lines, cur.String())
				endings = append(endings, screenline.CRLF)
				cur.Reset()
				i++
			} else {
				lines = append(lines, cur.String())
				endings = append(endings, screenline.CR)
				cur.Reset()
			}
		default:
			cur.WriteByte(content[i])
		}
	}
	lines = append(lines, cur.String())
	endings = append(endings, screenline.NoNewline)
	return lines, endings
}

// Lines returns the number of rows in the buffer.
func (b *Buffer) Lines() int { return len(b.lines) }

// LineForRow implements screenline.TextBuffer.
func (b *Buffer) LineForRow(row int) string { return b.lines[row] }

// LineEndingForRow implements screenline.TextBuffer.
func (b *Buffer) LineEndingForRow(row int) screenline.LineEndingKind { return b.endings[row] }

// SetLine replaces the content of row.
func (b *Buffer) SetLine(row int, content string) { b.lines[row] = content }

// IsHardBreak reports whether row ends with a user-created line break
// rather than an automatic soft wrap (mirrors MessageBuffer.hardNewline).
func (b *Buffer) IsHardBreak(row int) bool { return b.hardBreak[row] }

// SetHardBreak sets or clears the hard-break flag for row.
func (b *Buffer) SetHardBreak(row int, hard bool) { b.hardBreak[row] = hard }

// InsertLine inserts content as a new row at row, shifting subsequent
// rows down.
func (b *Buffer) InsertLine(row int, content string, ending screenline.LineEndingKind, hard bool) {
	b.lines = append(b.lines, "")
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = content

	b.endings = append(b.endings, screenline.NoNewline)
	copy(b.endings[row+1:], b.endings[row:])
	b.endings[row] = ending

	b.hardBreak = append(b.hardBreak, false)
	copy(b.hardBreak[row+1:], b.hardBreak[row:])
	b.hardBreak[row] = hard
}

// DeleteLine removes row, always leaving at least one row behind.
func (b *Buffer) DeleteLine(row int) {
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.endings = append(b.endings[:row], b.endings[row+1:]...)
	b.hardBreak = append(b.hardBreak[:row], b.hardBreak[row+1:]...)

	if len(b.lines) == 0 {
		b.lines = []string{""}
		b.endings = []screenline.LineEndingKind{screenline.NoNewline}
		b.hardBreak = []bool{true}
	}
}

// SplitLine breaks row at col (rune offset), leaving the left part in
// row and inserting the right part as a new row below it. hard marks
// whether the split point is a user-entered break.
func (b *Buffer) SplitLine(row, col int, hard bool) {
	line := []rune(b.lines[row])
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}

	oldEnding := b.endings[row]
	oldHard := b.hardBreak[row]

	b.lines[row] = string(line[:col])
	b.endings[row] = screenline.LF
	b.hardBreak[row] = hard

	b.InsertLine(row+1, string(line[col:]), oldEnding, oldHard)
}

// JoinLines merges row+1 into row. The combined row inherits row+1's
// line ending and hard-break flag, since that is where the combined
// line now ends.
func (b *Buffer) JoinLines(row int) {
	if row < 0 || row+1 >= len(b.lines) {
		return
	}
	b.lines[row] += b.lines[row+1]
	b.endings[row] = b.endings[row+1]
	b.hardBreak[row] = b.hardBreak[row+1]
	b.DeleteLine(row + 1)
}

// RemoveTrailingSpaces trims trailing ASCII spaces from row.
func (b *Buffer) RemoveTrailingSpaces(row int) {
	b.lines[row] = strings.TrimRight(b.lines[row], " ")
}

// IsLineEmpty reports whether row is empty or all whitespace.
func (b *Buffer) IsLineEmpty(row int) bool {
	return strings.TrimSpace(b.lines[row]) == ""
}

// LeadingWhitespaceLength returns the number of leading spaces and tabs
// on row.
func (b *Buffer) LeadingWhitespaceLength(row int) int {
	n := 0
	for _, c := range b.lines[row] {
		if c != ' ' && c != '\t' {
			break
		}
		n++
	}
	return n
}

// Content reassembles the full buffer text, restoring each row's
// original line ending.
func (b *Buffer) Content() string {
	var sb strings.Builder
	for i, line := range b.lines {
		sb.WriteString(line)
		switch b.endings[i] {
		case screenline.LF:
			sb.WriteByte('\n')
		case screenline.CRLF:
			sb.WriteString("\r\n")
		case screenline.CR:
			sb.WriteByte('\r')
		}
	}
	return sb.String()
}
