package screenline

import "sync/atomic"

// Builder is the entry point of this package (spec §4.6) and the
// "producer" the spec's identifier-counter open question refers to: each
// Builder hands out its own monotonically increasing ScreenLine.ID
// sequence, so two Builders over two different display layers never
// collide or depend on call order between them (see DESIGN.md).
type Builder struct {
	Layer  DisplayLayer
	Buffer TextBuffer

	ids atomic.Uint64
}

// NewBuilder returns a Builder reading rows from buffer and configured
// by layer.
func NewBuilder(layer DisplayLayer, buffer TextBuffer) *Builder {
	return &Builder{Layer: layer, Buffer: buffer}
}

func (b *Builder) nextScreenLineID() uint64 {
	return b.ids.Add(1)
}

// Build renders screen rows [screenStartRow, screenEndRow), clamped to
// the display layer's current screen-line count. An empty or
// out-of-range request returns an empty sequence.
func (b *Builder) Build(screenStartRow, screenEndRow int) []ScreenLine {
	count := b.Layer.ScreenLineCount()
	if screenEndRow > count {
		screenEndRow = count
	}
	if screenStartRow >= screenEndRow {
		return nil
	}

	startPoint := b.Layer.TranslateScreenPosition(Point{Row: screenStartRow, Column: 0})
	hunks := b.Layer.HunksInNewRange(Point{Row: screenStartRow}, Point{Row: screenEndRow})

	cursor := NewHunkCursor(hunks)
	cursor.SkipBefore(startPoint)
	assembler := NewLineAssembler(b.Buffer, b.Layer, cursor, b.nextScreenLineID)

	wanted := screenEndRow - screenStartRow
	result := make([]ScreenLine, 0, wanted)
	bufferRow := startPoint.Row
	startCol := startPoint.Column

	for len(result) < wanted {
		lines, next := assembler.ProcessBufferRow(bufferRow, startCol)
		result = append(result, lines...)
		bufferRow = next
		startCol = 0
	}
	if len(result) > wanted {
		result = result[:wanted]
	}
	return result
}
