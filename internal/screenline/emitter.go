package screenline

// TokenEmitter accumulates rendered text length under the currently open
// tag and appends length-prefix/open/close elements to a tagCodes stream
// (spec §4.4).
//
// Resolved open question (spec §9): the source's boundary check is
// ambiguous about precedence between the forced-boundary flag and the
// flags-changed comparison. This implementation treats them as a single
// OR: `boundary := forced || flags != currentFlags`. In this classifier's
// output a forced boundary is only ever raised alongside a non-zero flag
// set (a hard tab or an indent-guide column), so the degenerate case of
// forcing a boundary between two bare-text runs never occurs in
// practice; the OR still gives the only sensible behavior for it if it
// ever did (split the bare run at that point).
type TokenEmitter struct {
	currentFlags  DecorationFlags
	currentLength int
	codes         []int
}

// NewTokenEmitter returns an emitter with no accumulated text and no
// open tag.
func NewTokenEmitter() *TokenEmitter {
	return &TokenEmitter{}
}

// Apply records length rendered units under flags. A tag boundary is
// made when flags differs from the currently open flags, or, when forced
// is true, even if flags equals them.
func (e *TokenEmitter) Apply(flags DecorationFlags, length int, forced bool, codeForOpen, codeForClose func(name string) int) {
	if forced || flags != e.currentFlags {
		e.closeCurrent(codeForClose)
		if flags != 0 {
			e.codes = append(e.codes, codeForOpen(TagName(flags)))
			e.currentFlags = flags
		}
	}
	e.currentLength += length
}

// closeCurrent flushes the accumulated length, as a bare prefix if no
// tag is open or as length-then-close-code if one is.
func (e *TokenEmitter) closeCurrent(codeForClose func(name string) int) {
	if e.currentLength == 0 && e.currentFlags == 0 {
		return
	}
	e.codes = append(e.codes, e.currentLength)
	if e.currentFlags != 0 {
		e.codes = append(e.codes, codeForClose(TagName(e.currentFlags)))
	}
	e.currentLength = 0
	e.currentFlags = 0
}

// Flush closes any open tag and returns the accumulated tagCodes,
// guaranteeing at least one element per spec §3 invariant 4.
func (e *TokenEmitter) Flush(codeForClose func(name string) int) []int {
	e.closeCurrent(codeForClose)
	if len(e.codes) == 0 {
		e.codes = append(e.codes, 0)
	}
	return e.codes
}

// Reset discards all accumulated state, starting a fresh token stream.
// Used when the assembler begins a new screen line (a soft wrap) without
// constructing a new TokenEmitter.
func (e *TokenEmitter) Reset() {
	e.currentFlags = 0
	e.currentLength = 0
	e.codes = nil
}
