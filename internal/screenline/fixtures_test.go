package screenline

// fakeRegistry assigns a distinct positive id per tag name on first use
// and derives open/close codes from it, offset well clear of any
// plausible length-prefix value so CodeClassifier can tell them apart
// by magnitude alone — exactly the scheme a real TagRegistry is free to
// pick, since spec.md only requires the two codes be distinct integers
// stable for the registry's lifetime.
type fakeRegistry struct {
	ids  map[string]int
	next int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{ids: map[string]int{}, next: 1}
}

const fakeRegistryBase = 1000

func (r *fakeRegistry) idFor(name string) int {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.next
	r.next++
	r.ids[name] = id
	return id
}

func (r *fakeRegistry) CodeForOpenTag(name string) int  { return fakeRegistryBase + r.idFor(name) }
func (r *fakeRegistry) CodeForCloseTag(name string) int { return -(fakeRegistryBase + r.idFor(name)) }

func (r *fakeRegistry) ClassifyCode(code int) (isTag bool, isOpen bool) {
	switch {
	case code >= fakeRegistryBase:
		return true, true
	case code <= -fakeRegistryBase:
		return true, false
	default:
		return false, false
	}
}

// fakeBuffer is a slice-backed TextBuffer for tests.
type fakeBuffer struct {
	lines    []string
	endings  []LineEndingKind
}

func newFakeBuffer(lines ...string) *fakeBuffer {
	endings := make([]LineEndingKind, len(lines))
	for i := range endings {
		endings[i] = LF
	}
	if len(endings) > 0 {
		endings[len(endings)-1] = NoNewline
	}
	return &fakeBuffer{lines: lines, endings: endings}
}

func (b *fakeBuffer) LineForRow(row int) string             { return b.lines[row] }
func (b *fakeBuffer) LineEndingForRow(row int) LineEndingKind { return b.endings[row] }

// fakeLayer is a DisplayLayer with every collaborator service supplied
// directly by the test, mirroring spec.md §8's scenario setup.
type fakeLayer struct {
	lineCount        int
	translate        func(Point) Point
	hunks            []Hunk
	tabLength        int
	foldCharacter    string
	invisibles       Invisibles
	eolInvisibles    map[LineEndingKind]string
	showIndentGuides bool
	leadingFor       func(row int) int
	reg              *fakeRegistry
}

func newFakeLayer() *fakeLayer {
	return &fakeLayer{
		lineCount:     1,
		translate:     func(p Point) Point { return p },
		tabLength:     2,
		foldCharacter: "⋯",
		eolInvisibles: map[LineEndingKind]string{},
		reg:           newFakeRegistry(),
	}
}

func (l *fakeLayer) ScreenLineCount() int                       { return l.lineCount }
func (l *fakeLayer) TranslateScreenPosition(p Point) Point      { return l.translate(p) }
func (l *fakeLayer) HunksInNewRange(_, _ Point) []Hunk          { return l.hunks }
func (l *fakeLayer) TabLength() int                             { return l.tabLength }
func (l *fakeLayer) FoldCharacter() string                      { return l.foldCharacter }
func (l *fakeLayer) Invisibles() Invisibles                     { return l.invisibles }
func (l *fakeLayer) EOLInvisibles() map[LineEndingKind]string   { return l.eolInvisibles }
func (l *fakeLayer) ShowIndentGuides() bool                     { return l.showIndentGuides }
func (l *fakeLayer) CodeForOpenTag(name string) int             { return l.reg.CodeForOpenTag(name) }
func (l *fakeLayer) CodeForCloseTag(name string) int            { return l.reg.CodeForCloseTag(name) }

func (l *fakeLayer) LeadingWhitespaceLengthForSurroundingLines(row int) int {
	if l.leadingFor == nil {
		return 0
	}
	return l.leadingFor(row)
}
