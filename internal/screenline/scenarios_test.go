package screenline

import (
	"reflect"
	"testing"
)

// decode renders a ScreenLine's tagCodes against a fakeRegistry back
// into the scenario notation spec.md §8 uses: positive ints stay
// lengths, a tag code becomes "+name" or "-name".
func decode(t *testing.T, reg *fakeRegistry, codes []int) []any {
	t.Helper()
	names := make(map[int]string, len(reg.ids))
	for name, id := range reg.ids {
		names[id] = name
	}
	out := make([]any, 0, len(codes))
	for _, c := range codes {
		switch {
		case c >= fakeRegistryBase:
			out = append(out, "+"+names[c-fakeRegistryBase])
		case c <= -fakeRegistryBase:
			out = append(out, "-"+names[-c-fakeRegistryBase])
		default:
			out = append(out, c)
		}
	}
	return out
}

func TestScenarioPlainASCII(t *testing.T) {
	buf := newFakeBuffer("hi")
	layer := newFakeLayer()
	lines := NewBuilder(layer, buf).Build(0, 1)
	if len(lines) != 1 {
		t.Fatalf("got %d screen lines, want 1", len(lines))
	}
	if lines[0].Text != "hi" {
		t.Fatalf("text = %q, want %q", lines[0].Text, "hi")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
}

func TestScenarioTabExpansion(t *testing.T) {
	buf := newFakeBuffer("\tx")
	layer := newFakeLayer()
	lines := NewBuilder(layer, buf).Build(0, 1)
	if lines[0].Text != "  x" {
		t.Fatalf("text = %q, want %q", lines[0].Text, "  x")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{"+hard-tab leading-whitespace", 2, "-hard-tab leading-whitespace", 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
}

func TestScenarioLeadingAndTrailingSpaces(t *testing.T) {
	buf := newFakeBuffer("  a  ")
	layer := newFakeLayer()
	lines := NewBuilder(layer, buf).Build(0, 1)
	if lines[0].Text != "  a  " {
		t.Fatalf("text = %q, want %q", lines[0].Text, "  a  ")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{"+leading-whitespace", 2, "-leading-whitespace", 1, "+trailing-whitespace", 2, "-trailing-whitespace"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
	var sum int
	for _, c := range lines[0].TagCodes {
		if c > 0 && c < fakeRegistryBase {
			sum += c
		}
	}
	if sum != 5 {
		t.Fatalf("length sum = %d, want 5", sum)
	}
}

func TestScenarioFold(t *testing.T) {
	buf := newFakeBuffer("abcdef")
	layer := newFakeLayer()
	layer.hunks = []Hunk{
		{OldStart: Point{0, 1}, OldEnd: Point{0, 5}, NewText: "⋯", NewEnd: Point{0, 2}},
	}
	lines := NewBuilder(layer, buf).Build(0, 1)
	if lines[0].Text != "a⋯f" {
		t.Fatalf("text = %q, want %q", lines[0].Text, "a⋯f")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{1, "+fold-marker", 1, "-fold-marker", 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
}

func TestScenarioSoftWrapWithIndentGuides(t *testing.T) {
	buf := newFakeBuffer("  aaaa")
	layer := newFakeLayer()
	layer.showIndentGuides = true
	layer.hunks = []Hunk{
		{OldStart: Point{0, 4}, OldEnd: Point{0, 4}, NewText: "", NewEnd: Point{0, 2}},
	}
	cursor := NewHunkCursor(layer.hunks)
	var id uint64
	nextID := func() uint64 { id++; return id }
	lines, _ := NewLineAssembler(buf, layer, cursor, nextID).ProcessBufferRow(0, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d screen lines, want 2", len(lines))
	}
	if lines[0].Text != "  aa" {
		t.Fatalf("first line text = %q, want %q", lines[0].Text, "  aa")
	}
	got0 := decode(t, layer.reg, lines[0].TagCodes)
	want0 := []any{"+leading-whitespace indent-guide", 2, "-leading-whitespace indent-guide", 2}
	if !reflect.DeepEqual(got0, want0) {
		t.Fatalf("first line tagCodes = %v, want %v", got0, want0)
	}
	if lines[1].Text != "  aa" {
		t.Fatalf("second line text = %q, want %q", lines[1].Text, "  aa")
	}
	got1 := decode(t, layer.reg, lines[1].TagCodes)
	want1 := []any{"+indent-guide", 2, "-indent-guide", 2}
	if !reflect.DeepEqual(got1, want1) {
		t.Fatalf("second line tagCodes = %v, want %v", got1, want1)
	}
}

// TestScenarioBuildPartialRangeStartsMidWrap exercises Build with a
// screenStartRow that falls on a wrapped continuation segment rather
// than a buffer row's first segment. TranslateScreenPosition must
// resolve the resume column for that segment, and ProcessBufferRow must
// honor it, rather than re-emitting the row's earlier segment(s).
func TestScenarioBuildPartialRangeStartsMidWrap(t *testing.T) {
	buf := newFakeBuffer("  aaaa")
	layer := newFakeLayer()
	layer.showIndentGuides = true
	layer.lineCount = 2
	layer.hunks = []Hunk{
		{OldStart: Point{0, 4}, OldEnd: Point{0, 4}, NewText: "", NewEnd: Point{0, 2}},
	}
	layer.translate = func(p Point) Point {
		if p.Row == 0 {
			return Point{0, 0}
		}
		return Point{0, 4}
	}

	lines := NewBuilder(layer, buf).Build(1, 2)
	if len(lines) != 1 {
		t.Fatalf("got %d screen lines, want 1", len(lines))
	}
	if lines[0].Text != "  aa" {
		t.Fatalf("text = %q, want %q", lines[0].Text, "  aa")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{"+indent-guide", 2, "-indent-guide", 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
}

func TestScenarioEmptyLineWithSurroundingIndent(t *testing.T) {
	buf := newFakeBuffer("")
	layer := newFakeLayer()
	layer.showIndentGuides = true
	layer.leadingFor = func(row int) int { return 4 }
	lines := NewBuilder(layer, buf).Build(0, 1)
	if lines[0].Text != "    " {
		t.Fatalf("text = %q, want %q", lines[0].Text, "    ")
	}
	got := decode(t, layer.reg, lines[0].TagCodes)
	want := []any{"+indent-guide", 2, "-indent-guide", "+indent-guide", 2, "-indent-guide"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tagCodes = %v, want %v", got, want)
	}
}

func TestEmptyRowRangeReturnsEmptySequence(t *testing.T) {
	buf := newFakeBuffer("one", "two")
	layer := newFakeLayer()
	layer.lineCount = 2
	lines := NewBuilder(layer, buf).Build(1, 1)
	if len(lines) != 0 {
		t.Fatalf("got %d screen lines, want 0", len(lines))
	}
}

func TestIdentifiersAreStrictlyIncreasing(t *testing.T) {
	buf := newFakeBuffer("one", "two", "three")
	layer := newFakeLayer()
	layer.lineCount = 3
	lines := NewBuilder(layer, buf).Build(0, 3)
	for i := 1; i < len(lines); i++ {
		if lines[i].ID <= lines[i-1].ID {
			t.Fatalf("id %d did not increase after id %d", lines[i].ID, lines[i-1].ID)
		}
	}
}

func TestInvariantsHoldAcrossScenarios(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"plain", "hi"},
		{"tabs", "\t\tx"},
		{"whitespace", "  a  "},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layer := newFakeLayer()
			lines := NewBuilder(layer, newFakeBuffer(tc.line)).Build(0, 1)
			for _, line := range lines {
				if err := CheckInvariants(line, layer.reg); err != nil {
					t.Fatalf("CheckInvariants: %v", err)
				}
			}
		})
	}
}
