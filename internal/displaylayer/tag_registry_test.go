package displaylayer

import "testing"

func TestTagRegistry_StableAndDistinctCodes(t *testing.T) {
	r := NewTagRegistry()
	open1 := r.CodeForOpenTag("hard-tab")
	close1 := r.CodeForCloseTag("hard-tab")
	open2 := r.CodeForOpenTag("hard-tab")

	if open1 != open2 {
		t.Errorf("open code changed across calls: %d != %d", open1, open2)
	}
	if open1 == close1 {
		t.Error("open and close codes must differ")
	}

	other := r.CodeForOpenTag("leading-whitespace")
	if other == open1 {
		t.Error("distinct tag names must get distinct codes")
	}
}

func TestTagRegistry_ClassifyCode(t *testing.T) {
	r := NewTagRegistry()
	open := r.CodeForOpenTag("fold-marker")
	close_ := r.CodeForCloseTag("fold-marker")

	if isTag, isOpen := r.ClassifyCode(open); !isTag || !isOpen {
		t.Errorf("ClassifyCode(%d) = (%v, %v), want (true, true)", open, isTag, isOpen)
	}
	if isTag, isOpen := r.ClassifyCode(close_); !isTag || isOpen {
		t.Errorf("ClassifyCode(%d) = (%v, %v), want (true, false)", close_, isTag, isOpen)
	}
	if isTag, _ := r.ClassifyCode(5); isTag {
		t.Error("a non-negative value must never classify as a tag code")
	}
}
