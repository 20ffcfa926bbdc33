package displaylayer

import "sync"

// TagRegistry allocates stable open/close integer codes per tag name on
// first use. Codes are negative so a consumer can tell a tag code from
// a length prefix (always non-negative) by sign alone; open codes are
// odd, close codes are even, so ClassifyCode can also recover open-vs-
// close without a side table.
type TagRegistry struct {
	mu    sync.Mutex
	ids   map[string]int
	names map[int]string
	next  int
}

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{ids: map[string]int{}, names: map[int]string{}, next: 1}
}

func (r *TagRegistry) idFor(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.next
	r.next++
	r.ids[name] = id
	r.names[id] = name
	return id
}

// NameForCode reverses CodeForOpenTag/CodeForCloseTag, used by
// consumers that need to style a tag rather than just balance it.
func (r *TagRegistry) NameForCode(code int) (name string, isOpen bool, ok bool) {
	isTag, open := r.ClassifyCode(code)
	if !isTag {
		return "", false, false
	}
	id := (-code + 1) / 2
	r.mu.Lock()
	name, ok = r.names[id]
	r.mu.Unlock()
	return name, open, ok
}

// CodeForOpenTag returns the open code for name, allocating one if this
// is the first time name has been seen.
func (r *TagRegistry) CodeForOpenTag(name string) int {
	return -(2*r.idFor(name) - 1)
}

// CodeForCloseTag returns the close code for name.
func (r *TagRegistry) CodeForCloseTag(name string) int {
	return -(2 * r.idFor(name))
}

// ClassifyCode implements screenline.CodeClassifier.
func (r *TagRegistry) ClassifyCode(code int) (isTag bool, isOpen bool) {
	if code >= 0 {
		return false, false
	}
	magnitude := -code
	return true, magnitude%2 == 1
}
