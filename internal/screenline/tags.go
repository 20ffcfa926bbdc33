package screenline

import (
	"strings"
	"sync"
)

// tagOrder fixes the canonical assembly order for a flags->name mapping
// (spec §4.1). Declaration order of the DecorationFlags constants differs
// from this on purpose: bit order favors grouping tab/whitespace flags
// together, name order favors how the display layer expects tag names to
// read.
var tagOrder = []struct {
	flag DecorationFlags
	name string
}{
	{InvisibleCharacter, "invisible-character"},
	{HardTab, "hard-tab"},
	{LeadingWhitespace, "leading-whitespace"},
	{TrailingWhitespace, "trailing-whitespace"},
	{LineEnding, "eol"},
	{IndentGuide, "indent-guide"},
	{Fold, "fold-marker"},
}

var (
	tagNameCacheMu sync.RWMutex
	tagNameCache   = map[DecorationFlags]string{}
)

// TagName returns the canonical, space-separated tag name for a flag
// combination, memoizing the result process-wide since the mapping is
// pure (spec §4.1). Flags with no bits set produce the empty string; the
// emitter never looks this up for a zero mask.
func TagName(flags DecorationFlags) string {
	if flags == 0 {
		return ""
	}

	tagNameCacheMu.RLock()
	name, ok := tagNameCache[flags]
	tagNameCacheMu.RUnlock()
	if ok {
		return name
	}

	var b strings.Builder
	for _, entry := range tagOrder {
		if flags&entry.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(entry.name)
	}
	name = b.String()

	tagNameCacheMu.Lock()
	tagNameCache[flags] = name
	tagNameCacheMu.Unlock()

	return name
}
