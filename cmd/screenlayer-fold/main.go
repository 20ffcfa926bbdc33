// Command screenlayer-fold is a batch driver for the screen-line
// builder: it renders an entire file's screen lines to stdout as a
// plain-text report, one line per screen line, with tag names in
// place of codes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/stlalpha/screenlayer/internal/ansi"
	"github.com/stlalpha/screenlayer/internal/displaylayer"
	"github.com/stlalpha/screenlayer/internal/logging"
	"github.com/stlalpha/screenlayer/internal/screenline"
	"github.com/stlalpha/screenlayer/internal/textbuffer"
)

func main() {
	path := flag.String("file", "", "path to the file to render")
	wrap := flag.Int("wrap", 0, "soft-wrap width (0 disables wrapping)")
	tabLength := flag.Int("tablen", 0, "tab-stop width (0 uses the default)")
	strict := flag.Bool("strict", false, "verify invariants on every screen line and fail loudly on violation")
	maxWidth := flag.Int("maxwidth", 0, "pad or truncate each rendered line to exactly N columns (0 = unlimited)")
	debug := flag.Bool("debug", false, "log build parameters to stderr")
	flag.Parse()
	logging.DebugEnabled = *debug

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: screenlayer-fold -file <path> [-wrap N] [-tablen N] [-strict]")
		os.Exit(1)
	}

	content, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "screenlayer-fold: reading %s: %v\n", *path, err)
		os.Exit(1)
	}
	logging.Debug("loaded %s (%d bytes), wrap=%d tablen=%d strict=%v", *path, len(content), *wrap, *tabLength, *strict)

	buf := textbuffer.Load(string(content))
	cfg := displaylayer.DefaultConfig()
	cfg.WrapWidth = *wrap
	if *tabLength > 0 {
		cfg.TabLength = *tabLength
	}
	reg := displaylayer.NewTagRegistry()
	layer := displaylayer.NewLayer(buf, displaylayer.NewFoldIndex(), cfg, reg)
	builder := screenline.NewBuilder(layer, buf)

	count := layer.ScreenLineCount()
	lines := builder.Build(0, count)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	exitCode := 0
	for _, line := range lines {
		if *strict {
			if err := screenline.CheckInvariants(line, reg); err != nil {
				fmt.Fprintf(os.Stderr, "screenlayer-fold: %v\n", err)
				exitCode = 1
			}
		}
		described := describeLine(line, reg)
		if *maxWidth > 0 {
			described = ansi.ApplyWidthConstraint(described, *maxWidth)
		}
		fmt.Fprintf(out, "%d: %s\n", line.ID, described)
	}
	os.Exit(exitCode)
}

// describeLine renders a ScreenLine's text interleaved with bracketed
// tag names in place of its raw integer codes, e.g. "a[indent-guide]  [/indent-guide]b".
func describeLine(line screenline.ScreenLine, reg *displaylayer.TagRegistry) string {
	runes := []rune(line.Text)
	pos := 0
	result := ""
	for _, code := range line.TagCodes {
		if code >= 0 {
			n := code
			if pos+n > len(runes) {
				n = len(runes) - pos
			}
			result += string(runes[pos : pos+n])
			pos += n
			continue
		}
		name, isOpen, ok := reg.NameForCode(code)
		if !ok {
			continue
		}
		if isOpen {
			result += "[" + name + "]"
		} else {
			result += "[/" + name + "]"
		}
	}
	return result
}
