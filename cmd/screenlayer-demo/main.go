// Command screenlayer-demo is an interactive terminal viewer for the
// screen-line builder: it loads a file into a buffer, builds every
// screen line on each resize and file reload, and renders the returned
// tag stream as styled text in a scrolling viewport.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/stlalpha/screenlayer/internal/ansi"
	"github.com/stlalpha/screenlayer/internal/displaylayer"
	"github.com/stlalpha/screenlayer/internal/logging"
	"github.com/stlalpha/screenlayer/internal/screenline"
	"github.com/stlalpha/screenlayer/internal/textbuffer"
)

type reloadMsg struct{ content string }

type model struct {
	sessionID   string
	path        string
	buf         *textbuffer.Buffer
	builder     *screenline.Builder
	reg         *displaylayer.TagRegistry
	statusAlign ansi.Alignment

	viewport viewport.Model
	ready    bool
	err      error
}

func (m model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		statusHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusHeight
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case reloadMsg:
		*m.buf = *textbuffer.Load(msg.content)
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case error:
		m.err = msg
		return m, tea.Quit
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderContent builds every screen line in the buffer and renders the
// tag stream as styled text; the viewport handles scrolling over it.
func (m model) renderContent() string {
	count := m.builder.Layer.ScreenLineCount()
	lines := m.builder.Build(0, count)

	var body strings.Builder
	for i, line := range lines {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(renderScreenLine(line, m.reg))
	}
	return body.String()
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("screenlayer-demo: %v\n", m.err)
	}
	if !m.ready {
		return "initializing...\n"
	}

	label := fmt.Sprintf(" %s  session %s ", m.path, m.sessionID)
	position := fmt.Sprintf(" line %d/%d ", m.viewport.YOffset+1, m.viewport.TotalLineCount())

	posWidth := ansi.VisibleLength(position)
	labelWidth := m.viewport.Width - posWidth
	if labelWidth < 0 {
		labelWidth = 0
	}
	label = ansi.ApplyWidthConstraintAligned(label, labelWidth, ansi.AlignLeft)
	position = ansi.ApplyWidthConstraintAligned(position, m.viewport.Width-labelWidth, m.statusAlign)
	statusText := ansi.PadVisible(label+position, m.viewport.Width, ' ')
	status := lipgloss.NewStyle().Reverse(true).Render(statusText)
	return m.viewport.View() + "\n" + status
}

// renderScreenLine walks a ScreenLine's tagCodes, applying a lipgloss
// style for whichever tag is innermost at each run of text.
func renderScreenLine(line screenline.ScreenLine, reg *displaylayer.TagRegistry) string {
	runes := []rune(line.Text)
	pos := 0
	var out strings.Builder
	var stack []string

	for _, code := range line.TagCodes {
		if code >= 0 {
			n := code
			if pos+n > len(runes) {
				n = len(runes) - pos
			}
			text := string(runes[pos : pos+n])
			pos += n
			out.WriteString(currentStyle(stack).Render(text))
			continue
		}
		name, isOpen, ok := reg.NameForCode(code)
		if !ok {
			continue
		}
		if isOpen {
			stack = append(stack, name)
		} else if len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
	}
	return out.String()
}

func currentStyle(stack []string) lipgloss.Style {
	if len(stack) == 0 {
		return lipgloss.NewStyle()
	}
	return styleForTagName(stack[len(stack)-1])
}

func styleForTagName(name string) lipgloss.Style {
	switch {
	case strings.Contains(name, "fold-marker"):
		return lipgloss.NewStyle().Reverse(true)
	case strings.Contains(name, "hard-tab"):
		return lipgloss.NewStyle().Faint(true)
	case strings.Contains(name, "indent-guide"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	case strings.Contains(name, "trailing-whitespace"):
		return lipgloss.NewStyle().Background(lipgloss.Color("52"))
	case strings.Contains(name, "leading-whitespace"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	default:
		return lipgloss.NewStyle()
	}
}

func main() {
	path := flag.String("file", "", "path to the file to display")
	wrap := flag.Int("wrap", 0, "soft-wrap width (0 disables wrapping)")
	statusAlign := flag.String("status-align", "R", "alignment of the status bar's position indicator: L, R, or C")
	debug := flag.Bool("debug", false, "log reload and watcher events to stderr")
	flag.Parse()
	logging.DebugEnabled = *debug

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: screenlayer-demo -file <path> [-wrap N]")
		os.Exit(1)
	}

	content, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("screenlayer-demo: reading %s: %v", *path, err)
	}

	buf := textbuffer.Load(string(content))
	cfg := displaylayer.DefaultConfig()
	cfg.WrapWidth = *wrap
	reg := displaylayer.NewTagRegistry()
	layer := displaylayer.NewLayer(buf, displaylayer.NewFoldIndex(), cfg, reg)
	builder := screenline.NewBuilder(layer, buf)

	// Probe the terminal once up front and log a failure. The probed size
	// is not used: the viewport is sized by the first tea.WindowSizeMsg,
	// and View shows a placeholder until it arrives.
	if _, _, err := term.GetSize(int(os.Stdout.Fd())); err != nil {
		logging.Debug("term.GetSize: %v (falling back to bubbletea's resize message)", err)
	}

	m := model{
		sessionID:   uuid.NewString(),
		path:        *path,
		buf:         buf,
		builder:     builder,
		reg:         reg,
		statusAlign: ansi.ParseAlignment(*statusAlign),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if watcher, err := fsnotify.NewWatcher(); err == nil {
		defer watcher.Close()
		if err := watcher.Add(*path); err != nil {
			log.Printf("screenlayer-demo: watching %s: %v", *path, err)
		}
		go watchForChanges(watcher, *path, p)
	}

	if _, err := p.Run(); err != nil {
		log.Fatalf("screenlayer-demo: %v", err)
	}
}

// watchForChanges relays file writes into the running program so an
// external edit is reflected without restarting the viewer.
func watchForChanges(watcher *fsnotify.Watcher, path string, p *tea.Program) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				logging.Debug("re-reading %s after write event: %v", path, err)
				continue
			}
			logging.Debug("reloading %s (%d bytes)", path, len(data))
			p.Send(reloadMsg{content: string(data)})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Debug("watcher error for %s: %v", path, err)
		}
	}
}
