// Command wfsaview is a TUI for browsing a structural equality report
// between two weighted automaton files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
	"github.com/ha1tch/wfsa-toolkit/pkg/wfsafile"
)

const usage = `wfsaview - interactive structural equality report viewer

Usage:
  wfsaview <first> <second>

Keys:
  Up/Down, j/k    scroll one line
  PgUp/PgDn       scroll one page
  Home/End, g/G   jump to top/bottom
  s               toggle operand summaries
  q, Esc          quit
`

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleCategory = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleEqual    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSummary  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// reportLine is one display row with its style.
type reportLine struct {
	text  string
	style tcell.Style
}

// Viewer holds all viewer state.
type Viewer struct {
	screen      tcell.Screen
	a, b        *wfsa.Automaton
	nameA       string
	nameB       string
	report      *wfsa.Report
	offset      int
	showSummary bool
}

func main() {
	if len(os.Args) != 3 {
		fmt.Print(usage)
		os.Exit(1)
	}

	v := &Viewer{
		nameA:       os.Args[1],
		nameB:       os.Args[2],
		showSummary: true,
	}

	var err error
	if v.a, err = wfsafile.Load(v.nameA); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", v.nameA, err)
		os.Exit(1)
	}
	if v.b, err = wfsafile.Load(v.nameB); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", v.nameB, err)
		os.Exit(1)
	}

	v.report = wfsa.Compare(v.a, v.b)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()
	v.screen = screen

	v.run()

	screen.Fini()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	_, h := v.screen.Size()
	page := v.pageHeight(h)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-page)
	case tcell.KeyPgDn:
		v.scroll(page)
	case tcell.KeyHome:
		v.offset = 0
	case tcell.KeyEnd:
		v.offset = v.maxOffset()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		case 'g':
			v.offset = 0
		case 'G':
			v.offset = v.maxOffset()
		case 's', 'S':
			v.showSummary = !v.showSummary
			v.offset = 0
		}
	}
	return false
}

func (v *Viewer) scroll(delta int) {
	v.offset += delta
	if v.offset < 0 {
		v.offset = 0
	}
	if max := v.maxOffset(); v.offset > max {
		v.offset = max
	}
}

func (v *Viewer) maxOffset() int {
	w, h := v.screen.Size()
	lines := v.lines(w)
	max := len(lines) - v.pageHeight(h)
	if max < 0 {
		max = 0
	}
	return max
}

// pageHeight is the number of rows available to report lines: the
// screen minus the title and status bars.
func (v *Viewer) pageHeight(h int) int {
	if h <= 2 {
		return 1
	}
	return h - 2
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	title := fmt.Sprintf(" %s vs %s ", v.nameA, v.nameB)
	drawText(v.screen, 0, 0, w, title, styleTitle)

	lines := v.lines(w)
	page := v.pageHeight(h)
	for row := 0; row < page && v.offset+row < len(lines); row++ {
		line := lines[v.offset+row]
		drawText(v.screen, 0, 1+row, w, line.text, line.style)
	}

	verdict := "NOT STRUCTURALLY EQUAL"
	if v.report.StructurallyEqual() {
		verdict = "structurally equal"
	}
	status := fmt.Sprintf(" %s | %d/%d | s: summaries  q: quit ",
		verdict, v.offset, v.maxOffset())
	drawText(v.screen, 0, h-1, w, pad(status, w), styleStatus)
}

// lines builds the full scrollable content for the current width.
func (v *Viewer) lines(w int) []reportLine {
	var lines []reportLine

	if v.showSummary {
		lines = append(lines, summaryLines(v.nameA, v.a)...)
		lines = append(lines, summaryLines(v.nameB, v.b)...)
		lines = append(lines, reportLine{"", styleDefault})
	}

	if v.report.StructurallyEqual() {
		lines = append(lines, reportLine{"Automata are structurally equal", styleEqual})
		return lines
	}

	for _, c := range v.report.Categories() {
		lines = append(lines, reportLine{categoryTitle(c), styleCategory})
		for _, msg := range v.report.Messages(c) {
			for _, part := range wrapText(msg, w-2) {
				lines = append(lines, reportLine{"  " + part, styleMessage})
			}
		}
		lines = append(lines, reportLine{"", styleDefault})
	}

	return lines
}

func summaryLines(name string, a *wfsa.Automaton) []reportLine {
	kind := "acceptor"
	if a.IsTransducer() {
		kind = "transducer"
	}
	text := fmt.Sprintf("%s: %s over %s, %d states, %d arcs",
		name, kind, a.R, len(a.Q), len(a.Delta))
	return []reportLine{{text, styleSummary}}
}

func categoryTitle(c wfsa.Category) string {
	s := strings.ReplaceAll(string(c), "_", " ")
	return strings.ToUpper(s)
}

// wrapText greedily wraps s into segments of at most width runes.
func wrapText(s string, width int) []string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			out = append(out, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(out, line)
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
