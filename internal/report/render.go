package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/width"
)

const defaultTabWidth = 4

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI styling. Callers decide; the renderer never probes
	// the terminal itself.
	Color bool

	// TabWidth is the number of columns a tab expands to. Zero means 4.
	TabWidth int
}

// Renderer writes diagnostics to an io.Writer.
type Renderer struct {
	w        io.Writer
	color    bool
	tabWidth int

	header  lipgloss.Style
	message lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
}

// New creates a renderer that writes to w.
func New(w io.Writer, opts Options) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if opts.Color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}

	return &Renderer{
		w:        w,
		color:    opts.Color,
		tabWidth: tabWidth,
		header:   lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		message:  lr.NewStyle().Bold(true),
		gutter:   lr.NewStyle().Foreground(lipgloss.Color("12")),
		caret:    lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Render writes one diagnostic against source. filename is only used in the
// location line; an empty name prints as <input>.
//
// Diagnostics without a valid span print just the header line.
func (r *Renderer) Render(filename, source string, d Diagnostic) error {
	var b strings.Builder

	b.WriteString(r.paint(r.header, "error["+d.Code+"]"))
	b.WriteString(r.paint(r.message, ": "+d.Message))
	b.WriteByte('\n')

	if d.Span.Start.IsValid() {
		r.writeSnippet(&b, filename, source, d)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderAll writes each diagnostic followed by a blank line.
func (r *Renderer) RenderAll(filename, source string, ds []Diagnostic) error {
	for _, d := range ds {
		if err := r.Render(filename, source, d); err != nil {
			return err
		}
		if _, err := io.WriteString(r.w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeSnippet(b *strings.Builder, filename, source string, d Diagnostic) {
	if filename == "" {
		filename = "<input>"
	}

	start := d.Span.Start
	lineNo := strconv.Itoa(start.Line)
	pad := strings.Repeat(" ", len(lineNo))
	bar := r.paint(r.gutter, "|")

	b.WriteString(pad + r.paint(r.gutter, "--> ") + filename + ":" + start.String() + "\n")
	b.WriteString(pad + " " + bar + "\n")

	line := []rune(sourceLine(source, start.Line))
	from := clamp(start.Column-1, 0, len(line))
	to := len(line)
	if d.Span.End.Line == start.Line {
		to = clamp(d.Span.End.Column-1, from, len(line))
	}

	carets := r.width(line[from:to])
	if carets == 0 {
		carets = 1
	}

	b.WriteString(r.paint(r.gutter, lineNo) + " " + bar + " " + r.expandTabs(line) + "\n")
	b.WriteString(pad + " " + bar + " " + strings.Repeat(" ", r.width(line[:from])))
	b.WriteString(r.paint(r.caret, strings.Repeat("^", carets)))
	if d.Label != "" {
		b.WriteString(" " + r.paint(r.caret, d.Label))
	}
	b.WriteByte('\n')
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// width returns the number of terminal cells rs occupies. Tabs take
// tabWidth cells and East Asian wide characters take two.
func (r *Renderer) width(rs []rune) int {
	n := 0
	for _, ch := range rs {
		switch {
		case ch == '\t':
			n += r.tabWidth
		case isWide(ch):
			n += 2
		default:
			n++
		}
	}
	return n
}

func (r *Renderer) expandTabs(rs []rune) string {
	return strings.ReplaceAll(string(rs), "\t", strings.Repeat(" ", r.tabWidth))
}

func isWide(ch rune) bool {
	switch width.LookupRune(ch).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// sourceLine returns line n (1-based) of source without its line ending, or
// "" when source has fewer lines.
func sourceLine(source string, n int) string {
	for i := 1; i < n; i++ {
		nl := strings.IndexByte(source, '\n')
		if nl < 0 {
			return ""
		}
		source = source[nl+1:]
	}
	if nl := strings.IndexByte(source, '\n'); nl >= 0 {
		source = source[:nl]
	}
	return strings.TrimSuffix(source, "\r")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
