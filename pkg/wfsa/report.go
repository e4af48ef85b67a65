package wfsa

import (
	"strings"
	"unicode/utf8"
)

// Category names one kind of structural mismatch.
type Category string

const (
	CategorySemiring     Category = "semiring"
	CategoryAlphabet     Category = "alphabet"
	CategoryStates       Category = "states"
	CategoryStateWeights Category = "state_weights"
	CategoryArcs         Category = "arcs"
	CategoryArcWeights   Category = "arc_weights"
)

// categoryOrder is the closed set of categories in report order, the
// order the comparison checks run in.
var categoryOrder = []Category{
	CategorySemiring,
	CategoryAlphabet,
	CategoryStates,
	CategoryStateWeights,
	CategoryArcs,
	CategoryArcWeights,
}

const defaultReportTitle = "Structural Equality Report"

// DefaultMaxWidth is the default line-wrap width for report rendering.
const DefaultMaxWidth = 80

// Report is the outcome of a structural comparison: an ordered mapping
// from mismatch category to the messages describing each violation.
// An empty report means the two automata are structurally equal. A
// category never appears with zero messages. Reports are immutable
// once built.
type Report struct {
	title    string
	maxWidth int
	sections map[Category][]string
}

// NewReport builds a report from a category→messages mapping. Categories
// with no messages are dropped; category order is the fixed check order,
// not the map order. A maxWidth of zero means DefaultMaxWidth.
func NewReport(sections map[Category][]string, title string, maxWidth int) *Report {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	r := &Report{
		title:    title,
		maxWidth: maxWidth,
		sections: make(map[Category][]string),
	}
	for c, msgs := range sections {
		if len(msgs) == 0 {
			continue
		}
		r.sections[c] = append([]string(nil), msgs...)
	}
	return r
}

// add appends a message to a category. Used during comparison only;
// reports are immutable once returned.
func (r *Report) add(c Category, msg string) {
	r.sections[c] = append(r.sections[c], msg)
}

// StructurallyEqual returns true if the report records no mismatches.
func (r *Report) StructurallyEqual() bool {
	return len(r.sections) == 0
}

// Title returns the report title, or the default when none was set.
func (r *Report) Title() string {
	if r.title == "" {
		return defaultReportTitle
	}
	return r.title
}

// MaxWidth returns the line-wrap width used when rendering.
func (r *Report) MaxWidth() int {
	return r.maxWidth
}

// Categories returns the present categories in check order.
func (r *Report) Categories() []Category {
	var cats []Category
	for _, c := range categoryOrder {
		if len(r.sections[c]) > 0 {
			cats = append(cats, c)
		}
	}
	return cats
}

// Messages returns a copy of the messages recorded for a category.
func (r *Report) Messages(c Category) []string {
	return append([]string(nil), r.sections[c]...)
}

// Equal reports structural value equality between two reports: the same
// categories are present and, per category, the same message sets,
// irrespective of order. Title and width are ignored.
func (r *Report) Equal(other *Report) bool {
	if other == nil || len(r.sections) != len(other.sections) {
		return false
	}
	for c, msgs := range r.sections {
		if !stringSetEqual(msgs, other.sections[c]) {
			return false
		}
	}
	return true
}

func stringSetEqual(a, b []string) bool {
	as := uniq(a)
	bs := uniq(b)
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if !bs[s] {
			return false
		}
	}
	return true
}

func uniq(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}

// String renders the report as a grid table: a title header, then one
// header/body row pair per category, with messages word-wrapped at the
// report width. An empty report renders a single sentinel row.
func (r *Report) String() string {
	var rows []string
	if len(r.sections) == 0 {
		rows = append(rows, "Automata are structurally equal")
	}
	for _, c := range r.Categories() {
		var wrapped []string
		for _, msg := range r.sections[c] {
			wrapped = append(wrapped, wrap(msg, r.maxWidth, "    "))
		}
		rows = append(rows, humanize(c), strings.Join(wrapped, "\n"))
	}
	return renderGrid(r.Title(), rows)
}

// humanize turns a category tag into a display name: separators become
// spaces and the first letter is capitalized ("state_weights" → "State
// weights").
func humanize(c Category) string {
	s := strings.ReplaceAll(string(c), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// wrap greedily word-wraps s to the given width, prefixing continuation
// lines with indent. Words longer than the width are kept intact.
func wrap(s string, width int, indent string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var sb strings.Builder
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			sb.WriteString(line)
			sb.WriteString("\n")
			line = indent + w
			continue
		}
		line += " " + w
	}
	sb.WriteString(line)
	return sb.String()
}

// renderGrid draws a single-column grid table with a header cell and one
// cell per row. Cells may span multiple lines.
func renderGrid(header string, rows []string) string {
	width := utf8.RuneCountInString(header)
	for _, row := range rows {
		for _, line := range strings.Split(row, "\n") {
			if n := utf8.RuneCountInString(line); n > width {
				width = n
			}
		}
	}

	rule := func(fill string) string {
		return "+" + strings.Repeat(fill, width+2) + "+\n"
	}
	cell := func(sb *strings.Builder, content string) {
		for _, line := range strings.Split(content, "\n") {
			pad := width - utf8.RuneCountInString(line)
			sb.WriteString("| " + line + strings.Repeat(" ", pad) + " |\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(rule("-"))
	cell(&sb, header)
	sb.WriteString(rule("="))
	for _, row := range rows {
		cell(&sb, row)
		sb.WriteString(rule("-"))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
