package wfsafile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

// Diff colors: red marks structure present only in the first automaton,
// green only in the second, orange an arc whose weight differs.
const (
	diffColorOnlyA    = "#c62828"
	diffColorOnlyB    = "#2e7d32"
	diffColorMismatch = "#e65100"
)

// GenerateDOT converts a weighted automaton to Graphviz DOT format.
// States with a non-zero final weight get a double circle; initial
// states are marked with an entry arrow labeled with the initial
// weight when it is not the semiring one.
func GenerateDOT(a *wfsa.Automaton, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph WFSA {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	zero := a.R.Zero()
	one := a.R.One()

	for i, q := range a.States() {
		if lw := a.InitialWeight(q); !lw.Equal(zero) {
			start := fmt.Sprintf("__start%d", i)
			sb.WriteString(fmt.Sprintf("    %s [shape=none, label=\"\", width=0, height=0];\n", start))
			arrow := fmt.Sprintf("    %s -> \"%s\"", start, escapeDOT(string(q)))
			if !lw.Equal(one) {
				arrow += fmt.Sprintf(" [label=\"%s\"]", escapeDOT(lw.String()))
			}
			sb.WriteString(arrow + ";\n")
		}
	}
	sb.WriteString("\n")

	for _, q := range a.States() {
		shape := "circle"
		if !a.FinalWeight(q).Equal(zero) {
			shape = "doublecircle"
		}
		label := escapeDOT(string(q))
		if fw := a.FinalWeight(q); !fw.Equal(zero) && !fw.Equal(one) {
			label += "\\n/" + escapeDOT(fw.String())
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [shape=%s, label=\"%s\"];\n",
			escapeDOT(string(q)), shape, label))
	}
	sb.WriteString("\n")

	arcs := a.Arcs()
	wfsa.SortArcs(arcs)
	for _, arc := range arcs {
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%s / %s\"];\n",
			escapeDOT(string(arc.From)), escapeDOT(string(arc.To)),
			escapeDOT(arc.Label.String()), escapeDOT(arc.Weight.String())))
	}

	sb.WriteString("}\n")

	return sb.String()
}

// GenerateDiffDOT renders the union of two automata with structural
// differences highlighted: states and arcs unique to either side are
// colored, as are arcs whose weights disagree. Shared structure stays
// black. The coloring mirrors the categories of a structural equality
// report.
func GenerateDiffDOT(a, b *wfsa.Automaton, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph WFSADiff {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	for _, q := range unionStates(a, b) {
		attrs := []string{"shape=circle"}
		switch {
		case !b.Q[q]:
			attrs = append(attrs, fmt.Sprintf("color=\"%s\", fontcolor=\"%s\"", diffColorOnlyA, diffColorOnlyA))
		case !a.Q[q]:
			attrs = append(attrs, fmt.Sprintf("color=\"%s\", fontcolor=\"%s\"", diffColorOnlyB, diffColorOnlyB))
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [%s];\n", escapeDOT(string(q)), strings.Join(attrs, ", ")))
	}
	sb.WriteString("\n")

	arcsA := arcWeights(a)
	arcsB := arcWeights(b)

	for _, k := range unionArcKeys(arcsA, arcsB) {
		wa, inA := arcsA[k]
		wb, inB := arcsB[k]

		var label, attrs string
		switch {
		case inA && !inB:
			label = fmt.Sprintf("%s / %s", k.Label, wa)
			attrs = fmt.Sprintf(", color=\"%s\", fontcolor=\"%s\"", diffColorOnlyA, diffColorOnlyA)
		case inB && !inA:
			label = fmt.Sprintf("%s / %s", k.Label, wb)
			attrs = fmt.Sprintf(", color=\"%s\", fontcolor=\"%s\"", diffColorOnlyB, diffColorOnlyB)
		case !wa.Equal(wb):
			label = fmt.Sprintf("%s / %s | %s", k.Label, wa, wb)
			attrs = fmt.Sprintf(", color=\"%s\", fontcolor=\"%s\"", diffColorMismatch, diffColorMismatch)
		default:
			label = fmt.Sprintf("%s / %s", k.Label, wa)
		}

		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%s\"%s];\n",
			escapeDOT(string(k.From)), escapeDOT(string(k.To)), escapeDOT(label), attrs))
	}

	sb.WriteString("}\n")

	return sb.String()
}

func unionStates(a, b *wfsa.Automaton) []wfsa.State {
	set := make(map[wfsa.State]bool)
	for q := range a.Q {
		set[q] = true
	}
	for q := range b.Q {
		set[q] = true
	}
	states := make([]wfsa.State, 0, len(set))
	for q := range set {
		states = append(states, q)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

func arcWeights(a *wfsa.Automaton) map[wfsa.ArcKey]wfsa.Weight {
	idx := make(map[wfsa.ArcKey]wfsa.Weight, len(a.Delta))
	for k, w := range a.Delta {
		idx[k] = w
	}
	return idx
}

func unionArcKeys(a, b map[wfsa.ArcKey]wfsa.Weight) []wfsa.ArcKey {
	set := make(map[wfsa.ArcKey]bool)
	for k := range a {
		set[k] = true
	}
	for k := range b {
		set[k] = true
	}
	keys := make([]wfsa.ArcKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
