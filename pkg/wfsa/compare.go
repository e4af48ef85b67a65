package wfsa

import (
	"fmt"
	"sort"
	"strings"
)

// ReportOptions configures the report produced by a comparison.
type ReportOptions struct {
	Title    string
	MaxWidth int
}

// DefaultReportOptions returns the default report configuration.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{MaxWidth: DefaultMaxWidth}
}

// Compare produces a detailed report on the structural differences
// between two weighted automata. Two automata are structurally equal
// when
//
//   - they have the same semiring,
//   - they have the same input (and, for transducers, output) alphabet,
//   - they have the same set of states,
//   - the initial and final weight functions agree on every state,
//   - they have the same set of arcs, and the arc weight function
//     agrees on every arc.
//
// This is equality of representation, not of denoted weighted language:
// two language-equivalent automata with different state sets compare
// unequal. Derived quantities (initial/final state sets) are not
// checked, as they follow from the weight functions.
//
// All checks run unconditionally; the report accumulates every
// violation found, per category. Message text is directional ("in A but
// not in B"), but the boolean verdict is symmetric in the operands.
func Compare(a, b *Automaton) *Report {
	return CompareWith(a, b, DefaultReportOptions())
}

// CompareWith is Compare with an explicit report configuration.
func CompareWith(a, b *Automaton, opts ReportOptions) *Report {
	r := NewReport(nil, opts.Title, opts.MaxWidth)

	compareSemirings(r, a, b)
	compareAlphabets(r, a, b)
	compareStates(r, a, b)
	compareStateWeights(r, a, b)
	compareArcs(r, a, b)

	return r
}

// StructurallyEqual returns true if the two automata are structurally
// equal. See Compare for the definition.
func StructurallyEqual(a, b *Automaton) bool {
	return Compare(a, b).StructurallyEqual()
}

func compareSemirings(r *Report, a, b *Automaton) {
	if a.R != b.R {
		r.add(CategorySemiring, fmt.Sprintf("Semirings do not match: %s != %s", a.R, b.R))
	}
}

func compareAlphabets(r *Report, a, b *Automaton) {
	if !symbolSetEqual(a.Sigma, b.Sigma) {
		r.add(CategoryAlphabet, fmt.Sprintf("Input alphabets do not match: %s != %s",
			formatSymbolSet(a.Sigma), formatSymbolSet(b.Sigma)))
	}
	// The output-alphabet check only applies when both operands are
	// transducers. An arity mismatch is itself a structural difference:
	// an acceptor is never structurally equal to a transducer.
	switch {
	case a.IsTransducer() && b.IsTransducer():
		if !symbolSetEqual(a.Omega, b.Omega) {
			r.add(CategoryAlphabet, fmt.Sprintf("Output alphabets do not match: %s != %s",
				formatSymbolSet(a.Omega), formatSymbolSet(b.Omega)))
		}
	case a.IsTransducer() != b.IsTransducer():
		r.add(CategoryAlphabet, "Output alphabet exposed by only one automaton: cannot compare an acceptor with a transducer")
	}
}

func compareStates(r *Report, a, b *Automaton) {
	onlyA := stateDifference(a.Q, b.Q)
	onlyB := stateDifference(b.Q, a.Q)
	if len(onlyA) > 0 {
		r.add(CategoryStates, fmt.Sprintf("States in A but not in B: %s", formatStateSet(onlyA)))
	}
	if len(onlyB) > 0 {
		r.add(CategoryStates, fmt.Sprintf("States in B but not in A: %s", formatStateSet(onlyB)))
	}
}

// compareStateWeights checks λ and ρ over the intersection of the two
// state sets; states outside the intersection are already reported by
// the states check.
func compareStateWeights(r *Report, a, b *Automaton) {
	var common []State
	for q := range a.Q {
		if b.Q[q] {
			common = append(common, q)
		}
	}
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })

	for _, q := range common {
		if wa, wb := a.InitialWeight(q), b.InitialWeight(q); !wa.Equal(wb) {
			r.add(CategoryStateWeights,
				fmt.Sprintf("Initial weight for state %s does not match: %s != %s", q, wa, wb))
		}
		if wa, wb := a.FinalWeight(q), b.FinalWeight(q); !wa.Equal(wb) {
			r.add(CategoryStateWeights,
				fmt.Sprintf("Final weight for state %s does not match: %s != %s", q, wa, wb))
		}
	}
}

// compareArcs checks the arc sets and the arc weight function. Arcs are
// first compared by unweighted identity; weights are then joined on
// that identity, so the weight pass is linear in the number of arcs
// rather than quadratic.
func compareArcs(r *Report, a, b *Automaton) {
	arcsA := arcIndex(a.Arcs())
	arcsB := arcIndex(b.Arcs())

	var onlyA, onlyB, mismatched []ArcKey
	for k := range arcsA {
		if _, ok := arcsB[k]; !ok {
			onlyA = append(onlyA, k)
		}
	}
	for k := range arcsB {
		if _, ok := arcsA[k]; !ok {
			onlyB = append(onlyB, k)
		}
	}

	// Directional report: "missing in B" lists arcs present only in A.
	if len(onlyB) > 0 {
		r.add(CategoryArcs, fmt.Sprintf("Missing arcs in A: %s", formatArcKeySet(onlyB)))
	}
	if len(onlyA) > 0 {
		r.add(CategoryArcs, fmt.Sprintf("Missing arcs in B: %s", formatArcKeySet(onlyA)))
	}

	for k, wa := range arcsA {
		if wb, ok := arcsB[k]; ok && !wa.Equal(wb) {
			mismatched = append(mismatched, k)
		}
	}
	sortArcKeys(mismatched)
	for _, k := range mismatched {
		r.add(CategoryArcWeights,
			fmt.Sprintf("Weight for arc %s does not match: %s != %s", k, arcsA[k], arcsB[k]))
	}
}

// arcIndex builds the identity→weight mapping used for the hash-join.
func arcIndex(arcs []Arc) map[ArcKey]Weight {
	idx := make(map[ArcKey]Weight, len(arcs))
	for _, arc := range arcs {
		idx[arc.Key()] = arc.Weight
	}
	return idx
}

func symbolSetEqual(a, b map[Symbol]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if !b[s] {
			return false
		}
	}
	return true
}

func stateDifference(a, b map[State]bool) []State {
	var diff []State
	for q := range a {
		if !b[q] {
			diff = append(diff, q)
		}
	}
	return diff
}

// Set formatting is sorted so that message text is deterministic and
// reports from repeated comparisons are equal as values.

func formatSymbolSet(set map[Symbol]bool) string {
	elems := make([]string, 0, len(set))
	for s := range set {
		elems = append(elems, string(s))
	}
	sort.Strings(elems)
	return "{" + strings.Join(elems, ", ") + "}"
}

func formatStateSet(states []State) string {
	elems := make([]string, 0, len(states))
	for _, q := range states {
		elems = append(elems, string(q))
	}
	sort.Strings(elems)
	return "{" + strings.Join(elems, ", ") + "}"
}

func formatArcKeySet(keys []ArcKey) string {
	sortArcKeys(keys)
	elems := make([]string, 0, len(keys))
	for _, k := range keys {
		elems = append(elems, k.String())
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

func sortArcKeys(keys []ArcKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
}
