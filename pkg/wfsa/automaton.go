package wfsa

import (
	"fmt"
	"sort"
	"strings"
)

// State is an automaton state identifier.
type State string

// ArcKey is the unweighted identity of an arc: source state, label,
// target state. The transition table holds at most one weight per key.
type ArcKey struct {
	From  State
	Label Label
	To    State
}

// String returns "(from, label, to)".
func (k ArcKey) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.From, k.Label, k.To)
}

// Arc is a weighted transition, a view over the transition table.
type Arc struct {
	From   State
	Label  Label
	To     State
	Weight Weight
}

// Key returns the unweighted identity of the arc.
func (a Arc) Key() ArcKey {
	return ArcKey{From: a.From, Label: a.Label, To: a.To}
}

// Automaton is a weighted finite-state acceptor or transducer. An
// acceptor carries single-symbol arc labels; a transducer additionally
// has an output alphabet and input/output pair labels. Omega is non-nil
// exactly for transducers.
//
// Every state in Q has explicit initial and final weight entries,
// set to the semiring zero when the state is added. The transition
// table is keyed by the (source, label, target) triple, so at most one
// weight exists per triple.
type Automaton struct {
	Name   string
	R      Semiring
	Sigma  map[Symbol]bool
	Omega  map[Symbol]bool
	Q      map[State]bool
	Lambda map[State]Weight
	Rho    map[State]Weight
	Delta  map[ArcKey]Weight
}

// NewAcceptor creates an empty weighted acceptor over the given semiring.
func NewAcceptor(r Semiring) *Automaton {
	return &Automaton{
		R:      r,
		Sigma:  make(map[Symbol]bool),
		Q:      make(map[State]bool),
		Lambda: make(map[State]Weight),
		Rho:    make(map[State]Weight),
		Delta:  make(map[ArcKey]Weight),
	}
}

// NewTransducer creates an empty weighted transducer over the given semiring.
func NewTransducer(r Semiring) *Automaton {
	a := NewAcceptor(r)
	a.Omega = make(map[Symbol]bool)
	return a
}

// IsTransducer returns true if the automaton exposes an output alphabet.
func (a *Automaton) IsTransducer() bool {
	return a.Omega != nil
}

// AddState adds a state, initializing its initial and final weights to
// the semiring zero. Adding an existing state is a no-op.
func (a *Automaton) AddState(q State) {
	if a.Q[q] {
		return
	}
	a.Q[q] = true
	a.Lambda[q] = a.R.Zero()
	a.Rho[q] = a.R.Zero()
}

// AddStates adds multiple states.
func (a *Automaton) AddStates(qs ...State) {
	for _, q := range qs {
		a.AddState(q)
	}
}

// AddSymbol adds a symbol to the input alphabet. Epsilon is never part
// of an alphabet.
func (a *Automaton) AddSymbol(s Symbol) {
	if !s.IsEpsilon() {
		a.Sigma[s] = true
	}
}

// AddOutputSymbol adds a symbol to the output alphabet. It is a no-op
// on acceptors.
func (a *Automaton) AddOutputSymbol(s Symbol) {
	if a.Omega != nil && !s.IsEpsilon() {
		a.Omega[s] = true
	}
}

// SetInitial sets the initial weight of a state, adding it if needed.
func (a *Automaton) SetInitial(q State, w Weight) {
	a.AddState(q)
	a.Lambda[q] = w
}

// SetFinal sets the final weight of a state, adding it if needed.
func (a *Automaton) SetFinal(q State, w Weight) {
	a.AddState(q)
	a.Rho[q] = w
}

// AddArc adds a weighted transition, adding its endpoint states and
// non-epsilon symbols as needed. A second arc with the same source,
// label and target overwrites the previous weight.
func (a *Automaton) AddArc(from State, label Label, to State, w Weight) {
	a.AddState(from)
	a.AddState(to)
	if !label.In.IsEpsilon() {
		a.Sigma[label.In] = true
	}
	if label.Pair && a.Omega != nil && !label.Out.IsEpsilon() {
		a.Omega[label.Out] = true
	}
	a.Delta[ArcKey{From: from, Label: label, To: to}] = w
}

// InitialWeight returns λ(q). It panics if q has no entry; an automaton
// whose state set and weight maps disagree is malformed, and silently
// substituting the semiring zero would mask construction bugs.
func (a *Automaton) InitialWeight(q State) Weight {
	w, ok := a.Lambda[q]
	if !ok {
		panic(fmt.Sprintf("wfsa: no initial weight for state %q", q))
	}
	return w
}

// FinalWeight returns ρ(q). It panics if q has no entry.
func (a *Automaton) FinalWeight(q State) Weight {
	w, ok := a.Rho[q]
	if !ok {
		panic(fmt.Sprintf("wfsa: no final weight for state %q", q))
	}
	return w
}

// Arcs flattens the transition table into a list of weighted arcs.
// Structural duplicates cannot occur since the table is keyed by the
// unweighted identity. Arc order is not meaningful.
func (a *Automaton) Arcs() []Arc {
	arcs := make([]Arc, 0, len(a.Delta))
	for k, w := range a.Delta {
		arcs = append(arcs, Arc{From: k.From, Label: k.Label, To: k.To, Weight: w})
	}
	return arcs
}

// SortArcs orders arcs by their unweighted identity. Useful for
// deterministic serialization and display; comparison does not depend
// on arc order.
func SortArcs(arcs []Arc) {
	sort.Slice(arcs, func(i, j int) bool {
		return arcs[i].Key().String() < arcs[j].Key().String()
	})
}

// States returns the state set as a sorted slice.
func (a *Automaton) States() []State {
	states := make([]State, 0, len(a.Q))
	for q := range a.Q {
		states = append(states, q)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Validate checks that the automaton is well-formed: weight entries
// exist for exactly the states in Q, arcs reference known states and
// alphabet symbols, label arity matches the automaton kind, and all
// weights belong to the declared semiring.
func (a *Automaton) Validate() error {
	for q := range a.Q {
		if _, ok := a.Lambda[q]; !ok {
			return fmt.Errorf("state %q has no initial weight", q)
		}
		if _, ok := a.Rho[q]; !ok {
			return fmt.Errorf("state %q has no final weight", q)
		}
	}
	for q, w := range a.Lambda {
		if !a.Q[q] {
			return fmt.Errorf("initial weight for unknown state %q", q)
		}
		if w.Semiring() != a.R {
			return fmt.Errorf("initial weight for state %q is from semiring %s, want %s", q, w.Semiring(), a.R)
		}
	}
	for q, w := range a.Rho {
		if !a.Q[q] {
			return fmt.Errorf("final weight for unknown state %q", q)
		}
		if w.Semiring() != a.R {
			return fmt.Errorf("final weight for state %q is from semiring %s, want %s", q, w.Semiring(), a.R)
		}
	}
	for k, w := range a.Delta {
		if !a.Q[k.From] {
			return fmt.Errorf("arc %s: source state not in states", k)
		}
		if !a.Q[k.To] {
			return fmt.Errorf("arc %s: target state not in states", k)
		}
		if k.Label.Pair != a.IsTransducer() {
			return fmt.Errorf("arc %s: label arity does not match automaton kind", k)
		}
		if !k.Label.In.IsEpsilon() && !a.Sigma[k.Label.In] {
			return fmt.Errorf("arc %s: input symbol %q not in alphabet", k, k.Label.In)
		}
		if k.Label.Pair && !k.Label.Out.IsEpsilon() && !a.Omega[k.Label.Out] {
			return fmt.Errorf("arc %s: output symbol %q not in output alphabet", k, k.Label.Out)
		}
		if w.Semiring() != a.R {
			return fmt.Errorf("arc %s: weight is from semiring %s, want %s", k, w.Semiring(), a.R)
		}
	}
	return nil
}

// String returns a short summary of the automaton.
func (a *Automaton) String() string {
	kind := "WFSA"
	if a.IsTransducer() {
		kind = "WFST"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s[%s]: %s\n", kind, a.R, a.Name))
	sb.WriteString(fmt.Sprintf("  States: %d\n", len(a.Q)))
	sb.WriteString(fmt.Sprintf("  Alphabet: %d\n", len(a.Sigma)))
	if a.IsTransducer() {
		sb.WriteString(fmt.Sprintf("  Output alphabet: %d\n", len(a.Omega)))
	}
	sb.WriteString(fmt.Sprintf("  Arcs: %d\n", len(a.Delta)))
	return sb.String()
}
