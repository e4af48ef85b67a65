// Package wfsa provides weighted finite-state acceptor and transducer
// types and structural comparison between them.
package wfsa

// Symbol is an atomic alphabet element.
type Symbol string

// Epsilon is the distinguished empty-string symbol. An epsilon arc
// consumes (or produces) no symbol.
const Epsilon Symbol = "ε"

// IsEpsilon returns true if the symbol is the epsilon symbol.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

// String returns the symbol text.
func (s Symbol) String() string {
	return string(s)
}

// Label is the symbol content of an arc: a single input symbol for
// acceptor arcs, or an input/output pair for transducer arcs. Labels
// are comparable and usable as map keys. A pair label never equals a
// single label, even when the input symbols coincide.
type Label struct {
	In   Symbol
	Out  Symbol
	Pair bool
}

// NewLabel returns an acceptor arc label carrying a single input symbol.
func NewLabel(in Symbol) Label {
	return Label{In: in}
}

// NewPairLabel returns a transducer arc label carrying an input and an
// output symbol, either possibly epsilon.
func NewPairLabel(in, out Symbol) Label {
	return Label{In: in, Out: out, Pair: true}
}

// String returns "a" for a single label and "a:b" for a pair label.
func (l Label) String() string {
	if l.Pair {
		return string(l.In) + ":" + string(l.Out)
	}
	return string(l.In)
}
