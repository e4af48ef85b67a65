// Package wfsafile provides file formats and rendering for weighted
// automata: JSON and YAML documents, Graphviz DOT export, and native
// PNG rendering.
package wfsafile

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

// fileAutomaton is the document representation of a weighted automaton,
// shared by the JSON and YAML formats. Initial/final entries may be
// omitted for states whose weight is the semiring zero; weights are
// booleans in the Boolean semiring and numbers otherwise.
type fileAutomaton struct {
	Type           string                 `json:"type" yaml:"type"`
	Semiring       string                 `json:"semiring" yaml:"semiring"`
	Name           string                 `json:"name,omitempty" yaml:"name,omitempty"`
	States         []string               `json:"states" yaml:"states"`
	Alphabet       []string               `json:"alphabet,omitempty" yaml:"alphabet,omitempty"`
	OutputAlphabet []string               `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty"`
	Initial        map[string]interface{} `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final          map[string]interface{} `json:"final,omitempty" yaml:"final,omitempty"`
	Arcs           []fileArc              `json:"arcs" yaml:"arcs"`
}

// fileArc is one transition. A nil input or output symbol means epsilon.
type fileArc struct {
	From   string      `json:"from" yaml:"from"`
	In     *string     `json:"in" yaml:"in"`
	Out    *string     `json:"out,omitempty" yaml:"out,omitempty"`
	To     string      `json:"to" yaml:"to"`
	Weight interface{} `json:"weight" yaml:"weight"`
}

const (
	typeAcceptor   = "acceptor"
	typeTransducer = "transducer"
)

// ParseJSON parses a weighted automaton from JSON.
func ParseJSON(data []byte) (*wfsa.Automaton, error) {
	var doc fileAutomaton
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return buildAutomaton(&doc)
}

// ToJSON converts a weighted automaton to JSON.
func ToJSON(a *wfsa.Automaton, pretty bool) ([]byte, error) {
	doc := buildDocument(a)
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func buildAutomaton(doc *fileAutomaton) (*wfsa.Automaton, error) {
	r, err := parseSemiring(doc.Semiring)
	if err != nil {
		return nil, err
	}

	var a *wfsa.Automaton
	switch doc.Type {
	case typeAcceptor:
		a = wfsa.NewAcceptor(r)
	case typeTransducer:
		a = wfsa.NewTransducer(r)
	default:
		return nil, fmt.Errorf("unknown automaton type %q", doc.Type)
	}
	a.Name = doc.Name

	for _, q := range doc.States {
		a.AddState(wfsa.State(q))
	}
	for _, s := range doc.Alphabet {
		a.AddSymbol(wfsa.Symbol(s))
	}
	for _, s := range doc.OutputAlphabet {
		if !a.IsTransducer() {
			return nil, fmt.Errorf("output alphabet given for an acceptor")
		}
		a.AddOutputSymbol(wfsa.Symbol(s))
	}

	for q, v := range doc.Initial {
		w, err := decodeWeight(r, v)
		if err != nil {
			return nil, fmt.Errorf("initial weight for state %q: %w", q, err)
		}
		a.SetInitial(wfsa.State(q), w)
	}
	for q, v := range doc.Final {
		w, err := decodeWeight(r, v)
		if err != nil {
			return nil, fmt.Errorf("final weight for state %q: %w", q, err)
		}
		a.SetFinal(wfsa.State(q), w)
	}

	for i, arc := range doc.Arcs {
		w, err := decodeWeight(r, arc.Weight)
		if err != nil {
			return nil, fmt.Errorf("arc %d: %w", i, err)
		}
		var label wfsa.Label
		if a.IsTransducer() {
			label = wfsa.NewPairLabel(fileSymbol(arc.In), fileSymbol(arc.Out))
		} else {
			if arc.Out != nil {
				return nil, fmt.Errorf("arc %d: output symbol on an acceptor arc", i)
			}
			label = wfsa.NewLabel(fileSymbol(arc.In))
		}
		a.AddArc(wfsa.State(arc.From), label, wfsa.State(arc.To), w)
	}

	return a, nil
}

func buildDocument(a *wfsa.Automaton) *fileAutomaton {
	doc := &fileAutomaton{
		Type:     typeAcceptor,
		Semiring: string(a.R),
		Name:     a.Name,
		Initial:  make(map[string]interface{}),
		Final:    make(map[string]interface{}),
	}
	if a.IsTransducer() {
		doc.Type = typeTransducer
		doc.OutputAlphabet = symbolList(a.Omega)
	}
	doc.Alphabet = symbolList(a.Sigma)

	zero := a.R.Zero()
	for _, q := range a.States() {
		doc.States = append(doc.States, string(q))
		if w := a.InitialWeight(q); !w.Equal(zero) {
			doc.Initial[string(q)] = encodeWeight(w)
		}
		if w := a.FinalWeight(q); !w.Equal(zero) {
			doc.Final[string(q)] = encodeWeight(w)
		}
	}

	arcs := a.Arcs()
	wfsa.SortArcs(arcs)
	for _, arc := range arcs {
		fa := fileArc{
			From:   string(arc.From),
			In:     symbolRef(arc.Label.In),
			To:     string(arc.To),
			Weight: encodeWeight(arc.Weight),
		}
		if arc.Label.Pair {
			fa.Out = symbolRef(arc.Label.Out)
		}
		doc.Arcs = append(doc.Arcs, fa)
	}

	return doc
}

func parseSemiring(name string) (wfsa.Semiring, error) {
	switch wfsa.Semiring(name) {
	case wfsa.Boolean, wfsa.Real, wfsa.Tropical:
		return wfsa.Semiring(name), nil
	}
	return "", fmt.Errorf("unknown semiring %q", name)
}

func decodeWeight(r wfsa.Semiring, v interface{}) (wfsa.Weight, error) {
	switch r {
	case wfsa.Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("boolean weight must be true or false, got %v", v)
		}
		return wfsa.BoolWeight(b), nil
	case wfsa.Real, wfsa.Tropical:
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		case int64:
			f = float64(n)
		default:
			return nil, fmt.Errorf("%s weight must be a number, got %v", r, v)
		}
		if r == wfsa.Tropical {
			return wfsa.TropicalWeight(f), nil
		}
		return wfsa.RealWeight(f), nil
	}
	return nil, fmt.Errorf("unknown semiring %q", r)
}

func encodeWeight(w wfsa.Weight) interface{} {
	switch v := w.(type) {
	case wfsa.BoolWeight:
		return bool(v)
	case wfsa.RealWeight:
		return float64(v)
	case wfsa.TropicalWeight:
		return float64(v)
	}
	return w.String()
}

func fileSymbol(p *string) wfsa.Symbol {
	if p == nil {
		return wfsa.Epsilon
	}
	return wfsa.Symbol(*p)
}

func symbolRef(s wfsa.Symbol) *string {
	if s.IsEpsilon() {
		return nil
	}
	v := string(s)
	return &v
}

func symbolList(set map[wfsa.Symbol]bool) []string {
	list := make([]string, 0, len(set))
	for s := range set {
		list = append(list, string(s))
	}
	sort.Strings(list)
	return list
}
