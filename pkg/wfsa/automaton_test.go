package wfsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStateInitializesWeights(t *testing.T) {
	f := NewAcceptor(Boolean)
	f.AddState("0")

	assert.True(t, f.Q["0"])
	assert.Equal(t, BoolWeight(false), f.InitialWeight("0"))
	assert.Equal(t, BoolWeight(false), f.FinalWeight("0"))

	// Re-adding must not reset explicit weights.
	f.SetInitial("0", BoolWeight(true))
	f.AddState("0")
	assert.Equal(t, BoolWeight(true), f.InitialWeight("0"))
}

func TestAddArcGrowsAlphabetsAndStates(t *testing.T) {
	f := NewTransducer(Real)
	f.AddArc("0", NewPairLabel("a", "x"), "1", RealWeight(1))
	f.AddArc("1", NewPairLabel(Epsilon, Epsilon), "1", RealWeight(2))

	assert.Len(t, f.Q, 2)
	assert.Equal(t, map[Symbol]bool{"a": true}, f.Sigma)
	assert.Equal(t, map[Symbol]bool{"x": true}, f.Omega)
}

// A second arc with the same source, label and target overwrites the
// weight: the transition table holds one weight per triple.
func TestAddArcSingleWeightPerTriple(t *testing.T) {
	f := NewAcceptor(Real)
	f.AddArc("0", NewLabel("a"), "1", RealWeight(1))
	f.AddArc("0", NewLabel("a"), "1", RealWeight(7))

	require.Len(t, f.Delta, 1)
	assert.Equal(t, RealWeight(7), f.Delta[ArcKey{From: "0", Label: NewLabel("a"), To: "1"}])
}

func TestArcsFlattensTable(t *testing.T) {
	f := makeFSA1()
	arcs := f.Arcs()
	assert.Len(t, arcs, 10)

	seen := make(map[ArcKey]bool)
	for _, arc := range arcs {
		assert.False(t, seen[arc.Key()], "duplicate arc %s", arc.Key())
		seen[arc.Key()] = true
	}

	assert.Empty(t, NewAcceptor(Boolean).Arcs())
}

func TestStatesSorted(t *testing.T) {
	f := NewAcceptor(Boolean)
	f.AddStates("2", "0", "1")
	assert.Equal(t, []State{"0", "1", "2"}, f.States())
}

func TestLabelArity(t *testing.T) {
	assert.NotEqual(t, NewLabel("a"), NewPairLabel("a", Epsilon))
	assert.Equal(t, "a", NewLabel("a").String())
	assert.Equal(t, "a:b", NewPairLabel("a", "b").String())
	assert.Equal(t, "ε:b", NewPairLabel(Epsilon, "b").String())
}

func TestValidate(t *testing.T) {
	valid := makeFST1()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Automaton)
		wantErr string
	}{
		{
			"missing initial weight",
			func(f *Automaton) { delete(f.Lambda, "0") },
			"no initial weight",
		},
		{
			"missing final weight",
			func(f *Automaton) { delete(f.Rho, "1") },
			"no final weight",
		},
		{
			"weight for unknown state",
			func(f *Automaton) { f.Lambda["9"] = RealWeight(1) },
			"unknown state",
		},
		{
			"arc from unknown state",
			func(f *Automaton) {
				f.Delta[ArcKey{From: "9", Label: NewPairLabel("b", "b"), To: "0"}] = RealWeight(1)
			},
			"source state not in states",
		},
		{
			"arc with wrong label arity",
			func(f *Automaton) {
				f.Delta[ArcKey{From: "0", Label: NewLabel("b"), To: "1"}] = RealWeight(1)
			},
			"label arity",
		},
		{
			"arc symbol outside alphabet",
			func(f *Automaton) {
				f.Delta[ArcKey{From: "0", Label: NewPairLabel("z", "b"), To: "1"}] = RealWeight(1)
			},
			"not in alphabet",
		},
		{
			"weight from wrong semiring",
			func(f *Automaton) { f.Rho["1"] = BoolWeight(true) },
			"semiring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := makeFST1()
			tt.mutate(f)
			err := f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWeightEquality(t *testing.T) {
	assert.True(t, BoolWeight(true).Equal(BoolWeight(true)))
	assert.False(t, BoolWeight(true).Equal(BoolWeight(false)))
	assert.True(t, RealWeight(2.5).Equal(RealWeight(2.5)))
	assert.False(t, RealWeight(2.5).Equal(RealWeight(2.6)))

	// Weights from different semirings are never equal, even when the
	// underlying values coincide.
	assert.False(t, RealWeight(1).Equal(TropicalWeight(1)))
	assert.False(t, BoolWeight(false).Equal(RealWeight(0)))
}

func TestSemiringIdentities(t *testing.T) {
	assert.Equal(t, BoolWeight(false), Boolean.Zero())
	assert.Equal(t, BoolWeight(true), Boolean.One())
	assert.Equal(t, RealWeight(0), Real.Zero())
	assert.Equal(t, RealWeight(1), Real.One())
	assert.Equal(t, TropicalWeight(0), Tropical.One())
	assert.Equal(t, "inf", Tropical.Zero().String())
}

func TestAutomatonString(t *testing.T) {
	f := makeFST1()
	f.Name = "parity"
	s := f.String()
	assert.Contains(t, s, "WFST[real]: parity")
	assert.Contains(t, s, "Arcs: 5")

	assert.Contains(t, makeFSA1().String(), "WFSA[boolean]")
}
