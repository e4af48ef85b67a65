package wfsafile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

func TestGenerateDOT(t *testing.T) {
	f := makeTransducer()
	dot := GenerateDOT(f, "Shift machine")

	assert.True(t, strings.HasPrefix(dot, "digraph WFSA {"))
	assert.Contains(t, dot, `label="Shift machine"`)

	// Initial state gets an entry arrow; weight 1 is the semiring one
	// and stays unlabeled.
	assert.Contains(t, dot, `__start0 -> "0";`)

	// Final state with non-one weight is double-circled and annotated.
	assert.Contains(t, dot, `"1" [shape=doublecircle, label="1\n/0.5"];`)
	assert.Contains(t, dot, `"0" [shape=circle, label="0"];`)

	assert.Contains(t, dot, `"0" -> "1" [label="a:x / 2"];`)
	assert.Contains(t, dot, `"1" -> "1" [label="ε:x / 3.5"];`)
}

func TestGenerateDOTInitialWeightLabel(t *testing.T) {
	f := wfsa.NewAcceptor(wfsa.Real)
	f.SetInitial("0", wfsa.RealWeight(29))
	dot := GenerateDOT(f, "")
	assert.Contains(t, dot, `[label="29"];`)
}

func TestGenerateDiffDOT(t *testing.T) {
	a := wfsa.NewAcceptor(wfsa.Boolean)
	a.AddStates("0", "1")
	a.AddArc("0", wfsa.NewLabel("a"), "1", wfsa.BoolWeight(true))
	a.AddArc("0", wfsa.NewLabel("b"), "0", wfsa.BoolWeight(true))
	a.AddArc("1", wfsa.NewLabel("c"), "0", wfsa.BoolWeight(true))

	b := wfsa.NewAcceptor(wfsa.Boolean)
	b.AddStates("0", "1", "2")
	b.AddArc("0", wfsa.NewLabel("a"), "1", wfsa.BoolWeight(true))
	b.AddArc("1", wfsa.NewLabel("c"), "0", wfsa.BoolWeight(false))
	b.AddArc("1", wfsa.NewLabel("d"), "2", wfsa.BoolWeight(true))

	dot := GenerateDiffDOT(a, b, "diff")
	require.True(t, strings.HasPrefix(dot, "digraph WFSADiff {"))

	// State 2 exists only in the second automaton.
	assert.Contains(t, dot, `"2" [shape=circle, color="`+diffColorOnlyB+`"`)

	// Shared arc stays uncolored.
	assert.Contains(t, dot, `"0" -> "1" [label="a / true"];`)

	// Arc only in A is red, arc only in B is green.
	assert.Contains(t, dot, `"0" -> "0" [label="b / true", color="`+diffColorOnlyA+`"`)
	assert.Contains(t, dot, `"1" -> "2" [label="d / true", color="`+diffColorOnlyB+`"`)

	// Weight mismatch shows both weights in orange.
	assert.Contains(t, dot, `"1" -> "0" [label="c / true | false", color="`+diffColorMismatch+`"`)
}
