package wfsafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

func makeAcceptor() *wfsa.Automaton {
	f := wfsa.NewAcceptor(wfsa.Boolean)
	f.Name = "even-b"
	f.AddStates("0", "1")
	f.SetInitial("0", wfsa.BoolWeight(true))
	f.SetFinal("0", wfsa.BoolWeight(true))
	f.AddArc("0", wfsa.NewLabel("b"), "1", wfsa.BoolWeight(true))
	f.AddArc("1", wfsa.NewLabel("b"), "0", wfsa.BoolWeight(true))
	f.AddArc("0", wfsa.NewLabel(wfsa.Epsilon), "0", wfsa.BoolWeight(true))
	return f
}

func makeTransducer() *wfsa.Automaton {
	f := wfsa.NewTransducer(wfsa.Real)
	f.AddStates("0", "1")
	f.SetInitial("0", wfsa.RealWeight(1.0))
	f.SetFinal("1", wfsa.RealWeight(0.5))
	f.AddArc("0", wfsa.NewPairLabel("a", "x"), "1", wfsa.RealWeight(2.0))
	f.AddArc("1", wfsa.NewPairLabel(wfsa.Epsilon, "x"), "1", wfsa.RealWeight(3.5))
	return f
}

func TestJSONRoundTrip(t *testing.T) {
	for _, f := range []*wfsa.Automaton{makeAcceptor(), makeTransducer()} {
		data, err := ToJSON(f, true)
		require.NoError(t, err)

		parsed, err := ParseJSON(data)
		require.NoError(t, err)
		assert.True(t, wfsa.StructurallyEqual(f, parsed), "round trip changed the automaton")
		assert.Equal(t, f.Name, parsed.Name)
	}
}

func TestParseJSONEpsilon(t *testing.T) {
	data := []byte(`{
		"type": "transducer",
		"semiring": "real",
		"states": ["0"],
		"arcs": [{"from": "0", "in": null, "out": "b", "to": "0", "weight": 2}]
	}`)

	f, err := ParseJSON(data)
	require.NoError(t, err)

	arcs := f.Arcs()
	require.Len(t, arcs, 1)
	assert.Equal(t, wfsa.NewPairLabel(wfsa.Epsilon, "b"), arcs[0].Label)
	assert.Equal(t, wfsa.RealWeight(2), arcs[0].Weight)
	assert.NoError(t, f.Validate())
}

// Omitted initial/final entries load as the semiring zero.
func TestParseJSONDefaultWeights(t *testing.T) {
	data := []byte(`{
		"type": "acceptor",
		"semiring": "tropical",
		"states": ["0", "1"],
		"initial": {"0": 0},
		"arcs": []
	}`)

	f, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, wfsa.TropicalWeight(0), f.InitialWeight("0"))
	assert.Equal(t, wfsa.Tropical.Zero(), f.FinalWeight("1"))
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			"unknown semiring",
			`{"type": "acceptor", "semiring": "viterbi", "states": []}`,
			"unknown semiring",
		},
		{
			"unknown type",
			`{"type": "turing", "semiring": "real", "states": []}`,
			"unknown automaton type",
		},
		{
			"boolean weight with number",
			`{"type": "acceptor", "semiring": "boolean", "states": ["0"],
			  "arcs": [{"from": "0", "in": "a", "to": "0", "weight": 1}]}`,
			"must be true or false",
		},
		{
			"output symbol on acceptor arc",
			`{"type": "acceptor", "semiring": "real", "states": ["0"],
			  "arcs": [{"from": "0", "in": "a", "out": "b", "to": "0", "weight": 1}]}`,
			"output symbol on an acceptor arc",
		},
		{
			"output alphabet on acceptor",
			`{"type": "acceptor", "semiring": "real", "states": [], "output_alphabet": ["x"], "arcs": []}`,
			"output alphabet given for an acceptor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()

	f := makeAcceptor()
	data, err := ToJSON(f, false)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, data, 0644))

	ydata, err := ToYAML(f)
	require.NoError(t, err)
	yamlPath := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(yamlPath, ydata, 0644))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)

	assert.True(t, wfsa.StructurallyEqual(fromJSON, fromYAML))

	txtPath := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(txtPath, data, 0644))
	_, err = Load(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown file format")
}
