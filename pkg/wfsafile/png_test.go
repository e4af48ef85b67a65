package wfsafile

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultPNGOptions()
	opts.Width = 200
	opts.Height = 150
	opts.Title = "even-b"

	err := RenderPNG(makeAcceptor(), &buf, opts)
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRenderDiffPNG(t *testing.T) {
	a := makeAcceptor()
	b := makeAcceptor()
	b.AddArc("1", wfsa.NewLabel("c"), "1", wfsa.BoolWeight(true))

	var buf bytes.Buffer
	opts := DefaultPNGOptions()
	opts.Width = 200
	opts.Height = 150

	err := RenderDiffPNG(a, b, &buf, opts)
	require.NoError(t, err)

	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestRenderPNGEmptyAutomaton(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultPNGOptions()
	opts.Width = 100
	opts.Height = 100

	err := RenderPNG(wfsa.NewAcceptor(wfsa.Boolean), &buf, opts)
	require.NoError(t, err)

	_, err = png.Decode(&buf)
	assert.NoError(t, err)
}

func TestGraphFromDiffColors(t *testing.T) {
	a := wfsa.NewAcceptor(wfsa.Boolean)
	a.AddStates("0", "1", "3")
	a.AddArc("0", wfsa.NewLabel("a"), "1", wfsa.BoolWeight(true))

	b := wfsa.NewAcceptor(wfsa.Boolean)
	b.AddStates("0", "1", "2")
	b.AddArc("0", wfsa.NewLabel("a"), "1", wfsa.BoolWeight(false))

	g := graphFromDiff(a, b)
	require.Len(t, g.nodes, 4)

	colors := make(map[string]color.RGBA)
	for _, n := range g.nodes {
		colors[n.name] = n.color
	}
	assert.Equal(t, pngBlack, colors["0"])
	assert.Equal(t, pngBlack, colors["1"])
	assert.Equal(t, pngOnlyB, colors["2"])
	assert.Equal(t, pngOnlyA, colors["3"])

	require.Len(t, g.edges, 1)
	assert.Equal(t, pngMismatch, g.edges[0].color)
	assert.Contains(t, g.edges[0].label, "true | false")
}
