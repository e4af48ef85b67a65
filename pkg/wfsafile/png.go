// Native PNG rendering for weighted automata and automaton diffs.
// States are laid out on a circle; diff rendering uses the same color
// scheme as the DOT export.

package wfsafile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/wfsa-toolkit/pkg/wfsa"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width       int
	Height      int
	Padding     int
	StateRadius int
	FontSize    int
	Title       string
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:       800,
		Height:      600,
		Padding:     60,
		StateRadius: 28,
		FontSize:    14,
	}
}

// Colors used in rendering
var (
	pngWhite    = color.RGBA{255, 255, 255, 255}
	pngBlack    = color.RGBA{51, 51, 51, 255}    // #333
	pngGray     = color.RGBA{102, 102, 102, 255} // #666
	pngOnlyA    = color.RGBA{198, 40, 40, 255}   // #c62828
	pngOnlyB    = color.RGBA{46, 125, 50, 255}   // #2e7d32
	pngMismatch = color.RGBA{230, 81, 0, 255}    // #e65100
)

// renderNode is a state prepared for drawing.
type renderNode struct {
	name  string
	final bool
	color color.RGBA
}

// renderEdge is an arc prepared for drawing; from == to is a self-loop.
type renderEdge struct {
	from  int
	to    int
	label string
	color color.RGBA
}

type renderGraph struct {
	nodes []renderNode
	edges []renderEdge
}

// renderContext holds rendering parameters including scale.
type renderContext struct {
	img       *image.RGBA
	scale     float64
	lineWidth float64
	face      font.Face
}

func newRenderContext(img *image.RGBA, fontSize, scale int) *renderContext {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font, cannot fail
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(fontSize * scale),
		DPI:     72,
		Hinting: font.HintingNone, // supersampling instead of hinting
	})
	if err != nil {
		panic(err)
	}
	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale) * 2,
		face:      face,
	}
}

// RenderPNG renders a single weighted automaton to PNG.
func RenderPNG(a *wfsa.Automaton, w io.Writer, opts PNGOptions) error {
	return renderGraphPNG(graphFromAutomaton(a), w, opts)
}

// RenderDiffPNG renders the union of two automata to PNG with
// structural differences highlighted.
func RenderDiffPNG(a, b *wfsa.Automaton, w io.Writer, opts PNGOptions) error {
	return renderGraphPNG(graphFromDiff(a, b), w, opts)
}

func graphFromAutomaton(a *wfsa.Automaton) *renderGraph {
	g := &renderGraph{}
	index := make(map[wfsa.State]int)
	zero := a.R.Zero()

	for _, q := range a.States() {
		index[q] = len(g.nodes)
		g.nodes = append(g.nodes, renderNode{
			name:  string(q),
			final: !a.FinalWeight(q).Equal(zero),
			color: pngBlack,
		})
	}

	arcs := a.Arcs()
	wfsa.SortArcs(arcs)
	for _, arc := range arcs {
		g.edges = append(g.edges, renderEdge{
			from:  index[arc.From],
			to:    index[arc.To],
			label: arc.Label.String() + " / " + arc.Weight.String(),
			color: pngBlack,
		})
	}

	return g
}

func graphFromDiff(a, b *wfsa.Automaton) *renderGraph {
	g := &renderGraph{}
	index := make(map[wfsa.State]int)

	for _, q := range unionStates(a, b) {
		c := pngBlack
		final := false
		switch {
		case !b.Q[q]:
			c = pngOnlyA
			final = !a.FinalWeight(q).Equal(a.R.Zero())
		case !a.Q[q]:
			c = pngOnlyB
			final = !b.FinalWeight(q).Equal(b.R.Zero())
		default:
			final = !a.FinalWeight(q).Equal(a.R.Zero())
		}
		index[q] = len(g.nodes)
		g.nodes = append(g.nodes, renderNode{name: string(q), final: final, color: c})
	}

	arcsA := arcWeights(a)
	arcsB := arcWeights(b)
	for _, k := range unionArcKeys(arcsA, arcsB) {
		wa, inA := arcsA[k]
		wb, inB := arcsB[k]

		e := renderEdge{from: index[k.From], to: index[k.To], color: pngBlack}
		switch {
		case inA && !inB:
			e.label = k.Label.String() + " / " + wa.String()
			e.color = pngOnlyA
		case inB && !inA:
			e.label = k.Label.String() + " / " + wb.String()
			e.color = pngOnlyB
		case !wa.Equal(wb):
			e.label = k.Label.String() + " / " + wa.String() + " | " + wb.String()
			e.color = pngMismatch
		default:
			e.label = k.Label.String() + " / " + wa.String()
		}
		g.edges = append(g.edges, e)
	}

	return g
}

func renderGraphPNG(g *renderGraph, w io.Writer, opts PNGOptions) error {
	// Render at 4x size for supersampling
	scale := 4
	largeImg := renderPNGInternal(g, opts, scale)

	finalImg := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(finalImg, finalImg.Bounds(), largeImg, largeImg.Bounds(), draw.Over, nil)

	return png.Encode(w, finalImg)
}

func renderPNGInternal(g *renderGraph, opts PNGOptions, scale int) *image.RGBA {
	width := opts.Width * scale
	height := opts.Height * scale
	padding := float64(opts.Padding * scale)
	radius := float64(opts.StateRadius * scale)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pngWhite)
		}
	}

	ctx := newRenderContext(img, opts.FontSize, scale)

	if opts.Title != "" {
		drawTextCentered(ctx, width/2, int(padding/2), opts.Title, pngBlack)
	}

	// Circle layout: states evenly spaced on a ring.
	cx := float64(width) / 2
	cy := float64(height) / 2
	ring := math.Min(float64(width), float64(height))/2 - padding - radius
	if ring < radius {
		ring = radius
	}

	pos := make([][2]float64, len(g.nodes))
	for i := range g.nodes {
		angle := 2*math.Pi*float64(i)/float64(len(g.nodes)) - math.Pi/2
		pos[i] = [2]float64{cx + ring*math.Cos(angle), cy + ring*math.Sin(angle)}
	}

	for _, e := range g.edges {
		if e.from == e.to {
			drawSelfLoop(ctx, pos[e.from][0], pos[e.from][1], cx, cy, radius, e.label, e.color)
			continue
		}
		drawEdge(ctx, pos[e.from], pos[e.to], radius, e.label, e.color)
	}

	for i, n := range g.nodes {
		x, y := pos[i][0], pos[i][1]
		drawCircle(ctx, x, y, radius, pngWhite, n.color)
		if n.final {
			drawCircle(ctx, x, y, radius-4*ctx.scale, color.Transparent, n.color)
		}
		drawTextCentered(ctx, int(x), int(y), n.name, n.color)
	}

	return img
}

// drawCircle draws a circle outline and optional fill.
func drawCircle(ctx *renderContext, cx, cy, r float64, fill, stroke color.Color) {
	img := ctx.img
	if fill != color.Transparent {
		for dy := -r; dy <= r; dy++ {
			span := math.Sqrt(r*r - dy*dy)
			for dx := -span; dx <= span; dx++ {
				img.Set(int(cx+dx), int(cy+dy), fill)
			}
		}
	}
	for angle := 0.0; angle < 2*math.Pi; angle += 0.005 {
		nx := math.Cos(angle)
		ny := math.Sin(angle)
		for t := -ctx.lineWidth / 2; t <= ctx.lineWidth/2; t += 0.5 {
			img.Set(int(cx+nx*(r+t)), int(cy+ny*(r+t)), stroke)
		}
	}
}

// drawLine draws a line between two points with thickness from context.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	img := ctx.img
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		img.Set(int(x1), int(y1), c)
		return
	}
	perpX := -dy / dist
	perpY := dx / dist
	half := ctx.lineWidth / 2
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		px := x1 + dx*t
		py := y1 + dy*t
		for offset := -half; offset <= half; offset += 0.5 {
			img.Set(int(px+perpX*offset), int(py+perpY*offset), c)
		}
	}
}

// drawEdge draws an arc between two states: a line from circle edge to
// circle edge with an arrowhead and a label at the midpoint.
func drawEdge(ctx *renderContext, from, to [2]float64, r float64, label string, c color.Color) {
	dx := to[0] - from[0]
	dy := to[1] - from[1]
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		return
	}
	nx := dx / dist
	ny := dy / dist

	sx := from[0] + nx*r
	sy := from[1] + ny*r
	ex := to[0] - nx*(r+2*ctx.scale)
	ey := to[1] - ny*(r+2*ctx.scale)

	drawLine(ctx, sx, sy, ex, ey, c)

	arrowLen := 8.0 * ctx.scale
	arrowWidth := 4.0 * ctx.scale
	ax1 := ex - nx*arrowLen + ny*arrowWidth
	ay1 := ey - ny*arrowLen - nx*arrowWidth
	ax2 := ex - nx*arrowLen - ny*arrowWidth
	ay2 := ey - ny*arrowLen + nx*arrowWidth
	drawLine(ctx, ex, ey, ax1, ay1, c)
	drawLine(ctx, ex, ey, ax2, ay2, c)

	// Label beside the midpoint, pushed off the line so parallel edges
	// in opposite directions do not overlap.
	mx := (sx + ex) / 2
	my := (sy + ey) / 2
	offset := 12 * ctx.scale
	drawTextCentered(ctx, int(mx-ny*offset), int(my+nx*offset), label, c)
}

// drawSelfLoop draws a small loop on the outward side of a state.
func drawSelfLoop(ctx *renderContext, x, y, cx, cy, r float64, label string, c color.Color) {
	// Outward direction: away from the layout centre.
	dx := x - cx
	dy := y - cy
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		dx, dy, dist = 0, -1, 1
	}
	nx := dx / dist
	ny := dy / dist

	loopR := r * 0.6
	lx := x + nx*(r+loopR)
	ly := y + ny*(r+loopR)
	drawCircle(ctx, lx, ly, loopR, color.Transparent, c)
	drawTextCentered(ctx, int(lx+nx*(loopR+10*ctx.scale)), int(ly+ny*(loopR+10*ctx.scale)), label, c)
}

// drawTextCentered draws text centered at the given position using the
// Go Regular font.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()
	metrics := ctx.face.Metrics()
	baselineY := y + int(float64(metrics.Ascent.Ceil())*0.35)

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x - width/2),
			Y: fixed.I(baselineY),
		},
	}
	d.DrawString(text)
}
