package viewer

import (
	"errors"
	"fmt"
	"math"

	"github.com/fieldvis/fieldvis/field"
	"github.com/fieldvis/fieldvis/mesh"
	"github.com/fieldvis/fieldvis/player"
	"github.com/fieldvis/fieldvis/render"
)

// ErrFrameCountMismatch rejects a dual binding over series of different
// lengths. Comparison playback needs equal-length series; silently
// truncating the longer one would misalign the frames being compared.
var ErrFrameCountMismatch = errors.New("field series frame counts differ")

// pipeline is one side of the comparison: its own mesh, binding and
// active range, sharing nothing with the other side but the frame index
type pipeline struct {
	mesh    *mesh.Mesh
	binding *field.Binding
	builder *render.SceneBuilder
	rng     render.Range
}

func newPipeline(m *mesh.Mesh, s *field.Series) *pipeline {
	min, max := s.GlobalRange()
	return &pipeline{
		mesh:    m,
		binding: field.Bind(m, s),
		builder: render.NewSceneBuilder(m),
		rng:     render.Range{Min: min, Max: max},
	}
}

// DualViewer synchronizes two independently bound data pipelines (e.g. a
// full-order and a reduced-order model of the same part) behind a single
// shared animation controller, so both sides always show the same frame.
type DualViewer struct {
	a, b *pipeline
	cmap *render.ColorMap
	ctrl *player.Controller

	// a-order position -> b-order position, -1 where B lacks the node id
	abIndex []int
	diffRng *render.Range // computed on first DiffScene
}

// NewDualViewer binds both sides and fails fast with
// ErrFrameCountMismatch when the series lengths are incompatible.
func NewDualViewer(meshA *mesh.Mesh, seriesA *field.Series, meshB *mesh.Mesh, seriesB *field.Series) (*DualViewer, error) {
	if seriesA.FrameCount() != seriesB.FrameCount() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrFrameCountMismatch,
			seriesA.FrameCount(), seriesB.FrameCount())
	}
	d := &DualViewer{
		a:    newPipeline(meshA, seriesA),
		b:    newPipeline(meshB, seriesB),
		cmap: render.NewColorMap(render.Rainbow),
		ctrl: player.NewController(seriesA.FrameCount()),
	}
	d.abIndex = make([]int, meshA.NumNodes())
	for i, nd := range meshA.Nodes {
		if j, ok := meshB.NodeIndex(nd.ID); ok {
			d.abIndex[i] = j
		} else {
			d.abIndex[i] = -1
		}
	}
	return d, nil
}

func (d *DualViewer) Controller() *player.Controller { return d.ctrl }

func (d *DualViewer) SetPalette(p render.Palette) {
	d.cmap = render.NewColorMap(p)
}

func (d *DualViewer) SetActiveRangeA(min, max float64) { d.a.rng = render.Range{Min: min, Max: max} }
func (d *DualViewer) SetActiveRangeB(min, max float64) { d.b.rng = render.Range{Min: min, Max: max} }

// Warnings reports the partial-overlap state of both bindings
func (d *DualViewer) Warnings() (a, b ReconciliationWarning) {
	a = ReconciliationWarning{
		Series:  d.a.binding.Series().Name,
		Missing: d.a.binding.MissingCount(),
		Total:   d.a.binding.NumNodes(),
	}
	b = ReconciliationWarning{
		Series:  d.b.binding.Series().Name,
		Missing: d.b.binding.MissingCount(),
		Total:   d.b.binding.NumNodes(),
	}
	return
}

// Scenes builds both frame scenes for the shared current frame. Both
// come from the same frame index read, so a caller never observes the
// two sides on different frames.
func (d *DualViewer) Scenes() (a, b *render.SceneDescription) {
	frame := d.ctrl.Frame()
	a = d.a.builder.BuildScene(d.a.binding, d.cmap, d.a.rng, frame)
	b = d.b.builder.BuildScene(d.b.binding, d.cmap, d.b.rng, frame)
	return
}

// diffScalars is value_A - value_B on mesh A's node order, NaN wherever
// either side lacks data
func (d *DualViewer) diffScalars(frame int) []float64 {
	va := d.a.binding.ScalarsForFrame(frame)
	vb := d.b.binding.ScalarsForFrame(frame)
	out := make([]float64, len(va))
	for i := range va {
		j := d.abIndex[i]
		if j < 0 || math.IsNaN(va[i]) || math.IsNaN(vb[j]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = va[i] - vb[j]
	}
	return out
}

// DiffScene renders the per-node A-B difference on mesh A's geometry,
// over a symmetric range so zero difference sits mid-palette. The range
// is scanned across all frames once and cached.
func (d *DualViewer) DiffScene() *render.SceneDescription {
	if d.diffRng == nil {
		var peak float64
		for f := 0; f < d.ctrl.FrameCount(); f++ {
			for _, v := range d.diffScalars(f) {
				if !math.IsNaN(v) && math.Abs(v) > peak {
					peak = math.Abs(v)
				}
			}
		}
		if peak == 0 {
			peak = 1
		}
		d.diffRng = &render.Range{Min: -peak, Max: peak}
	}
	frame := d.ctrl.Frame()
	label := d.a.binding.Series().Label(frame)
	return d.a.builder.BuildScalarScene(d.diffScalars(frame), label, d.cmap, *d.diffRng, frame)
}
