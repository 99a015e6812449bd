package plotter

import (
	"math"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/fieldvis/fieldvis/render"
)

// ChartState holds the avs window and the static plot geometry. The
// scene's triangulated surface is loaded once; per frame only the vertex
// scalars are re-shaded. Presentation-only: everything here consumes the
// SceneDescription contract, never the core's internals.
type ChartState struct {
	ch *chart2d.Chart2D
	gm *geometry.TriMesh
}

// NewChartState opens a chart window sized to the scene's XY footprint
// (the chart projects along z) and starts the plot loop.
func NewChartState(sc *render.SceneDescription, width, height int) *ChartState {
	xy := sceneXY(sc)
	xMin, xMax, yMin, yMax := getSquareBoundingBox(xy)
	cs := &ChartState{
		ch: chart2d.NewChart2D(xMin, xMax, yMin, yMax, width, height,
			utils2.WHITE, utils2.BLACK),
		gm: geometry.NewTriMesh(xy, sc.TriVerts),
	}
	go cs.ch.Plot()
	cs.ch.AddTriMesh(*cs.gm)
	return cs
}

// Render shades the mesh with the frame's scalars against its active
// range. Missing values sink to the range minimum; the shader has no
// sentinel channel.
func (cs *ChartState) Render(sc *render.SceneDescription) {
	fv := make([]float32, len(sc.Scalars))
	for i, v := range sc.Scalars {
		if math.IsNaN(v) {
			v = sc.Range.Min
		}
		fv[i] = float32(v)
	}
	vs := geometry.VertexScalar{
		TMesh:       cs.gm,
		FieldValues: fv,
	}
	cs.ch.AddShadedVertexScalar(&vs, float32(sc.Range.Min), float32(sc.Range.Max))
}

func sceneXY(sc *render.SceneDescription) []float32 {
	n := len(sc.XYZ) / 3
	xy := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		xy[2*i] = sc.XYZ[3*i]
		xy[2*i+1] = sc.XYZ[3*i+1]
	}
	return xy
}

func getSquareBoundingBox(xy []float32) (xBMin, xBMax, yBMin, yBMax float32) {
	var xMin, xMax, yMin, yMax float32
	for i := 0; i < len(xy)/2; i++ {
		x, y := xy[2*i], xy[2*i+1]
		if i == 0 {
			xMin, xMax, yMin, yMax = x, x, y, y
			continue
		}
		if x < xMin {
			xMin = x
		}
		if x > xMax {
			xMax = x
		}
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}
	xRange := xMax - xMin
	yRange := yMax - yMin
	if yRange > xRange {
		yBMin = yMin
		yBMax = yMax
		xCent := xRange/2. + xMin
		xBMin = xCent - yRange/2.
		xBMax = xCent + yRange/2.
	} else {
		xBMin = xMin
		xBMax = xMax
		yCent := yRange/2. + yMin
		yBMin = yCent - xRange/2.
		yBMax = yCent + xRange/2.
	}
	return
}
