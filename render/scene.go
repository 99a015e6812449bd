package render

import (
	"image/color"

	"github.com/fieldvis/fieldvis/field"
	"github.com/fieldvis/fieldvis/mesh"
)

// SceneDescription is the renderer-agnostic payload for one frame:
// geometry and connectivity in mesh node order plus per-node colors.
// The host rendering layer consumes it without touching the core.
type SceneDescription struct {
	FrameIndex int
	FrameLabel string
	XYZ        []float32  // packed x,y,z per node, mesh node order
	TriVerts   [][3]int64 // surface triangles indexing node order
	Colors     []color.RGBA
	Scalars    []float64 // NaN where the binding has no data
	Range      Range
}

// SceneBuilder precomputes the frame-invariant part of a scene: packed
// coordinates and the surface triangulation. Per-frame work is then just
// the O(node count) scalar lookup and color mapping.
type SceneBuilder struct {
	m   *mesh.Mesh
	xyz []float32
	tri [][3]int64
}

func NewSceneBuilder(m *mesh.Mesh) *SceneBuilder {
	sb := &SceneBuilder{
		m:   m,
		xyz: make([]float32, 3*m.NumNodes()),
	}
	for i, nd := range m.Nodes {
		sb.xyz[3*i] = float32(nd.X)
		sb.xyz[3*i+1] = float32(nd.Y)
		sb.xyz[3*i+2] = float32(nd.Z)
	}
	for _, el := range m.Elements {
		sb.triangulate(el)
	}
	return sb
}

// NumTriangles reports the size of the precomputed triangulation
func (sb *SceneBuilder) NumTriangles() int { return len(sb.tri) }

// BuildScene produces the colored frame scene. The triangulation and
// coordinate slices are shared across frames, not recomputed.
func (sb *SceneBuilder) BuildScene(b *field.Binding, cm *ColorMap, rng Range, frame int) *SceneDescription {
	return sb.BuildScalarScene(b.ScalarsForFrame(frame), b.Series().Label(frame), cm, rng, frame)
}

// BuildScalarScene colors an already mesh-ordered scalar array, used for
// derived fields like the dual-view difference
func (sb *SceneBuilder) BuildScalarScene(scalars []float64, label string, cm *ColorMap, rng Range, frame int) *SceneDescription {
	colors := make([]color.RGBA, len(scalars))
	for i, v := range scalars {
		colors[i] = cm.ColorOf(v, rng)
	}
	return &SceneDescription{
		FrameIndex: frame,
		FrameLabel: label,
		XYZ:        sb.xyz,
		TriVerts:   sb.tri,
		Colors:     colors,
		Scalars:    scalars,
		Range:      rng,
	}
}

// triangulate appends the element's surface as triangles over node-order
// positions. Quads split along the 0-2 diagonal; volume elements emit
// every face.
func (sb *SceneBuilder) triangulate(el mesh.Element) {
	pos := make([]int64, len(el.Nodes))
	for i, nid := range el.Nodes {
		p, _ := sb.m.NodeIndex(nid) // validated at mesh construction
		pos[i] = int64(p)
	}
	addTri := func(a, b, c int) {
		sb.tri = append(sb.tri, [3]int64{pos[a], pos[b], pos[c]})
	}
	addQuad := func(a, b, c, d int) {
		addTri(a, b, c)
		addTri(a, c, d)
	}
	switch el.Type {
	case mesh.Tri3:
		addTri(0, 1, 2)
	case mesh.Quad4:
		addQuad(0, 1, 2, 3)
	case mesh.Tet4:
		addTri(0, 1, 2)
		addTri(0, 1, 3)
		addTri(1, 2, 3)
		addTri(0, 2, 3)
	case mesh.Wedge6:
		addTri(0, 1, 2)
		addTri(3, 4, 5)
		addQuad(0, 1, 4, 3)
		addQuad(1, 2, 5, 4)
		addQuad(2, 0, 3, 5)
	case mesh.Hex8:
		addQuad(0, 1, 2, 3)
		addQuad(4, 5, 6, 7)
		addQuad(0, 1, 5, 4)
		addQuad(1, 2, 6, 5)
		addQuad(2, 3, 7, 6)
		addQuad(3, 0, 4, 7)
	}
}
