package field

import (
	"math"

	"github.com/fieldvis/fieldvis/mesh"
)

// Binding reconciles mesh node order with series header columns. It is a
// fixed lookup table built once after both sides are loaded; mesh nodes
// absent from the series header are marked missing rather than failing,
// so a partial overlap still visualizes the matched subset.
type Binding struct {
	cols    []int // mesh node order position -> series column, -1 when missing
	missing int
	series  *Series
}

// Bind matches mesh node ids against the series header by identifier
// equality. Never fails; callers surface MissingCount as a warning.
func Bind(m *mesh.Mesh, s *Series) *Binding {
	colOf := make(map[int]int, s.NumNodes())
	for j, id := range s.NodeIDs() {
		colOf[id] = j
	}
	b := &Binding{
		cols:   make([]int, m.NumNodes()),
		series: s,
	}
	for i, nd := range m.Nodes {
		if j, ok := colOf[nd.ID]; ok {
			b.cols[i] = j
		} else {
			b.cols[i] = -1
			b.missing++
		}
	}
	return b
}

func (b *Binding) NumNodes() int     { return len(b.cols) }
func (b *Binding) MissingCount() int { return b.missing }
func (b *Binding) FrameCount() int   { return b.series.FrameCount() }
func (b *Binding) Series() *Series   { return b.series }

// ScalarsForFrame returns the frame's values ordered to match the mesh
// node order, NaN at positions with no matching series column. O(nodes),
// no re-scan of the series.
func (b *Binding) ScalarsForFrame(frame int) []float64 {
	row := b.series.Frame(frame)
	out := make([]float64, len(b.cols))
	for i, j := range b.cols {
		if j < 0 {
			out[i] = math.NaN()
		} else {
			out[i] = row[j]
		}
	}
	return out
}
