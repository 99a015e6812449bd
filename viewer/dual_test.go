package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldvis/fieldvis/field"
	"github.com/fieldvis/fieldvis/mesh"
)

func dualMesh(t *testing.T, ids ...int) *mesh.Mesh {
	t.Helper()
	nodes := make([]mesh.Node, len(ids))
	for i, id := range ids {
		nodes[i] = mesh.Node{ID: id, X: float64(i)}
	}
	m, err := mesh.NewMesh(nodes, []mesh.Element{
		{ID: 1, Type: mesh.Tri3, Nodes: ids[:3]},
	})
	require.NoError(t, err)
	return m
}

func constSeries(t *testing.T, name string, frames int, value float64, ids ...int) *field.Series {
	t.Helper()
	labels := make([]string, frames)
	times := make([]float64, frames)
	rows := make([][]float64, frames)
	for f := 0; f < frames; f++ {
		labels[f] = string(rune('0' + f))
		times[f] = float64(f)
		row := make([]float64, len(ids))
		for j := range ids {
			row[j] = value + float64(f)
		}
		rows[f] = row
	}
	s, err := field.NewSeries(name, ids, labels, times, rows)
	require.NoError(t, err)
	return s
}

func TestDualViewerFrameCountMismatch(t *testing.T) {
	m := dualMesh(t, 1, 2, 3)
	a := constSeries(t, "fom", 10, 1.0, 1, 2, 3)
	b := constSeries(t, "rom", 12, 1.0, 1, 2, 3)
	_, err := NewDualViewer(m, a, m, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFrameCountMismatch)
}

func TestDualViewerSynchronizedScenes(t *testing.T) {
	m := dualMesh(t, 1, 2, 3)
	a := constSeries(t, "fom", 10, 1.0, 1, 2, 3)
	b := constSeries(t, "rom", 10, 3.0, 1, 2, 3)
	d, err := NewDualViewer(m, a, m, b)
	require.NoError(t, err)

	d.Controller().Seek(5)
	sa, sb := d.Scenes()
	assert.Equal(t, 5, sa.FrameIndex)
	assert.Equal(t, 5, sb.FrameIndex, "both sides update atomically")
	assert.Equal(t, 6.0, sa.Scalars[0])
	assert.Equal(t, 8.0, sb.Scalars[0])
}

func TestDualViewerSharedControllerDrivesBoth(t *testing.T) {
	m := dualMesh(t, 1, 2, 3)
	d, err := NewDualViewer(m,
		constSeries(t, "fom", 4, 0.0, 1, 2, 3),
		m,
		constSeries(t, "rom", 4, 0.0, 1, 2, 3))
	require.NoError(t, err)

	d.Controller().Play()
	d.Controller().Tick()
	sa, sb := d.Scenes()
	assert.Equal(t, 1, sa.FrameIndex)
	assert.Equal(t, sa.FrameIndex, sb.FrameIndex)
}

func TestDualViewerDiffScene(t *testing.T) {
	// B's mesh carries an extra node A lacks, and A has a node missing
	// from B's series header
	ma := dualMesh(t, 1, 2, 3)
	mb := dualMesh(t, 1, 2, 3, 4)
	a := constSeries(t, "fom", 2, 5.0, 1, 2, 3)
	b := constSeries(t, "rom", 2, 2.0, 1, 2, 4)
	d, err := NewDualViewer(ma, a, mb, b)
	require.NoError(t, err)

	diff := d.DiffScene()
	require.Len(t, diff.Scalars, 3)
	assert.Equal(t, 3.0, diff.Scalars[0])
	assert.Equal(t, 3.0, diff.Scalars[1])
	assert.True(t, math.IsNaN(diff.Scalars[2]), "node 3 missing on side B")

	// Symmetric range keeps zero difference mid-palette
	assert.Equal(t, -diff.Range.Max, diff.Range.Min)
}

func TestDualViewerWarnings(t *testing.T) {
	m := dualMesh(t, 1, 2, 3)
	d, err := NewDualViewer(m,
		constSeries(t, "fom", 2, 0.0, 1, 2, 3),
		m,
		constSeries(t, "rom", 2, 0.0, 1, 2))
	require.NoError(t, err)
	wa, wb := d.Warnings()
	assert.Zero(t, wa.Missing)
	assert.Equal(t, 1, wb.Missing)
}
