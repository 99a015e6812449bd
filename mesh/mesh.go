package mesh

import (
	"errors"
	"fmt"
)

// ElementType represents the supported element topologies
type ElementType int

const (
	Tri3 ElementType = iota
	Quad4
	Tet4
	Wedge6
	Hex8
)

func (e ElementType) String() string {
	return [...]string{"Tri3", "Quad4", "Tet4", "Wedge6", "Hex8"}[e]
}

// NodeCount returns the connectivity length fixed by the element type
func (e ElementType) NodeCount() int {
	return [...]int{3, 4, 4, 6, 8}[e]
}

var (
	ErrDuplicateNodeID        = errors.New("duplicate node id")
	ErrDanglingReference      = errors.New("element references undefined node id")
	ErrUnsupportedElementType = errors.New("unsupported element type")
)

// Node is a mesh vertex with its solver-assigned id
type Node struct {
	ID      int
	X, Y, Z float64
}

// Element holds the ordered connectivity of one cell
type Element struct {
	ID    int
	Type  ElementType
	Nodes []int // node ids, length fixed by Type
}

// Mesh is the immutable geometry/topology of a model. Node order is the
// order in which node ids first appeared in the source file and is the
// index base for all per-node arrays downstream.
type Mesh struct {
	Nodes     []Node // stable node order
	Elements  []Element
	nodeIndex map[int]int // node id -> position in Nodes
}

// NewMesh validates nodes and connectivity and builds the id index.
// Fails with ErrDuplicateNodeID or ErrDanglingReference; never returns a
// partially constructed mesh.
func NewMesh(nodes []Node, elements []Element) (*Mesh, error) {
	m := &Mesh{
		Nodes:     nodes,
		Elements:  elements,
		nodeIndex: make(map[int]int, len(nodes)),
	}
	for i, nd := range nodes {
		if _, dup := m.nodeIndex[nd.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", nd.ID, ErrDuplicateNodeID)
		}
		m.nodeIndex[nd.ID] = i
	}
	for _, el := range elements {
		if want := el.Type.NodeCount(); len(el.Nodes) != want {
			return nil, fmt.Errorf("element %d: %s needs %d nodes, has %d",
				el.ID, el.Type, want, len(el.Nodes))
		}
		for _, nid := range el.Nodes {
			if _, ok := m.nodeIndex[nid]; !ok {
				return nil, fmt.Errorf("element %d, node %d: %w",
					el.ID, nid, ErrDanglingReference)
			}
		}
	}
	return m, nil
}

func (m *Mesh) NumNodes() int    { return len(m.Nodes) }
func (m *Mesh) NumElements() int { return len(m.Elements) }

// NodeIndex returns the stable-order position of a node id
func (m *Mesh) NodeIndex(id int) (int, bool) {
	i, ok := m.nodeIndex[id]
	return i, ok
}

// BoundingBox returns the coordinate extents over all nodes
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	for i, nd := range m.Nodes {
		c := [3]float64{nd.X, nd.Y, nd.Z}
		for d := 0; d < 3; d++ {
			if i == 0 || c[d] < min[d] {
				min[d] = c[d]
			}
			if i == 0 || c[d] > max[d] {
				max[d] = c[d]
			}
		}
	}
	return
}
