package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldvis/fieldvis/mesh"
)

// Helper function to create temporary test files
func createTempInpFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.inp")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

const tetInp = `** Single tet for unit testing
*Node
1, 0.0, 0.0, 0.0
2, 1.0, 0.0, 0.0
3, 0.0, 1.0, 0.0
4, 0.0, 0.0, 1.0
*Element, type=C3D4
1, 1, 2, 3, 4
`

func TestReadInpMeshTet(t *testing.T) {
	path := createTempInpFile(t, tetInp)
	m, err := ReadInpMesh(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumNodes())
	require.Equal(t, 1, m.NumElements())
	assert.Equal(t, mesh.Tet4, m.Elements[0].Type)
	assert.Equal(t, []int{1, 2, 3, 4}, m.Elements[0].Nodes)
	for _, el := range m.Elements {
		for _, nid := range el.Nodes {
			_, ok := m.NodeIndex(nid)
			assert.True(t, ok)
		}
	}
}

func TestReadInpMeshKeywordVariants(t *testing.T) {
	// Case and spacing variants of the keywords are equivalent, and a
	// 2D model carries no z coordinate
	content := `*NODE
1, 0.0, 0.0
2, 1.0, 0.0
3, 1.0, 1.0
4, 0.0, 1.0
*ELEMENT , TYPE = CPS4R
1, 1, 2, 3, 4
`
	m, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumNodes())
	require.Equal(t, 1, m.NumElements())
	assert.Equal(t, mesh.Quad4, m.Elements[0].Type)
	assert.Zero(t, m.Nodes[0].Z)
}

func TestReadInpMeshSectionReorder(t *testing.T) {
	// Element section before the node section it references
	content := `*Element, type=S3
1, 1, 2, 3
*Node
1, 0.0, 0.0
2, 1.0, 0.0
3, 0.0, 1.0
`
	m, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.NoError(t, err)
	assert.Equal(t, mesh.Tri3, m.Elements[0].Type)
}

func TestReadInpMeshIgnoresBoundarySections(t *testing.T) {
	content := tetInp + `*Nset, nset=fixed
1, 2
*Surface, type=ELEMENT, name=loaded
1, S1
*Boundary
1, 1, 3
`
	m, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumNodes())
	assert.Equal(t, 1, m.NumElements())
}

func TestReadInpMeshUnsupportedElementType(t *testing.T) {
	content := `*Node
1, 0.0, 0.0, 0.0
*Element, type=C3D20
1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1
`
	_, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrUnsupportedElementType)
}

func TestReadInpMeshDuplicateNodeID(t *testing.T) {
	content := `*Node
1, 0.0, 0.0, 0.0
1, 1.0, 0.0, 0.0
`
	_, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrDuplicateNodeID)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestReadInpMeshDanglingReference(t *testing.T) {
	content := `*Node
1, 0.0, 0.0, 0.0
2, 1.0, 0.0, 0.0
3, 0.0, 1.0, 0.0
*Element, type=S3
1, 1, 2, 99
`
	_, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrDanglingReference)
}

func TestReadInpMeshMalformedNodeLine(t *testing.T) {
	content := `*Node
1, 0.0, abc, 0.0
`
	_, err := ReadInpMesh(createTempInpFile(t, content), false)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestReadInpMeshNoNodes(t *testing.T) {
	_, err := ReadInpMesh(createTempInpFile(t, "** comment only\n"), false)
	assert.Error(t, err)
}

func TestAbaqusElementTypes(t *testing.T) {
	cases := map[string]mesh.ElementType{
		"C3D4":  mesh.Tet4,
		"C3D8R": mesh.Hex8,
		"C3D6":  mesh.Wedge6,
		"S4R":   mesh.Quad4,
		"CPE4":  mesh.Quad4,
		"CAX3":  mesh.Tri3,
		"cps3":  mesh.Tri3,
	}
	for tag, want := range cases {
		got, ok := abaqusElementType(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
	_, ok := abaqusElementType("B31")
	assert.False(t, ok)
}
