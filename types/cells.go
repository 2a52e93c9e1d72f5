package types

import "fmt"

// CellKind tags the geometric shape of a mesh cell. The numbering of the
// vertices for each kind follows the reference cell conventions documented
// in the element package.
type CellKind uint8

const (
	Line CellKind = iota
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
)

func (ck CellKind) String() string {
	switch ck {
	case Line:
		return "Line"
	case Triangle:
		return "Triangle"
	case Quadrilateral:
		return "Quadrilateral"
	case Tetrahedron:
		return "Tetrahedron"
	case Hexahedron:
		return "Hexahedron"
	}
	return fmt.Sprintf("CellKind(%d)", uint8(ck))
}

// Dim is the topological dimension of the cell
func (ck CellKind) Dim() int {
	switch ck {
	case Line:
		return 1
	case Triangle, Quadrilateral:
		return 2
	case Tetrahedron, Hexahedron:
		return 3
	}
	panic(fmt.Errorf("unknown cell kind %d", uint8(ck)))
}

// NumVerts is the vertex count of the cell
func (ck CellKind) NumVerts() int {
	switch ck {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quadrilateral:
		return 4
	case Tetrahedron:
		return 4
	case Hexahedron:
		return 8
	}
	panic(fmt.Errorf("unknown cell kind %d", uint8(ck)))
}

// NumFaces is the number of codimension-one facets, used when matching
// face neighbors between cells
func (ck CellKind) NumFaces() int {
	switch ck {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quadrilateral:
		return 4
	case Tetrahedron:
		return 4
	case Hexahedron:
		return 6
	}
	panic(fmt.Errorf("unknown cell kind %d", uint8(ck)))
}

// FaceVertexCount is the number of vertices shared by two cells that are
// face neighbors of this kind
func (ck CellKind) FaceVertexCount() int {
	switch ck {
	case Line:
		return 1
	case Triangle, Quadrilateral:
		return 2
	case Tetrahedron:
		return 3
	case Hexahedron:
		return 4
	}
	panic(fmt.Errorf("unknown cell kind %d", uint8(ck)))
}

// IsSimplex reports whether the cell maps affinely from its reference cell
func (ck CellKind) IsSimplex() bool {
	switch ck {
	case Line, Triangle, Tetrahedron:
		return true
	}
	return false
}
