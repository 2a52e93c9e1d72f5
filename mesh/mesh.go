package mesh

import (
	"fmt"
	"sync/atomic"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

var meshSerial uint64

/*
Mesh is an unstructured grid of cells of a single kind. Vertex ordering of
each cell follows the reference cell conventions of the element package:

	Line:          v0 (r=-1), v1 (r=+1)
	Triangle:      v0 (-1,-1), v1 (1,-1), v2 (-1,1), counterclockwise
	Quadrilateral: v0 (-1,-1), v1 (1,-1), v2 (1,1), v3 (-1,1), counterclockwise
	Tetrahedron:   v0 (-1,-1,-1), v1 (1,-1,-1), v2 (-1,1,-1), v3 (-1,-1,1)
	Hexahedron:    v0..v3 bottom face (t=-1) counterclockwise, v4..v7 top face

A Mesh is immutable once constructed; evaluation queries never mutate it.
*/
type Mesh struct {
	ID         uint64 // Serial number used as a stable cache key
	Dim        int    // Embedding dimension
	Kind       types.CellKind
	K          int          // Number of cells
	VX, VY, VZ utils.Vector // Vertex coordinates, VY/VZ empty below their dimension
	EToV       utils.Matrix // K x NumVerts cell to vertex connectivity
}

func NewMesh(kind types.CellKind, VX, VY, VZ utils.Vector, EToV utils.Matrix) (msh *Mesh) {
	var (
		K, nv = EToV.Dims()
		dim   = kind.Dim()
	)
	if nv != kind.NumVerts() {
		panic(fmt.Errorf("EToV has %d vertices per cell, %s needs %d", nv, kind, kind.NumVerts()))
	}
	if dim >= 2 && VY.Len() != VX.Len() {
		panic(fmt.Errorf("vertex coordinate lengths disagree: VX %d, VY %d", VX.Len(), VY.Len()))
	}
	if dim == 3 && VZ.Len() != VX.Len() {
		panic(fmt.Errorf("vertex coordinate lengths disagree: VX %d, VZ %d", VX.Len(), VZ.Len()))
	}
	msh = &Mesh{
		ID:   atomic.AddUint64(&meshSerial, 1),
		Dim:  dim,
		Kind: kind,
		K:    K,
		VX:   VX,
		VY:   VY,
		VZ:   VZ,
		EToV: EToV,
	}
	msh.EToV.SetReadOnly("EToV")
	return
}

func (msh *Mesh) NumVertices() int { return msh.VX.Len() }

// VertexCoord fills x with the coordinates of vertex v
func (msh *Mesh) VertexCoord(v int, x []float64) {
	x[0] = msh.VX.AtVec(v)
	if msh.Dim >= 2 {
		x[1] = msh.VY.AtVec(v)
	}
	if msh.Dim == 3 {
		x[2] = msh.VZ.AtVec(v)
	}
}

// CellVerts returns the global vertex indices of cell k
func (msh *Mesh) CellVerts(k int) (verts []int) {
	var (
		nv = msh.Kind.NumVerts()
	)
	verts = make([]int, nv)
	for i := 0; i < nv; i++ {
		verts[i] = int(msh.EToV.At(k, i))
	}
	return
}

// CellCoords returns an nv x dim matrix of the vertex coordinates of cell k
func (msh *Mesh) CellCoords(k int) (X utils.Matrix) {
	var (
		nv = msh.Kind.NumVerts()
		x  = make([]float64, msh.Dim)
	)
	X = utils.NewMatrix(nv, msh.Dim)
	for i, v := range msh.CellVerts(k) {
		msh.VertexCoord(v, x)
		X.SetRow(i, x)
	}
	return
}

// Centroid fills x with the vertex average of cell k
func (msh *Mesh) Centroid(k int, x []float64) {
	var (
		nv = msh.Kind.NumVerts()
		xv = make([]float64, msh.Dim)
	)
	for d := 0; d < msh.Dim; d++ {
		x[d] = 0
	}
	for _, v := range msh.CellVerts(k) {
		msh.VertexCoord(v, xv)
		for d := 0; d < msh.Dim; d++ {
			x[d] += xv[d]
		}
	}
	for d := 0; d < msh.Dim; d++ {
		x[d] /= float64(nv)
	}
}
