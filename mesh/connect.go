package mesh

import (
	"github.com/james-bowman/sparse"
)

/*
Connect computes face-neighbor adjacency between cells. Two cells are face
neighbors when they share a full facet's worth of vertices. The shared
vertex counts come from the product of the sparse cell-to-vertex incidence
matrix with its transpose, so the cost scales with the mesh connectivity
rather than with K squared.

The result maps each cell to its neighbor cells in ascending order.
*/
func (msh *Mesh) Connect() (EToE [][]int) {
	var (
		K      = msh.K
		Nv     = msh.NumVertices()
		nFVert = msh.Kind.FaceVertexCount()
	)
	SpCToV := sparse.NewDOK(K, Nv)
	for k := 0; k < K; k++ {
		for _, v := range msh.CellVerts(k) {
			SpCToV.Set(k, v, 1)
		}
	}
	SpCToC := sparse.NewCSR(K, K, nil, nil, nil)
	CToV := SpCToV.ToCSR()
	SpCToC.Mul(CToV, CToV.T())
	EToE = make([][]int, K)
	SpCToC.DoNonZero(func(k1, k2 int, shared float64) {
		if k1 != k2 && int(shared) >= nFVert {
			EToE[k1] = append(EToE[k1], k2)
		}
	})
	return
}
