package readfiles

import (
	"testing"

	"github.com/jychang48/firedrake/types"
	"github.com/stretchr/testify/assert"
)

func TestReadGmsh22(t *testing.T) {
	msh := ReadGmsh22("testdata/nonaffine_quad.msh", false)
	assert.Equal(t, types.Quadrilateral, msh.Kind)
	assert.Equal(t, 2, msh.Dim)
	assert.Equal(t, 9, msh.K)
	assert.Equal(t, 16, msh.NumVertices())
	// Boundary line elements are skipped, not counted as cells
	// First quad connects nodes 1 2 6 5 in file numbering, zero-based here
	assert.Equal(t, []int{0, 1, 5, 4}, msh.CellVerts(0))
	// Corner vertices are exact, the interior is perturbed
	assert.Equal(t, 0., msh.VX.AtVec(0))
	assert.Equal(t, 1., msh.VX.AtVec(15))
	assert.InDelta(t, 0.3633333333333333, msh.VX.AtVec(5), 1.e-15)
	assert.InDelta(t, 0.3033333333333333, msh.VY.AtVec(5), 1.e-15)
}
