package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitMeshes(t *testing.T) {
	{ // Interval
		msh := UnitIntervalMesh(4)
		assert.Equal(t, 4, msh.K)
		assert.Equal(t, 5, msh.NumVertices())
		assert.Equal(t, 1, msh.Dim)
		x := make([]float64, 1)
		msh.Centroid(2, x)
		assert.True(t, near(x[0], 0.625))
	}
	{ // Triangles
		msh := UnitSquareMesh(2, 2, false)
		assert.Equal(t, 8, msh.K)
		assert.Equal(t, 9, msh.NumVertices())
		// All triangles are counterclockwise
		for k := 0; k < msh.K; k++ {
			X := msh.CellCoords(k)
			area2 := (X.At(1, 0)-X.At(0, 0))*(X.At(2, 1)-X.At(0, 1)) -
				(X.At(2, 0)-X.At(0, 0))*(X.At(1, 1)-X.At(0, 1))
			assert.Greater(t, area2, 0.)
		}
	}
	{ // Quads
		msh := UnitSquareMesh(3, 2, true)
		assert.Equal(t, 6, msh.K)
		assert.Equal(t, 12, msh.NumVertices())
		x := make([]float64, 2)
		msh.Centroid(0, x)
		assert.True(t, near(x[0], 1./6.))
		assert.True(t, near(x[1], 0.25))
	}
	{ // Tets fill the cube: six per subcube
		msh := UnitCubeMesh(2, 2, 2)
		assert.Equal(t, 48, msh.K)
		assert.Equal(t, 27, msh.NumVertices())
	}
	{ // Hexes
		msh := UnitCubeMesh(2, 1, 1, true)
		assert.Equal(t, 2, msh.K)
		assert.Equal(t, 12, msh.NumVertices())
	}
	{ // Serial IDs are distinct
		m1 := UnitIntervalMesh(1)
		m2 := UnitIntervalMesh(1)
		assert.NotEqual(t, m1.ID, m2.ID)
	}
}

func TestBBoxIndex(t *testing.T) {
	msh := UnitSquareMesh(4, 4, false)
	bi := NewBBoxIndex(msh)
	{ // Interior point yields candidates including its true cell
		cells := bi.FindCandidates([]float64{0.1, 0.1})
		assert.NotEmpty(t, cells)
		assert.Contains(t, cells, 0)
		// Ascending, deterministic ordering
		for i := 1; i < len(cells); i++ {
			assert.Greater(t, cells[i], cells[i-1])
		}
	}
	{ // Far outside point yields nothing
		cells := bi.FindCandidates([]float64{2.5, -1.0})
		assert.Empty(t, cells)
	}
	{ // Shared vertex point is found in all incident cell boxes
		cells := bi.FindCandidates([]float64{0.5, 0.5})
		assert.GreaterOrEqual(t, len(cells), 4)
	}
}

func TestConnect(t *testing.T) {
	{ // Interval chain
		msh := UnitIntervalMesh(4)
		EToE := msh.Connect()
		assert.Equal(t, []int{1}, EToE[0])
		assert.Equal(t, []int{0, 2}, EToE[1])
		assert.Equal(t, []int{2}, EToE[3])
	}
	{ // Triangle pair in each square shares the diagonal
		msh := UnitSquareMesh(1, 1, false)
		EToE := msh.Connect()
		assert.Equal(t, []int{1}, EToE[0])
		assert.Equal(t, []int{0}, EToE[1])
	}
	{ // Quads in a row
		msh := UnitSquareMesh(3, 1, true)
		EToE := msh.Connect()
		assert.Equal(t, []int{1}, EToE[0])
		assert.Equal(t, []int{0, 2}, EToE[1])
	}
}

func TestDelaunayMesh(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5},
	}
	msh := NewDelaunayMesh(points)
	assert.Equal(t, 4, msh.K)
	assert.Equal(t, 5, msh.NumVertices())
	// Counterclockwise orientation enforced
	for k := 0; k < msh.K; k++ {
		X := msh.CellCoords(k)
		area2 := (X.At(1, 0)-X.At(0, 0))*(X.At(2, 1)-X.At(0, 1)) -
			(X.At(2, 0)-X.At(0, 0))*(X.At(1, 1)-X.At(0, 1))
		assert.Greater(t, area2, 0.)
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*(math.Abs(a)+1) {
		l = true
	}
	return
}
