package element

import (
	"testing"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
	"github.com/stretchr/testify/assert"
)

func TestGeomMapAffine(t *testing.T) {
	{ // Triangle map hits the vertices and inverts exactly
		X := utils.NewMatrix(3, 2, []float64{
			0, 0,
			0.5, 0,
			0, 0.5,
		})
		gm := NewGeomMap(types.Triangle, X)
		assert.InDeltaSlice(t, []float64{0, 0}, gm.Apply([]float64{-1, -1}), 1.e-14)
		assert.InDeltaSlice(t, []float64{0.5, 0}, gm.Apply([]float64{1, -1}), 1.e-14)
		assert.InDeltaSlice(t, []float64{0, 0.5}, gm.Apply([]float64{-1, 1}), 1.e-14)

		xi, ok := gm.Invert([]float64{0.2, 0.1})
		assert.True(t, ok)
		assert.InDeltaSlice(t, []float64{0.2, 0.1}, gm.Apply(xi), 1.e-12)

		// A point across the hypotenuse is rejected, not an error
		_, ok = gm.Invert([]float64{0.4, 0.4})
		assert.False(t, ok)
	}
	{ // Points on a shared facet are accepted from both sides
		lower := NewGeomMap(types.Triangle, utils.NewMatrix(3, 2, []float64{
			0, 0, 1, 0, 1, 1,
		}))
		upper := NewGeomMap(types.Triangle, utils.NewMatrix(3, 2, []float64{
			0, 0, 1, 1, 0, 1,
		}))
		onDiag := []float64{0.5, 0.5}
		_, ok := lower.Invert(onDiag)
		assert.True(t, ok)
		_, ok = upper.Invert(onDiag)
		assert.True(t, ok)
	}
	{ // Tetrahedron roundtrip
		X := utils.NewMatrix(4, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
		gm := NewGeomMap(types.Tetrahedron, X)
		xi, ok := gm.Invert([]float64{0.25, 0.25, 0.25})
		assert.True(t, ok)
		assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25}, gm.Apply(xi), 1.e-12)
	}
}

func TestGeomMapNewton(t *testing.T) {
	{ // Non-affine quad: Newton recovers reference coordinates
		X := utils.NewMatrix(4, 2, []float64{
			0, 0,
			1, 0.1,
			1.1, 1,
			-0.1, 0.9,
		})
		gm := NewGeomMap(types.Quadrilateral, X)
		for _, ref := range [][]float64{{0, 0}, {0.5, -0.3}, {-0.99, 0.99}, {1, 1}} {
			x := gm.Apply(ref)
			xi, ok := gm.Invert(x)
			assert.True(t, ok)
			assert.InDeltaSlice(t, ref, xi, 1.e-9)
		}
		// Far exterior point fails membership
		_, ok := gm.Invert([]float64{5, 5})
		assert.False(t, ok)
	}
	{ // Trilinear hex roundtrip with a perturbed top face
		X := utils.NewMatrix(8, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0.05, 0, 1,
			1, 0.05, 1,
			0.95, 1, 1,
			0, 0.95, 1,
		})
		gm := NewGeomMap(types.Hexahedron, X)
		for _, ref := range [][]float64{{0, 0, 0}, {0.4, -0.6, 0.8}, {-1, -1, -1}} {
			x := gm.Apply(ref)
			xi, ok := gm.Invert(x)
			assert.True(t, ok)
			assert.InDeltaSlice(t, ref, xi, 1.e-9)
		}
	}
}

func TestGeomMapVertexOrderMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewGeomMap(types.Triangle, utils.NewMatrix(4, 2))
	})
}
