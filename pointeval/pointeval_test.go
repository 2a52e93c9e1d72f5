package pointeval

import (
	"errors"
	"math"
	"testing"

	"github.com/jychang48/firedrake/element"
	"github.com/jychang48/firedrake/fespace"
	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/readfiles"
	"github.com/jychang48/firedrake/utils"
	"github.com/stretchr/testify/assert"
)

func TestInterval1D(t *testing.T) {
	var (
		msh  = mesh.UnitIntervalMesh(5)
		fs   = fespace.NewFunctionSpace(msh, element.P, 3)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0]*x[0]*x[0] - 2*x[0] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	// A cubic is exactly representable in P3, so evaluation is exact at any
	// point, cell interiors and cell boundaries alike
	for _, x := range []float64{0, 0.1, 0.2, 0.5, 0.73, 1} {
		val, err := ev.Evaluate(f, []float64{x})
		assert.NoError(t, err)
		assert.Len(t, val, 1)
		assert.InDelta(t, expr([]float64{x}), val[0], 1.e-12)
	}
	_, err := ev.Evaluate(f, []float64{1.5})
	var de *DomainError
	assert.True(t, errors.As(err, &de))
}

func TestTriangleP2(t *testing.T) {
	var (
		msh  = mesh.UnitSquareMesh(2, 2, false)
		fs   = fespace.NewFunctionSpace(msh, element.P, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0]*(1-x[0]) + 0.5*x[1] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	val, err := ev.Evaluate(f, []float64{0.2, 0.65})
	assert.NoError(t, err)
	assert.InDelta(t, 0.485, val[0], 1.e-12)

	// Corners, edges and the triangulation diagonal are all in the domain
	for _, x := range [][]float64{
		{0, 0}, {1, 1}, {0.5, 0.5}, {0.25, 0.25}, {1, 0.3}, {0.5, 0},
	} {
		val, err = ev.Evaluate(f, x)
		assert.NoError(t, err)
		assert.InDeltaf(t, expr(x), val[0], 1.e-12, "point %v", x)
	}
}

func TestQuadQ2(t *testing.T) {
	var (
		msh  = mesh.UnitSquareMesh(2, 2, true)
		fs   = fespace.NewFunctionSpace(msh, element.Q, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0]*(1-x[0]) + 0.5*x[1] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	val, err := ev.Evaluate(f, []float64{0.12, 0.12})
	assert.NoError(t, err)
	assert.InDelta(t, expr([]float64{0.12, 0.12}), val[0], 1.e-12)
}

func TestNonAffineQuadSweep(t *testing.T) {
	var (
		msh  = readfiles.ReadGmsh22("../readfiles/testdata/nonaffine_quad.msh", false)
		fs   = fespace.NewFunctionSpace(msh, element.Q, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0] + 2*x[1] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
		n    = 64
	)
	// The interior vertices are perturbed, so cell maps are genuinely
	// bilinear and every containment test goes through Newton. The domain
	// boundary stays the exact unit square, so the full sweep must succeed.
	points := utils.NewMatrix(n*n, 2)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			points.Set(j*n+i, 0, float64(i)/float64(n-1))
			points.Set(j*n+i, 1, float64(j)/float64(n-1))
		}
	}
	values, errs := ev.EvaluateBatch(f, points)
	assert.Nil(t, errs)
	// A linear function survives bilinear interpolation exactly
	for p := 0; p < n*n; p++ {
		want := points.At(p, 0) + 2*points.At(p, 1)
		assert.InDeltaf(t, want, values.At(p, 0), 1.e-10, "point %d", p)
	}
}

func TestVectorP2(t *testing.T) {
	var (
		msh = mesh.UnitSquareMesh(3, 3, false)
		fs  = fespace.NewVectorFunctionSpace(msh, element.P, 2)
		ev  = NewEvaluator(fs)
		f   = fespace.NewFunction(fs).InterpolateVector(func(x []float64) []float64 {
			return []float64{x[0] * x[1], x[0] - x[1]*x[1]}
		})
	)
	val, err := ev.Evaluate(f, []float64{0.41, 0.77})
	assert.NoError(t, err)
	assert.Len(t, val, 2)
	assert.InDelta(t, 0.41*0.77, val[0], 1.e-12)
	assert.InDelta(t, 0.41-0.77*0.77, val[1], 1.e-12)
}

func TestCubeP2(t *testing.T) {
	var (
		msh  = mesh.UnitCubeMesh(2, 2, 2)
		fs   = fespace.NewFunctionSpace(msh, element.P, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0]*x[0] + x[1] - x[2] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	for _, x := range [][]float64{
		{0.3, 0.4, 0.5}, {0, 0, 0}, {1, 1, 1}, {0.5, 0.5, 0.5},
	} {
		val, err := ev.Evaluate(f, x)
		assert.NoError(t, err)
		assert.InDeltaf(t, expr(x), val[0], 1.e-11, "point %v", x)
	}
}

func TestHexQ2(t *testing.T) {
	var (
		msh  = mesh.UnitCubeMesh(2, 2, 2, true)
		fs   = fespace.NewFunctionSpace(msh, element.Q, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0]*x[1]*x[2] + x[2]*x[2] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	val, err := ev.Evaluate(f, []float64{0.21, 0.83, 0.44})
	assert.NoError(t, err)
	assert.InDelta(t, expr([]float64{0.21, 0.83, 0.44}), val[0], 1.e-11)
}

func TestDomainError(t *testing.T) {
	var (
		msh = mesh.UnitSquareMesh(2, 2, false)
		fs  = fespace.NewFunctionSpace(msh, element.P, 1)
		ev  = NewEvaluator(fs)
		f   = fespace.NewFunction(fs).Interpolate(func(x []float64) float64 { return 1 })
	)
	for _, x := range [][]float64{{-0.1, 0.5}, {0.5, 1.1}, {2, 2}} {
		val, err := ev.Evaluate(f, x)
		assert.Nil(t, val)
		var de *DomainError
		assert.True(t, errors.As(err, &de))
		assert.Equal(t, x, de.X)
		assert.Contains(t, err.Error(), "not in the domain")
	}
	// A whisker outside still fails, it is not in any cell
	_, err := ev.Evaluate(f, []float64{0.5, -1.e-3})
	assert.Error(t, err)
}

func TestBoundaryDeterminism(t *testing.T) {
	var (
		msh = mesh.UnitSquareMesh(2, 2, false)
		fs  = fespace.NewFunctionSpace(msh, element.P, 2)
		ev  = NewEvaluator(fs)
	)
	// A point on a shared facet resolves to the lowest accepting cell id,
	// identically on every query
	k0, _, err := ev.Locate([]float64{0.5, 0.25})
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		k, _, err := ev.Locate([]float64{0.5, 0.25})
		assert.NoError(t, err)
		assert.Equal(t, k0, k)
	}
}

func TestEvaluateInCell(t *testing.T) {
	var (
		msh  = mesh.UnitSquareMesh(2, 2, false)
		fs   = fespace.NewFunctionSpace(msh, element.P, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return x[0] + x[1] }
		f    = fespace.NewFunction(fs).Interpolate(expr)
	)
	k, _, err := ev.Locate([]float64{0.1, 0.1})
	assert.NoError(t, err)
	val, err := ev.EvaluateInCell(f, k, []float64{0.1, 0.1})
	assert.NoError(t, err)
	assert.InDelta(t, 0.2, val[0], 1.e-12)
	// The far corner is not in this cell
	_, err = ev.EvaluateInCell(f, k, []float64{0.9, 0.9})
	assert.Error(t, err)
}

func TestDimensionMismatchPanics(t *testing.T) {
	var (
		msh = mesh.UnitSquareMesh(2, 2, false)
		fs  = fespace.NewFunctionSpace(msh, element.P, 1)
		ev  = NewEvaluator(fs)
		f   = fespace.NewFunction(fs).Interpolate(func(x []float64) float64 { return 0 })
	)
	assert.Panics(t, func() { _, _ = ev.Evaluate(f, []float64{0.5}) })

	other := fespace.NewFunctionSpace(msh, element.P, 2)
	g := fespace.NewFunction(other).Interpolate(func(x []float64) float64 { return 0 })
	assert.Panics(t, func() { _, _ = ev.Evaluate(g, []float64{0.5, 0.5}) })
}

func TestCache(t *testing.T) {
	var (
		msh = mesh.UnitIntervalMesh(3)
		fs  = fespace.NewFunctionSpace(msh, element.P, 2)
		c   = NewCache()
	)
	ev1 := c.Evaluator(fs)
	ev2 := c.Evaluator(fs)
	assert.Same(t, ev1, ev2)
	assert.Equal(t, 1, c.Len())

	c.Invalidate(fs)
	ev3 := c.Evaluator(fs)
	assert.NotSame(t, ev1, ev3)

	// Distinct spaces over the same mesh cache independently
	fs2 := fespace.NewFunctionSpace(msh, element.P, 3)
	c.Evaluator(fs2)
	assert.Equal(t, 2, c.Len())
	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
}

func TestBatchRecordsPerPointErrors(t *testing.T) {
	var (
		msh = mesh.UnitSquareMesh(2, 2, false)
		fs  = fespace.NewFunctionSpace(msh, element.P, 1)
		ev  = NewEvaluator(fs)
		f   = fespace.NewFunction(fs).Interpolate(func(x []float64) float64 {
			return x[0]
		})
	)
	points := utils.NewMatrix(3, 2, []float64{
		0.25, 0.25,
		5, 5,
		0.75, 0.75,
	})
	values, errs := ev.EvaluateBatch(f, points, 2)
	assert.NotNil(t, errs)
	assert.NoError(t, errs[0])
	assert.Error(t, errs[1])
	assert.NoError(t, errs[2])
	assert.InDelta(t, 0.25, values.At(0, 0), 1.e-12)
	assert.Equal(t, 0., values.At(1, 0))
	assert.InDelta(t, 0.75, values.At(2, 0), 1.e-12)
}

func TestConcurrentQueries(t *testing.T) {
	var (
		msh  = mesh.UnitSquareMesh(4, 4, false)
		fs   = fespace.NewFunctionSpace(msh, element.P, 2)
		ev   = NewEvaluator(fs)
		expr = func(x []float64) float64 { return math.Sin(x[0]) * math.Cos(x[1]) }
		f    = fespace.NewFunction(fs).Interpolate(expr)
		n    = 32
	)
	// Shared-evaluator queries from many goroutines via the batch path
	points := utils.NewMatrix(n*n, 2)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			points.Set(j*n+i, 0, (float64(i)+0.5)/float64(n))
			points.Set(j*n+i, 1, (float64(j)+0.5)/float64(n))
		}
	}
	values, errs := ev.EvaluateBatch(f, points, 8)
	assert.Nil(t, errs)
	// P2 interpolation of a smooth function on a 4x4 mesh is accurate to
	// interpolation error, not machine precision
	for p := 0; p < n*n; p++ {
		want := expr([]float64{points.At(p, 0), points.At(p, 1)})
		assert.InDelta(t, want, values.At(p, 0), 5.e-3)
	}
}
