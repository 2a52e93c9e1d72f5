package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/jychang48/firedrake/element"
	"github.com/jychang48/firedrake/fespace"
	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/pointeval"
	"github.com/jychang48/firedrake/utils"
)

var (
	order   = 2
	levels  = 4
	familyF = "P"
	sampleN = 48
)

// Interpolation convergence study: refine a unit square mesh, interpolate a
// smooth field, sweep a sample grid through point evaluation and report RMS
// and max error per level with the observed order between levels. Lagrange
// interpolation of degree N should converge at order N+1.
func main() {
	orderPtr := flag.Int("order", order, "polynomial degree of the interpolation space")
	levelsPtr := flag.Int("levels", levels, "number of mesh refinement levels")
	familyPtr := flag.String("family", familyF, "element family, P (triangles) or Q (quads)")
	samplePtr := flag.Int("sampleN", sampleN, "sample grid is sampleN x sampleN points")
	flag.Parse()
	order = *orderPtr
	levels = *levelsPtr
	familyF = *familyPtr
	sampleN = *samplePtr

	family := element.Family(familyF)
	if family != element.P && family != element.Q {
		flag.Usage()
		os.Exit(1)
	}
	cs := NewConvergenceStudy("Interpolation", order, family)
	expr := func(x []float64) float64 {
		return math.Sin(math.Pi*x[0]) * math.Cos(math.Pi*x[1])
	}
	for lvl := 0; lvl < levels; lvl++ {
		n := 4 << lvl
		msh := mesh.UnitSquareMesh(n, n, family == element.Q)
		fs := fespace.NewFunctionSpace(msh, family, order)
		f := fespace.NewFunction(fs).Interpolate(expr)
		ev := pointeval.NewEvaluator(fs)
		rms, emax := sweepError(ev, f, expr)
		cs.Add(n, rms, emax)
	}
	cs.Print()
}

type ConvergenceStudy struct {
	title  string
	order  int
	family element.Family
	numPTS []int
	errRMS []float64
	errMAX []float64
}

func NewConvergenceStudy(title string, order int, family element.Family) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		order:  order,
		family: family,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, errRMS, errMAX float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.errRMS = append(cs.errRMS, errRMS)
	cs.errMAX = append(cs.errMAX, errMAX)
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Title = %s, Family = %s, Order = %d\n", cs.title, cs.family, cs.order)
	fmt.Printf("N, RMS, MAX, observed order (RMS)\n")
	for i := range cs.numPTS {
		if i == 0 {
			fmt.Printf("%d, %.3e, %.3e, -\n", cs.numPTS[i], cs.errRMS[i], cs.errMAX[i])
			continue
		}
		// Meshes refine by factors of two, so the observed order is the
		// base-2 log of the error ratio
		p := math.Log2(cs.errRMS[i-1] / cs.errRMS[i])
		fmt.Printf("%d, %.3e, %.3e, %5.2f\n", cs.numPTS[i], cs.errRMS[i], cs.errMAX[i], p)
	}
}

func sweepError(ev *pointeval.Evaluator, f *fespace.Function,
	expr func(x []float64) float64) (rms, emax float64) {
	var (
		n      = sampleN
		points = utils.NewMatrix(n*n, 2)
	)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			points.Set(j*n+i, 0, (float64(i)+0.5)/float64(n))
			points.Set(j*n+i, 1, (float64(j)+0.5)/float64(n))
		}
	}
	values, errs := ev.EvaluateBatch(f, points)
	if errs != nil {
		panic("sample point fell outside the unit square")
	}
	for p := 0; p < n*n; p++ {
		x := []float64{points.At(p, 0), points.At(p, 1)}
		diff := values.At(p, 0) - expr(x)
		rms += diff * diff
		emax = math.Max(emax, math.Abs(diff))
	}
	rms = math.Sqrt(rms / float64(n*n))
	return
}
