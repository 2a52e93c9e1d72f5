package pointeval

import (
	"fmt"

	"github.com/jychang48/firedrake/element"
	"github.com/jychang48/firedrake/fespace"
	"github.com/jychang48/firedrake/mesh"
)

// neighborSlack widens the reference membership test when deciding whether
// a rejected candidate's face neighbors are worth probing. A point missed
// by this much is a genuine exterior point, not a roundoff casualty.
const neighborSlack = 1.e-4

/*
Evaluator answers point queries against one FunctionSpace. Construction
does all the per-mesh work once: the bounding-box index over the cells and
the face-neighbor table. Queries afterward are read only, so one Evaluator
serves any number of goroutines concurrently.

The two-phase search never yields a false negative for a point inside the
mesh: the box index over-approximates each cell, and every surviving
candidate is confirmed or rejected by inverting its geometric map exactly.
*/
type Evaluator struct {
	FS   *fespace.FunctionSpace
	bbox *mesh.BBoxIndex
	etoe [][]int
}

func NewEvaluator(fs *fespace.FunctionSpace) (ev *Evaluator) {
	ev = &Evaluator{
		FS:   fs,
		bbox: mesh.NewBBoxIndex(fs.Msh),
		etoe: fs.Msh.Connect(),
	}
	return
}

/*
Locate finds the cell containing x and the reference coordinates of x
within it. Ties on shared facets resolve to the lowest cell id, so repeated
queries of a boundary point are deterministic.

If every box candidate rejects the point, the face neighbors of any
near-miss candidate are probed before giving up: on curved (non-affine)
cells a point can sit inside a neighbor whose padded box was missed by the
binning. Only after that does Locate return DomainError.
*/
func (ev *Evaluator) Locate(x []float64) (k int, xi []float64, err error) {
	var (
		fs = ev.FS
	)
	if len(x) != fs.Msh.Dim {
		panic(fmt.Errorf("query point has %d coordinates, mesh dimension is %d",
			len(x), fs.Msh.Dim))
	}
	candidates := ev.bbox.FindCandidates(x)
	var nearMiss []int
	for _, c := range candidates {
		cxi, ok := fs.CellMap(c).Invert(x)
		if ok {
			k, xi = c, cxi
			return
		}
		if fs.CellMap(c).NearReference(cxi, neighborSlack) {
			nearMiss = append(nearMiss, c)
		}
	}
	tried := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		tried[c] = true
	}
	for _, c := range nearMiss {
		for _, nbr := range ev.etoe[c] {
			if tried[nbr] {
				continue
			}
			tried[nbr] = true
			cxi, ok := fs.CellMap(nbr).Invert(x)
			if ok {
				k, xi = nbr, cxi
				return
			}
		}
	}
	k = -1
	err = &DomainError{X: append([]float64{}, x...)}
	return
}

/*
Evaluate computes the value of f at the physical point x. The result always
has ValueSize entries; scalar spaces return a one-entry slice. A point
outside the mesh returns DomainError with the value slice nil.

Mixing a Function from a different space than the Evaluator was built for
is a programming error and panics.
*/
func (ev *Evaluator) Evaluate(f *fespace.Function, x []float64) (val []float64, err error) {
	var (
		fs = ev.FS
	)
	if f.FS != fs {
		panic(fmt.Errorf("function belongs to space %d, evaluator built for space %d",
			f.FS.ID, fs.ID))
	}
	k, xi, err := ev.Locate(x)
	if err != nil {
		return
	}
	val = ev.evaluateAt(f, k, xi)
	return
}

// EvaluateInCell skips the search when the caller already knows the cell,
// as in repeated probes along a characteristic within one cell
func (ev *Evaluator) EvaluateInCell(f *fespace.Function, k int, x []float64) (val []float64, err error) {
	var (
		fs = ev.FS
	)
	xi, ok := fs.CellMap(k).Invert(x)
	if !ok {
		err = &DomainError{X: append([]float64{}, x...)}
		return
	}
	val = ev.evaluateAt(f, k, xi)
	return
}

func (ev *Evaluator) evaluateAt(f *fespace.Function, k int, xi []float64) (val []float64) {
	var (
		fs      = ev.FS
		weights = fs.Basis.EvaluateBasis(xi)
		local   = make([]float64, fs.Basis.Np())
	)
	val = make([]float64, fs.ValueSize)
	for c := 0; c < fs.ValueSize; c++ {
		f.LocalCoeffs(k, c, local)
		for i, w := range weights {
			val[c] += w * local[i]
		}
	}
	return
}

// Basis re-exports the space's basis for callers that contract the weights
// themselves
func (ev *Evaluator) Basis() element.Basis { return ev.FS.Basis }
