package fespace

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/jychang48/firedrake/element"
	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/utils"
)

var spaceSerial uint64

/*
FunctionSpace is a continuous Lagrange function space over a mesh: one
Basis shared by every cell, plus the local-to-global numbering that stitches
the per-cell nodes into shared degrees of freedom.

Global nodes are recovered by matching physical node coordinates across
cells within utils.NODETOL, so a node on a shared facet gets one global
number no matter how many cells touch it. Continuity of the interpolant
across facets follows directly.

ValueSize > 1 makes the space vector valued; components of one node are
numbered consecutively, dof = node*ValueSize + component.

The ID is a process-unique serial used by caches to key precomputed
evaluation state. It is never reused, so a cache entry can outlive the
space without aliasing a newer one.
*/
type FunctionSpace struct {
	ID        uint64
	Msh       *mesh.Mesh
	Basis     element.Basis
	Family    element.Family
	Degree    int
	ValueSize int
	NNodes    int          // Global node count
	L2G       utils.Matrix // K x Np local node -> global node
	DofCoords utils.Matrix // NNodes x dim physical node coordinates
	maps      []*element.GeomMap
}

// NewFunctionSpace builds a scalar Lagrange space of the given family and
// degree over msh
func NewFunctionSpace(msh *mesh.Mesh, family element.Family, degree int) (fs *FunctionSpace) {
	fs = newSpace(msh, family, degree, 1)
	return
}

// NewVectorFunctionSpace builds a vector-valued Lagrange space. The value
// size defaults to the mesh geometric dimension.
func NewVectorFunctionSpace(msh *mesh.Mesh, family element.Family, degree int,
	size ...int) (fs *FunctionSpace) {
	var (
		vs = msh.Dim
	)
	if len(size) != 0 {
		vs = size[0]
	}
	if vs < 1 {
		panic(fmt.Errorf("vector value size must be >= 1, have %d", vs))
	}
	fs = newSpace(msh, family, degree, vs)
	return
}

func newSpace(msh *mesh.Mesh, family element.Family, degree, valueSize int) (fs *FunctionSpace) {
	var (
		b  = element.NewBasis(family, msh.Kind, degree)
		Np = b.Np()
	)
	fs = &FunctionSpace{
		ID:        atomic.AddUint64(&spaceSerial, 1),
		Msh:       msh,
		Basis:     b,
		Family:    family,
		Degree:    degree,
		ValueSize: valueSize,
		L2G:       utils.NewMatrix(msh.K, Np),
		maps:      make([]*element.GeomMap, msh.K),
	}
	fs.numberDofs()
	return
}

/*
numberDofs maps every cell's reference nodes to physical space and
deduplicates them into global node numbers by coordinate matching. Nodes
are keyed on coordinates quantized to a NODETOL-scaled grid; a candidate
also probes the neighboring grid keys, so two renditions of the same facet
node cannot be split by landing on opposite sides of a quantization
boundary.

Numbering is deterministic: cells ascending, local nodes ascending, first
sighting wins.
*/
func (fs *FunctionSpace) numberDofs() {
	var (
		msh     = fs.Msh
		nodes   = fs.Basis.RefNodes()
		Np      = fs.Basis.Np()
		dim     = msh.Dim
		keyTol  = utils.NODETOL * (1 + fs.meshExtent())
		seen    = make(map[[3]int64]int)
		coords  []float64
		xi      = make([]float64, dim)
		nGlobal int
	)
	for k := 0; k < msh.K; k++ {
		fs.maps[k] = element.NewGeomMap(msh.Kind, msh.CellCoords(k))
		for i := 0; i < Np; i++ {
			for d := 0; d < dim; d++ {
				xi[d] = nodes.At(i, d)
			}
			x := fs.maps[k].Apply(xi)
			gid, found := lookupNode(seen, coords, x, keyTol, dim)
			if !found {
				gid = nGlobal
				nGlobal++
				seen[quantize(x, keyTol)] = gid
				coords = append(coords, x...)
			}
			fs.L2G.Set(k, i, float64(gid))
		}
	}
	fs.NNodes = nGlobal
	fs.DofCoords = utils.NewMatrix(nGlobal, dim, coords)
	fs.DofCoords.SetReadOnly("DofCoords")
	fs.L2G.SetReadOnly("L2G")
}

func quantize(x []float64, tol float64) (key [3]int64) {
	for d, v := range x {
		key[d] = int64(math.Round(v / tol))
	}
	return
}

// lookupNode probes the quantized key of x and its neighbor keys, accepting
// a hit only when the stored coordinates actually match within tol
func lookupNode(seen map[[3]int64]int, coords, x []float64, tol float64,
	dim int) (gid int, found bool) {
	var (
		base = quantize(x, tol)
		zero = []int64{0}
		full = []int64{-1, 0, 1}
	)
	probe := func(key [3]int64) bool {
		g, ok := seen[key]
		if !ok {
			return false
		}
		for d := 0; d < dim; d++ {
			if math.Abs(coords[g*dim+d]-x[d]) > tol {
				return false
			}
		}
		gid, found = g, true
		return true
	}
	// Unused key components are always zero on both sides, so only the
	// live dimensions fan out over neighbor offsets
	off := [3][]int64{full, zero, zero}
	if dim >= 2 {
		off[1] = full
	}
	if dim == 3 {
		off[2] = full
	}
	for _, di := range off[0] {
		for _, dj := range off[1] {
			for _, dk := range off[2] {
				if probe([3]int64{base[0] + di, base[1] + dj, base[2] + dk}) {
					return
				}
			}
		}
	}
	return
}

func (fs *FunctionSpace) meshExtent() (ext float64) {
	var (
		msh = fs.Msh
	)
	ext = msh.VX.Max() - msh.VX.Min()
	if msh.Dim > 1 {
		ext = math.Max(ext, msh.VY.Max()-msh.VY.Min())
	}
	if msh.Dim > 2 {
		ext = math.Max(ext, msh.VZ.Max()-msh.VZ.Min())
	}
	return
}

// NDof is the total number of scalar coefficients, nodes times value size
func (fs *FunctionSpace) NDof() int { return fs.NNodes * fs.ValueSize }

// GlobalNode returns the global node number of local node i in cell k
func (fs *FunctionSpace) GlobalNode(k, i int) int {
	return int(fs.L2G.At(k, i))
}

// CellMap returns the geometric map of cell k, built once at space
// construction and shared by all queries
func (fs *FunctionSpace) CellMap(k int) *element.GeomMap { return fs.maps[k] }
