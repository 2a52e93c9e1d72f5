package mesh

import (
	"math"

	"github.com/jychang48/firedrake/utils"
)

/*
BBoxIndex accelerates candidate-cell lookup for point location. Each cell
gets an axis-aligned bounding box over its vertices, padded so that the
bulge of multilinear (quad/hex) cells cannot produce a false negative.
Cells are binned on a uniform grid; a lookup reports every cell whose
padded box contains the query point, in ascending cell order.

The index is built once and is safe for concurrent readers.
*/
type BBoxIndex struct {
	msh      *Mesh
	Lo, Hi   utils.Matrix // K x dim padded cell bounds
	gLo, gHi []float64    // Bounds of the whole mesh
	nbins    []int        // Bins per dimension
	bins     [][]int      // Flattened bin -> cells overlapping it, ascending
}

// BBoxPadFraction scales the cell diagonal into the box padding. Multilinear
// cell edges are straight lines between vertices, so the vertex hull already
// bounds the geometry; the padding covers roundoff and boundary queries.
const BBoxPadFraction = 1.e-8

func NewBBoxIndex(msh *Mesh) (bi *BBoxIndex) {
	var (
		K, dim = msh.K, msh.Dim
		x      = make([]float64, dim)
	)
	bi = &BBoxIndex{
		msh:   msh,
		Lo:    utils.NewMatrix(K, dim),
		Hi:    utils.NewMatrix(K, dim),
		gLo:   make([]float64, dim),
		gHi:   make([]float64, dim),
		nbins: make([]int, dim),
	}
	for d := 0; d < dim; d++ {
		bi.gLo[d], bi.gHi[d] = math.Inf(1), math.Inf(-1)
	}
	for k := 0; k < K; k++ {
		lo := make([]float64, dim)
		hi := make([]float64, dim)
		for d := 0; d < dim; d++ {
			lo[d], hi[d] = math.Inf(1), math.Inf(-1)
		}
		for _, v := range msh.CellVerts(k) {
			msh.VertexCoord(v, x)
			for d := 0; d < dim; d++ {
				lo[d] = math.Min(lo[d], x[d])
				hi[d] = math.Max(hi[d], x[d])
			}
		}
		var diag2 float64
		for d := 0; d < dim; d++ {
			diag2 += (hi[d] - lo[d]) * (hi[d] - lo[d])
		}
		pad := utils.NODETOL + BBoxPadFraction*math.Sqrt(diag2)
		for d := 0; d < dim; d++ {
			lo[d] -= pad
			hi[d] += pad
			bi.gLo[d] = math.Min(bi.gLo[d], lo[d])
			bi.gHi[d] = math.Max(bi.gHi[d], hi[d])
		}
		bi.Lo.SetRow(k, lo)
		bi.Hi.SetRow(k, hi)
	}
	bi.Lo.SetReadOnly("BBoxLo")
	bi.Hi.SetReadOnly("BBoxHi")
	bi.buildBins()
	return
}

func (bi *BBoxIndex) buildBins() {
	var (
		dim   = bi.msh.Dim
		K     = bi.msh.K
		total = 1
	)
	// Aim for order one cell per bin along each dimension
	n := int(math.Ceil(math.Pow(float64(K), 1./float64(dim))))
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}
	for d := 0; d < dim; d++ {
		if bi.gHi[d]-bi.gLo[d] < utils.NODETOL {
			bi.nbins[d] = 1
		} else {
			bi.nbins[d] = n
		}
		total *= bi.nbins[d]
	}
	bi.bins = make([][]int, total)
	for k := 0; k < K; k++ {
		iLo := make([]int, dim)
		iHi := make([]int, dim)
		for d := 0; d < dim; d++ {
			iLo[d] = bi.binOf(d, bi.Lo.At(k, d))
			iHi[d] = bi.binOf(d, bi.Hi.At(k, d))
		}
		// Insert the cell into every bin its padded box overlaps
		bi.forEachBin(iLo, iHi, func(flat int) {
			bi.bins[flat] = append(bi.bins[flat], k)
		})
	}
}

func (bi *BBoxIndex) binOf(d int, x float64) (i int) {
	var (
		width = bi.gHi[d] - bi.gLo[d]
	)
	if width < utils.NODETOL {
		return 0
	}
	i = int(float64(bi.nbins[d]) * (x - bi.gLo[d]) / width)
	if i < 0 {
		i = 0
	}
	if i > bi.nbins[d]-1 {
		i = bi.nbins[d] - 1
	}
	return
}

func (bi *BBoxIndex) forEachBin(iLo, iHi []int, f func(flat int)) {
	var (
		dim = bi.msh.Dim
	)
	switch dim {
	case 1:
		for i := iLo[0]; i <= iHi[0]; i++ {
			f(i)
		}
	case 2:
		for j := iLo[1]; j <= iHi[1]; j++ {
			for i := iLo[0]; i <= iHi[0]; i++ {
				f(i + bi.nbins[0]*j)
			}
		}
	case 3:
		for k := iLo[2]; k <= iHi[2]; k++ {
			for j := iLo[1]; j <= iHi[1]; j++ {
				for i := iLo[0]; i <= iHi[0]; i++ {
					f(i + bi.nbins[0]*(j+bi.nbins[1]*k))
				}
			}
		}
	}
}

// FindCandidates returns the cells whose padded bounding box contains x,
// in ascending cell order. A nil result means x is outside the mesh bounds.
func (bi *BBoxIndex) FindCandidates(x []float64) (cells []int) {
	var (
		dim = bi.msh.Dim
	)
	for d := 0; d < dim; d++ {
		if x[d] < bi.gLo[d] || x[d] > bi.gHi[d] {
			return
		}
	}
	iBin := make([]int, dim)
	for d := 0; d < dim; d++ {
		iBin[d] = bi.binOf(d, x[d])
	}
	var flat int
	switch dim {
	case 1:
		flat = iBin[0]
	case 2:
		flat = iBin[0] + bi.nbins[0]*iBin[1]
	case 3:
		flat = iBin[0] + bi.nbins[0]*(iBin[1]+bi.nbins[1]*iBin[2])
	}
	for _, k := range bi.bins[flat] {
		inside := true
		for d := 0; d < dim; d++ {
			if x[d] < bi.Lo.At(k, d) || x[d] > bi.Hi.At(k, d) {
				inside = false
				break
			}
		}
		if inside {
			cells = append(cells, k)
		}
	}
	return
}
