package mesh

import (
	"fmt"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

// UnitIntervalMesh builds n equal cells spanning [0,1]
func UnitIntervalMesh(n int) (msh *Mesh) {
	if n < 1 {
		panic(fmt.Errorf("need at least one cell, have %d", n))
	}
	VX := utils.NewVector(n + 1).Linspace(0, 1)
	EToV := utils.NewMatrix(n, 2)
	for k := 0; k < n; k++ {
		EToV.Set(k, 0, float64(k))
		EToV.Set(k, 1, float64(k+1))
	}
	msh = NewMesh(types.Line, VX, utils.Vector{}, utils.Vector{}, EToV)
	return
}

// UnitSquareMesh builds an nx x ny structured grid on [0,1]^2, either of
// quadrilaterals or with each square split into two triangles
func UnitSquareMesh(nx, ny int, quadrilateral bool) (msh *Mesh) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("need at least one cell per direction, have %d x %d", nx, ny))
	}
	var (
		Nv       = (nx + 1) * (ny + 1)
		vxD, vyD = make([]float64, Nv), make([]float64, Nv)
		vid      = func(i, j int) int { return j*(nx+1) + i }
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			vxD[vid(i, j)] = float64(i) / float64(nx)
			vyD[vid(i, j)] = float64(j) / float64(ny)
		}
	}
	VX, VY := utils.NewVector(Nv, vxD), utils.NewVector(Nv, vyD)
	if quadrilateral {
		EToV := utils.NewMatrix(nx*ny, 4)
		var k int
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				EToV.Set(k, 0, float64(vid(i, j)))
				EToV.Set(k, 1, float64(vid(i+1, j)))
				EToV.Set(k, 2, float64(vid(i+1, j+1)))
				EToV.Set(k, 3, float64(vid(i, j+1)))
				k++
			}
		}
		msh = NewMesh(types.Quadrilateral, VX, VY, utils.Vector{}, EToV)
		return
	}
	// Two counterclockwise triangles per square, split along the up diagonal
	EToV := utils.NewMatrix(2*nx*ny, 3)
	var k int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			EToV.Set(k, 0, float64(vid(i, j)))
			EToV.Set(k, 1, float64(vid(i+1, j)))
			EToV.Set(k, 2, float64(vid(i+1, j+1)))
			k++
			EToV.Set(k, 0, float64(vid(i, j)))
			EToV.Set(k, 1, float64(vid(i+1, j+1)))
			EToV.Set(k, 2, float64(vid(i, j+1)))
			k++
		}
	}
	msh = NewMesh(types.Triangle, VX, VY, utils.Vector{}, EToV)
	return
}

// kuhnTets lists the six tetrahedra that tile a unit cube, each sharing the
// main diagonal from corner 000 to corner 111. Corners are encoded as
// (dx, dy, dz) offsets.
var kuhnTets = [6][4][3]int{
	{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {1, 1, 1}},
}

// UnitCubeMesh builds an nx x ny x nz structured grid on [0,1]^3 of
// hexahedra, or with each subcube split into six tetrahedra
func UnitCubeMesh(nx, ny, nz int, hexahedral ...bool) (msh *Mesh) {
	if nx < 1 || ny < 1 || nz < 1 {
		panic(fmt.Errorf("need at least one cell per direction, have %d x %d x %d", nx, ny, nz))
	}
	var (
		Nv  = (nx + 1) * (ny + 1) * (nz + 1)
		vxD = make([]float64, Nv)
		vyD = make([]float64, Nv)
		vzD = make([]float64, Nv)
		vid = func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i }
	)
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				vxD[vid(i, j, k)] = float64(i) / float64(nx)
				vyD[vid(i, j, k)] = float64(j) / float64(ny)
				vzD[vid(i, j, k)] = float64(k) / float64(nz)
			}
		}
	}
	VX := utils.NewVector(Nv, vxD)
	VY := utils.NewVector(Nv, vyD)
	VZ := utils.NewVector(Nv, vzD)
	if len(hexahedral) != 0 && hexahedral[0] {
		EToV := utils.NewMatrix(nx*ny*nz, 8)
		var c int
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					EToV.Set(c, 0, float64(vid(i, j, k)))
					EToV.Set(c, 1, float64(vid(i+1, j, k)))
					EToV.Set(c, 2, float64(vid(i+1, j+1, k)))
					EToV.Set(c, 3, float64(vid(i, j+1, k)))
					EToV.Set(c, 4, float64(vid(i, j, k+1)))
					EToV.Set(c, 5, float64(vid(i+1, j, k+1)))
					EToV.Set(c, 6, float64(vid(i+1, j+1, k+1)))
					EToV.Set(c, 7, float64(vid(i, j+1, k+1)))
					c++
				}
			}
		}
		msh = NewMesh(types.Hexahedron, VX, VY, VZ, EToV)
		return
	}
	EToV := utils.NewMatrix(6*nx*ny*nz, 4)
	var c int
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for _, tet := range kuhnTets {
					for n, d := range tet {
						EToV.Set(c, n, float64(vid(i+d[0], j+d[1], k+d[2])))
					}
					c++
				}
			}
		}
	}
	msh = NewMesh(types.Tetrahedron, VX, VY, VZ, EToV)
	return
}
