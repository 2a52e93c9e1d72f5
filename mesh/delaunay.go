package mesh

import (
	"fmt"

	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
	"github.com/pradeep-pyro/triangle"
)

// NewDelaunayMesh triangulates a 2D point cloud into a triangle mesh,
// useful for evaluating fields over scattered measurement locations
func NewDelaunayMesh(points [][2]float64) (msh *Mesh) {
	var (
		Nv = len(points)
	)
	if Nv < 3 {
		panic(fmt.Errorf("need at least 3 points to triangulate, have %d", Nv))
	}
	faces := triangle.Delaunay(points)
	if len(faces) == 0 {
		panic(fmt.Errorf("degenerate point cloud, no triangles produced"))
	}
	vxD, vyD := make([]float64, Nv), make([]float64, Nv)
	for i, p := range points {
		vxD[i], vyD[i] = p[0], p[1]
	}
	EToV := utils.NewMatrix(len(faces), 3)
	for k, f := range faces {
		// Ensure counterclockwise vertex ordering
		v0, v1, v2 := int(f[0]), int(f[1]), int(f[2])
		area2 := (vxD[v1]-vxD[v0])*(vyD[v2]-vyD[v0]) - (vxD[v2]-vxD[v0])*(vyD[v1]-vyD[v0])
		if area2 < 0 {
			v1, v2 = v2, v1
		}
		EToV.Set(k, 0, float64(v0))
		EToV.Set(k, 1, float64(v1))
		EToV.Set(k, 2, float64(v2))
	}
	msh = NewMesh(types.Triangle, utils.NewVector(Nv, vxD), utils.NewVector(Nv, vyD),
		utils.Vector{}, EToV)
	return
}
