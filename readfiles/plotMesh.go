package readfiles

import (
	"image/color"

	"github.com/jychang48/firedrake/InputParameters"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

// PlotMesh renders a 2D mesh with the query points overlaid. Quadrilateral
// cells are split along a diagonal for the triangle renderer; the split is
// display only and never feeds back into evaluation.
func PlotMesh(msh *mesh.Mesh, X, Y utils.Vector, plotPoints bool, pm *InputParameters.PlotMeta) (chart *chart2d.Chart2D) {
	var (
		points   []graphics2D.Point
		trimesh  graphics2D.TriMesh
		vxD, vyD = msh.VX.DataP, msh.VY.DataP
	)
	if msh.Dim != 2 {
		panic("mesh plotting supports 2D meshes only")
	}
	points = make([]graphics2D.Point, msh.NumVertices())
	for i, vx := range vxD {
		points[i].X[0] = float32(vx)
		points[i].X[1] = float32(vyD[i])
	}
	for k := 0; k < msh.K; k++ {
		verts := msh.CellVerts(k)
		tris := [][3]int{{verts[0], verts[1], verts[2]}}
		if msh.Kind == types.Quadrilateral {
			tris = append(tris, [3]int{verts[0], verts[2], verts[3]})
		}
		for _, tri := range tris {
			var gTri graphics2D.Triangle
			for i := 0; i < 3; i++ {
				gTri.Nodes[i] = int32(tri[i])
			}
			trimesh.Triangles = append(trimesh.Triangles, gTri)
			trimesh.Attributes = append(trimesh.Attributes, []float32{0, 0, 0})
		}
	}
	trimesh.Geometry = points
	colorMap := utils2.NewColorMap(0, 1, 1)
	scale := float32(1.5)
	if pm != nil && pm.Scale != 0 {
		scale = float32(pm.Scale)
	}
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(scale)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{
		R: 255,
		G: 255,
		B: 255,
		A: 0,
	}
	black := color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}
	if err := chart.AddTriMesh("Mesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("unable to add graph series")
	}
	var ptsGlyph chart2d.GlyphType
	ptsGlyph = chart2d.NoGlyph
	if plotPoints {
		ptsGlyph = chart2d.CircleGlyph
	}
	if err := chart.AddSeries("QueryPoints", X.DataP, Y.DataP,
		ptsGlyph, chart2d.NoLine, black); err != nil {
		panic(err)
	}
	return
}
