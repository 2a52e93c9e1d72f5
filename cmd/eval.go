/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/jychang48/firedrake/InputParameters"
	"github.com/jychang48/firedrake/element"
	"github.com/jychang48/firedrake/fespace"
	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/pointeval"
	"github.com/jychang48/firedrake/readfiles"
	"github.com/jychang48/firedrake/utils"

	"github.com/spf13/cobra"
)

type ModelEval struct {
	GridFile string
	IPFile   string
	Graph    bool
	Profile  bool
	Delay    time.Duration
}

// Named closed-form fields selectable from the input file
var evalFields = map[string]func(x []float64) float64{
	"parabola": func(x []float64) float64 { return coord(x, 0)*(1-coord(x, 0)) + 0.5*coord(x, 1) },
	"linear":   func(x []float64) float64 { return coord(x, 0) + 2*coord(x, 1) - coord(x, 2) },
	"trig": func(x []float64) float64 {
		return math.Sin(math.Pi*coord(x, 0)) * math.Cos(math.Pi*coord(x, 1))
	},
}

func coord(x []float64, d int) (v float64) {
	if d < len(x) {
		v = x[d]
	}
	return
}

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a finite element field at query points",
	Long: `Evaluate a finite element field at query points.
Reads a mesh, interpolates a named field into a Lagrange space and reports
the interpolant value at each requested point, flagging points outside the
domain.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("eval called")
		me := &ModelEval{}
		if me.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if me.IPFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		me.Graph, _ = cmd.Flags().GetBool("graph")
		me.Profile, _ = cmd.Flags().GetBool("profile")
		dr, _ := cmd.Flags().GetInt("delay")
		me.Delay = time.Duration(dr) * time.Millisecond
		ep := processEvalInput(me)
		RunEval(me, ep)
	},
}

func processEvalInput(me *ModelEval) (ep *InputParameters.EvalParameters) {
	var (
		err error
	)
	if len(me.IPFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Non-affine quad sweep"
Family: Q            # P (simplex) or Q (tensor product)
PolynomialOrder: 2
GridFile: nonaffine_quad.msh
Field: parabola      # parabola, linear or trig
SampleN: 64
Points:
  - [0.2, 0.65]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(me.IPFile); err != nil {
		panic(err)
	}
	ep = &InputParameters.EvalParameters{}
	if err = ep.Parse(data); err != nil {
		panic(err)
	}
	ep.Print()
	return
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Gmsh 2.2 (.msh) format, overrides the input file")
	EvalCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file with the evaluation parameters")
	EvalCmd.Flags().BoolP("graph", "g", false, "display the mesh with the query points overlaid")
	EvalCmd.Flags().Bool("profile", false, "write a CPU profile of the evaluation")
	EvalCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the plot up")
}

func RunEval(me *ModelEval, ep *InputParameters.EvalParameters) {
	if me.Profile {
		defer profile.Start().Stop()
	}
	var (
		msh      *mesh.Mesh
		gridFile = ep.GridFile
		family   = element.Family(ep.Family)
	)
	if len(me.GridFile) != 0 {
		gridFile = me.GridFile
	}
	if family == "" {
		family = element.P
	}
	if len(gridFile) != 0 {
		msh = readfiles.ReadGmsh22(gridFile, true)
	} else {
		msh = mesh.UnitSquareMesh(8, 8, family == element.Q)
	}
	var fs *fespace.FunctionSpace
	if ep.VectorSize > 1 {
		fs = fespace.NewVectorFunctionSpace(msh, family, ep.PolynomialOrder, ep.VectorSize)
	} else {
		fs = fespace.NewFunctionSpace(msh, family, ep.PolynomialOrder)
	}
	expr, ok := evalFields[ep.Field]
	if !ok {
		panic(fmt.Errorf("unknown field %q", ep.Field))
	}
	f := fespace.NewFunction(fs)
	if fs.ValueSize > 1 {
		f.InterpolateVector(func(x []float64) (val []float64) {
			val = make([]float64, fs.ValueSize)
			for c := range val {
				val[c] = expr(x) * float64(c+1)
			}
			return
		})
	} else {
		f.Interpolate(expr)
	}
	ev := pointeval.NewEvaluator(fs)
	for _, pt := range ep.Points {
		val, err := ev.Evaluate(f, pt)
		var de *pointeval.DomainError
		if errors.As(err, &de) {
			fmt.Printf("point %v: outside the domain\n", pt)
			continue
		}
		fmt.Printf("point %v: %v\n", pt, val)
	}
	if ep.SampleN > 0 {
		sampleSweep(ev, f, ep)
	}
	if me.Graph && msh.Dim == 2 {
		plotQueries(msh, ep, me.Delay)
	}
}

// sampleSweep probes a uniform grid over the mesh bounding box and reports
// how much of it lands inside the domain
func sampleSweep(ev *pointeval.Evaluator, f *fespace.Function, ep *InputParameters.EvalParameters) {
	var (
		msh     = ev.FS.Msh
		n       = ep.SampleN
		start   = time.Now()
		outside int
	)
	if msh.Dim != 2 {
		fmt.Println("sample sweep supports 2D meshes only")
		return
	}
	points := utils.NewMatrix(n*n, 2)
	xmin, xmax := msh.VX.Min(), msh.VX.Max()
	ymin, ymax := msh.VY.Min(), msh.VY.Max()
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			points.Set(j*n+i, 0, xmin+(xmax-xmin)*float64(i)/float64(n-1))
			points.Set(j*n+i, 1, ymin+(ymax-ymin)*float64(j)/float64(n-1))
		}
	}
	pd := ep.ParallelDegree
	if pd == 0 {
		pd = 1
	}
	_, errs := ev.EvaluateBatch(f, points, pd)
	for _, err := range errs {
		if err != nil {
			outside++
		}
	}
	fmt.Printf("swept %dx%d points in %v, %d outside the domain\n",
		n, n, time.Since(start), outside)
}

func plotQueries(msh *mesh.Mesh, ep *InputParameters.EvalParameters, delay time.Duration) {
	var (
		np = len(ep.Points)
		X  = utils.NewVector(np)
		Y  = utils.NewVector(np)
	)
	for i, pt := range ep.Points {
		X.DataP[i] = pt[0]
		Y.DataP[i] = pt[1]
	}
	pm := &InputParameters.PlotMeta{Plot: true, Scale: 1.5}
	readfiles.PlotMesh(msh, X, Y, np != 0, pm)
	time.Sleep(delay)
}
