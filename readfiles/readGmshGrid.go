package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jychang48/firedrake/mesh"
	"github.com/jychang48/firedrake/types"
	"github.com/jychang48/firedrake/utils"
)

// Gmsh MSH element type codes, from the format reference:
// https://gmsh.info/doc/texinfo/gmsh.html#MSH-file-format
type GmshElementType uint8

const (
	ELType_LINE          GmshElementType = 1
	ELType_Triangle                      = 2
	ELType_Quadrilateral                 = 3
	ELType_Tetrahedral                   = 4
	ELType_Hexahedral                    = 5
	ELType_Point                         = 15
)

var gmshCellKind = map[GmshElementType]types.CellKind{
	ELType_LINE:          types.Line,
	ELType_Triangle:      types.Triangle,
	ELType_Quadrilateral: types.Quadrilateral,
	ELType_Tetrahedral:   types.Tetrahedron,
	ELType_Hexahedral:    types.Hexahedron,
}

/*
ReadGmsh22 reads an ASCII Gmsh MSH 2.2 file into a Mesh. The cells are the
highest-dimension elements in the file; lower-dimension elements are the
usual boundary tagging and are skipped. Gmsh vertex ordering for every
supported element type coincides with the biunit reference ordering used
here, so connectivity passes through unchanged apart from the node id
remap.
*/
func ReadGmsh22(filename string, verbose bool) (msh *mesh.Mesh) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading Gmsh 2.2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	reader := bufio.NewReader(file)

	readGmshHeader(reader)
	nodeIDs, X, Y, Z := readGmshNodes(reader)
	kind, conn := readGmshElements(reader, nodeIDs)

	var (
		Nv   = len(X)
		K    = len(conn) / kind.NumVerts()
		VX   = utils.NewVector(Nv, X)
		VY   = utils.NewVector(Nv, Y)
		VZ   utils.Vector
		EToV = utils.NewMatrix(K, kind.NumVerts())
	)
	if kind.Dim() > 2 {
		VZ = utils.NewVector(Nv, Z)
	}
	for i, v := range conn {
		EToV.DataP[i] = float64(v)
	}
	msh = mesh.NewMesh(kind, VX, VY, VZ, EToV)
	if verbose {
		fmt.Printf("Read %d %s cells over %d vertices\n", K, kind, Nv)
	}
	return
}

func readGmshHeader(reader *bufio.Reader) {
	var (
		version  string
		fileType int
	)
	seekSection(reader, "$MeshFormat")
	line := getLine(reader)
	if _, err := fmt.Sscanf(line, "%s %d", &version, &fileType); err != nil {
		panic(err)
	}
	if !strings.HasPrefix(version, "2.2") {
		panic(fmt.Errorf("unsupported MSH version %s, need 2.2", version))
	}
	if fileType != 0 {
		panic(fmt.Errorf("binary MSH files are not supported"))
	}
}

func readGmshNodes(reader *bufio.Reader) (nodeIDs map[int]int, X, Y, Z []float64) {
	var (
		id      int
		x, y, z float64
	)
	seekSection(reader, "$Nodes")
	Nv := readNumber(reader)
	nodeIDs = make(map[int]int, Nv)
	X, Y, Z = make([]float64, Nv), make([]float64, Nv), make([]float64, Nv)
	for n := 0; n < Nv; n++ {
		line := getLine(reader)
		if _, err := fmt.Sscanf(line, "%d %f %f %f", &id, &x, &y, &z); err != nil {
			panic(fmt.Errorf("bad node line %q: %s", line, err))
		}
		// Node ids need not be contiguous, remap to storage order
		nodeIDs[id] = n
		X[n], Y[n], Z[n] = x, y, z
	}
	return
}

func readGmshElements(reader *bufio.Reader, nodeIDs map[int]int) (kind types.CellKind, conn []int) {
	var (
		haveKind bool
	)
	seekSection(reader, "$Elements")
	Nel := readNumber(reader)
	for n := 0; n < Nel; n++ {
		fields := strings.Fields(getLine(reader))
		if len(fields) < 3 {
			panic(fmt.Errorf("bad element line %q", strings.Join(fields, " ")))
		}
		etype := GmshElementType(atoi(fields[1]))
		ntags := atoi(fields[2])
		ekind, supported := gmshCellKind[etype]
		if !supported {
			if etype == ELType_Point {
				continue
			}
			panic(fmt.Errorf("unsupported element type %d", etype))
		}
		// Cells are the highest-dimension elements; anything below is a
		// tagged boundary entity
		if haveKind && ekind.Dim() < kind.Dim() {
			continue
		}
		if !haveKind || ekind.Dim() > kind.Dim() {
			kind, haveKind = ekind, true
			conn = conn[:0]
		} else if ekind != kind {
			panic(fmt.Errorf("mixed %s and %s cells are not supported", kind, ekind))
		}
		verts := fields[3+ntags:]
		if len(verts) != kind.NumVerts() {
			panic(fmt.Errorf("%s element has %d vertices, need %d",
				kind, len(verts), kind.NumVerts()))
		}
		for _, v := range verts {
			iv, ok := nodeIDs[atoi(v)]
			if !ok {
				panic(fmt.Errorf("element references unknown node %s", v))
			}
			conn = append(conn, iv)
		}
	}
	if !haveKind {
		panic(fmt.Errorf("no cells found in mesh file"))
	}
	return
}

// seekSection advances to the line following the named section marker
func seekSection(reader *bufio.Reader, name string) {
	for {
		line := strings.TrimSpace(getLine(reader))
		if line == name {
			return
		}
	}
}

func readNumber(reader *bufio.Reader) (num int) {
	if _, err := fmt.Sscanf(getLine(reader), "%d", &num); err != nil {
		panic(err)
	}
	return
}

func atoi(s string) (num int) {
	if _, err := fmt.Sscanf(s, "%d", &num); err != nil {
		panic(err)
	}
	return
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
