package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type EvalParameters struct {
	Title           string             `yaml:"Title"`
	Family          string             `yaml:"Family"` // P or Q element family
	PolynomialOrder int                `yaml:"PolynomialOrder"`
	VectorSize      int                `yaml:"VectorSize"` // 0 or 1 means scalar
	GridFile        string             `yaml:"GridFile"`
	Field           string             `yaml:"Field"` // Named closed-form field to interpolate
	SampleN         int                `yaml:"SampleN"`
	Points          [][]float64        `yaml:"Points"` // Explicit query points
	Expect          map[string]float64 `yaml:"Expect"` // Optional named check values
	ParallelDegree  int                `yaml:"ParallelDegree"`
}

func (ep *EvalParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *EvalParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ep.Title)
	fmt.Printf("[%s]\t\t\t= Element Family\n", ep.Family)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ep.PolynomialOrder)
	fmt.Printf("[%s]\t\t= Field\n", ep.Field)
	if ep.GridFile != "" {
		fmt.Printf("[%s]\t\t= Grid File\n", ep.GridFile)
	}
	if ep.SampleN != 0 {
		fmt.Printf("[%dx%d]\t\t\t= Sample Grid\n", ep.SampleN, ep.SampleN)
	}
	keys := make([]string, len(ep.Expect))
	i := 0
	for k := range ep.Expect {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Expect[%s] = %v\n", key, ep.Expect[key])
	}
}

// Parameters controlling the plot output
type PlotMeta struct {
	Plot            bool    `yaml:"Plot"`
	Scale           float64 `yaml:"Scale"`
	TimeBetweenPlot int     `yaml:"TimeBetweenPlot"` // Milliseconds the plot stays up per frame
}
