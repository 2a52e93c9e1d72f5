package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	var (
		data = `
Title: Non-affine quad sweep
Family: Q
PolynomialOrder: 2
GridFile: nonaffine_quad.msh
Field: parabola
SampleN: 64
Expect:
  value_at_probe: 0.485
`
		ep EvalParameters
	)
	assert.NoError(t, ep.Parse([]byte(data)))
	assert.Equal(t, "Q", ep.Family)
	assert.Equal(t, 2, ep.PolynomialOrder)
	assert.Equal(t, 64, ep.SampleN)
	assert.Equal(t, 0.485, ep.Expect["value_at_probe"])
}
