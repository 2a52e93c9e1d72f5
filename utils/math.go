package utils

// NODETOL is the geometric tolerance used when matching nodes that
// should coincide, scaled where needed by a characteristic mesh length
const NODETOL = 1.e-10

// POW computes an integer power of x, avoiding the cost and rounding of math.Pow
func POW(x float64, pp int) (r float64) {
	var (
		p = pp
	)
	if pp < 0 {
		p = -pp
	}
	r = 1
	for i := 0; i < p; i++ {
		r *= x
	}
	if pp < 0 {
		r = 1 / r
	}
	return
}
