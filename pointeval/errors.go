package pointeval

import (
	"fmt"
	"strings"
)

/*
DomainError reports a query point that lies in no cell of the mesh. It is
the one recoverable failure of point evaluation and is returned, not
panicked: a caller sweeping a sample grid over a non-convex or non-affine
domain legitimately probes points just outside the mesh and must be able to
continue past them.

Candidate rejection and Newton divergence inside the search never surface
here; they only shrink the candidate set. DomainError means the whole set
was exhausted.
*/
type DomainError struct {
	X []float64
}

func (de *DomainError) Error() string {
	var (
		coords = make([]string, len(de.X))
	)
	for d, v := range de.X {
		coords[d] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("point (%s) is not in the domain", strings.Join(coords, ", "))
}
