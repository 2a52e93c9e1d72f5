package pointeval

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/jychang48/firedrake/fespace"
	"github.com/jychang48/firedrake/utils"
)

/*
EvaluateBatch evaluates f at every row of the Npts x dim points matrix,
splitting the rows across ParallelDegree goroutines. Point queries are
independent and the Evaluator is read only during queries, so the split is
embarrassingly parallel.

Values come back as an Npts x ValueSize matrix. A point outside the domain
leaves its row zero and records a DomainError in errs at the same index;
errs is nil when every point succeeds.
*/
func (ev *Evaluator) EvaluateBatch(f *fespace.Function, points utils.Matrix,
	parallelDegree ...int) (values utils.Matrix, errs []error) {
	var (
		fs        = ev.FS
		npts, dim = points.Dims()
		pd        = runtime.NumCPU()
		wg        = sync.WaitGroup{}
		failed    bool
	)
	if dim != fs.Msh.Dim {
		panic(fmt.Errorf("points are %d-dimensional, mesh dimension is %d", dim, fs.Msh.Dim))
	}
	if len(parallelDegree) != 0 {
		pd = parallelDegree[0]
	}
	values = utils.NewMatrix(npts, fs.ValueSize)
	errTable := make([]error, npts)
	pm := utils.NewPartitionMap(pd, npts)
	for n := 0; n < pm.ParallelDegree; n++ {
		wg.Add(1)
		go func(bucket int) {
			defer wg.Done()
			var (
				kMin, kMax = pm.GetBucketRange(bucket)
				x          = make([]float64, dim)
			)
			for p := kMin; p < kMax; p++ {
				for d := 0; d < dim; d++ {
					x[d] = points.At(p, d)
				}
				val, err := ev.Evaluate(f, x)
				if err != nil {
					errTable[p] = err
					continue
				}
				for c, v := range val {
					values.Set(p, c, v)
				}
			}
		}(n)
	}
	wg.Wait()
	for _, err := range errTable {
		if err != nil {
			failed = true
			break
		}
	}
	if failed {
		errs = errTable
	}
	return
}
