package element

import (
	"math"

	"github.com/jychang48/firedrake/utils"
)

// RStoAB collapses biunit triangle coordinates onto the tensor square,
// where the 2D orthonormal basis is a product of 1D Jacobi polynomials
func RStoAB(R, S utils.Vector) (a, b utils.Vector) {
	var (
		Np = R.Len()
	)
	ad, bd := make([]float64, Np), make([]float64, Np)
	for n, sval := range S.DataP {
		ad[n], bd[n] = rsToab(R.DataP[n], sval)
	}
	a, b = utils.NewVector(Np, ad), utils.NewVector(Np, bd)
	return
}

func rsToab(r, s float64) (a, b float64) {
	if s != 1 {
		a = 2*(1+r)/(1-s) - 1
	} else {
		a = -1
	}
	b = s
	return
}

// RSTtoABC collapses biunit tetrahedron coordinates onto the tensor cube
func RSTtoABC(R, S, T utils.Vector) (a, b, c utils.Vector) {
	var (
		Np  = R.Len()
		tol = 1.e-8
	)
	ad, bd, cd := make([]float64, Np), make([]float64, Np), make([]float64, Np)
	for n := range R.DataP {
		r, s, t := R.DataP[n], S.DataP[n], T.DataP[n]
		if math.Abs(s+t) > tol {
			ad[n] = 2*(1+r)/(-s-t) - 1
		} else {
			ad[n] = -1
		}
		if math.Abs(t-1) > tol {
			bd[n] = 2*(1+s)/(1-t) - 1
		} else {
			bd[n] = -1
		}
		cd[n] = t
	}
	a, b, c = utils.NewVector(Np, ad), utils.NewVector(Np, bd), utils.NewVector(Np, cd)
	return
}

// Simplex2DP evaluates the orthonormal PKD polynomial of order (i,j) on the
// biunit triangle at the points (R,S)
func Simplex2DP(R, S utils.Vector, i, j int) (P []float64) {
	var (
		A, B = RStoAB(R, S)
		Np   = A.Len()
		bd   = B.DataP
	)
	h1 := JacobiP(A, 0, 0, i)
	h2 := JacobiP(B, float64(2*i+1), 0, j)
	P = make([]float64, Np)
	sq2 := math.Sqrt(2)
	for ii := range h1 {
		tv1 := sq2 * h1[ii] * h2[ii]
		tv2 := utils.POW(1-bd[ii], i)
		P[ii] = tv1 * tv2
	}
	return
}

// Simplex3DP evaluates the orthonormal PKD polynomial of order (i,j,k) on
// the biunit tetrahedron at the points (R,S,T)
func Simplex3DP(R, S, T utils.Vector, i, j, k int) (P []float64) {
	var (
		A, B, C = RSTtoABC(R, S, T)
		Np      = A.Len()
		bd, cd  = B.DataP, C.DataP
	)
	h1 := JacobiP(A, 0, 0, i)
	h2 := JacobiP(B, float64(2*i+1), 0, j)
	h3 := JacobiP(C, float64(2*(i+j)+2), 0, k)
	P = make([]float64, Np)
	sq8 := 2 * math.Sqrt(2)
	for n := range h1 {
		tv1 := sq8 * h1[n] * h2[n]
		tv2 := utils.POW(1-bd[n], i)
		tv3 := h3[n] * utils.POW(1-cd[n], i+j)
		P[n] = tv1 * tv2 * tv3
	}
	return
}

// EquiNodes2D generates equispaced nodal points on the biunit triangle,
// ordered bottom row first
func EquiNodes2D(N int) (R, S utils.Vector) {
	var (
		Np = (N + 1) * (N + 2) / 2
		fn = 2. / float64(N)
	)
	rd, sd := make([]float64, Np), make([]float64, Np)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			rd[sk] = -1 + fn*float64(j)
			sd[sk] = -1 + fn*float64(i)
			sk++
		}
	}
	R, S = utils.NewVector(Np, rd), utils.NewVector(Np, sd)
	return
}

// EquiNodes3D generates equispaced nodal points on the biunit tetrahedron
func EquiNodes3D(N int) (R, S, T utils.Vector) {
	var (
		Np = (N + 1) * (N + 2) * (N + 3) / 6
		fn = 2. / float64(N)
	)
	rd, sd, td := make([]float64, Np), make([]float64, Np), make([]float64, Np)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			for k := 0; k <= N-i-j; k++ {
				rd[sk] = -1 + fn*float64(k)
				sd[sk] = -1 + fn*float64(j)
				td[sk] = -1 + fn*float64(i)
				sk++
			}
		}
	}
	R, S, T = utils.NewVector(Np, rd), utils.NewVector(Np, sd), utils.NewVector(Np, td)
	return
}

// Vandermonde1D builds the generalized Vandermonde matrix of the 1D
// orthonormal Jacobi basis at the points R
func Vandermonde1D(N int, R utils.Vector) (V utils.Matrix) {
	V = utils.NewMatrix(R.Len(), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(R, 0, 0, j))
	}
	return
}

// Vandermonde2D builds the generalized Vandermonde matrix of the PKD basis
// on the biunit triangle at the points (R,S)
func Vandermonde2D(N int, R, S utils.Vector) (V2D utils.Matrix) {
	V2D = utils.NewMatrix(R.Len(), (N+1)*(N+2)/2)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			V2D.SetCol(sk, Simplex2DP(R, S, i, j))
			sk++
		}
	}
	return
}

// Vandermonde3D builds the generalized Vandermonde matrix of the PKD basis
// on the biunit tetrahedron at the points (R,S,T)
func Vandermonde3D(N int, R, S, T utils.Vector) (V3D utils.Matrix) {
	V3D = utils.NewMatrix(R.Len(), (N+1)*(N+2)*(N+3)/6)
	var sk int
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			for k := 0; k <= N-i-j; k++ {
				V3D.SetCol(sk, Simplex3DP(R, S, T, i, j, k))
				sk++
			}
		}
	}
	return
}
