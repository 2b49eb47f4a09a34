// SPDX-License-Identifier: MIT

package speigh

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/speigh/matrix"
)

// majorize computes the shared quantities of the tau = 0 paths:
// Ax, γ = |Ax| − (rho_e/2)·w with w = 1/(|x|+eps), and whether the update
// is active, i.e. rho_e < 2·Σ|Ax_i|·(|x_i|+eps). An inactive update sends x to 0.
func (p *problem) majorize(x []float64) (ax, gamma []float64, active bool, err error) {
	if ax, err = matrix.MatVec(p.a, x); err != nil {
		return nil, nil, false, configErrorf(opSpeigh, err)
	}
	var s, inv float64
	gamma = make([]float64, p.n)
	for i, v := range ax {
		inv = math.Abs(x[i]) + p.eps // w_i⁻¹
		s += math.Abs(v) * inv
		gamma[i] = math.Abs(v) - 0.5*p.rhoE/inv
	}

	return ax, gamma, p.rhoE < 2*s, nil
}

// stepDiagonal is the closed-form update for diagonal B:
//
//	x_i = max(γ_i, 0)·sign(Ax_i) / (b_i·sqrt(Σ_j γ_j²/b_j)).
//
// The normalizer sums γ² over every coordinate, negative γ included.
func (p *problem) stepDiagonal(x []float64) ([]float64, error) {
	ax, gamma, active, err := p.majorize(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, p.n)
	if !active {
		return out, nil
	}
	var s float64
	for i, g := range gamma {
		s += g * g / p.bdiag[i]
	}
	den := math.Sqrt(s)
	if den == 0 {
		return out, nil
	}
	for i, g := range gamma {
		if g > 0 {
			out[i] = math.Copysign(g, ax[i]) / (p.bdiag[i] * den)
		}
	}

	return out, nil
}

// stepGeneral is the update for dense B. With S = diag(sign(Ax)) and
// M = pinv(S B S):
//
//	λ    = argmin_{z ≥ 0} (z+γ)ᵀ M (z+γ)
//	temp = M (γ + λ)
//	x    = S·temp / sqrt((γ+λ)ᵀ temp)
//
// A zero normalizer (γ+λ in the null space of M) yields the zero vector.
func (p *problem) stepGeneral(x []float64) ([]float64, error) {
	ax, gamma, active, err := p.majorize(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, p.n)
	if !active {
		return out, nil
	}

	sign := make([]float64, p.n)
	for i, v := range ax {
		switch {
		case v > 0:
			sign[i] = 1
		case v < 0:
			sign[i] = -1
		}
	}
	sbs, err := matrix.NewDense(p.n, p.n)
	if err != nil {
		return nil, configErrorf(opSpeigh, err)
	}
	braw, sraw := p.b.RawData(), sbs.RawData()
	var i, j int
	for i = 0; i < p.n; i++ {
		if sign[i] == 0 {
			continue
		}
		for j = 0; j < p.n; j++ {
			sraw[i*p.n+j] = sign[i] * braw[i*p.n+j] * sign[j]
		}
	}
	m, err := matrix.PinvSym(sbs, 0)
	if err != nil {
		return nil, optimizationErrorf(opSpeigh, err)
	}

	lambda, err := nonnegQuad(p.backend, m, gamma)
	if err != nil {
		return nil, err
	}
	gl := make([]float64, p.n)
	floats.AddTo(gl, gamma, lambda)
	temp, err := matrix.MatVec(m, gl)
	if err != nil {
		return nil, configErrorf(opSpeigh, err)
	}
	den := floats.Dot(gl, temp)
	if !(den > 0) {
		return out, nil
	}
	floats.MulTo(out, sign, temp)
	floats.Scale(1/math.Sqrt(den), out)

	return out, nil
}

// stepDC is the difference-of-convex update:
//
//	y = (A/tau + I) x,  w = 1/(|x|+eps),  x = Project(y, w, |x| > tol),
//
// where the mask only matters in restricted-support mode.
func (p *problem) stepDC(x []float64) ([]float64, error) {
	y, err := matrix.MatVec(p.scaledA, x)
	if err != nil {
		return nil, configErrorf(opSpeigh, err)
	}
	w := make([]float64, p.n)
	for i, v := range x {
		w[i] = 1 / (math.Abs(v) + p.eps)
	}
	var mask []bool
	if p.greedy {
		mask = supportMask(x, p.tol)
	}

	return p.proj.Project(y, w, mask)
}
