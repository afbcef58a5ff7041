// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana holds closed-form reference solutions used to check the
// spatial operator's numerical output against a known answer (spec §8's
// testable properties), the same role the teacher's ana package plays
// for FEM solid/fluid problems.
package ana

import "math"

// GaussianDiffusion is the free-space Green's function solution of the
// 1D diffusion equation for an instantaneous point source of strength Q
// released at x=0, t=0:
//
//	C(x,t) = Q / sqrt(4*pi*D*t) * exp(-x^2 / (4*D*t))
//
// mirroring ColumnFluidPressure's struct-plus-Init shape: parameters are
// recorded once by Init, then Eval is called repeatedly at different
// (x,t) -- here standing in for diffusion.FickianHandler's stencil
// rather than a solid-mechanics column, grounded on the same pattern.
type GaussianDiffusion struct {
	Q float64 // released quantity per unit area
	D float64 // diffusion coefficient
}

// Init records the source strength and diffusion coefficient.
func (o *GaussianDiffusion) Init(Q, D float64) {
	o.Q = Q
	o.D = D
}

// Eval returns the analytic concentration at position x and time t>0.
func (o *GaussianDiffusion) Eval(x, t float64) float64 {
	if t <= 0 {
		if x == 0 {
			return math.Inf(1)
		}
		return 0
	}
	denom := math.Sqrt(4 * math.Pi * o.D * t)
	return o.Q / denom * math.Exp(-x*x/(4*o.D*t))
}

// TotalMass integrates Eval over all x at a fixed t via the closed-form
// identity (the Gaussian always integrates to Q, independent of t): used
// by tests as a conservation check on the analytic solution itself, the
// same sanity role selfweight_confined.go's closed-form total-load check
// played for the teacher's column problems.
func (o *GaussianDiffusion) TotalMass() float64 { return o.Q }
