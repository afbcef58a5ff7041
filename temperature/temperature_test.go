// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temperature

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

var (
	_ Handler = (*ConstantTemperatureHandler)(nil)
	_ Handler = (*TimeProfileTemperatureHandler)(nil)
	_ Handler = (*DiffusiveTemperatureHandler)(nil)
)

// Test_constant mirrors TemperatureConstantHandlerTester's
// check_getTemperature: a fixed temperature independent of position and
// time.
func Test_constant(tst *testing.T) {

	chk.PrintTitle("constant")

	h := NewConstantTemperatureHandler(1000.0)
	got := h.GetTemperature([3]float64{1.0, 0.0, 0.0}, 1.0)
	chk.Scalar(tst, "T", 1e-12, got, 1000.0)
}

// Test_timeProfile checks the profile callback is evaluated at the
// requested time t.
func Test_timeProfile(tst *testing.T) {

	chk.PrintTitle("timeProfile")

	h := NewTimeProfileTemperatureHandler(func(t float64, x []float64) float64 { return 300.0 + 10.0*t })
	got := h.GetTemperature([3]float64{}, 2.0)
	chk.Scalar(tst, "T", 1e-12, got, 320.0)
}

// Test_diffusive checks the heat-DOF stencil matches the same
// closed-form identity used for diffusion.FickianHandler on a uniform
// mesh.
func Test_diffusive(tst *testing.T) {

	chk.PrintTitle("diffusive")

	h := NewDiffusiveTemperatureHandler(2.0)
	const heatDOF = 0
	center := []float64{1000.0}
	left := []float64{950.0}
	right := []float64{1100.0}
	out := make([]float64, 1)
	h.ComputeTemperature([][]float64{center, left, right}, out, 0.1, 0.1, 1, 0, heatDOF)

	want := 2.0 * (left[heatDOF] - 2*center[heatDOF] + right[heatDOF]) / (0.1 * 0.1)
	chk.Scalar(tst, "dT/dt", 1e-6, out[heatDOF], want)
}
