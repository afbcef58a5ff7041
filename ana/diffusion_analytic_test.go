// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_gaussian01 checks the peak value and symmetry of the Green's
// function point-source solution at a fixed time.
func Test_gaussian01(tst *testing.T) {

	chk.PrintTitle("gaussian01")

	var o GaussianDiffusion
	o.Init(1.0, 0.5)

	peak := o.Eval(0, 1.0)
	want := 1.0 / math.Sqrt(4*math.Pi*0.5*1.0)
	chk.Scalar(tst, "C(0,1)", 1e-12, peak, want)

	left := o.Eval(-2.0, 1.0)
	right := o.Eval(2.0, 1.0)
	chk.Scalar(tst, "symmetry", 1e-12, left, right)

	if peak <= left {
		tst.Errorf("expected the peak at x=0 to exceed C(2,1), got peak=%v C(2,1)=%v", peak, right)
	}
}

// Test_gaussian02 checks TotalMass reports the conserved source strength.
func Test_gaussian02(tst *testing.T) {

	chk.PrintTitle("gaussian02")

	var o GaussianDiffusion
	o.Init(3.5, 0.2)
	chk.Scalar(tst, "Q", 1e-12, o.TotalMass(), 3.5)
}
