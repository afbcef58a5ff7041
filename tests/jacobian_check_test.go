// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/xolotl-go/xolotl/decomp"
	"github.com/xolotl-go/xolotl/diffusion"
	"github.com/xolotl-go/xolotl/grid"
	"github.com/xolotl-go/xolotl/network"
	"github.com/xolotl-go/xolotl/operator"
	"github.com/xolotl-go/xolotl/temperature"
)

// Test_jacobianConsistency01 checks the diffusion contribution to
// ComputeRHS against ComputePartialsForDiffusion's own analytic output,
// following the same finite-difference-vs-analytic shape as
// debugKb.go's check(): perturb one degree of freedom with
// num.DerivCentral, recompute the rhs, and compare against the partial
// the Jacobian pass would have used for that same (row, col) pair (spec
// §8's Consistency property).
func Test_jacobianConsistency01(tst *testing.T) {

	chk.PrintTitle("jacobianConsistency01")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))

	x := grid.GenerateGrid(5, 0.1, 0, 10)
	g, err := grid.New(x, 0, 0, 1, 1)
	if err != nil {
		tst.Fatal(err)
	}

	d := decomp.Decomposition{Xs: 0, Xm: 5, Ys: 0, Ym: 1, Zs: 0, Zm: 1}
	surf := decomp.NewScalarSurface(-1)

	newDriver := func() (*operator.Driver, *operator.Field) {
		drv := operator.NewDriver(n, g, d, surf)
		drv.Temperature = temperature.NewConstantTemperatureHandler(1000.0)
		diffHandler := diffusion.NewFickianHandler(0.9)
		ofill := make(map[int][]int)
		diffHandler.InitializeOffFill(n, ofill)
		diffHandler.InitializeDiffusionGrid(nil, d.Xm, d.Xs, 1, 0, 1, 0)
		drv.Diffusion = diffHandler

		dof := n.GetDOF()
		C := operator.NewField(d, dof)
		for lx := 0; lx <= d.Xm+1; lx++ {
			C.At(lx, 1, 1)[n.TemperatureIndex()] = 1000.0
		}
		C.At(3, 1, 1)[id] = 5.0
		return drv, C
	}

	// analytic: the same stencil ComputeJacobian's diffusion branch reads.
	hx := x[4] - x[3]
	values := make([]float64, 7)
	indices := make([]int, 1)
	fh := diffHandlerFor(n, d)
	fh.SetCurrentPoint(2, 0, 0, 1000.0)
	nw := fh.ComputePartialsForDiffusion(n, values, indices, hx, hx, 2, 0, 0, 0, 0)
	if nw != 1 {
		tst.Fatalf("expected 1 diffusing cluster, got %d", nw)
	}
	anaCenter := values[0]
	anaLeft := values[1]

	// numeric d(F_center)/d(C_center): perturb the spike itself.
	drvN, CN := newDriver()
	FN := operator.NewField(d, n.GetDOF())
	dnumCenter, err := num.DerivCentral(func(y float64, args ...interface{}) (res float64) {
		orig := CN.At(3, 1, 1)[id]
		CN.At(3, 1, 1)[id] = y
		if e := drvN.ComputeRHS(0.0, CN, FN); e != nil {
			chk.Panic("rhs failed: %v", e)
		}
		res = FN.At(3, 1, 1)[id]
		CN.At(3, 1, 1)[id] = orig
		return res
	}, CN.At(3, 1, 1)[id], 1e-6)
	if err != nil {
		tst.Fatal(err)
	}
	chk.AnaNum(tst, "dF3/dC3", 1e-6, anaCenter, dnumCenter, false)

	// numeric d(F_center)/d(C_left): perturb the left neighbor instead.
	drvN2, CN2 := newDriver()
	FN2 := operator.NewField(d, n.GetDOF())
	dnumLeft, err := num.DerivCentral(func(y float64, args ...interface{}) (res float64) {
		orig := CN2.At(2, 1, 1)[id]
		CN2.At(2, 1, 1)[id] = y
		if e := drvN2.ComputeRHS(0.0, CN2, FN2); e != nil {
			chk.Panic("rhs failed: %v", e)
		}
		res = FN2.At(3, 1, 1)[id]
		CN2.At(2, 1, 1)[id] = orig
		return res
	}, CN2.At(2, 1, 1)[id], 1e-6)
	if err != nil {
		tst.Fatal(err)
	}
	chk.AnaNum(tst, "dF3/dC2", 1e-6, anaLeft, dnumLeft, false)
}

func diffHandlerFor(n *network.Network, d decomp.Decomposition) *diffusion.FickianHandler {
	fh := diffusion.NewFickianHandler(0.9)
	ofill := make(map[int][]int)
	fh.InitializeOffFill(n, ofill)
	fh.InitializeDiffusionGrid(nil, d.Xm, d.Xs, 1, 0, 1, 0)
	return fh
}
