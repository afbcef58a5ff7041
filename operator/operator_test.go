// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/decomp"
	"github.com/xolotl-go/xolotl/diffusion"
	"github.com/xolotl-go/xolotl/grid"
	"github.com/xolotl-go/xolotl/network"
	"github.com/xolotl-go/xolotl/temperature"
)

// Test_driver01 checks a minimal 1D RHS assembly: constant temperature
// plus a single diffusing cluster relaxing across a uniform mesh,
// mirroring the per-point stencil shape in
// PetscSolver3DHandler::updateConcentration reduced to one dimension
// (spec §4.H steps 1-4).
func Test_driver01(tst *testing.T) {

	chk.PrintTitle("driver01")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))

	x := grid.GenerateGrid(5, 0.1, 0, 10)
	g, err := grid.New(x, 0, 0, 1, 1)
	if err != nil {
		tst.Fatal(err)
	}

	d := decomp.Decomposition{Xs: 0, Xm: 5, Ys: 0, Ym: 1, Zs: 0, Zm: 1}
	surf := decomp.NewScalarSurface(-1)

	drv := NewDriver(n, g, d, surf)
	drv.Temperature = temperature.NewConstantTemperatureHandler(1000.0)
	diffHandler := diffusion.NewFickianHandler(0.9)
	ofill := make(map[int][]int)
	diffHandler.InitializeOffFill(n, ofill)
	diffHandler.InitializeDiffusionGrid(nil, d.Xm, d.Xs, 1, 0, 1, 0)
	drv.Diffusion = diffHandler

	dof := n.GetDOF()
	C := NewField(d, dof)
	F := NewField(d, dof)

	for lx := 0; lx <= d.Xm+1; lx++ {
		v := C.At(lx, 1, 1)
		v[n.TemperatureIndex()] = 1000.0
	}
	C.At(3, 1, 1)[id] = 5.0

	if err := drv.ComputeRHS(0.0, C, F); err != nil {
		tst.Fatal(err)
	}

	if F.At(3, 1, 1)[id] >= 0 {
		tst.Errorf("expected the spike at lx=3 to relax (negative rhs), got %v", F.At(3, 1, 1)[id])
	}
	for lx := 1; lx <= d.Xm; lx++ {
		if F.At(lx, 1, 1)[n.TemperatureIndex()] != 1000.0 {
			tst.Errorf("expected the heat row to be republished at lx=%d, got %v", lx, F.At(lx, 1, 1)[n.TemperatureIndex()])
		}
	}
}
