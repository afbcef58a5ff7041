// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package advection

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/network"
)

var (
	_ Handler = (*SurfaceAdvectionHandler)(nil)
	_ Handler = (*GBAdvectionHandler)(nil)
	_ Handler = DummyAdvectionHandler{}
)

func buildTungstenHe(maxHe int) *network.Network {
	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	for size := 1; size <= maxHe; size++ {
		d0, em := 1e11, 0.02
		if size >= 8 {
			d0, em = 0, 0
		}
		n.AddCluster(network.NewSimpleCluster(0, 1, size, "", d0, em, 0.3, 6.0))
	}
	return n
}

// Test_surface01 checks that only diffusing clusters named by the
// strength table advect, mirroring W111AdvectionHandler's "don't do
// anything if the diffusion factor is 0.0" guard (spec §4.C).
func Test_surface01(tst *testing.T) {

	chk.PrintTitle("surface01")

	n := buildTungstenHe(8)
	h := NewSurfaceAdvectionHandler(func(iy, iz int) int { return 0 }, W111Strengths)
	ofill := make(map[int][]int)
	if err := h.Initialize(n, ofill); err != nil {
		tst.Fatal(err)
	}
	chk.IntAssert(h.NumberOfAdvecting(), 7)
	if _, ok := ofill[7]; ok { // He_8, 0-based id 7, must not advect
		tst.Errorf("He_8 must not advect")
	}
}

// Test_surface02 checks the drift term points toward the surface: a
// point to the right of the surface sees its concentration pulled from
// the left neighbor.
func Test_surface02(tst *testing.T) {

	chk.PrintTitle("surface02")

	n := buildTungstenHe(1)
	h := NewSurfaceAdvectionHandler(func(iy, iz int) int { return 0 }, W111Strengths)
	ofill := make(map[int][]int)
	h.Initialize(n, ofill)

	tIdx := n.TemperatureIndex()
	center := make([]float64, tIdx+1)
	left := make([]float64, tIdx+1)
	right := make([]float64, tIdx+1)
	center[tIdx], left[tIdx], right[tIdx] = 1000, 1000, 1000
	center[0], left[0], right[0] = 1.0, 5.0, 0.0

	out := make([]float64, tIdx+1)
	h.ComputeAdvection(n, [3]float64{2.0, 0, 0}, 1000, [][]float64{center, left, right}, out, 0.1, 0.1, 2, 0, 0)
	if out[0] <= 0 {
		tst.Errorf("expected positive drift pulling concentration from the left (toward surface), got %v", out[0])
	}
}

// Test_gb01 checks the symmetric on-sink stencil feeds from both sides.
func Test_gb01(tst *testing.T) {

	chk.PrintTitle("gb01")

	n := buildTungstenHe(1)
	x := []float64{0, 1, 2, 3, 4}
	h := NewGBAdvectionHandler([]int{2}, x, W111Strengths)
	ofill := make(map[int][]int)
	h.Initialize(n, ofill)

	chk.IntAssert(h.NumberOfAdvecting(), 1)
	if !h.IsPointOnSink(2, 0, 0) {
		tst.Errorf("expected ix=2 to be the registered sink")
	}
	if h.IsPointOnSink(1, 0, 0) {
		tst.Errorf("ix=1 must not be the sink")
	}
}
