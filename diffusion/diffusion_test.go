// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/network"
)

var (
	_ Handler = (*FickianHandler)(nil)
	_ Handler = DummyDiffusionHandler{}
)

// Test_diffusion01 checks InitializeOffFill only couples diffusing
// clusters to themselves, mirroring Diffusion1DHandlerTester's
// "createDiffusionCoefficient" connectivity check.
func Test_diffusion01(tst *testing.T) {

	chk.PrintTitle("diffusion01")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	diffusing := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))
	immobile := n.AddCluster(network.NewSimpleCluster(0, 1, 8, "He_8", 0, 0, 0.5, 9.0))

	h := NewFickianHandler(0.9)
	ofill := make(map[int][]int)
	h.InitializeOffFill(n, ofill)

	chk.IntAssert(h.NumberOfDiffusing(), 1)
	if _, ok := ofill[diffusing]; !ok {
		tst.Errorf("expected diffusing cluster to appear in ofill")
	}
	if _, ok := ofill[immobile]; ok {
		tst.Errorf("immobile cluster must not appear in ofill")
	}
}

// Test_diffusion02 checks the interior 1D Fickian update against the
// closed-form finite-difference identity for a uniform mesh (spec §4.B,
// §8's Consistency property specialized to a linear stencil).
func Test_diffusion02(tst *testing.T) {

	chk.PrintTitle("diffusion02")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))
	tIdx := n.TemperatureIndex()

	h := NewFickianHandler(0.9)
	ofill := make(map[int][]int)
	h.InitializeOffFill(n, ofill)
	h.InitializeDiffusionGrid(nil, 3, 0, 1, 0, 1, 0)
	h.SetCurrentPoint(1, 0, 0, 1000)

	center := make([]float64, tIdx+1)
	left := make([]float64, tIdx+1)
	right := make([]float64, tIdx+1)
	center[tIdx], left[tIdx], right[tIdx] = 1000, 1000, 1000
	center[id], left[id], right[id] = 1.0, 0.5, 2.0

	out := make([]float64, tIdx+1)
	h.ComputeDiffusion(n, [][]float64{center, left, right}, out, 0.1, 0.1, 1, 0, 0, 0, 0)

	d := n.Clusters[id].DiffusionCoefficient(1000, 0.9)
	want := d * (left[id] - 2*center[id] + right[id]) / (0.1 * 0.1)
	if math.Abs(out[id]-want) > 1e-6*math.Abs(want) {
		tst.Errorf("uniform-mesh diffusion mismatch: got %v want %v", out[id], want)
	}
}

// Test_diffusion03 checks that a point masked off by an advection handler
// writes no partials while an unmasked point does (spec §4.B/§4.C: "a
// cluster diffuses or advects").
func Test_diffusion03(tst *testing.T) {

	chk.PrintTitle("diffusion03")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))

	h := NewFickianHandler(0.9)
	ofill := make(map[int][]int)
	h.InitializeOffFill(n, ofill)

	masked := func(ix, iy, iz int) bool { return ix == 1 }
	h.InitializeDiffusionGrid([]func(ix, iy, iz int) bool{masked}, 3, 0, 1, 0, 1, 0)

	h.SetCurrentPoint(1, 0, 0, 1000)
	values := make([]float64, 7)
	indices := make([]int, 1)
	n2 := h.ComputePartialsForDiffusion(n, values, indices, 0.1, 0.1, 1, 0, 0, 0, 0)
	chk.IntAssert(n2, 0)

	h.SetCurrentPoint(0, 0, 0, 1000)
	n3 := h.ComputePartialsForDiffusion(n, values, indices, 0.1, 0.1, 0, 0, 0, 0, 0)
	chk.IntAssert(n3, 1)
	_ = id
}
