// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package modified

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/network"
)

var (
	_ TrapMutationHandler = (*TrapMutationHandlerImpl)(nil)
	_ TrapMutationHandler = DummyTrapMutationHandler{}
	_ NucleationHandler   = (*HeterogeneousNucleationHandler)(nil)
	_ NucleationHandler   = DummyNucleationHandler{}
)

// Test_dummyNucleation mirrors DummyNucleationHandlerTester's
// checkDummyNucleation: initialize, set yield/rate, compute, and confirm
// updatedConcOffset is untouched.
func Test_dummyNucleation(tst *testing.T) {

	chk.PrintTitle("dummyNucleation")

	n := network.NewNetwork([]string{"Xe"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.5})
	n.AddCluster(network.NewSimpleCluster(0, 1, 1, "Xe", 5e9, 0.8, 0.3, 5.2))

	h := DummyNucleationHandler{}
	dfill := make(map[int][]int)
	if err := h.Initialize(n, dfill); err != nil {
		tst.Fatal(err)
	}
	chk.IntAssert(len(dfill), 0)

	h.SetFissionYield(0.5)
	h.UpdateHeterogeneousNucleationRate(1.0)

	updated := make([]float64, n.GetDOF())
	conc := make([]float64, n.GetDOF())
	h.ComputeHeterogeneousNucleation(n, conc, updated, 1, 0)
	for i, v := range updated {
		if v != 0 {
			tst.Errorf("dummy nucleation must not touch row %d, got %v", i, v)
		}
	}
}

// Test_heterogeneousNucleation checks the real handler adds a constant
// fission_yield*rate source to Xe_1 only.
func Test_heterogeneousNucleation(tst *testing.T) {

	chk.PrintTitle("heterogeneousNucleation")

	n := network.NewNetwork([]string{"Xe"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.5})
	xeID := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "Xe", 5e9, 0.8, 0.3, 5.2))
	n.AddCluster(network.NewSimpleCluster(0, 1, 2, "Xe_2", 0, 0, 0.4, 5.6))

	h := NewHeterogeneousNucleationHandler()
	dfill := make(map[int][]int)
	h.Initialize(n, dfill)
	h.SetFissionYield(0.5)
	h.UpdateHeterogeneousNucleationRate(2.0)

	updated := make([]float64, n.GetDOF())
	conc := make([]float64, n.GetDOF())
	h.ComputeHeterogeneousNucleation(n, conc, updated, 0, 0)

	if updated[xeID] != 1.0 {
		tst.Errorf("expected Xe_1 source 1.0, got %v", updated[xeID])
	}
}

// Test_trapMutation checks the He_n -> HeV_n + I trio conserves mass
// (He loss equals HeV and I gain) inside the depth window only.
func Test_trapMutation(tst *testing.T) {

	chk.PrintTitle("trapMutation")

	n := network.NewNetwork([]string{"He", "V", "I"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	heID := n.AddCluster(network.NewSimpleCluster(0, 3, 1, "He", 1e11, 0.02, 0.3, 6.0))
	heVID := n.AddCluster(network.NewSimpleCluster(0, 3, 1, "HeV", 0, 0, 0.35, 7.0))
	n.Clusters[heVID].Region.Lower[1], n.Clusters[heVID].Region.Upper[1] = 1, 2
	iID := n.AddCluster(network.NewSimpleCluster(2, 3, 1, "I", 8.8e11, 0.013, 0.3, 10.0))

	h := NewTrapMutationHandler(func(ix, iy, iz int) bool { return ix < 2 }, 0)
	dfill := make(map[int][]int)
	if err := h.Initialize(n, dfill); err != nil {
		tst.Fatal(err)
	}
	if len(h.mutations) != 1 {
		tst.Fatalf("expected exactly one mutation trio, got %d", len(h.mutations))
	}

	conc := make([]float64, n.GetDOF())
	conc[heID] = 10.0
	updated := make([]float64, n.GetDOF())
	h.ComputeTrapMutation(n, conc, updated, 0, 0, 0)

	if updated[heID] >= 0 {
		tst.Errorf("He row must lose mass, got %v", updated[heID])
	}
	if updated[heVID] <= 0 || updated[iID] <= 0 {
		tst.Errorf("HeV and I rows must gain mass")
	}
	if -updated[heID] != updated[heVID] || -updated[heID] != updated[iID] {
		tst.Errorf("mutation must conserve mass across rows: He=%v HeV=%v I=%v", updated[heID], updated[heVID], updated[iID])
	}

	updated2 := make([]float64, n.GetDOF())
	h.ComputeTrapMutation(n, conc, updated2, 5, 0, 0) // outside depth window
	for i, v := range updated2 {
		if v != 0 {
			tst.Errorf("outside the depth window nothing should mutate, row %d = %v", i, v)
		}
	}
}
