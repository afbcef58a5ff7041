// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flux

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/network"
)

var (
	_ Handler = (*IncidentFluxHandler)(nil)
	_ Handler = DummyFluxHandler{}
)

// Test_flux01 checks the deposition weight is applied only at and beyond
// the surface, scaled by the time-dependent amplitude (spec §4.E).
func Test_flux01(tst *testing.T) {

	chk.PrintTitle("flux01")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))

	h := NewIncidentFluxHandler(func(t float64, x []float64) float64 { return 2.0 * t })
	h.AddDepositingCluster(id, []float64{0.7, 0.3})

	if err := h.Initialize(n, 3); err != nil {
		tst.Fatal(err)
	}

	t, w := 1.5, 0.7
	updated := make([]float64, n.GetDOF())
	h.ComputeIncidentFlux(t, updated, 3, 3)
	if updated[id] != 2.0*t*w {
		tst.Errorf("expected surface weight applied, got %v", updated[id])
	}

	updated2 := make([]float64, n.GetDOF())
	h.ComputeIncidentFlux(1.5, updated2, 2, 3)
	if updated2[id] != 0 {
		tst.Errorf("points left of the surface must receive no flux, got %v", updated2[id])
	}
}

// Test_flux02 checks RecomputeFluxHandler rebinds the surface position.
func Test_flux02(tst *testing.T) {

	chk.PrintTitle("flux02")

	n := network.NewNetwork([]string{"He"}, network.RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	id := n.AddCluster(network.NewSimpleCluster(0, 1, 1, "He", 1e11, 0.02, 0.3, 6.0))

	h := NewIncidentFluxHandler(func(t float64, x []float64) float64 { return 1.0 })
	h.AddDepositingCluster(id, []float64{1.0})
	h.Initialize(n, 0)
	h.RecomputeFluxHandler(5)

	updated := make([]float64, n.GetDOF())
	h.ComputeIncidentFlux(1.0, updated, 5, 5)
	if updated[id] != 1.0 {
		tst.Errorf("expected flux at new surface position, got %v", updated[id])
	}
}
