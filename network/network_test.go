// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_network01 checks the tungsten network's DOF bookkeeping and the
// He_8-does-not-diffuse invariant used by spec.md §8 scenario 1
// (netParam=8 0 0 1 0).
func Test_network01(tst *testing.T) {

	chk.PrintTitle("network01")

	n := BuildTungsten(NetParam{MaxHe: 8, MaxV: 1}, MaterialW100)

	chk.IntAssert(n.GetDOF(), len(n.Clusters)+1)
	chk.IntAssert(n.TemperatureIndex(), len(n.Clusters))

	he8, ok := n.FindCluster([]int{8, 0, 0, 0, 0})
	if !ok {
		tst.Fatal("He_8 cluster not found")
	}
	if n.Clusters[he8].DiffusionCoefficient(1000, n.RateParams.MigrationThreshold) != 0 {
		tst.Errorf("He_8 must not diffuse")
	}

	he1, ok := n.FindCluster([]int{1, 0, 0, 0, 0})
	if !ok {
		tst.Fatal("He_1 cluster not found")
	}
	if n.Clusters[he1].DiffusionCoefficient(1000, n.RateParams.MigrationThreshold) <= 0 {
		tst.Errorf("He_1 must diffuse")
	}
}

// Test_network02 checks find_cluster / get_single_vacancy (spec §4.A).
func Test_network02(tst *testing.T) {

	chk.PrintTitle("network02")

	n := BuildTungsten(NetParam{MaxHe: 2, MaxV: 3, MaxI: 1}, MaterialW100)

	v1, ok := n.GetSingleVacancy()
	if !ok {
		tst.Fatal("single vacancy not found")
	}
	chk.IntAssert(n.Clusters[v1].Composition()[3], 1)

	if _, ok := n.FindCluster([]int{0, 0, 0, 99, 0}); ok {
		tst.Errorf("expected no cluster for out-of-range composition")
	}
}

// Test_network03 checks that diagonal fill columns only ever reference ids
// that were actually registered by a reaction touching that row, and that
// GetDiagonalFill's count matches the number of distinct (row, col) pairs
// seen during construction (spec §4.A, §8 sparsity-correctness property).
func Test_network03(tst *testing.T) {

	chk.PrintTitle("network03")

	n := NewNetwork([]string{"He", "D", "T", "V", "I"}, RateLawParams{CoreRadius: 0.3, DetailedBalanceFactor: 1, MigrationThreshold: 0.9})
	a := n.AddCluster(NewSimpleCluster(0, 5, 1, "He", 1e11, 0.02, 0.3, 6.0))
	b := n.AddCluster(NewSimpleCluster(3, 5, 1, "V", 2e9, 1.6, 0.3, 3.0))
	p := n.AddCluster(NewSimpleCluster(0, 5, 2, "He_2", 0, 0, 0.35, 7.0))
	n.AddProduction(a, b, p, nil, 1)

	fill := make(map[int][]int)
	count := n.GetDiagonalFill(fill)
	if count != 6 {
		tst.Errorf("expected 6 diagonal slots, got %d", count)
	}
	for row, cols := range fill {
		for _, col := range cols {
			if col != a && col != b {
				tst.Errorf("row %d has unexpected column %d", row, col)
			}
		}
	}
}

// Test_overlap01 checks the overlap width formula degenerates to 1 for
// three singleton regions satisfying the obvious sum identity (spec §4.A.2).
func Test_overlap01(tst *testing.T) {

	chk.PrintTitle("overlap01")

	cl0 := Region{Lower: []int{1}, Upper: []int{2}}
	cl1 := Region{Lower: []int{1}, Upper: []int{2}}
	prod := Region{Lower: []int{2}, Upper: []int{3}}

	coefs, overlap := ComputeProductionCoefficients(cl0, cl1, prod)
	chk.IntAssert(overlap, 1)
	if coefs[0][0][0][0] != 1 {
		tst.Errorf("expected zeroth-order coefficient 1, got %v", coefs[0][0][0][0])
	}
}
