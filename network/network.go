// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"math"
	"sort"

	"github.com/xolotl-go/xolotl/xerrors"
)

// Network is the ordered sequence of Clusters (stable ids in [0, N)) plus
// the explicit temperature DOF at index N, the reaction list, and the
// same-point (diagonal) connectivity derived from it (spec §3, §4.A).
//
// Cyclic cluster/reaction references in the original source are resolved
// here as indices into dense parallel arrays (spec §9 Design Notes): a
// Reaction never stores a pointer to a Cluster, only its integer id.
type Network struct {
	SpeciesAxes []string
	Clusters    []Cluster
	Reactions   []Reaction

	RateParams RateLawParams

	dfill     map[int][]int // row cluster id -> ordered col cluster ids
	positions map[[2]int]int
	order     [][2]int // (row, col) in slot order, parallel to ComputeAllPartials' values
	nValues   int

	temperatures []float64
	largestRate  float64
}

// NewNetwork builds an empty network over the given species axes.
func NewNetwork(speciesAxes []string, params RateLawParams) *Network {
	return &Network{
		SpeciesAxes: speciesAxes,
		RateParams:  params,
		dfill:       make(map[int][]int),
		positions:   make(map[[2]int]int),
	}
}

// Positions returns the (row, col) pair written at each slot of the flat
// array ComputeAllPartials fills -- the layout diagonal_fill dictates
// (spec §4.A), exposed so the Driver's Jacobian pass can translate a
// slot index back into a sparse-matrix row/column without re-deriving
// the reaction registration order itself.
func (n *Network) Positions() [][2]int { return n.order }

// NValues returns the total number of (row, col) partial-derivative slots
// reaction registration has reserved so far.
func (n *Network) NValues() int { return n.nValues }

// AddCluster appends a cluster, assigning it the next stable id.
func (n *Network) AddCluster(c Cluster) int {
	c.ID = len(n.Clusters)
	n.Clusters = append(n.Clusters, c)
	return c.ID
}

// GetDOF returns N+1: one slot per cluster plus the temperature DOF.
func (n *Network) GetDOF() int { return len(n.Clusters) + 1 }

// TemperatureIndex returns the index of the temperature DOF (== N).
func (n *Network) TemperatureIndex() int { return len(n.Clusters) }

// FindCluster returns the id of the cluster whose composition matches comp
// exactly, or, failing that, the id of the region cluster whose tile
// contains comp.
func (n *Network) FindCluster(comp []int) (int, bool) {
	for i := range n.Clusters {
		if n.Clusters[i].Region.IsSingleton() && sameComposition(n.Clusters[i].Composition(), comp) {
			return i, true
		}
	}
	for i := range n.Clusters {
		if containsComposition(n.Clusters[i].Region, comp) {
			return i, true
		}
	}
	return -1, false
}

func sameComposition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsComposition(r Region, comp []int) bool {
	if len(comp) != len(r.Lower) {
		return false
	}
	for i := range comp {
		if comp[i] < r.Lower[i] || comp[i] >= r.Upper[i] {
			return false
		}
	}
	return true
}

// GetSingleVacancy returns the id of the size-1 cluster on the "V" axis.
func (n *Network) GetSingleVacancy() (int, bool) {
	axis := n.axisIndex("V")
	if axis < 0 {
		return -1, false
	}
	comp := make([]int, len(n.SpeciesAxes))
	comp[axis] = 1
	return n.FindCluster(comp)
}

func (n *Network) axisIndex(name string) int {
	for i, a := range n.SpeciesAxes {
		if a == name {
			return i
		}
	}
	return -1
}

// addDiagonalCoupling records that `row` depends on `col` at the same grid
// point, appending `col` to row's ordered dependency list the first time
// the pair is seen and reserving it a flat slot in the partials layout.
func (n *Network) addDiagonalCoupling(row, col int) {
	key := [2]int{row, col}
	if _, ok := n.positions[key]; ok {
		return
	}
	n.positions[key] = n.nValues
	n.order = append(n.order, key)
	n.nValues++
	n.dfill[row] = append(n.dfill[row], col)
}

// AddProduction registers a cluster0 + cluster1 -> product reaction and
// its same-point couplings (spec §4.A).
func (n *Network) AddProduction(a, b, product int, coefs Coefs, overlap int) {
	r := Reaction{Kind: KindProduction, A: a, B: b, P0: product, P1: -1, Self: a == b, Coefs: coefs, Overlap: overlap}
	n.Reactions = append(n.Reactions, r)
	for _, row := range uniqueInts(a, b, product) {
		n.addDiagonalCoupling(row, a)
		if b != a {
			n.addDiagonalCoupling(row, b)
		}
	}
}

// AddDissociation registers parent -> product0 + product1 with a
// binding-energy-dependent rate (spec §4.A).
func (n *Network) AddDissociation(parent, product0, product1 int, eb float64, coefs Coefs, overlap int) {
	r := Reaction{Kind: KindDissociation, A: parent, B: -1, P0: product0, P1: product1, Eb: eb, Coefs: coefs, Overlap: overlap}
	n.Reactions = append(n.Reactions, r)
	for _, row := range uniqueInts(parent, product0, product1) {
		n.addDiagonalCoupling(row, parent)
	}
}

// AddSink registers an A -> ∅ reaction with a material-specific sink
// strength (spec §4.A).
func (n *Network) AddSink(a int, strength float64) {
	r := Reaction{Kind: KindSink, A: a, B: -1, P0: -1, P1: -1, SinkStrength: strength}
	n.Reactions = append(n.Reactions, r)
	n.addDiagonalCoupling(a, a)
}

func uniqueInts(vals ...int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range vals {
		if v < 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// DiagonalFill returns the map cluster_id -> ordered list of cluster_ids
// enumerating the non-zero reaction partials at the same grid point (spec
// §4.A). The returned map must not be mutated by the caller.
func (n *Network) DiagonalFill() map[int][]int { return n.dfill }

// GetDiagonalFill copies the diagonal fill into out and returns the total
// number of (row, col) partial-derivative slots.
func (n *Network) GetDiagonalFill(out map[int][]int) int {
	for row, cols := range n.dfill {
		cp := make([]int, len(cols))
		copy(cp, cols)
		out[row] = cp
	}
	return n.nValues
}

// SetTemperatures stores the per-owned-point temperature vector and
// invalidates any cached rate; rates are otherwise evaluated on demand
// from the temperature carried in each point's own concentration vector
// (C[N]), so no global rate table needs rebuilding here.
func (n *Network) SetTemperatures(vec []float64) {
	n.temperatures = append(n.temperatures[:0], vec...)
	n.largestRate = 0
	for _, t := range vec {
		r := n.scanLargestRateAt(t)
		if r > n.largestRate {
			n.largestRate = r
		}
	}
}

func (n *Network) scanLargestRateAt(t float64) float64 {
	max := 0.0
	for i := range n.Reactions {
		r := n.rateAt(&n.Reactions[i], t)
		if r > max {
			max = r
		}
	}
	return max
}

// LargestRate returns the largest instantaneous rate observed across the
// temperatures passed to the last SetTemperatures call.
func (n *Network) LargestRate() float64 { return n.largestRate }

func (n *Network) rateAt(r *Reaction, t float64) float64 {
	switch r.Kind {
	case KindProduction:
		clA, clB := &n.Clusters[r.A], &n.Clusters[r.B]
		dA := clA.DiffusionCoefficient(t, n.RateParams.MigrationThreshold)
		dB := clB.DiffusionCoefficient(t, n.RateParams.MigrationThreshold)
		return standardRate(clA.ReactionRadius, clB.ReactionRadius, dA, dB, n.RateParams.CoreRadius)
	case KindDissociation:
		product0, product1 := &n.Clusters[r.P0], &n.Clusters[r.P1]
		d0 := product0.DiffusionCoefficient(t, n.RateParams.MigrationThreshold)
		d1 := product1.DiffusionCoefficient(t, n.RateParams.MigrationThreshold)
		forward := standardRate(product0.ReactionRadius, product1.ReactionRadius, d0, d1, n.RateParams.CoreRadius)
		return forward * math.Exp(-r.Eb/(boltzmannEV*t)) * n.RateParams.DetailedBalanceFactor
	case KindSink:
		return r.SinkStrength
	}
	return 0
}

// ComputeAllFluxes adds the reaction contribution for every species at one
// grid point into F, given the local concentration vector C (length N+1,
// last entry = temperature) (spec §4.A).
func (n *Network) ComputeAllFluxes(C, F []float64, pointIndex int) error {
	if len(C) != n.GetDOF() || len(F) != n.GetDOF() {
		return xerrors.NewShapeMismatch(n.GetDOF(), len(C))
	}
	t := C[n.TemperatureIndex()]
	for i := range n.Reactions {
		r := &n.Reactions[i]
		k := n.rateAt(r, t)
		switch r.Kind {
		case KindProduction:
			flux := k * C[r.A] * C[r.B]
			if r.Self {
				flux *= 0.5
			}
			F[r.A] -= flux
			if !r.Self {
				F[r.B] -= flux
			}
			F[r.P0] += flux
		case KindDissociation:
			flux := k * C[r.A]
			F[r.A] -= flux
			F[r.P0] += flux
			F[r.P1] += flux
		case KindSink:
			F[r.A] -= k * C[r.A]
		}
	}
	return nil
}

// ComputeAllPartials writes partial derivatives into values, laid out
// according to DiagonalFill()/positions (spec §4.A). values must be sized
// to at least GetDiagonalFill's reported count; entries are accumulated
// (reactions sharing a (row,col) pair add into the same slot).
func (n *Network) ComputeAllPartials(C, values []float64, pointIndex int) error {
	if len(C) != n.GetDOF() {
		return xerrors.NewShapeMismatch(n.GetDOF(), len(C))
	}
	for i := range values {
		values[i] = 0
	}
	t := C[n.TemperatureIndex()]
	for i := range n.Reactions {
		r := &n.Reactions[i]
		k := n.rateAt(r, t)
		switch r.Kind {
		case KindProduction:
			factor := 1.0
			if r.Self {
				factor = 0.5
			}
			dFdA := k * C[r.B] * factor
			dFdB := k * C[r.A] * factor
			n.add(values, r.A, r.A, -dFdA)
			if r.Self {
				n.add(values, r.A, r.A, -dFdB)
			} else {
				n.add(values, r.A, r.B, -dFdB)
				n.add(values, r.B, r.A, -dFdA)
				n.add(values, r.B, r.B, -dFdB)
			}
			n.add(values, r.P0, r.A, dFdA)
			n.add(values, r.P0, r.B, dFdB)
		case KindDissociation:
			n.add(values, r.A, r.A, -k)
			n.add(values, r.P0, r.A, k)
			n.add(values, r.P1, r.A, k)
		case KindSink:
			n.add(values, r.A, r.A, -k)
		}
	}
	return nil
}

func (n *Network) add(values []float64, row, col int, v float64) {
	pos, ok := n.positions[[2]int{row, col}]
	if !ok {
		return
	}
	values[pos] += v
}

// SortedClusterIDs returns cluster ids in ascending order; used by callers
// that need a deterministic iteration order over the catalog.
func (n *Network) SortedClusterIDs() []int {
	ids := make([]int, len(n.Clusters))
	for i := range ids {
		ids[i] = i
	}
	sort.Ints(ids)
	return ids
}
