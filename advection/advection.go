// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package advection implements the two advection stencils -- surface
// advection toward a free surface and grain-boundary advection toward an
// internal plane (spec §4.C) -- sharing one Handler interface.
package advection

import (
	"math"
	"sort"

	"github.com/xolotl-go/xolotl/network"
)

// Handler is the capability set shared by surface and grain-boundary
// advection (spec §4.C, §9 Design Notes). gridPosition is the absolute
// (x,y,z) coordinate of the point at (ix,iy,iz); temperature is the
// point's current heat-DOF value, needed by both the rhs and partials
// passes since the drift coefficient depends on it.
type Handler interface {
	Initialize(net *network.Network, ofill map[int][]int) error
	IsPointOnSink(ix, iy, iz int) bool
	ComputeAdvection(net *network.Network, gridPosition [3]float64, temperature float64, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, iy, iz int)
	ComputePartialsForAdvection(net *network.Network, gridPosition [3]float64, temperature float64, values []float64, indices []int, hxL, hxR float64, ix int, iy, iz int) int
	GetStencilForAdvection(gridPosition [3]float64) [3]float64
	NumberOfAdvecting() int

	// StencilWidth reports how many contiguous values ComputePartialsForAdvection
	// writes per advecting cluster at (ix, iy, iz): 2 for a one-sided
	// {center, toward} stencil, 3 for the symmetric {center, left, right}
	// stencil a grain-boundary plane writes at its own sink point. Exposed
	// so the Jacobian pass can locate each cluster's slice without
	// re-deriving the sink test.
	StencilWidth(ix, iy, iz int) int
	// NeighborOffset returns the grid-index offset (-1 or +1) of the
	// "toward" neighbor used by a 2-wide stencil; meaningless when
	// StencilWidth is 3, where both neighbors are used symmetrically.
	NeighborOffset(ix, iy, iz int) int
}

// sinkStrength pairs a cluster id with its sink strength k (eV.nm^3),
// the quantity original_source's SurfaceAdvectionHandler calls
// "sinkStrengthVector" (spec §4.C).
type sinkStrength struct {
	id int
	k  float64
}

// boltzmannEV is the Boltzmann constant in eV/K, matching network.Cluster's
// rate-law constant.
const boltzmannEV = 8.617333262e-5

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// SurfacePositionFunc returns the surface grid index for transverse
// column (iy, iz); supplied by the decomp package at wiring time so this
// package stays decoupled from the grid/decomp types.
type SurfacePositionFunc func(iy, iz int) int

// StrengthTableFunc computes the id -> sink-strength map for a network,
// e.g. W111Strengths below; injected so Initialize needs no extra
// parameter beyond what Handler declares.
type StrengthTableFunc func(net *network.Network) map[int]float64

// SurfaceAdvectionHandler drives mobile clusters toward a single surface
// position with potential k/x^4 (spec §4.C's "directed toward a single
// surface position").
type SurfaceAdvectionHandler struct {
	clusters  []sinkStrength
	surface   SurfacePositionFunc
	strengths StrengthTableFunc
}

// NewSurfaceAdvectionHandler builds a surface advection handler; surface
// may be nil until SetSurface is called (e.g. before the grid is known).
func NewSurfaceAdvectionHandler(surface SurfacePositionFunc, strengths StrengthTableFunc) *SurfaceAdvectionHandler {
	return &SurfaceAdvectionHandler{surface: surface, strengths: strengths}
}

// SetSurface rebinds the surface-position callback, used when the surface
// moves between integrator steps (spec §4.E: "when the surface moves the
// flux profile is re-initialized" applies equally to advection geometry).
func (h *SurfaceAdvectionHandler) SetSurface(fn SurfacePositionFunc) { h.surface = fn }

// Initialize records which clusters advect and their sink strengths,
// grounded on W111AdvectionHandler's He_1..He_7 table: any cluster with a
// nonzero diffusion factor whose sink strength is registered by the
// injected strength table advects; clusters absent from the table do not.
// Advecting clusters are recorded in ascending id order.
func (h *SurfaceAdvectionHandler) Initialize(net *network.Network, ofill map[int][]int) error {
	h.clusters = h.clusters[:0]
	if h.strengths == nil {
		return nil
	}
	table := h.strengths(net)
	ids := make([]int, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		k := table[id]
		if id < 0 || id >= len(net.Clusters) {
			continue
		}
		if net.Clusters[id].DiffusionFactor == 0 || k == 0 {
			continue
		}
		h.clusters = append(h.clusters, sinkStrength{id: id, k: k})
		ofill[id] = appendUnique(ofill[id], id)
	}
	return nil
}

// IsPointOnSink reports whether (ix, iy, iz) is the surface cell itself;
// surface advection never excludes a point from diffusion there (only the
// advected species itself is masked via the per-cluster couplings).
func (h *SurfaceAdvectionHandler) IsPointOnSink(ix, iy, iz int) bool {
	if h.surface == nil {
		return false
	}
	return ix == h.surface(iy, iz)
}

// GetStencilForAdvection returns {-1,0,0}: surface advection only acts
// along X, always pointing toward decreasing depth (toward the surface).
func (h *SurfaceAdvectionHandler) GetStencilForAdvection(gridPosition [3]float64) [3]float64 {
	return [3]float64{-1, 0, 0}
}

// towardLeft reports whether the surface-ward neighbor of ix is the left
// (xLeft) neighbor, given the surface index for this transverse column.
func (h *SurfaceAdvectionHandler) towardLeft(ix, iy, iz int) bool {
	surfIdx := 0
	if h.surface != nil {
		surfIdx = h.surface(iy, iz)
	}
	return ix > surfIdx
}

// ComputeAdvection adds the drift term for potential k/x^4 directed
// toward the surface: v(x) = D*k/(kB*T*x^4), one-sided difference toward
// the surface cell (spec §4.C).
func (h *SurfaceAdvectionHandler) ComputeAdvection(net *network.Network, gridPosition [3]float64, temperature float64, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, iy, iz int) {
	if temperature <= 0 || gridPosition[0] <= 0 {
		return
	}
	center := concVector[0]
	x := gridPosition[0]
	toward, h_ := concVector[2], hxR
	if h.towardLeft(ix, iy, iz) {
		toward, h_ = concVector[1], hxL
	}
	for _, cs := range h.clusters {
		d := net.Clusters[cs.id].DiffusionCoefficient(temperature, math.Inf(1))
		if d == 0 {
			continue
		}
		v := d * cs.k / (boltzmannEV * temperature * x * x * x * x)
		updatedConcOffset[cs.id] += v * (toward[cs.id] - center[cs.id]) / h_
	}
}

// ComputePartialsForAdvection writes the two-point (center, toward)
// partials per advecting cluster.
func (h *SurfaceAdvectionHandler) ComputePartialsForAdvection(net *network.Network, gridPosition [3]float64, temperature float64, values []float64, indices []int, hxL, hxR float64, ix int, iy, iz int) int {
	if temperature <= 0 || gridPosition[0] <= 0 {
		return 0
	}
	x := gridPosition[0]
	h_ := hxR
	if h.towardLeft(ix, iy, iz) {
		h_ = hxL
	}
	n := 0
	for _, cs := range h.clusters {
		d := net.Clusters[cs.id].DiffusionCoefficient(temperature, math.Inf(1))
		if d == 0 {
			continue
		}
		v := d * cs.k / (boltzmannEV * temperature * x * x * x * x)
		indices[n] = cs.id
		values[n*2+0] = -v / h_
		values[n*2+1] = v / h_
		n++
	}
	return n
}

// NumberOfAdvecting returns the count of advecting clusters.
func (h *SurfaceAdvectionHandler) NumberOfAdvecting() int { return len(h.clusters) }

// StencilWidth always returns 2: surface advection only ever writes the
// one-sided {center, toward} pair.
func (h *SurfaceAdvectionHandler) StencilWidth(ix, iy, iz int) int { return 2 }

// NeighborOffset returns -1 (toward the surface at a lower grid index) or
// +1, matching the towardLeft test ComputeAdvection/ComputePartialsForAdvection
// use to pick hxL vs hxR.
func (h *SurfaceAdvectionHandler) NeighborOffset(ix, iy, iz int) int {
	if h.towardLeft(ix, iy, iz) {
		return -1
	}
	return 1
}

// GBAdvectionHandler drives mobile clusters toward a fixed set of
// internal grain-boundary planes (spec §4.C's "directed toward an
// internal plane"). A point exactly on a registered plane is symmetric
// (both neighbors feed the center); off-plane points use the one-sided
// stencil toward the nearest plane.
type GBAdvectionHandler struct {
	clusters  []sinkStrength
	planesX   []int // grid-index X positions of grain boundaries
	x         []float64
	strengths StrengthTableFunc
}

// NewGBAdvectionHandler builds a grain-boundary advection handler for the
// given plane positions (absolute grid X indices) and the X coordinate
// slice used to measure distance to the nearest plane.
func NewGBAdvectionHandler(planesX []int, x []float64, strengths StrengthTableFunc) *GBAdvectionHandler {
	return &GBAdvectionHandler{planesX: planesX, x: x, strengths: strengths}
}

// Initialize selects advecting clusters by the same rule as
// SurfaceAdvectionHandler.Initialize; the order in which they are recorded
// follows map iteration and is not defined.
func (h *GBAdvectionHandler) Initialize(net *network.Network, ofill map[int][]int) error {
	h.clusters = h.clusters[:0]
	if h.strengths == nil {
		return nil
	}
	for id, k := range h.strengths(net) {
		if id < 0 || id >= len(net.Clusters) {
			continue
		}
		if net.Clusters[id].DiffusionFactor == 0 || k == 0 {
			continue
		}
		h.clusters = append(h.clusters, sinkStrength{id: id, k: k})
		ofill[id] = appendUnique(ofill[id], id)
	}
	return nil
}

// IsPointOnSink reports whether ix coincides with a registered
// grain-boundary plane.
func (h *GBAdvectionHandler) IsPointOnSink(ix, iy, iz int) bool {
	for _, p := range h.planesX {
		if p == ix {
			return true
		}
	}
	return false
}

// GetStencilForAdvection returns {1,0,0}; the sign toward the plane is
// resolved per-point in ComputeAdvection since the direction flips across
// the plane.
func (h *GBAdvectionHandler) GetStencilForAdvection(gridPosition [3]float64) [3]float64 {
	return [3]float64{1, 0, 0}
}

// nearestPlane returns the closest registered plane's grid X index and
// the grid-position distance along X to it.
func (h *GBAdvectionHandler) nearestPlane(ix int) (planeIdx int, dist float64) {
	best := -1
	bestDist := math.Inf(1)
	for _, p := range h.planesX {
		var d float64
		if h.x != nil && ix < len(h.x) && p < len(h.x) {
			d = math.Abs(h.x[ix] - h.x[p])
		} else {
			d = math.Abs(float64(ix - p))
		}
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best, bestDist
}

// ComputeAdvection adds the drift term toward the nearest grain boundary;
// symmetric when the point is the sink (both sides feed the center),
// one-sided toward the plane otherwise (spec §4.C).
func (h *GBAdvectionHandler) ComputeAdvection(net *network.Network, gridPosition [3]float64, temperature float64, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, iy, iz int) {
	if temperature <= 0 || len(h.planesX) == 0 {
		return
	}
	plane, dist := h.nearestPlane(ix)
	onSink := plane == ix
	if dist == 0 {
		dist = 1e-9
	}
	center := concVector[0]
	left, right := concVector[1], concVector[2]
	for _, cs := range h.clusters {
		d := net.Clusters[cs.id].DiffusionCoefficient(temperature, math.Inf(1))
		if d == 0 {
			continue
		}
		v := d * cs.k / (boltzmannEV * temperature * dist * dist * dist * dist)
		if onSink {
			updatedConcOffset[cs.id] += v * (left[cs.id] - center[cs.id]) / hxL
			updatedConcOffset[cs.id] += v * (right[cs.id] - center[cs.id]) / hxR
			continue
		}
		toward, h_ := left, hxL
		if ix < plane {
			toward, h_ = right, hxR
		}
		updatedConcOffset[cs.id] += v * (toward[cs.id] - center[cs.id]) / h_
	}
}

// ComputePartialsForAdvection writes the sink-point symmetric 3-value
// stencil {center, left, right} or the off-sink 2-value stencil {center,
// toward}, grounded on the same "center, next-away" shape as the surface
// handler.
func (h *GBAdvectionHandler) ComputePartialsForAdvection(net *network.Network, gridPosition [3]float64, temperature float64, values []float64, indices []int, hxL, hxR float64, ix int, iy, iz int) int {
	if temperature <= 0 || len(h.planesX) == 0 {
		return 0
	}
	plane, dist := h.nearestPlane(ix)
	onSink := plane == ix
	if dist == 0 {
		dist = 1e-9
	}
	n := 0
	for _, cs := range h.clusters {
		d := net.Clusters[cs.id].DiffusionCoefficient(temperature, math.Inf(1))
		if d == 0 {
			continue
		}
		v := d * cs.k / (boltzmannEV * temperature * dist * dist * dist * dist)
		indices[n] = cs.id
		if onSink {
			values[n*3+0] = -v/hxL - v/hxR
			values[n*3+1] = v / hxL
			values[n*3+2] = v / hxR
		} else if ix < plane {
			values[n*2+0] = -v / hxR
			values[n*2+1] = v / hxR
		} else {
			values[n*2+0] = -v / hxL
			values[n*2+1] = v / hxL
		}
		n++
	}
	return n
}

// NumberOfAdvecting returns the count of advecting clusters.
func (h *GBAdvectionHandler) NumberOfAdvecting() int { return len(h.clusters) }

// StencilWidth returns 3 at the plane itself (symmetric {center, left,
// right}) or 2 off the plane (one-sided {center, toward}), matching the
// onSink branch in ComputePartialsForAdvection exactly.
func (h *GBAdvectionHandler) StencilWidth(ix, iy, iz int) int {
	if h.IsPointOnSink(ix, iy, iz) {
		return 3
	}
	return 2
}

// NeighborOffset returns the toward-the-plane direction for a 2-wide,
// off-plane stencil; meaningless at the plane itself (StencilWidth==3).
func (h *GBAdvectionHandler) NeighborOffset(ix, iy, iz int) int {
	plane, _ := h.nearestPlane(ix)
	if ix < plane {
		return 1
	}
	return -1
}

// W111Strengths returns the He_1..He_7 sink-strength table (eV.nm^3) from
// the (111) tungsten surface advection parametrization, keyed by the id
// of the matching He_n cluster in net; clusters absent from net are
// silently skipped (spec §4.C grounded on W111AdvectionHandler.h).
func W111Strengths(net *network.Network) map[int]float64 {
	table := []float64{0, 3.65e-3, 6.40e-3, 16.38e-3, 9.84e-3, 44.40e-3, 52.12e-3, 81.57e-3}
	out := make(map[int]float64)
	for size := 1; size <= 7; size++ {
		comp := make([]int, len(net.SpeciesAxes))
		comp[0] = size
		if id, ok := net.FindCluster(comp); ok {
			out[id] = table[size]
		}
	}
	return out
}

// DummyAdvectionHandler contributes nothing but satisfies Handler so the
// driver stays material-agnostic (spec §4.D's Dummy pattern, applied
// identically here).
type DummyAdvectionHandler struct{}

func (DummyAdvectionHandler) Initialize(net *network.Network, ofill map[int][]int) error { return nil }
func (DummyAdvectionHandler) IsPointOnSink(ix, iy, iz int) bool                           { return false }
func (DummyAdvectionHandler) ComputeAdvection(net *network.Network, gridPosition [3]float64, temperature float64, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, iy, iz int) {
}
func (DummyAdvectionHandler) ComputePartialsForAdvection(net *network.Network, gridPosition [3]float64, temperature float64, values []float64, indices []int, hxL, hxR float64, ix int, iy, iz int) int {
	return 0
}
func (DummyAdvectionHandler) GetStencilForAdvection(gridPosition [3]float64) [3]float64 {
	return [3]float64{}
}
func (DummyAdvectionHandler) NumberOfAdvecting() int              { return 0 }
func (DummyAdvectionHandler) StencilWidth(ix, iy, iz int) int     { return 0 }
func (DummyAdvectionHandler) NeighborOffset(ix, iy, iz int) int   { return 0 }
