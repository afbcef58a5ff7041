// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements the Fickian finite-difference stencil for
// diffusing species, dimension-generic over 1D/2D/3D (spec §4.B).
package diffusion

import (
	"github.com/xolotl-go/xolotl/network"
)

// Handler is the capability set the Spatial Operator Driver calls for
// diffusion (spec §9 Design Notes: declare_connectivity,
// initialize_grid, compute_rhs_at_point, compute_partials_at_point,
// get_number_active), specialized to diffusion's stencil shape.
type Handler interface {
	InitializeOffFill(net *network.Network, ofill map[int][]int)
	InitializeDiffusionGrid(advectionMasks []func(ix, iy, iz int) bool, nx, xs, ny, ys, nz, zs int)
	SetCurrentPoint(ix, iy, iz int, temperature float64)
	ComputeDiffusion(net *network.Network, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int)
	ComputePartialsForDiffusion(net *network.Network, values []float64, indices []int, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int) int
	NumberOfDiffusing() int
}

// FickianHandler implements Handler for a real (non-dummy) material (spec
// §4.B).
type FickianHandler struct {
	MigrationThreshold float64

	diffusingIDs []int
	mask         []bool // flat [point][cluster index in diffusingIDs]
	nx, ny, nz   int

	curIX, curIY, curIZ int
	curTemperature      float64
}

// NewFickianHandler builds a diffusion handler gated by the configured
// migration-energy threshold.
func NewFickianHandler(migrationThreshold float64) *FickianHandler {
	return &FickianHandler{MigrationThreshold: migrationThreshold}
}

// InitializeOffFill adds (id -> id) self-couplings for every diffusing
// cluster to the off-diagonal map and records the ordered diffusing-id
// list (spec §4.B).
func (h *FickianHandler) InitializeOffFill(net *network.Network, ofill map[int][]int) {
	h.diffusingIDs = h.diffusingIDs[:0]
	for i := range net.Clusters {
		c := &net.Clusters[i]
		if c.DiffusionFactor == 0 || c.MigrationEnergy > h.MigrationThreshold {
			continue
		}
		h.diffusingIDs = append(h.diffusingIDs, c.ID)
		ofill[c.ID] = appendUnique(ofill[c.ID], c.ID)
	}
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// InitializeDiffusionGrid builds a boolean mask marking, per grid point and
// per diffusing cluster, whether diffusion is active there -- deactivated
// inside any advection handler's sink region for that point (spec §4.B,
// §4.C: "a cluster diffuses or advects"). advectionMasks are queried in
// absolute grid coordinates.
func (h *FickianHandler) InitializeDiffusionGrid(advectionMasks []func(ix, iy, iz int) bool, nx, xs, ny, ys, nz, zs int) {
	h.nx, h.ny, h.nz = nx, ny, nz
	nCl := len(h.diffusingIDs)
	h.mask = make([]bool, nx*ny*nz*nCl)
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				advecting := false
				for _, fn := range advectionMasks {
					if fn(ix+xs, iy+ys, iz+zs) {
						advecting = true
						break
					}
				}
				base := h.pointBase(ix, iy, iz)
				for c := 0; c < nCl; c++ {
					h.mask[base+c] = !advecting
				}
			}
		}
	}
}

func (h *FickianHandler) pointBase(ix, iy, iz int) int {
	return (iz*h.ny*h.nx + iy*h.nx + ix) * len(h.diffusingIDs)
}

// SetCurrentPoint records the point and temperature the next
// ComputeDiffusion/ComputePartialsForDiffusion call applies to, since
// neither call's own signature (mirroring the original contract) carries
// both a full local point index and the point's temperature together.
func (h *FickianHandler) SetCurrentPoint(ix, iy, iz int, temperature float64) {
	h.curIX, h.curIY, h.curIZ = ix, iy, iz
	h.curTemperature = temperature
}

func (h *FickianHandler) activeAt(clusterIdx int) bool {
	if h.mask == nil {
		return true
	}
	base := h.pointBase(h.curIX, h.curIY, h.curIZ)
	if base+clusterIdx >= len(h.mask) {
		return true
	}
	return h.mask[base+clusterIdx]
}

// ComputeDiffusion adds the Fickian contribution for the interior point
// (spec §4.B). concVector is {center, xLeft, xRight, [yBot, yTop, [zFront,
// zBack]]}; each element is the full per-point concentration vector.
func (h *FickianHandler) ComputeDiffusion(net *network.Network, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int) {
	center := concVector[0]
	xLeft := concVector[1]
	xRight := concVector[2]
	var yBot, yTop, zFront, zBack []float64
	if len(concVector) > 4 {
		yBot, yTop = concVector[3], concVector[4]
	}
	if len(concVector) > 6 {
		zFront, zBack = concVector[5], concVector[6]
	}
	t := center[net.TemperatureIndex()]
	for idx, id := range h.diffusingIDs {
		if !h.activeAt(idx) {
			continue
		}
		d := net.Clusters[id].DiffusionCoefficient(t, h.MigrationThreshold)
		if d == 0 {
			continue
		}
		c0, cL, cR := center[id], xLeft[id], xRight[id]
		xTerm := 2.0 * (hxL*cR + hxR*cL - (hxL+hxR)*c0) / (hxL * hxR * (hxL + hxR))
		value := d * xTerm
		if yBot != nil {
			value += d * sy * (yBot[id] - 2*c0 + yTop[id])
		}
		if zFront != nil {
			value += d * sz * (zFront[id] - 2*c0 + zBack[id])
		}
		updatedConcOffset[id] += value
	}
}

// ComputePartialsForDiffusion writes, per diffusing cluster, the stencil
// partials in the fixed order {center, xL, xR, yB, yT, zF, zK} (spec
// §4.B), using the temperature last set via SetCurrentPoint. Returns the
// number of diffusing clusters actually written (indices[i] names the
// cluster whose row values[i*width:(i+1)*width] belongs to).
func (h *FickianHandler) ComputePartialsForDiffusion(net *network.Network, values []float64, indices []int, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int) int {
	width := stencilWidth(sy, sz)
	n := 0
	for idx, id := range h.diffusingIDs {
		if !h.activeAt(idx) {
			continue
		}
		d := net.Clusters[id].DiffusionCoefficient(h.curTemperature, h.MigrationThreshold)
		if d == 0 {
			continue
		}
		indices[n] = id
		base := n * width
		values[base+0] = d * (-2.0 * (hxL + hxR) / (hxL * hxR * (hxL + hxR)))
		values[base+1] = d * (2.0 * hxR / (hxL * hxR * (hxL + hxR)))
		values[base+2] = d * (2.0 * hxL / (hxL * hxR * (hxL + hxR)))
		pos := 3
		if sy != 0 {
			values[base+0] -= 2 * d * sy
			values[base+pos] = d * sy
			values[base+pos+1] = d * sy
			pos += 2
		}
		if sz != 0 {
			values[base+0] -= 2 * d * sz
			values[base+pos] = d * sz
			values[base+pos+1] = d * sz
		}
		n++
	}
	return n
}

// stencilWidth returns 3 (1D), 5 (2D), or 7 (3D) depending on which
// transverse space parameters are active (spec §4.B).
func stencilWidth(sy, sz float64) int {
	width := 3
	if sy != 0 {
		width += 2
	}
	if sz != 0 {
		width += 2
	}
	return width
}

// NumberOfDiffusing returns the count of diffusing clusters.
func (h *FickianHandler) NumberOfDiffusing() int { return len(h.diffusingIDs) }

// DummyDiffusionHandler satisfies Handler while contributing nothing,
// grounded on DummyDiffusionHandler.h: "we don't want any cluster to
// diffuse, so nothing is set... and no index is added".
type DummyDiffusionHandler struct{}

func (DummyDiffusionHandler) InitializeOffFill(net *network.Network, ofill map[int][]int) {}
func (DummyDiffusionHandler) InitializeDiffusionGrid(advectionMasks []func(ix, iy, iz int) bool, nx, xs, ny, ys, nz, zs int) {
}
func (DummyDiffusionHandler) SetCurrentPoint(ix, iy, iz int, temperature float64) {}
func (DummyDiffusionHandler) ComputeDiffusion(net *network.Network, concVector [][]float64, updatedConcOffset []float64, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int) {
}
func (DummyDiffusionHandler) ComputePartialsForDiffusion(net *network.Network, values []float64, indices []int, hxL, hxR float64, ix int, sy float64, iy int, sz float64, iz int) int {
	return 0
}
func (DummyDiffusionHandler) NumberOfDiffusing() int { return 0 }
