// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package modified implements trap-mutation (He_n -> HeV_n + I_k,
// attenuated by a disappearing rate) and heterogeneous nucleation
// (small-Xe source for UO2), the two "modified reaction" capabilities
// that sit outside the Network's own reaction list (spec §4.D).
package modified

import (
	"math"

	"github.com/xolotl-go/xolotl/network"
)

// boltzmannEV is the Boltzmann constant in eV/K.
const boltzmannEV = 8.617333262e-5

// TrapMutationHandler is the capability set for trap mutation (spec §4.D,
// §9 Design Notes).
type TrapMutationHandler interface {
	Initialize(net *network.Network, dfill map[int][]int) error
	IsInsideDepthWindow(ix, iy, iz int) bool
	UpdateDisappearingRate(rate float64)
	ComputeTrapMutation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy, iz int)
	ComputePartialsForTrapMutation(net *network.Network, concOffset []float64, values []float64, rowIDs, colIDs []int, ix, iy, iz int) int
}

// mutation pairs a He_n cluster id with its HeV_n and I_k products and
// its base rate coefficient, grounded on the (He_n -> HeV_n + I_k) shape
// described in spec §4.D.
type mutation struct {
	heID, heVID, iID int
	size             int
	baseRate         float64
}

// DepthWindowFunc reports whether (ix, iy, iz) lies inside the
// material-defined trap-mutation depth window.
type DepthWindowFunc func(ix, iy, iz int) bool

// TrapMutationHandlerImpl implements TrapMutationHandler for materials
// (tungsten) that actually trap-mutate.
type TrapMutationHandlerImpl struct {
	mutations       []mutation
	insideWindow    DepthWindowFunc
	disappearRate   float64
	attenuationBase float64
}

// NewTrapMutationHandler builds a handler; attenuationBase is the
// reference trapped-He density (atoms/nm^3) the disappearing rate is
// normalized against (spec §4.D: "attenuated... by a disappearing rate
// parameter").
func NewTrapMutationHandler(insideWindow DepthWindowFunc, attenuationBase float64) *TrapMutationHandlerImpl {
	return &TrapMutationHandlerImpl{insideWindow: insideWindow, attenuationBase: attenuationBase}
}

// Initialize pairs each He_n cluster (n = 1..8) present in net with an HeV_n and an
// I_k product (k chosen as 1) already present in net, skipping sizes for
// which no matching trio exists; a hard MissingCluster-style error is the
// caller's responsibility to surface per spec §4.H's failure semantics
// when the material config expects trap mutation but none is wired.
func (h *TrapMutationHandlerImpl) Initialize(net *network.Network, dfill map[int][]int) error {
	h.mutations = h.mutations[:0]
	heAxis, vAxis, iAxis := axisOf(net, "He"), axisOf(net, "V"), axisOf(net, "I")
	if heAxis < 0 || vAxis < 0 || iAxis < 0 {
		return nil
	}
	for size := 1; size <= 8; size++ {
		heComp := zeroComposition(len(net.SpeciesAxes))
		heComp[heAxis] = size
		heID, ok := net.FindCluster(heComp)
		if !ok {
			continue
		}
		heVComp := zeroComposition(len(net.SpeciesAxes))
		heVComp[heAxis], heVComp[vAxis] = size, 1
		heVID, ok := net.FindCluster(heVComp)
		if !ok {
			continue
		}
		iComp := zeroComposition(len(net.SpeciesAxes))
		iComp[iAxis] = 1
		iID, ok := net.FindCluster(iComp)
		if !ok {
			continue
		}
		h.mutations = append(h.mutations, mutation{heID: heID, heVID: heVID, iID: iID, size: size, baseRate: standardMutationRate(size)})
		dfill[heID] = appendUnique(dfill[heID], heID)
		dfill[heVID] = appendUnique(dfill[heVID], heID)
		dfill[iID] = appendUnique(dfill[iID], heID)
	}
	return nil
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func axisOf(net *network.Network, name string) int {
	for i, a := range net.SpeciesAxes {
		if a == name {
			return i
		}
	}
	return -1
}

func zeroComposition(n int) []int { return make([]int, n) }

// standardMutationRate is an illustrative size-dependent base rate
// (1/s), increasing with cluster size the way trap-mutation probability
// grows with the number of trapped He atoms; the exact xolotl fit
// constants are outside the retrieval pack (see network.tungstenHeDiffusion
// for the same caveat).
func standardMutationRate(size int) float64 {
	return 1.0e-2 * math.Pow(float64(size), 1.5)
}

// IsInsideDepthWindow reports whether (ix,iy,iz) is within the
// trap-mutation depth window.
func (h *TrapMutationHandlerImpl) IsInsideDepthWindow(ix, iy, iz int) bool {
	if h.insideWindow == nil {
		return true
	}
	return h.insideWindow(ix, iy, iz)
}

// UpdateDisappearingRate records the latest all-reduced near-surface
// trapped-He total, attenuating the mutation rate (spec §4.D, §4.H step 2).
func (h *TrapMutationHandlerImpl) UpdateDisappearingRate(rate float64) { h.disappearRate = rate }

func (h *TrapMutationHandlerImpl) attenuation() float64 {
	if h.attenuationBase <= 0 {
		return 1
	}
	return 1.0 / (1.0 + h.disappearRate/h.attenuationBase)
}

// ComputeTrapMutation adds, for each mutating He_n present at this point,
// -rate*C(He_n) to the He row and +rate*C(He_n) to the HeV_n and I_k rows
// (spec §4.D).
func (h *TrapMutationHandlerImpl) ComputeTrapMutation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy, iz int) {
	if !h.IsInsideDepthWindow(ix, iy, iz) {
		return
	}
	att := h.attenuation()
	for _, m := range h.mutations {
		c := concOffset[m.heID]
		if c <= 0 {
			continue
		}
		flux := m.baseRate * att * c
		updatedConcOffset[m.heID] -= flux
		updatedConcOffset[m.heVID] += flux
		updatedConcOffset[m.iID] += flux
	}
}

// ComputePartialsForTrapMutation writes up to 3*nHe entries -- three
// Jacobian values per mutating He cluster (He row, HeV row, I row), all
// coupled to the He column (spec §4.D).
func (h *TrapMutationHandlerImpl) ComputePartialsForTrapMutation(net *network.Network, concOffset []float64, values []float64, rowIDs, colIDs []int, ix, iy, iz int) int {
	if !h.IsInsideDepthWindow(ix, iy, iz) {
		return 0
	}
	att := h.attenuation()
	n := 0
	for _, m := range h.mutations {
		rate := m.baseRate * att
		rowIDs[n], colIDs[n] = m.heID, m.heID
		values[n] = -rate
		n++
		rowIDs[n], colIDs[n] = m.heVID, m.heID
		values[n] = rate
		n++
		rowIDs[n], colIDs[n] = m.iID, m.heID
		values[n] = rate
		n++
	}
	return n
}

// DummyTrapMutationHandler contributes nothing but satisfies
// TrapMutationHandler so the driver stays material-agnostic (spec §4.D).
type DummyTrapMutationHandler struct{}

func (DummyTrapMutationHandler) Initialize(net *network.Network, dfill map[int][]int) error {
	return nil
}
func (DummyTrapMutationHandler) IsInsideDepthWindow(ix, iy, iz int) bool { return false }
func (DummyTrapMutationHandler) UpdateDisappearingRate(rate float64)     {}
func (DummyTrapMutationHandler) ComputeTrapMutation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy, iz int) {
}
func (DummyTrapMutationHandler) ComputePartialsForTrapMutation(net *network.Network, concOffset []float64, values []float64, rowIDs, colIDs []int, ix, iy, iz int) int {
	return 0
}

// NucleationHandler is the capability set for heterogeneous nucleation
// (spec §4.D), grounded on DummyNucleationHandlerTester.cpp's
// setFissionYield / updateHeterogeneousNucleationRate /
// computeHeterogeneousNucleation contract.
type NucleationHandler interface {
	Initialize(net *network.Network, dfill map[int][]int) error
	SetFissionYield(yield float64)
	UpdateHeterogeneousNucleationRate(rate float64)
	ComputeHeterogeneousNucleation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy int)
	ComputePartialsForHeterogeneousNucleation(net *network.Network, concOffset []float64, values []float64, indices []int, ix, iy int) int
}

// HeterogeneousNucleationHandler adds a Xe_1 source proportional to
// fission_yield * nucleation_rate at every point (UO2, spec §4.D).
type HeterogeneousNucleationHandler struct {
	xeID         int
	haveXe       bool
	fissionYield float64
	rate         float64
}

// NewHeterogeneousNucleationHandler builds a nucleation handler.
func NewHeterogeneousNucleationHandler() *HeterogeneousNucleationHandler {
	return &HeterogeneousNucleationHandler{}
}

// Initialize locates the Xe_1 cluster; nucleation contributes nothing if
// absent from the network.
func (h *HeterogeneousNucleationHandler) Initialize(net *network.Network, dfill map[int][]int) error {
	h.haveXe = false
	if len(net.SpeciesAxes) == 0 || net.SpeciesAxes[0] != "Xe" {
		return nil
	}
	id, ok := net.FindCluster([]int{1})
	if !ok {
		return nil
	}
	h.xeID, h.haveXe = id, true
	return nil
}

// SetFissionYield records the fission yield (atoms produced per fission
// event) used to scale the nucleation source.
func (h *HeterogeneousNucleationHandler) SetFissionYield(yield float64) { h.fissionYield = yield }

// UpdateHeterogeneousNucleationRate records the latest nucleation rate
// (1/s), typically recomputed as temperature or flux amplitude changes.
func (h *HeterogeneousNucleationHandler) UpdateHeterogeneousNucleationRate(rate float64) {
	h.rate = rate
}

// ComputeHeterogeneousNucleation adds fission_yield*nucleation_rate to
// the Xe_1 row.
func (h *HeterogeneousNucleationHandler) ComputeHeterogeneousNucleation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy int) {
	if !h.haveXe {
		return
	}
	updatedConcOffset[h.xeID] += h.fissionYield * h.rate
}

// ComputePartialsForHeterogeneousNucleation returns zero entries: the
// nucleation source is independent of the local concentration vector, so
// it contributes no Jacobian term.
func (h *HeterogeneousNucleationHandler) ComputePartialsForHeterogeneousNucleation(net *network.Network, concOffset []float64, values []float64, indices []int, ix, iy int) int {
	return 0
}

// DummyNucleationHandler contributes nothing, grounded directly on
// DummyNucleationHandlerTester.cpp's expectation that
// computeHeterogeneousNucleation leaves updatedConcOffset untouched.
type DummyNucleationHandler struct{}

func (DummyNucleationHandler) Initialize(net *network.Network, dfill map[int][]int) error {
	return nil
}
func (DummyNucleationHandler) SetFissionYield(yield float64)             {}
func (DummyNucleationHandler) UpdateHeterogeneousNucleationRate(rate float64) {}
func (DummyNucleationHandler) ComputeHeterogeneousNucleation(net *network.Network, concOffset, updatedConcOffset []float64, ix, iy int) {
}
func (DummyNucleationHandler) ComputePartialsForHeterogeneousNucleation(net *network.Network, concOffset []float64, values []float64, indices []int, ix, iy int) int {
	return 0
}
