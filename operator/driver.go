// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package operator implements the Spatial Operator Driver (spec §4.H):
// the orchestrator that, per integrator call, sweeps the ghost-inclusive
// X range once to refresh the heat DOF, then sweeps owned points to
// assemble the RHS (or Jacobian) in the fixed contribution order
// incident-flux -> diffusion -> advection -> trap-mutation -> network
// reactions.
package operator

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/xolotl-go/xolotl/advection"
	"github.com/xolotl-go/xolotl/decomp"
	"github.com/xolotl-go/xolotl/diffusion"
	"github.com/xolotl-go/xolotl/flux"
	"github.com/xolotl-go/xolotl/grid"
	"github.com/xolotl-go/xolotl/modified"
	"github.com/xolotl-go/xolotl/network"
	"github.com/xolotl-go/xolotl/temperature"
)

// temperatureChangeThreshold is the 0.1 K republish threshold named in
// spec §4.F/§4.H.
const temperatureChangeThreshold = 0.1

// attenuationDepth is the "near the surface" cutoff (nm) the original
// solver uses when summing trapped-He concentration for the attenuation
// all-reduce, grounded on PetscSolver3DHandler.cpp's
// "- grid[surfacePosition+1] > 2.0) continue" guard.
const attenuationDepth = 2.0

// AllReduceSumFunc performs the one collective the core issues (spec
// §5): an all-reduce SUM across processes. A single-process caller may
// pass the identity function.
type AllReduceSumFunc func(local float64) float64

// GBPoint names one excluded grid point (spec §4.H step 3's "grain
// boundary exclusion list").
type GBPoint struct{ IX, IY, IZ int }

// Driver wires every capability handler together over one Network/Grid
// (spec §4.H).
type Driver struct {
	Network *network.Network
	Grid    *grid.Grid
	Decomp  decomp.Decomposition
	Surface *decomp.SurfacePosition

	Diffusion    diffusion.Handler
	Advections   []advection.Handler
	TrapMutation modified.TrapMutationHandler
	Nucleation   modified.NucleationHandler
	Flux         flux.Handler
	Temperature  temperature.Handler

	LeftOffset, RightOffset                 int
	BottomOffset, TopOffset                 int
	FrontOffset, BackOffset                 int
	GBExclusions                            map[GBPoint]bool
	UseAttenuation                           bool
	AllReduceSum                            AllReduceSumFunc

	cachedTemps []float64 // ghost-inclusive, local X index -> last published T
}

// NewDriver builds a driver over the given network/grid/decomposition;
// all handler fields default to nil and must be set by the caller
// (typically the cmd/xolotl wiring code) before ComputeRHS/ComputeJacobian
// are called -- matching the teacher's pattern of building fem.Domain
// piece by piece before solving.
func NewDriver(net *network.Network, g *grid.Grid, d decomp.Decomposition, surface *decomp.SurfacePosition) *Driver {
	return &Driver{
		Network:      net,
		Grid:         g,
		Decomp:       d,
		Surface:      surface,
		GBExclusions: make(map[GBPoint]bool),
		AllReduceSum: func(local float64) float64 { return local },
	}
}

func (d *Driver) ownedYZ() (ym, zm int) {
	ym, zm = d.Decomp.Ym, d.Decomp.Zm
	if ym < 1 {
		ym = 1
	}
	if zm < 1 {
		zm = 1
	}
	return
}

// stepSizes returns hxL, hxR for absolute grid index ix (the same index
// space as Grid.X, shifted by one: physical point ix reads Grid.X[ix+1]),
// reproducing PetscSolver3DHandler.cpp's boundary-aware half-step
// formula verbatim (spec §4.G): interior points average the two
// neighboring spacings; the two ghost cells either side of the domain
// use a one-sided half step instead of reaching past the grid's end.
func (d *Driver) stepSizes(ix int) (hxL, hxR float64) {
	x := d.Grid.X
	nx := d.Grid.NX
	switch {
	case ix-1 >= 0 && ix < nx:
		hxL = (x[ix+1] - x[ix-1]) / 2.0
		hxR = (x[ix+2] - x[ix]) / 2.0
	case ix == -1:
		hxL = 0
		hxR = (x[ix+2] + x[ix+1]) / 2.0
	case ix-1 < 0:
		hxL = (x[ix+1] + x[ix]) / 2.0
		hxR = (x[ix+2] - x[ix]) / 2.0
	default:
		hxL = (x[ix+1] - x[ix-1]) / 2.0
		hxR = (x[ix+1] - x[ix]) / 2.0
	}
	return
}

func (d *Driver) gridPosition(ix, iy, iz int) [3]float64 {
	x := 0.0
	if ix+1 >= 0 && ix+1 < len(d.Grid.X) {
		x = d.Grid.X[ix+1]
	}
	y := float64(iy) * d.Grid.HY
	z := float64(iz) * d.Grid.HZ
	return [3]float64{x, y, z}
}

// insideDomain reports whether absolute point (ix, iy, iz) is inside the
// owned simulation domain per the surface/transverse offsets and the
// grain-boundary exclusion list (spec §4.H step 3).
func (d *Driver) insideDomain(ix, iy, iz int) bool {
	surf := 0
	if d.Surface != nil {
		surf = d.Surface.At(iy, iz)
	}
	if ix < surf+d.LeftOffset || ix > d.Grid.NX-1-d.RightOffset {
		return false
	}
	if d.Grid.NY > 1 && (iy < d.BottomOffset || iy > d.Grid.NY-1-d.TopOffset) {
		return false
	}
	if d.Grid.NZ > 1 && (iz < d.FrontOffset || iz > d.Grid.NZ-1-d.BackOffset) {
		return false
	}
	if d.GBExclusions[GBPoint{ix, iy, iz}] {
		return false
	}
	return true
}

// concVectorAt gathers the {center, xL, xR, yB, yT, zF, zBack} pointer
// set for local point (lx, ly, lz), trimmed to 3 or 5 entries when the Y
// or Z extent is degenerate (spec §4.B's "dimension-generic" stencil).
func concVectorAt(c *Field, lx, ly, lz int) [][]float64 {
	vec := [][]float64{c.At(lx, ly, lz), c.At(lx-1, ly, lz), c.At(lx+1, ly, lz)}
	if c.Ym > 1 {
		vec = append(vec, c.At(lx, ly-1, lz), c.At(lx, ly+1, lz))
	}
	if c.Zm > 1 {
		vec = append(vec, c.At(lx, ly, lz-1), c.At(lx, ly, lz+1))
	}
	return vec
}

// ComputeRHS assembles F given the current state C at time t, following
// the four-step structure in spec §4.H.
func (d *Driver) ComputeRHS(t float64, C, F *Field) error {
	heatDOF := d.Network.TemperatureIndex()
	dof := d.Network.GetDOF()
	ym, zm := d.ownedYZ()

	if d.cachedTemps == nil {
		d.cachedTemps = make([]float64, d.Decomp.Xm+2)
	}

	// Step 1: ghost-inclusive X sweep to refresh the heat DOF (spec §4.H
	// step 1). Each point's temperature is computed exactly once here --
	// the owned-points sweep in step 3 never recomputes it, fixing the
	// duplicate-emission behavior the spec calls out.
	for ly := 1; ly <= ym; ly++ {
		for lz := 1; lz <= zm; lz++ {
			dirty := false
			for lx := 0; lx <= d.Decomp.Xm+1; lx++ {
				ix := d.Decomp.Xs + lx - 1
				iy := d.Decomp.Ys + ly - 1
				iz := d.Decomp.Zs + lz - 1
				if ix < -1 || ix > d.Grid.NX {
					continue
				}
				hxL, hxR := d.stepSizes(ix)
				vec := concVectorAt(C, lx, ly, lz)
				out := F.At(lx, ly, lz)
				if d.Temperature != nil {
					gp := d.gridPosition(ix, iy, iz)
					tNow := d.Temperature.GetTemperature(gp, t)
					if math.Abs(d.cachedTemps[lx]-tNow) > temperatureChangeThreshold {
						d.cachedTemps[lx] = tNow
						dirty = true
					}
					d.Temperature.ComputeTemperature(vec, out, hxL, hxR, ix, t, heatDOF)
				}
			}
			if dirty && d.Network != nil {
				d.Network.SetTemperatures(append([]float64(nil), d.cachedTemps...))
				if d.TrapMutation != nil {
					d.TrapMutation.UpdateDisappearingRate(d.Network.LargestRate())
				}
			}
		}
	}

	// Step 2: optional attenuation all-reduce (spec §4.H step 2).
	if d.UseAttenuation && d.TrapMutation != nil {
		local := d.sumNearSurfaceTrapped(C)
		total := d.AllReduceSum(local)
		d.TrapMutation.UpdateDisappearingRate(total)
	}

	// Step 3/4: owned-points sweep (spec §4.H steps 3-4).
	for ly := 1; ly <= ym; ly++ {
		for lz := 1; lz <= zm; lz++ {
			iy := d.Decomp.Ys + ly - 1
			iz := d.Decomp.Zs + lz - 1
			for lx := 1; lx <= d.Decomp.Xm; lx++ {
				ix := d.Decomp.Xs + lx - 1
				if !d.insideDomain(ix, iy, iz) {
					continue
				}
				hxL, hxR := d.stepSizes(ix)
				vec := concVectorAt(C, lx, ly, lz)
				updated := F.At(lx, ly, lz)
				surf := 0
				if d.Surface != nil {
					surf = d.Surface.At(iy, iz)
				}

				if d.Flux != nil {
					d.Flux.ComputeIncidentFlux(t, updated, ix, surf)
				}
				if d.Diffusion != nil {
					d.Diffusion.SetCurrentPoint(lx-1, ly-1, lz-1, d.cachedTemps[lx])
					d.Diffusion.ComputeDiffusion(d.Network, vec, updated, hxL, hxR, ix, d.Grid.SY(), iy, d.Grid.SZ(), iz)
				}
				gp := d.gridPosition(ix, iy, iz)
				for _, adv := range d.Advections {
					temp := d.cachedTemps[lx]
					adv.ComputeAdvection(d.Network, gp, temp, vec, updated, hxL, hxR, ix, iy, iz)
				}
				if d.TrapMutation != nil {
					d.TrapMutation.ComputeTrapMutation(d.Network, vec[0], updated, ix, iy, iz)
				}
				if d.Nucleation != nil {
					d.Nucleation.ComputeHeterogeneousNucleation(d.Network, vec[0], updated, ix, iy)
				}

				center := make([]float64, dof)
				copy(center, vec[0][:dof])
				rhs := make([]float64, dof)
				if err := d.Network.ComputeAllFluxes(center, rhs, ix); err != nil {
					return err
				}
				for k := 0; k < dof; k++ {
					updated[k] += rhs[k]
				}
			}
		}
	}
	return nil
}

// jacobianIndex translates a local point number and a species/heat index
// into the block-diagonal global row/column the Jacobian pass uses (spec
// §4.H, §9 Design Notes): block b's DOFs occupy [b*dof, (b+1)*dof), b
// running over Field.PointIndex's ghost-inclusive numbering. This
// sidesteps the real PETSc/MPI global DOF numbering, which belongs to
// the external integrator (spec §1's Non-goals) -- the integrator is
// expected to renumber these local blocks against its own DMDA layout
// before assembly.
func jacobianIndex(pointIndex, dof, local int) int { return pointIndex*dof + local }

// NewJacobianTriplet allocates a Triplet sized for the local block
// indexing ComputeJacobian writes into, with enough spare capacity for
// every component's partials (network reactions, diffusion, advection,
// trap-mutation, temperature) at every owned-plus-ghost point. The bound
// is deliberately generous rather than exact, mirroring
// sparsity.Registry.ExportTriplet's "count once, preallocate" shape
// without needing every handler to expose its own exact nonzero count.
func (d *Driver) NewJacobianTriplet(C *Field) *la.Triplet {
	dof := d.Network.GetDOF()
	n := C.NumPoints() * dof
	perPoint := d.Network.NValues() + 15*dof + 8
	nnz := C.NumPoints()*perPoint + 1
	t := new(la.Triplet)
	t.Init(n, n, nnz)
	return t
}

// ComputeJacobian assembles the sparse partial-derivative matrix of F
// with respect to C at time t into jac (built via NewJacobianTriplet),
// following the same four-step structure and fixed contribution order as
// ComputeRHS (spec §4.H): incident-flux (no C-dependence, contributes
// nothing), diffusion, advection, trap-mutation, nucleation, the
// temperature handler's heat-row partials, then network reactions, each
// Put as a (row, col) pair addressed through
// jacobianIndex.
func (d *Driver) ComputeJacobian(t float64, C *Field, jac *la.Triplet) error {
	heatDOF := d.Network.TemperatureIndex()
	dof := d.Network.GetDOF()
	ym, zm := d.ownedYZ()

	if d.cachedTemps == nil {
		d.cachedTemps = make([]float64, d.Decomp.Xm+2)
	}

	// Step 1: refresh the heat DOF cache exactly as ComputeRHS does, so a
	// Jacobian-only caller (e.g. a consistency check run before any
	// ComputeRHS call) observes the same temperatures.
	for ly := 1; ly <= ym; ly++ {
		for lz := 1; lz <= zm; lz++ {
			dirty := false
			for lx := 0; lx <= d.Decomp.Xm+1; lx++ {
				ix := d.Decomp.Xs + lx - 1
				iy := d.Decomp.Ys + ly - 1
				iz := d.Decomp.Zs + lz - 1
				if ix < -1 || ix > d.Grid.NX {
					continue
				}
				if d.Temperature != nil {
					gp := d.gridPosition(ix, iy, iz)
					tNow := d.Temperature.GetTemperature(gp, t)
					if math.Abs(d.cachedTemps[lx]-tNow) > temperatureChangeThreshold {
						d.cachedTemps[lx] = tNow
						dirty = true
					}
				}
			}
			if dirty && d.Network != nil {
				d.Network.SetTemperatures(append([]float64(nil), d.cachedTemps...))
				if d.TrapMutation != nil {
					d.TrapMutation.UpdateDisappearingRate(d.Network.LargestRate())
				}
			}
		}
	}

	if d.UseAttenuation && d.TrapMutation != nil {
		local := d.sumNearSurfaceTrapped(C)
		total := d.AllReduceSum(local)
		d.TrapMutation.UpdateDisappearingRate(total)
	}

	diffValues := make([]float64, 7*dof)
	diffIndices := make([]int, dof)
	advValues := make([]float64, 3*dof)
	advIndices := make([]int, dof)
	tmValues := make([]float64, 3*dof)
	tmRows := make([]int, 3*dof)
	tmCols := make([]int, 3*dof)
	nucValues := make([]float64, dof)
	nucIndices := make([]int, dof)
	tempValues := make([]float64, 3)

	for ly := 1; ly <= ym; ly++ {
		for lz := 1; lz <= zm; lz++ {
			iy := d.Decomp.Ys + ly - 1
			iz := d.Decomp.Zs + lz - 1
			for lx := 1; lx <= d.Decomp.Xm; lx++ {
				ix := d.Decomp.Xs + lx - 1
				if !d.insideDomain(ix, iy, iz) {
					continue
				}
				hxL, hxR := d.stepSizes(ix)
				centerPt := C.PointIndex(lx, ly, lz)
				sy, sz := d.Grid.SY(), d.Grid.SZ()

				// Diffusion: {center, xL, xR, yB, yT, zF, zK} per
				// diffusing cluster (spec §4.B).
				if d.Diffusion != nil {
					d.Diffusion.SetCurrentPoint(lx-1, ly-1, lz-1, d.cachedTemps[lx])
					width := diffusionStencilWidth(sy, sz)
					n := d.Diffusion.ComputePartialsForDiffusion(d.Network, diffValues, diffIndices, hxL, hxR, ix, sy, iy, sz, iz)
					neighbors := diffusionNeighbors(lx, ly, lz, width)
					for k := 0; k < n; k++ {
						id := diffIndices[k]
						row := jacobianIndex(centerPt, dof, id)
						for j, nb := range neighbors {
							v := diffValues[k*width+j]
							if v == 0 {
								continue
							}
							col := jacobianIndex(C.PointIndex(nb[0], nb[1], nb[2]), dof, id)
							jac.Put(row, col, v)
						}
					}
				}

				// Advection: one-sided or symmetric {center, neighbor(s)}
				// per advecting cluster (spec §4.C).
				gp := d.gridPosition(ix, iy, iz)
				for _, adv := range d.Advections {
					temp := d.cachedTemps[lx]
					width := adv.StencilWidth(ix, iy, iz)
					if width == 0 {
						continue
					}
					n := adv.ComputePartialsForAdvection(d.Network, gp, temp, advValues, advIndices, hxL, hxR, ix, iy, iz)
					for k := 0; k < n; k++ {
						id := advIndices[k]
						row := jacobianIndex(centerPt, dof, id)
						jac.Put(row, jacobianIndex(centerPt, dof, id), advValues[k*width+0])
						if width == 3 {
							leftPt := C.PointIndex(lx-1, ly, lz)
							rightPt := C.PointIndex(lx+1, ly, lz)
							jac.Put(row, jacobianIndex(leftPt, dof, id), advValues[k*width+1])
							jac.Put(row, jacobianIndex(rightPt, dof, id), advValues[k*width+2])
						} else {
							off := adv.NeighborOffset(ix, iy, iz)
							nbPt := C.PointIndex(lx+off, ly, lz)
							jac.Put(row, jacobianIndex(nbPt, dof, id), advValues[k*width+1])
						}
					}
				}

				// Trap-mutation: same-point {He, HeV, I} rows all coupled
				// to the He column (spec §4.D).
				if d.TrapMutation != nil {
					concOffset := C.At(lx, ly, lz)
					n := d.TrapMutation.ComputePartialsForTrapMutation(d.Network, concOffset, tmValues, tmRows, tmCols, ix, iy, iz)
					for k := 0; k < n; k++ {
						row := jacobianIndex(centerPt, dof, tmRows[k])
						col := jacobianIndex(centerPt, dof, tmCols[k])
						jac.Put(row, col, tmValues[k])
					}
				}

				// Heterogeneous nucleation: same-point contributions, if
				// any (spec §4.D); the built-in handler reports none
				// since its source term is concentration-independent.
				if d.Nucleation != nil {
					concOffset := C.At(lx, ly, lz)
					n := d.Nucleation.ComputePartialsForHeterogeneousNucleation(d.Network, concOffset, nucValues, nucIndices, ix, iy)
					for k := 0; k < n; k++ {
						row := jacobianIndex(centerPt, dof, nucIndices[k])
						jac.Put(row, row, nucValues[k])
					}
				}

				// Temperature's own diffusive stencil, if any (spec §4.F).
				if d.Temperature != nil {
					n := d.Temperature.ComputePartialsForTemperature(tempValues, hxL, hxR, ix, heatDOF)
					if n > 0 {
						row := jacobianIndex(centerPt, dof, heatDOF)
						jac.Put(row, row, tempValues[0])
					}
					if n > 1 {
						leftPt := C.PointIndex(lx-1, ly, lz)
						jac.Put(jacobianIndex(centerPt, dof, heatDOF), jacobianIndex(leftPt, dof, heatDOF), tempValues[1])
					}
					if n > 2 {
						rightPt := C.PointIndex(lx+1, ly, lz)
						jac.Put(jacobianIndex(centerPt, dof, heatDOF), jacobianIndex(rightPt, dof, heatDOF), tempValues[2])
					}
				}

				// Network reactions: same-point couplings keyed by
				// (row,col) cluster id pairs, read back through
				// Positions()/NValues() (spec §4.A).
				center := make([]float64, dof)
				copy(center, C.At(lx, ly, lz)[:dof])
				values := make([]float64, d.Network.NValues())
				if err := d.Network.ComputeAllPartials(center, values, centerPt); err != nil {
					return err
				}
				positions := d.Network.Positions()
				for slot, rc := range positions {
					v := values[slot]
					if v == 0 {
						continue
					}
					row := jacobianIndex(centerPt, dof, rc[0])
					col := jacobianIndex(centerPt, dof, rc[1])
					jac.Put(row, col, v)
				}
			}
		}
	}
	return nil
}

// diffusionStencilWidth mirrors diffusion.FickianHandler's own stencil
// width rule exactly (spec §4.B): 3 in 1D, +2 per transverse dimension
// actually present.
func diffusionStencilWidth(sy, sz float64) int {
	width := 3
	if sy != 0 {
		width += 2
	}
	if sz != 0 {
		width += 2
	}
	return width
}

// diffusionNeighbors returns the local (lx, ly, lz) points that
// diffusionStencilWidth's {center, xL, xR, yB, yT, zF, zK} order refers
// to, trimmed to the same width.
func diffusionNeighbors(lx, ly, lz, width int) [][3]int {
	out := [][3]int{{lx, ly, lz}, {lx - 1, ly, lz}, {lx + 1, ly, lz}}
	if width > 3 {
		out = append(out, [3]int{lx, ly - 1, lz}, [3]int{lx, ly + 1, lz})
	}
	if width > 5 {
		out = append(out, [3]int{lx, ly, lz - 1}, [3]int{lx, ly, lz + 1})
	}
	return out
}

// sumNearSurfaceTrapped integrates the trapped-He-like concentration
// (species on the "He"/"Xe" axis, per standardMutationRate's domain)
// over the owned subdomain within attenuationDepth of the surface (spec
// §4.H step 2, grounded on PetscSolver3DHandler.cpp's "> 2.0 continue"
// guard).
func (d *Driver) sumNearSurfaceTrapped(C *Field) float64 {
	heAxis := -1
	for i, a := range d.Network.SpeciesAxes {
		if a == "He" || a == "Xe" {
			heAxis = i
			break
		}
	}
	if heAxis < 0 {
		return 0
	}
	ym, zm := d.ownedYZ()
	sum := 0.0
	for ly := 1; ly <= ym; ly++ {
		for lz := 1; lz <= zm; lz++ {
			iy := d.Decomp.Ys + ly - 1
			iz := d.Decomp.Zs + lz - 1
			surf := 0
			if d.Surface != nil {
				surf = d.Surface.At(iy, iz)
			}
			for lx := 1; lx <= d.Decomp.Xm; lx++ {
				ix := d.Decomp.Xs + lx - 1
				if ix < surf+d.LeftOffset || ix > d.Grid.NX-1-d.RightOffset {
					continue
				}
				if ix+1 >= len(d.Grid.X) || surf+1 >= len(d.Grid.X) {
					continue
				}
				if d.Grid.X[ix+1]-d.Grid.X[surf+1] > attenuationDepth {
					continue
				}
				center := C.At(lx, ly, lz)
				for _, cl := range d.Network.Clusters {
					if cl.Composition()[heAxis] > 0 {
						sum += center[cl.ID] * (d.Grid.X[ix+2] - d.Grid.X[ix+1])
					}
				}
			}
		}
	}
	return sum
}
