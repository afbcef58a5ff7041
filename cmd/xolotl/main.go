// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xolotl is a thin driver over the spatial-operator core,
// modeled on the teacher's main.go: parse a handful of flags, build the
// network/grid/decomposition/driver from an options file, and run a
// minimal explicit-Euler loop purely to exercise the rhs contract
// end-to-end. The real implicit time integrator is an external
// collaborator (spec §1's Non-goals) -- this loop is a harness, not a
// replacement for it.
package main

import (
	"flag"
	"fmt"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	gio "github.com/cpmech/gosl/io"

	"github.com/xolotl-go/xolotl/advection"
	"github.com/xolotl-go/xolotl/decomp"
	"github.com/xolotl-go/xolotl/diffusion"
	"github.com/xolotl-go/xolotl/flux"
	"github.com/xolotl-go/xolotl/grid"
	ckptio "github.com/xolotl-go/xolotl/io"
	"github.com/xolotl-go/xolotl/inp"
	"github.com/xolotl-go/xolotl/modified"
	"github.com/xolotl-go/xolotl/network"
	"github.com/xolotl-go/xolotl/operator"
	"github.com/xolotl-go/xolotl/temperature"
)

func main() {
	optPath := flag.String("options", "", "path to the plain-text options file")
	nX := flag.Int("nx", 20, "number of grid points along x")
	hX := flag.Float64("hx", 0.5, "base (finest) grid spacing (nm); doubled every 10 points by grid.GenerateGrid")
	steps := flag.Int("steps", 100, "number of explicit-Euler steps")
	dt := flag.Float64("dt", 1.0e-6, "explicit-Euler step size (s)")
	ckptPath := flag.String("checkpoint", "", "optional path to write a final checkpoint")
	flag.Parse()

	if *optPath == "" {
		chk.Panic("please provide -options <file>, matching the teacher's \"please provide a filename\" convention")
	}

	dir, fn := splitPath(*optPath)
	o, err := inp.ReadOptions(dir, fn)
	if err != nil {
		chk.Panic("%v", err)
	}

	net, err := buildNetwork(o)
	if err != nil {
		chk.Panic("%v", err)
	}

	x := grid.GenerateGrid(*nX, *hX, -1, 0)
	g, err := grid.New(x, *hX, *hX, 1, 1)
	if err != nil {
		chk.Panic("%v", err)
	}

	d := decomp.Decomposition{Xs: 0, Xm: g.NX, Ys: 0, Ym: 1, Zs: 0, Zm: 1}
	surface := decomp.NewScalarSurface(0) // no vacuum region by default; material config may move this

	drv := operator.NewDriver(net, g, d, surface)
	wireHandlers(drv, net, o, g)

	dof := net.GetDOF()
	C := operator.NewField(d, dof)
	F := operator.NewField(d, dof)
	seedTemperature(C, d, net, o.StartTemp)

	t := 0.0
	for step := 0; step < *steps; step++ {
		if err := drv.ComputeRHS(t, C, F); err != nil {
			chk.Panic("rhs failed at step %d: %v", step, err)
		}
		advanceEuler(C, F, *dt)
		copyGhosts(C, d)
		t += *dt
	}

	gio.Pf("ran %d explicit-Euler steps to t=%g over %d dof\n", *steps, t, dof)

	if *ckptPath != "" {
		if err := writeCheckpoint(*ckptPath, C, d, net, *steps, surface); err != nil {
			chk.Panic("%v", err)
		}
	}
}

// splitPath mirrors io.FnExt-style handling of a bare path without
// pulling in the teacher's .sim-extension convention, which has no
// analogue for a plain-text options file.
func splitPath(path string) (dir, fn string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return ".", path
}

func buildNetwork(o *inp.Options) (*network.Network, error) {
	if !o.MaterialSet {
		return nil, fmt.Errorf("buildNetwork: no material= option given")
	}
	switch o.Material {
	case network.MaterialW100, network.MaterialW110, network.MaterialW111:
		return network.BuildTungsten(o.NetParam, o.Material), nil
	case network.MaterialUO2:
		return network.BuildUO2(o.NetParam), nil
	case network.MaterialAlphaZr:
		return network.BuildZr(o.NetParam), nil
	}
	return nil, fmt.Errorf("buildNetwork: material %v has no network builder in this core", o.Material)
}

// wireHandlers attaches one concrete handler per capability to drv,
// choosing Dummy variants when the options file's process= list (or the
// material) does not call for that capability -- the same Dummy pattern
// the original solver uses to keep the driver dimension- and
// material-agnostic.
func wireHandlers(drv *operator.Driver, net *network.Network, o *inp.Options, g *grid.Grid) {
	startTemp := o.StartTemp
	if startTemp == 0 {
		startTemp = 300.0
	}
	drv.Temperature = temperature.NewConstantTemperatureHandler(startTemp)

	if o.HasProcess("diffusion") {
		fh := diffusion.NewFickianHandler(o.MigrationThreshold)
		ofill := make(map[int][]int)
		fh.InitializeOffFill(net, ofill)
		fh.InitializeDiffusionGrid(nil, g.NX, 0, 1, 0, 1, 0)
		drv.Diffusion = fh
	} else {
		drv.Diffusion = diffusion.DummyDiffusionHandler{}
	}

	if o.HasProcess("advection") && o.SurfaceAdvection {
		surf := func(iy, iz int) int { return drv.Surface.At(iy, iz) }
		ah := advection.NewSurfaceAdvectionHandler(surf, advection.W111Strengths)
		if err := ah.Initialize(net, make(map[int][]int)); err != nil {
			chk.Panic("%v", err)
		}
		drv.Advections = []advection.Handler{ah}
	} else {
		drv.Advections = []advection.Handler{advection.DummyAdvectionHandler{}}
	}

	if o.HasProcess("modifiedTM") && o.Material == network.MaterialW111 {
		window := func(ix, iy, iz int) bool { return ix < g.NX/2 }
		tm := modified.NewTrapMutationHandler(window, 1.0e20)
		dfill := make(map[int][]int)
		if err := tm.Initialize(net, dfill); err != nil {
			chk.Panic("%v", err)
		}
		drv.TrapMutation = tm
	} else {
		drv.TrapMutation = modified.DummyTrapMutationHandler{}
	}

	if o.HasProcess("nucleation") && o.Material == network.MaterialUO2 {
		nh := modified.NewHeterogeneousNucleationHandler()
		dfill := make(map[int][]int)
		if err := nh.Initialize(net, dfill); err != nil {
			chk.Panic("%v", err)
		}
		drv.Nucleation = nh
	} else {
		drv.Nucleation = modified.DummyNucleationHandler{}
	}

	if o.HasProcess("reaction") && o.FluxAmplitude > 0 && len(net.SpeciesAxes) > 0 {
		amp := o.FluxAmplitude
		fh := flux.NewIncidentFluxHandler(dbf.T(func(t float64, x []float64) float64 { return amp }))
		if firstID, ok := net.FindCluster(zeroExceptFirst(len(net.SpeciesAxes))); ok {
			fh.AddDepositingCluster(firstID, []float64{1.0})
		}
		if err := fh.Initialize(net, drv.Surface.At(0, 0)); err != nil {
			chk.Panic("%v", err)
		}
		drv.Flux = fh
	} else {
		drv.Flux = flux.DummyFluxHandler{}
	}

	drv.UseAttenuation = o.HasProcess("attenuation")
}

func zeroExceptFirst(n int) []int {
	comp := make([]int, n)
	comp[0] = 1
	return comp
}

func seedTemperature(C *operator.Field, d decomp.Decomposition, net *network.Network, startTemp float64) {
	if startTemp == 0 {
		startTemp = 300.0
	}
	for lx := 0; lx <= d.Xm+1; lx++ {
		C.At(lx, 1, 1)[net.TemperatureIndex()] = startTemp
	}
}

func advanceEuler(C, F *operator.Field, dt float64) {
	for i := range C.Data {
		C.Data[i] += dt * F.Data[i]
	}
}

// copyGhosts mirrors the owned edge values into the ghost cells so a
// single-process run behaves like a zero-flux boundary between
// integrator steps; a real multi-process run relies on the caller's MPI
// exchange instead (spec §5: "the core reads ghost cells only").
func copyGhosts(C *operator.Field, d decomp.Decomposition) {
	copy(C.At(0, 1, 1), C.At(1, 1, 1))
	copy(C.At(d.Xm+1, 1, 1), C.At(d.Xm, 1, 1))
}

func writeCheckpoint(path string, C *operator.Field, d decomp.Decomposition, net *network.Network, step int, surface *decomp.SurfacePosition) error {
	points := make([]ckptio.GridPointRecord, d.Xm)
	for lx := 1; lx <= d.Xm; lx++ {
		v := C.At(lx, 1, 1)
		var entries []ckptio.ConcentrationEntry
		for id, val := range v {
			if id == net.TemperatureIndex() || val == 0 {
				continue
			}
			entries = append(entries, ckptio.ConcentrationEntry{ClusterID: id, Value: val})
		}
		points[lx-1] = ckptio.GridPointRecord{Entries: entries, Temperature: v[net.TemperatureIndex()]}
	}
	ck := &ckptio.Checkpoint{
		Timestep:      step,
		Points:        points,
		SurfaceShape:  [2]int{1, 1},
		SurfaceValues: []int{surface.At(0, 0)},
	}
	return ckptio.WriteFile(path, ck)
}
