// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/xolotl-go/xolotl/network"
)

// Test_options01 parses a representative options file covering every
// recognized key (spec §6) and checks the fields land where expected.
func Test_options01(tst *testing.T) {

	chk.PrintTitle("options01")

	text := `
# tungsten PSI run
netParam=8 0 0 1 0
material=W111
tempHandler=constant
startTemp=1000
gridType=uniform
hxGridStep=0.5
surfaceAdvection=true
grainBoundaries=(3,0,0);(7,0,0)
migrationThreshold=0.9
fluxAmplitude=1.0e18
process=reaction,diffusion,advection
`
	o, err := ParseOptions(text)
	if err != nil {
		tst.Fatal(err)
	}

	chk.IntAssert(o.NetParam.MaxHe, 8)
	chk.IntAssert(o.NetParam.MaxV, 1)
	if !o.MaterialSet || o.Material != network.MaterialW111 {
		tst.Errorf("expected material W111, got %v (set=%v)", o.Material, o.MaterialSet)
	}
	chk.Scalar(tst, "startTemp", 1e-12, o.StartTemp, 1000.0)
	chk.Scalar(tst, "hxGridStep", 1e-12, o.HxGridStep, 0.5)
	if !o.SurfaceAdvection {
		tst.Errorf("expected surfaceAdvection=true")
	}
	if len(o.GrainBoundaries) != 2 || o.GrainBoundaries[1] != (GBPoint{IX: 7}) {
		tst.Errorf("unexpected grainBoundaries: %v", o.GrainBoundaries)
	}
	if !o.HasProcess("diffusion") || o.HasProcess("nucleation") {
		tst.Errorf("unexpected process gating: %v", o.Processes)
	}
}

// Test_options02 checks an unrecognized key is a hard OptionError.
func Test_options02(tst *testing.T) {

	chk.PrintTitle("options02")

	_, err := ParseOptions("bogusKey=1\n")
	if err == nil {
		tst.Fatal("expected an OptionError for an unrecognized key")
	}
}

// Test_options03 checks the process= omission default (everything on).
func Test_options03(tst *testing.T) {

	chk.PrintTitle("options03")

	o, err := ParseOptions("startTemp=300\n")
	if err != nil {
		tst.Fatal(err)
	}
	if !o.HasProcess("reaction") || !o.HasProcess("anything") {
		tst.Errorf("expected every process enabled when process= is absent")
	}
}
