// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a plain-text options
// file: line-oriented key=value pairs, one per line, with everything to
// the right of '#' treated as a comment (spec §6's "network parameters
// are read from a plain-text options file"). This replaces the teacher's
// JSON (.sim/.mat) format, which has no counterpart in the options-file
// contract the spec names.
package inp

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xolotl-go/xolotl/network"
	"github.com/xolotl-go/xolotl/xerrors"
)

// recognizedKeys lists every key this reader accepts (spec §6). A key
// found in the file but absent from this set is a hard OptionError --
// mirroring how inp.ReadMat/ReadSim fail loudly on a malformed file
// rather than silently ignoring unknown fields.
var recognizedKeys = map[string]bool{
	"netParam":           true,
	"material":           true,
	"tempHandler":        true,
	"startTemp":          true,
	"gridType":           true,
	"hxGridStep":         true,
	"surfaceAdvection":   true,
	"grainBoundaries":    true,
	"migrationThreshold": true,
	"fluxAmplitude":      true,
	"process":            true,
}

// GBPoint is one grain-boundary grid index from the `grainBoundaries=`
// option's "list of (i,j,k)" (spec §6).
type GBPoint struct{ IX, IY, IZ int }

// Options holds the parsed contents of the options file. Fields not
// present in the file keep their Go zero value; callers decide whether
// that is an error for their particular wiring (spec's inp package is
// an outer collaborator -- the core never reads Options directly).
type Options struct {
	NetParam           network.NetParam
	Material           network.Material
	MaterialSet        bool
	TempHandler        string
	StartTemp          float64
	GridType           string
	HxGridStep         float64
	SurfaceAdvection   bool
	GrainBoundaries    []GBPoint
	MigrationThreshold float64
	FluxAmplitude      float64
	Processes          map[string]bool

	// Passthrough holds every key this reader does not itself interpret
	// but the file declared as belonging to the integrator (spec §6:
	// "plus integrator passthrough options"). Keys here are still
	// required to be in recognizedKeys or explicitly namespaced with a
	// "integrator." prefix; anything else is an OptionError.
	Passthrough map[string]string
}

// ReadOptions reads and parses an options file from dir/fn.
func ReadOptions(dir, fn string) (o *Options, err error) {
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}
	return ParseOptions(string(b))
}

// ParseOptions parses options-file text directly; exported so tests and
// in-memory callers (e.g. a launcher building the file from flags) don't
// need to round-trip through disk.
func ParseOptions(text string) (o *Options, err error) {
	o = &Options{Processes: make(map[string]bool), Passthrough: make(map[string]string)}
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, xerrors.NewOptionError(line, fmt.Sprintf("line %d: missing '='", i+1))
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if !recognizedKeys[key] && !strings.HasPrefix(key, "integrator.") {
			return nil, xerrors.NewOptionError(key, fmt.Sprintf("line %d: unrecognized key", i+1))
		}
		if err := o.set(key, val); err != nil {
			return nil, xerrors.NewOptionError(key, fmt.Sprintf("line %d: %v", i+1, err))
		}
	}
	return o, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func (o *Options) set(key, val string) error {
	switch key {
	case "netParam":
		fields := strings.Fields(val)
		if len(fields) != 5 {
			return chk.Err("netParam needs 5 integers <maxHe> <maxD> <maxT> <maxV> <maxI>, got %q", val)
		}
		ints := make([]int, 5)
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return chk.Err("netParam field %d (%q) is not an integer", i, f)
			}
			ints[i] = n
		}
		o.NetParam = network.NetParam{MaxHe: ints[0], MaxD: ints[1], MaxT: ints[2], MaxV: ints[3], MaxI: ints[4]}

	case "material":
		m, ok := network.ParseMaterial(val)
		if !ok {
			return chk.Err("unknown material %q", val)
		}
		o.Material = m
		o.MaterialSet = true

	case "tempHandler":
		o.TempHandler = val

	case "startTemp":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return chk.Err("startTemp is not a number: %q", val)
		}
		o.StartTemp = f

	case "gridType":
		o.GridType = val

	case "hxGridStep":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return chk.Err("hxGridStep is not a number: %q", val)
		}
		o.HxGridStep = f

	case "surfaceAdvection":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return chk.Err("surfaceAdvection is not a bool: %q", val)
		}
		o.SurfaceAdvection = b

	case "grainBoundaries":
		pts, err := parseGBList(val)
		if err != nil {
			return err
		}
		o.GrainBoundaries = pts

	case "migrationThreshold":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return chk.Err("migrationThreshold is not a number: %q", val)
		}
		o.MigrationThreshold = f

	case "fluxAmplitude":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return chk.Err("fluxAmplitude is not a number: %q", val)
		}
		o.FluxAmplitude = f

	case "process":
		for _, p := range strings.Split(val, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				o.Processes[p] = true
			}
		}

	default: // integrator.* passthrough
		o.Passthrough[key] = val
	}
	return nil
}

// parseGBList parses "(i,j,k);(i,j,k);..." into a GBPoint slice.
func parseGBList(val string) ([]GBPoint, error) {
	if val == "" {
		return nil, nil
	}
	var out []GBPoint
	for _, group := range strings.Split(val, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		group = strings.TrimPrefix(group, "(")
		group = strings.TrimSuffix(group, ")")
		fields := strings.Split(group, ",")
		if len(fields) != 3 {
			return nil, chk.Err("grainBoundaries entry %q must have the form (i,j,k)", group)
		}
		var ijk [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, chk.Err("grainBoundaries entry %q has a non-integer coordinate", group)
			}
			ijk[i] = n
		}
		out = append(out, GBPoint{IX: ijk[0], IY: ijk[1], IZ: ijk[2]})
	}
	return out, nil
}

// HasProcess reports whether the `process=` list (spec §6) enables the
// named process; an absent `process=` line enables every process, since
// the option's purpose is to *restrict* a default-everything run.
func (o *Options) HasProcess(name string) bool {
	if len(o.Processes) == 0 {
		return true
	}
	return o.Processes[name]
}
