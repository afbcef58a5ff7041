// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operator

import "github.com/xolotl-go/xolotl/decomp"

// Field is a flat concentration (or RHS) array over the owned box plus
// its one-deep ghost layer on every side (spec §3, §4.G): local indices
// (lx, ly, lz) run over [0, Xm+1] x [0, Ym+1] x [0, Zm+1], with index 0
// and Xm+1 (resp. Ym+1, Zm+1) the ghost cells. Ghost-cell values are
// assumed already populated by the integrator's exchange before the
// Driver is called (spec §5: "the core reads ghost cells only").
type Field struct {
	Data              []float64
	Xm, Ym, Zm, Width int // Width = network.GetDOF() (clusters plus the heat row)
}

// NewField allocates a zeroed field sized to the decomposition's owned
// box plus ghosts, each point carrying width values.
func NewField(d decomp.Decomposition, width int) *Field {
	xm, ym, zm := d.Xm, d.Ym, d.Zm
	if ym < 1 {
		ym = 1
	}
	if zm < 1 {
		zm = 1
	}
	n := (xm + 2) * (ym + 2) * (zm + 2) * width
	return &Field{Data: make([]float64, n), Xm: xm, Ym: ym, Zm: zm, Width: width}
}

func (f *Field) dims() (ym, zm int) {
	ym, zm = f.Ym, f.Zm
	if ym < 1 {
		ym = 1
	}
	if zm < 1 {
		zm = 1
	}
	return
}

// offset returns the flat start offset for local point (lx, ly, lz).
func (f *Field) offset(lx, ly, lz int) int {
	ym, zm := f.dims()
	return ((lz*(ym+2)+ly)*(f.Xm+2) + lx) * f.Width
}

// At returns the width-length slice for local point (lx, ly, lz); lx
// ranges over [0, Xm+1], ly over [0, Ym+1] and lz over [0, Zm+1] (when the
// owned extent in an axis is 1, matching decomp.Decomposition's
// 1D/2D/3D degeneracy, the single owned index in that axis is 1).
func (f *Field) At(lx, ly, lz int) []float64 {
	o := f.offset(lx, ly, lz)
	return f.Data[o : o+f.Width]
}

// PointIndex returns the flat ghost-inclusive point number of (lx, ly,
// lz), the same numbering ComputeJacobian uses as its local row/column
// block index (point number * Width + species/heat index).
func (f *Field) PointIndex(lx, ly, lz int) int {
	return f.offset(lx, ly, lz) / f.Width
}

// NumPoints returns the total ghost-inclusive point count, i.e. the
// block dimension ComputeJacobian's Triplet is sized against.
func (f *Field) NumPoints() int {
	ym, zm := f.dims()
	return (f.Xm + 2) * (ym + 2) * (zm + 2)
}
