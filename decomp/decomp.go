// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package decomp describes the per-process owned box of a block-decomposed
// structured grid and the (possibly moving) surface position (spec §3,
// §4.G). The decomposition itself -- who owns which box, ghost exchange --
// is supplied by the integrator; this package only carries the shape the
// core reads.
package decomp

// Decomposition is the contiguous box this process owns, plus the one-deep
// ghost layer assumed on every side (spec §3).
type Decomposition struct {
	Xs, Xm int // owned box start/extent in X
	Ys, Ym int // owned box start/extent in Y
	Zs, Zm int // owned box start/extent in Z
}

// XEnd/YEnd/ZEnd are exclusive upper bounds of the owned box.
func (d Decomposition) XEnd() int { return d.Xs + d.Xm }
func (d Decomposition) YEnd() int { return d.Ys + d.Ym }
func (d Decomposition) ZEnd() int { return d.Zs + d.Zm }

// SurfacePosition holds the grid index of the material surface, per
// transverse column (spec §3): a scalar for 1D, an nY-vector for 2D, an
// nY x nZ matrix for 3D. Cells to the left of the surface are outside the
// domain.
type SurfacePosition struct {
	NY, NZ int
	Index  []int // flat, column (iy, iz) at iz*NY+iy; length NY*NZ
}

// NewScalarSurface builds a 1D surface position (NY=NZ=1).
func NewScalarSurface(index int) *SurfacePosition {
	return &SurfacePosition{NY: 1, NZ: 1, Index: []int{index}}
}

// NewUniformSurface builds a surface position constant across all
// transverse columns.
func NewUniformSurface(index, ny, nz int) *SurfacePosition {
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}
	idx := make([]int, ny*nz)
	for i := range idx {
		idx[i] = index
	}
	return &SurfacePosition{NY: ny, NZ: nz, Index: idx}
}

// At returns the surface grid index for transverse column (iy, iz).
func (s *SurfacePosition) At(iy, iz int) int {
	return s.Index[iz*s.NY+iy]
}

// Set advances the surface index at transverse column (iy, iz); used by the
// (out-of-core) surface-advancement handler between integrator steps.
func (s *SurfacePosition) Set(iy, iz, index int) {
	s.Index[iz*s.NY+iy] = index
}
