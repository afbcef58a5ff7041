// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the non-uniform X grid and the uniform Y/Z axes
// that make up the structured domain over which the spatial operator is
// assembled (spec §4.G).
package grid

import (
	"github.com/xolotl-go/xolotl/xerrors"
)

// Grid holds the monotonically increasing X coordinates (length nX+2,
// including one ghost point on each end) and the uniform transverse axes.
type Grid struct {
	X    []float64 // length nX+2
	HY   float64
	HZ   float64
	NX   int
	NY   int
	NZ   int
}

// New validates and wraps a precomputed X coordinate slice; spec §3: "a
// monotonically increasing sequence of X-coordinates of length nX+2".
func New(x []float64, hY, hZ float64, nY, nZ int) (*Grid, error) {
	if len(x) < 2 {
		return nil, xerrors.NewInvalidGridGeometry(0, "grid must have at least 2 points")
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, xerrors.NewInvalidGridGeometry(i, "X coordinates must be strictly increasing")
		}
	}
	if nY < 1 {
		nY = 1
	}
	if nZ < 1 {
		nZ = 1
	}
	return &Grid{X: x, HY: hY, HZ: hZ, NX: len(x) - 2, NY: nY, NZ: nZ}, nil
}

// GenerateGrid produces a non-uniform X coordinate vector of length nX+2,
// refined near the surface index and coarsened outward. hX is the base
// (finest) step; the grid doubles its local spacing every `coarsenEvery`
// points away from the surface, so the spacing grows in geometric steps,
// not linearly.
func GenerateGrid(nX int, hX float64, surfaceIndex, coarsenEvery int) []float64 {
	if coarsenEvery < 1 {
		coarsenEvery = 10
	}
	x := make([]float64, nX+2)
	// ghost point to the left of index 0 sits one step further out.
	steps := make([]float64, nX+1)
	for i := range steps {
		distFromSurface := i - surfaceIndex
		if distFromSurface < 0 {
			distFromSurface = -distFromSurface
		}
		doublings := distFromSurface / coarsenEvery
		scale := 1.0
		for d := 0; d < doublings; d++ {
			scale *= 2
		}
		steps[i] = hX * scale
	}
	x[0] = -steps[0]
	for i := 0; i <= nX; i++ {
		x[i+1] = x[i] + steps[i]
	}
	return x
}

// StepLeft returns h_xL: the step size to the left of interior point ix
// (1-based into the full X slice, i.e. owned points live in [1, nX]).
func (g *Grid) StepLeft(ix int) float64 { return g.X[ix] - g.X[ix-1] }

// StepRight returns h_xR: the step size to the right of interior point ix.
func (g *Grid) StepRight(ix int) float64 { return g.X[ix+1] - g.X[ix] }

// SY returns 1/hY^2, the transverse diffusion space parameter (spec §4.B).
func (g *Grid) SY() float64 {
	if g.HY == 0 {
		return 0
	}
	return 1.0 / (g.HY * g.HY)
}

// SZ returns 1/hZ^2.
func (g *Grid) SZ() float64 {
	if g.HZ == 0 {
		return 0
	}
	return 1.0 / (g.HZ * g.HZ)
}
