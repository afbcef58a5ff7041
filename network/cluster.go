// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package network implements the cluster catalog, reaction list, and
// per-point flux/Jacobian evaluation of the reaction network (spec §4.A).
package network

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Region is an axis-aligned tile in composition space: [Lower, Upper) on
// every species axis. A single-composition cluster has Upper = Lower+1 on
// every axis.
type Region struct {
	Lower []int // inclusive origin, one entry per species axis
	Upper []int // exclusive upper bound, one entry per species axis
}

// NAxes returns the number of species axes this region spans.
func (r Region) NAxes() int { return len(r.Lower) }

// Width returns the number of integer points spanned by axis i.
func (r Region) Width(i int) int { return r.Upper[i] - r.Lower[i] }

// IsSingleton reports whether the region collapses to one composition.
func (r Region) IsSingleton() bool {
	for i := range r.Lower {
		if r.Upper[i]-r.Lower[i] != 1 {
			return false
		}
	}
	return true
}

// Composition returns the single composition of a singleton region.
func (r Region) Composition() []int {
	comp := make([]int, len(r.Lower))
	copy(comp, r.Lower)
	return comp
}

// Centroid returns, per axis, (Upper-1+Lower)/2 -- the region's midpoint,
// matching the C++ source's recurring "(end()-1+begin())/2.0" expression.
func (r Region) Centroid(i int) float64 {
	return float64(r.Upper[i]-1+r.Lower[i]) / 2.0
}

// Cluster identifies one species (or grouped super-cluster) in the network.
// Attributes follow spec §3: a composition region over the species basis,
// reaction radius, diffusion pre-factor and migration energy, formation
// energy.
type Cluster struct {
	ID              int     // stable integer id in [0, N)
	Name            string  // e.g. "He_3", "V_1", "Xe_12"
	Region          Region  // composition tile; singleton for ordinary clusters
	ReactionRadius  float64 // nm
	DiffusionFactor float64 // pre-factor D0, nm^2/s
	MigrationEnergy float64 // eV
	FormationEnergy float64 // eV
}

// IsRegion reports whether this cluster groups more than one composition.
func (c *Cluster) IsRegion() bool { return !c.Region.IsSingleton() }

// Composition returns the (lower-bound) composition vector of the cluster.
// For a region cluster this is the tile's origin, not its average.
func (c *Cluster) Composition() []int { return c.Region.Composition() }

// DiffusionCoefficient returns D(T) = D0 * exp(-Em / (kB T)), zero for a
// cluster above the configured migration-energy threshold (spec §4.B).
func (c *Cluster) DiffusionCoefficient(temperature, migrationThreshold float64) float64 {
	if c.DiffusionFactor == 0 || c.MigrationEnergy > migrationThreshold {
		return 0
	}
	return c.DiffusionFactor * math.Exp(-c.MigrationEnergy/(boltzmannEV*temperature))
}

// NewSimpleCluster builds a single-composition cluster of the given size on
// one species axis (out of nAxes); the diffusion factor, migration energy,
// reaction radius and formation energy are taken as given by the caller
// (the material builders in materials.go compute them per size).
func NewSimpleCluster(axis, nAxes, size int, name string, diffFactor, migEnergy, reactionRadius, formationEnergy float64) Cluster {
	if size < 1 {
		chk.Panic("cluster size must be >= 1, got %d for %s", size, name)
	}
	lower := make([]int, nAxes)
	upper := make([]int, nAxes)
	for i := range lower {
		upper[i] = 1
	}
	lower[axis] = size
	upper[axis] = size + 1
	return Cluster{
		Name:            name,
		Region:          Region{Lower: lower, Upper: upper},
		ReactionRadius:  reactionRadius,
		DiffusionFactor: diffFactor,
		MigrationEnergy: migEnergy,
		FormationEnergy: formationEnergy,
	}
}

const boltzmannEV = 8.617333262e-5 // eV/K
