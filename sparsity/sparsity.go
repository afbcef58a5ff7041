// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparsity implements the Sparsity Registry (spec §4.I): the
// dfill (diagonal / same-point) and ofill (off-diagonal / nearest
// neighbor) maps populated by each component's initializer and finalized
// once into whatever dense-per-row format the integrator requires.
package sparsity

import (
	"sort"

	"github.com/cpmech/gosl/la"
)

// Registry accumulates the diagonal and off-diagonal sparsity maps
// during initialization (spec §4.I). One entry per directional coupling
// is kept in ofill "regardless of dimension -- the integrator replicates
// it", matching the spec's wording verbatim.
type Registry struct {
	DFill map[int][]int
	OFill map[int][]int
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{DFill: make(map[int][]int), OFill: make(map[int][]int)}
}

// AddDiagonal records a same-point coupling; duplicates are ignored.
func (r *Registry) AddDiagonal(row, col int) {
	r.DFill[row] = appendUnique(r.DFill[row], col)
}

// AddOffDiagonal records a nearest-neighbor coupling.
func (r *Registry) AddOffDiagonal(row, col int) {
	r.OFill[row] = appendUnique(r.OFill[row], col)
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// Finalize emits the pair (dfill, ofill) as one sorted column list per row
// for rows 0..nDOF-1; a row with no registered coupling gets an empty list
// (no padding) (spec §4.I, §6).
func (r *Registry) Finalize(nDOF int) (dfillDense, ofillDense [][]int) {
	dfillDense = denseFromMap(r.DFill, nDOF)
	ofillDense = denseFromMap(r.OFill, nDOF)
	return
}

func denseFromMap(m map[int][]int, nDOF int) [][]int {
	out := make([][]int, nDOF)
	for row := 0; row < nDOF; row++ {
		cols := append([]int(nil), m[row]...)
		sort.Ints(cols)
		out[row] = cols
	}
	return out
}

// CountEntries returns the total number of (row, col) pairs registered
// across both maps -- the nonzero-entry budget the integrator's sparse
// solver preallocates against.
func (r *Registry) CountEntries() int {
	n := 0
	for _, cols := range r.DFill {
		n += len(cols)
	}
	for _, cols := range r.OFill {
		n += len(cols)
	}
	return n
}

// ExportTriplet builds a zero-valued la.Triplet sized and pre-populated
// with the registered (row, col) structure, matching how ele.Element's
// AddToKb contract expects a *la.Triplet collaborator: one Put call per
// nonzero, accumulated (not overwritten) across components (spec §4.I,
// §6's sparse-matrix collaborator).
func (r *Registry) ExportTriplet(nDOF int) *la.Triplet {
	nnz := r.CountEntries()
	if nnz < 1 {
		nnz = 1
	}
	t := new(la.Triplet)
	t.Init(nDOF, nDOF, nnz)
	for row, cols := range r.DFill {
		for _, col := range cols {
			t.Put(row, col, 0)
		}
	}
	for row, cols := range r.OFill {
		for _, col := range cols {
			t.Put(row, col, 0)
		}
	}
	return t
}
