// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsity

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_registry01 checks Finalize produces dense, sorted, deduplicated
// per-row column lists (spec §4.I, §8's sparsity-correctness property).
func Test_registry01(tst *testing.T) {

	chk.PrintTitle("registry01")

	r := NewRegistry()
	r.AddDiagonal(0, 1)
	r.AddDiagonal(0, 1) // duplicate, must not double-count
	r.AddDiagonal(0, 0)
	r.AddOffDiagonal(1, 2)

	chk.IntAssert(r.CountEntries(), 3)

	dfill, ofill := r.Finalize(3)
	chk.Ints(tst, "dfill[0]", dfill[0], []int{0, 1})
	chk.Ints(tst, "dfill[1]", dfill[1], []int{})
	chk.Ints(tst, "ofill[1]", ofill[1], []int{2})
}

// Test_registry02 checks ExportTriplet builds a usable collaborator
// without panicking when every registered entry is populated, mirroring
// how fem.Domain sizes o.Kb against the accumulated nonzero count before
// elements call Kb.Put.
func Test_registry02(tst *testing.T) {

	chk.PrintTitle("registry02")

	r := NewRegistry()
	r.AddDiagonal(0, 0)
	r.AddDiagonal(1, 1)
	r.AddOffDiagonal(0, 1)
	chk.IntAssert(r.CountEntries(), 3)

	tri := r.ExportTriplet(2)
	if tri == nil {
		tst.Fatal("expected a non-nil triplet")
	}
}
