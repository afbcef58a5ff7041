// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_checkpoint01 round-trips a two-point, 1D-surface checkpoint
// through WriteFile/ReadFile and checks every field survives.
func Test_checkpoint01(tst *testing.T) {

	chk.PrintTitle("checkpoint01")

	c := &Checkpoint{
		Timestep: 42,
		Points: []GridPointRecord{
			{Entries: []ConcentrationEntry{{ClusterID: 0, Value: 1.5}, {ClusterID: 3, Value: 2.25}}, Temperature: 1000.0},
			{Entries: nil, Temperature: 950.0},
		},
		SurfaceShape:  [2]int{2, 1},
		SurfaceValues: []int{4, 5},
	}

	path := filepath.Join(tst.TempDir(), "ckpt.bin")
	if err := WriteFile(path, c); err != nil {
		tst.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		tst.Fatal(err)
	}

	chk.IntAssert(got.Timestep, 42)
	if len(got.Points) != 2 {
		tst.Fatalf("expected 2 points, got %d", len(got.Points))
	}
	chk.Scalar(tst, "point0 temperature", 1e-12, got.Points[0].Temperature, 1000.0)
	chk.Scalar(tst, "point1 temperature", 1e-12, got.Points[1].Temperature, 950.0)
	if len(got.Points[0].Entries) != 2 || got.Points[0].Entries[1].ClusterID != 3 {
		tst.Errorf("unexpected entries: %v", got.Points[0].Entries)
	}
	chk.Ints(tst, "surface values", got.SurfaceValues, []int{4, 5})
}

// Test_checkpoint02 checks ReadFile rejects a file without the magic header.
func Test_checkpoint02(tst *testing.T) {

	chk.PrintTitle("checkpoint02")

	path := filepath.Join(tst.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte("not a checkpoint"), 0644); err != nil {
		tst.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		tst.Fatal("expected an error for a non-checkpoint file")
	}
}
