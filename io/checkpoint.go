// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package io implements the checkpoint container the spec names under
// "File formats" (§6): an HDF5-style layout --
// /concentrationsGroup/concentration_<n> holding per-grid-point
// (cluster_id, value) pairs plus a trailing temperature value, and a
// surface dataset holding the surface-index array. No HDF5 binding
// exists anywhere in the retrieval pack (the only binary-container
// precedent available, cdf.Strider's netCDF reader/writer, is vendor
// code in an unrelated example and netCDF is not HDF5), so this package
// targets the same wire shape with a minimal self-describing binary
// encoding (length-prefixed records, big-endian, following cdf/write.go's
// writeString idiom) instead. A real HDF5 binding can replace this
// package's innards later without touching its call sites -- see
// DESIGN.md.
package io

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/xolotl-go/xolotl/xerrors"
)

const magic = "XCPT0001"

// ConcentrationEntry is one (cluster_id, value) pair at a grid point,
// matching the spec's "/concentrationsGroup/concentration_<n> contains
// per-grid-point (cluster_id, value) pairs plus a trailing temperature
// value".
type ConcentrationEntry struct {
	ClusterID int
	Value     float64
}

// GridPointRecord is the full payload for one grid point: its sparse
// cluster entries plus the trailing temperature value.
type GridPointRecord struct {
	Entries     []ConcentrationEntry
	Temperature float64
}

// Checkpoint holds one timestep's worth of checkpoint data: the
// concentration group (indexed by flat grid-point number n) and the
// surface dataset (scalar, 1D, or 2D depending on dimensionality --
// stored flat here with its shape carried alongside).
type Checkpoint struct {
	Timestep      int
	Points        []GridPointRecord // concentration_<n>, n = index into this slice
	SurfaceShape  [2]int            // {ny, nz}; {1,1} for a scalar surface, {ny,1} for 1D
	SurfaceValues []int
}

// WriteFile writes a Checkpoint to path in the container's binary
// layout, truncating any existing file.
func WriteFile(path string, c *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.NewIOFailure(path, err)
	}
	defer f.Close()
	if err := c.writeTo(f); err != nil {
		return xerrors.NewIOFailure(path, err)
	}
	return nil
}

// ReadFile reads a Checkpoint previously written by WriteFile.
func ReadFile(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.NewIOFailure(path, err)
	}
	defer f.Close()
	c, err := readFrom(f)
	if err != nil {
		return nil, xerrors.NewIOFailure(path, err)
	}
	return c, nil
}

func (c *Checkpoint) writeTo(w io.Writer) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int64(c.Timestep)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int64(len(c.Points))); err != nil {
		return err
	}
	for _, p := range c.Points {
		if err := binary.Write(w, binary.BigEndian, int64(len(p.Entries))); err != nil {
			return err
		}
		for _, e := range p.Entries {
			if err := binary.Write(w, binary.BigEndian, int64(e.ClusterID)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.BigEndian, e.Value); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.BigEndian, p.Temperature); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, int64(c.SurfaceShape[0])); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int64(c.SurfaceShape[1])); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int64(len(c.SurfaceValues))); err != nil {
		return err
	}
	for _, v := range c.SurfaceValues {
		if err := binary.Write(w, binary.BigEndian, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func readFrom(r io.Reader) (*Checkpoint, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if string(hdr[:]) != magic {
		return nil, errInvalidMagic
	}

	c := &Checkpoint{}
	var timestep, nPoints int64
	if err := binary.Read(r, binary.BigEndian, &timestep); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &nPoints); err != nil {
		return nil, err
	}
	c.Timestep = int(timestep)
	c.Points = make([]GridPointRecord, nPoints)

	for i := range c.Points {
		var nEntries int64
		if err := binary.Read(r, binary.BigEndian, &nEntries); err != nil {
			return nil, err
		}
		entries := make([]ConcentrationEntry, nEntries)
		for j := range entries {
			var id int64
			if err := binary.Read(r, binary.BigEndian, &id); err != nil {
				return nil, err
			}
			var v float64
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			entries[j] = ConcentrationEntry{ClusterID: int(id), Value: v}
		}
		var temp float64
		if err := binary.Read(r, binary.BigEndian, &temp); err != nil {
			return nil, err
		}
		c.Points[i] = GridPointRecord{Entries: entries, Temperature: temp}
	}

	var ny, nz, nSurf int64
	if err := binary.Read(r, binary.BigEndian, &ny); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &nz); err != nil {
		return nil, err
	}
	c.SurfaceShape = [2]int{int(ny), int(nz)}
	if err := binary.Read(r, binary.BigEndian, &nSurf); err != nil {
		return nil, err
	}
	c.SurfaceValues = make([]int, nSurf)
	for i := range c.SurfaceValues {
		var v int64
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		c.SurfaceValues[i] = int(v)
	}
	return c, nil
}

type magicError struct{}

func (magicError) Error() string { return "checkpoint: bad magic, not a xolotl checkpoint file" }

var errInvalidMagic = magicError{}
