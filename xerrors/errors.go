// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xerrors defines the error kinds surfaced by the spatial-operator core
package xerrors

import (
	"github.com/cpmech/gosl/chk"
)

// MissingClusterError is raised when a physics handler requires a cluster
// that is absent from the reaction network; a hard configuration error.
type MissingClusterError struct {
	Name string
	Size int
	err  error
}

func (e *MissingClusterError) Error() string { return e.err.Error() }
func (e *MissingClusterError) Kind() string   { return "MissingCluster" }

// NewMissingCluster builds a MissingClusterError naming the offending species.
func NewMissingCluster(name string, size int) *MissingClusterError {
	return &MissingClusterError{
		Name: name,
		Size: size,
		err:  chk.Err("missing cluster: %s of size %d is not present in the network", name, size),
	}
}

// InvalidGridGeometryError is raised for a non-monotone grid or a zero-width interval.
type InvalidGridGeometryError struct {
	Index int
	err   error
}

func (e *InvalidGridGeometryError) Error() string { return e.err.Error() }
func (e *InvalidGridGeometryError) Kind() string   { return "InvalidGridGeometry" }

// NewInvalidGridGeometry builds an InvalidGridGeometryError at the offending index.
func NewInvalidGridGeometry(index int, reason string) *InvalidGridGeometryError {
	return &InvalidGridGeometryError{
		Index: index,
		err:   chk.Err("invalid grid geometry at index %d: %s", index, reason),
	}
}

// ShapeMismatchError is raised when the network DOF does not match the
// concentration vector stride.
type ShapeMismatchError struct {
	Expected int
	Got      int
	err      error
}

func (e *ShapeMismatchError) Error() string { return e.err.Error() }
func (e *ShapeMismatchError) Kind() string   { return "ShapeMismatch" }

// NewShapeMismatch builds a ShapeMismatchError reporting expected vs. actual length.
func NewShapeMismatch(expected, got int) *ShapeMismatchError {
	return &ShapeMismatchError{
		Expected: expected,
		Got:      got,
		err:      chk.Err("shape mismatch: expected %d degrees of freedom, got %d", expected, got),
	}
}

// IOFailureError is raised on checkpoint read/write failures.
type IOFailureError struct {
	Path string
	err  error
}

func (e *IOFailureError) Error() string { return e.err.Error() }
func (e *IOFailureError) Kind() string   { return "IOFailure" }

// NewIOFailure builds an IOFailureError naming the offending path.
func NewIOFailure(path string, cause error) *IOFailureError {
	return &IOFailureError{
		Path: path,
		err:  chk.Err("I/O failure on %q: %v", path, cause),
	}
}

// OptionError is raised for an unrecognized or inconsistent option key.
type OptionError struct {
	Key string
	err error
}

func (e *OptionError) Error() string { return e.err.Error() }
func (e *OptionError) Kind() string  { return "OptionError" }

// NewOptionError builds an OptionError naming the offending option key.
func NewOptionError(key, reason string) *OptionError {
	return &OptionError{
		Key: key,
		err: chk.Err("option error on %q: %s", key, reason),
	}
}
