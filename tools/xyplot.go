// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tools holds small standalone plotting helpers for inspecting a
// run's output, mirroring the role the teacher's mdl/retention.Plot and
// out/plotting.go played for FEM post-processing -- here applied to a
// 1D concentration profile instead of a load-displacement curve.
package tools

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/xolotl-go/xolotl/operator"
)

// PlotConcentrationProfile plots cluster clusterID's concentration along
// the owned X range at ly=1, lz=1, following the teacher's
// retention.Plot shape (build parallel X/Y slices, one plt.Plot call,
// then Save) rather than a bespoke charting stack.
func PlotConcentrationProfile(x []float64, c *operator.Field, clusterID int, label, args, dirout, fn string) error {
	npts := c.Xm
	xs := make([]float64, npts)
	ys := make([]float64, npts)
	for lx := 1; lx <= npts; lx++ {
		xs[lx-1] = x[lx]
		ys[lx-1] = c.At(lx, 1, 1)[clusterID]
	}
	plt.Plot(xs, ys, io.Sf("%s, label='%s', clip_on=0", args, label))
	plt.SaveD(dirout, fn)
	return nil
}
