// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

// Overlap coefficients make a production/dissociation reaction over region
// clusters (super-clusters) exact under grouping: instead of evaluating the
// rate law once per grouped composition, the reaction carries a tensor of
// closed-form sums over the integer lattice intersection of the reactant and
// product tiles (spec §4.A.2).
//
// Coefs[i][j][d][k]: i is the 1-based axis of reactant 0's distance from its
// centroid (0 = no distance / 0th order), j likewise for reactant 1, d in
// {0: flux, 1: d/d(reactant0), 2: d/d(reactant1)}, k is the 1-based axis of
// the derivative's own target distance (0 = 0th order).
type Coefs [][][3][]float64

func newCoefs(nAxes int) Coefs {
	c := make(Coefs, nAxes+1)
	for i := range c {
		c[i] = make([][3][]float64, nAxes+1)
		for j := range c[i] {
			for d := 0; d < 3; d++ {
				c[i][j][d] = make([]float64, nAxes+1)
			}
		}
	}
	return c
}

// firstOrderSum computes sum_{l=a}^{b} (l - mu); spec §4.A.2.
func firstOrderSum(a, b int, mu float64) float64 {
	sum := 0.0
	for l := a; l <= b; l++ {
		sum += float64(l) - mu
	}
	return sum
}

// secondOrderSum computes sum_{l=a}^{b} (l - mu)^2; spec §4.A.2.
func secondOrderSum(a, b int, mu float64) float64 {
	sum := 0.0
	for l := a; l <= b; l++ {
		d := float64(l) - mu
		sum += d * d
	}
	return sum
}

// secondOrderOffsetSum computes sum_{l=a}^{b} (l - mu) * ((l+offset) - nu),
// the offset variant used when the target distance is centered on prod's
// centroid while the summation variable is centered on the reactant tile.
func secondOrderOffsetSum(a, b int, mu, nu float64, offset int) float64 {
	sum := 0.0
	for l := a; l <= b; l++ {
		sum += (float64(l) - mu) * (float64(l+offset) - nu)
	}
	return sum
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// axisOverlapWidth returns, for axis i (0-based species axis), the number
// of integer pairs (a, b) with a in cl0[i], b in cl1[i], a+b in prod[i]:
// width = sum_{j in cl0[i]} ( min(prod.hi-1, cl1.hi-1+j) - max(prod.lo, cl1.lo+j) + 1 ).
func axisOverlapWidth(cl0, cl1, prod Region, axis int) int {
	width := 0
	for j := cl0.Lower[axis]; j < cl0.Upper[axis]; j++ {
		hi := minInt(prod.Upper[axis]-1, cl1.Upper[axis]-1+j)
		lo := maxInt(prod.Lower[axis], cl1.Lower[axis]+j)
		if hi >= lo {
			width += hi - lo + 1
		}
	}
	return width
}

// ComputeProductionCoefficients builds the overlap-coefficient tensor for a
// production cl0 + cl1 -> prod, following original_source's
// computeProductionCoefficients (Reaction.inl) translated to an arbitrary
// number of species axes. The source's "i == j == k" condition -- which in
// C++ evaluates (i==j) as a bool compared against k -- is implemented here
// as the intended three-way equality (spec §9 Open Question).
func ComputeProductionCoefficients(cl0, cl1, prod Region) (coefs Coefs, overlap int) {
	nAxes := cl0.NAxes()
	widths := make([]int, nAxes)
	overlap = 1
	for i := 0; i < nAxes; i++ {
		widths[i] = axisOverlapWidth(cl0, cl1, prod, i)
		overlap *= widths[i]
	}
	if overlap <= 0 {
		overlap = 0
		coefs = newCoefs(nAxes)
		return
	}
	coefs = newCoefs(nAxes)
	nOverlap := float64(overlap)

	for i := 0; i <= nAxes; i++ {
		for j := 0; j <= nAxes; j++ {
			switch {
			case i+j == 0:
				coefs[i][j][0][0] = nOverlap
			case j == 0:
				for l := cl1.Lower[i-1]; l < cl1.Upper[i-1]; l++ {
					coefs[i][j][0][0] += firstOrderSum(
						maxInt(prod.Lower[i-1]-l, cl0.Lower[i-1]),
						minInt(prod.Upper[i-1]-1-l, cl0.Upper[i-1]-1),
						cl0.Centroid(i-1))
				}
			case i == 0:
				for l := cl0.Lower[j-1]; l < cl0.Upper[j-1]; l++ {
					coefs[i][j][0][0] += firstOrderSum(
						maxInt(prod.Lower[j-1]-l, cl1.Lower[j-1]),
						minInt(prod.Upper[j-1]-1-l, cl1.Upper[j-1]-1),
						cl1.Centroid(j-1))
				}
			default:
				if i == j {
					for l := cl0.Lower[j-1]; l < cl0.Upper[j-1]; l++ {
						coefs[i][j][0][0] += (float64(l) - cl0.Centroid(j-1)) * firstOrderSum(
							maxInt(prod.Lower[j-1]-l, cl1.Lower[j-1]),
							minInt(prod.Upper[j-1]-1-l, cl1.Upper[j-1]-1),
							cl1.Centroid(j-1))
					}
				} else {
					coefs[i][j][0][0] = coefs[i][0][0][0] * coefs[0][j][0][0] / nOverlap
				}
			}

			// partials w.r.t. the product's own distance axes
			for k := 1; k <= nAxes; k++ {
				switch {
				case i+j == 0:
					for l := cl0.Lower[k-1]; l < cl0.Upper[k-1]; l++ {
						coefs[i][j][0][k] += firstOrderSum(
							maxInt(prod.Lower[k-1], cl1.Lower[k-1]+l),
							minInt(prod.Upper[k-1]-1, cl1.Upper[k-1]-1+l),
							prod.Centroid(k-1))
					}
				case j == 0:
					if i == k {
						for l := cl1.Lower[i-1]; l < cl1.Upper[i-1]; l++ {
							coefs[i][j][0][k] += secondOrderOffsetSum(
								maxInt(prod.Lower[i-1]-l, cl0.Lower[i-1]),
								minInt(prod.Upper[i-1]-1-l, cl0.Upper[i-1]-1),
								cl0.Centroid(i-1), prod.Centroid(i-1), l)
						}
					} else {
						coefs[i][j][0][k] = coefs[i][0][0][0] * coefs[0][0][0][k] / nOverlap
					}
				case i == 0:
					if j == k {
						for l := cl0.Lower[j-1]; l < cl0.Upper[j-1]; l++ {
							coefs[i][j][0][k] += secondOrderOffsetSum(
								maxInt(prod.Lower[j-1]-l, cl1.Lower[j-1]),
								minInt(prod.Upper[j-1]-1-l, cl1.Upper[j-1]-1),
								cl1.Centroid(j-1), prod.Centroid(j-1), l)
						}
					} else {
						coefs[i][j][0][k] = coefs[0][j][0][0] * coefs[0][0][0][k] / nOverlap
					}
				default:
					if i == j && j == k {
						for l := cl1.Lower[i-1]; l < cl1.Upper[i-1]; l++ {
							coefs[i][j][0][k] += (float64(l) - cl1.Centroid(i-1)) * secondOrderOffsetSum(
								maxInt(prod.Lower[i-1]-l, cl0.Lower[i-1]),
								minInt(prod.Upper[i-1]-1-l, cl0.Upper[i-1]-1),
								cl0.Centroid(i-1), prod.Centroid(i-1), l)
						}
					} else if j == k {
						coefs[i][j][0][k] = coefs[i][0][0][0] * coefs[0][j][0][k] / nOverlap
					} else if i == k {
						coefs[i][j][0][k] = coefs[0][j][0][0] * coefs[i][0][0][k] / nOverlap
					} else {
						coefs[i][j][0][k] = coefs[i][0][0][0] * coefs[0][j][0][0] * coefs[0][0][0][k] / nOverlap
					}
				}
			}

			// partials w.r.t. reactant 0's distance axes
			for k := 1; k <= nAxes; k++ {
				switch {
				case i+j == 0:
					coefs[i][j][1][k] = coefs[k][0][0][0]
				case j == 0:
					if i == k {
						for l := cl1.Lower[i-1]; l < cl1.Upper[i-1]; l++ {
							coefs[i][j][1][k] += secondOrderSum(
								maxInt(prod.Lower[i-1]-l, cl0.Lower[i-1]),
								minInt(prod.Upper[i-1]-1-l, cl0.Upper[i-1]-1),
								cl0.Centroid(i-1))
						}
					} else {
						coefs[i][j][1][k] = coefs[i][0][0][0] * coefs[k][0][0][0] / nOverlap
					}
				case i == 0:
					coefs[i][j][1][k] = coefs[k][j][0][0]
				default:
					if i == j && j == k {
						for l := cl0.Lower[i-1]; l < cl0.Upper[i-1]; l++ {
							dist := float64(l) - cl0.Centroid(i-1)
							coefs[i][j][1][k] += dist * dist * firstOrderSum(
								maxInt(prod.Lower[i-1]-l, cl1.Lower[i-1]),
								minInt(prod.Upper[i-1]-1-l, cl1.Upper[i-1]-1),
								cl1.Centroid(i-1))
						}
					} else if i == k {
						coefs[i][j][1][k] = coefs[0][j][0][0] * coefs[i][0][1][k] / nOverlap
					} else if j == k {
						coefs[i][j][1][k] = coefs[i][0][0][0] * coefs[0][j][1][k] / nOverlap
					} else {
						coefs[i][j][1][k] = coefs[i][0][0][0] * coefs[0][j][0][0] * coefs[k][0][0][0] / nOverlap
					}
				}
			}

			// partials w.r.t. reactant 1's distance axes
			for k := 1; k <= nAxes; k++ {
				switch {
				case i+j == 0:
					coefs[i][j][2][k] = coefs[0][k][0][0]
				case i == 0:
					if j == k {
						for l := cl0.Lower[j-1]; l < cl0.Upper[j-1]; l++ {
							coefs[i][j][2][k] += secondOrderSum(
								maxInt(prod.Lower[j-1]-l, cl1.Lower[j-1]),
								minInt(prod.Upper[j-1]-1-l, cl1.Upper[j-1]-1),
								cl1.Centroid(j-1))
						}
					} else {
						coefs[i][j][2][k] = coefs[0][j][0][0] * coefs[0][k][0][0] / nOverlap
					}
				case j == 0:
					coefs[i][j][2][k] = coefs[i][k][0][0]
				default:
					if i == j && j == k {
						for l := cl1.Lower[j-1]; l < cl1.Upper[j-1]; l++ {
							dist := float64(l) - cl1.Centroid(j-1)
							coefs[i][j][2][k] += dist * dist * firstOrderSum(
								maxInt(prod.Lower[j-1]-l, cl0.Lower[j-1]),
								minInt(prod.Upper[j-1]-1-l, cl0.Upper[j-1]-1),
								cl0.Centroid(j-1))
						}
					} else if j == k {
						coefs[i][j][2][k] = coefs[i][0][0][0] * coefs[0][j][2][k] / nOverlap
					} else if i == k {
						coefs[i][j][2][k] = coefs[0][j][0][0] * coefs[i][0][2][k] / nOverlap
					} else {
						coefs[i][j][2][k] = coefs[i][0][0][0] * coefs[0][j][0][0] * coefs[0][k][0][0] / nOverlap
					}
				}
			}
		}
	}
	return
}

// ComputeDissociationCoefficients builds the overlap tensor for a
// dissociation parent -> prod (single reactant axis set, j is always 0).
// Per spec §9's second Open Question, the per-axis initialization is a flat
// loop over i in [0, nAxes) following a single overlap computation, not
// re-entrant inside the overlap loop (which would let higher axes overwrite
// coefs(i,0,0,0) for lower axes).
func ComputeDissociationCoefficients(parent, prod Region) (coefs Coefs, overlap int) {
	nAxes := parent.NAxes()
	overlap = 1
	for i := 0; i < nAxes; i++ {
		overlap *= axisOverlapWidth(parent, Region{Lower: make([]int, nAxes), Upper: oneWidths(nAxes)}, prod, i)
	}
	if overlap <= 0 {
		overlap = 0
	}
	coefs = newCoefs(nAxes)
	nOverlap := float64(maxInt(overlap, 1))

	coefs[0][0][0][0] = float64(overlap)
	for i := 1; i <= nAxes; i++ {
		for l := parent.Lower[i-1]; l < parent.Upper[i-1]; l++ {
			coefs[i][0][0][0] += firstOrderSum(
				maxInt(prod.Lower[i-1]-l, 0),
				minInt(prod.Upper[i-1]-1-l, 0),
				parent.Centroid(i-1))
		}
		for k := 1; k <= nAxes; k++ {
			if i == k {
				for l := parent.Lower[i-1]; l < parent.Upper[i-1]; l++ {
					coefs[i][0][1][k] += (float64(l) - parent.Centroid(i-1)) * (float64(l) - parent.Centroid(i-1))
				}
			} else {
				coefs[i][0][1][k] = coefs[i][0][0][0] * coefs[k][0][0][0] / nOverlap
			}
		}
	}
	return
}

func oneWidths(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
