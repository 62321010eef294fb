// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package geom

import "github.com/AccelByte/extend-bridge-match/pkg/mathutil"

// Region is an axis aligned, inclusive block box. Min is component-wise <= Max.
type Region struct {
	Min BlockPos `json:"min"`
	Max BlockPos `json:"max"`
}

// NewRegion floors both corners and normalizes them so the region is valid regardless of corner order.
func NewRegion(a, b Vec3) Region {
	fa, fb := a.Floor(), b.Floor()

	return Region{
		Min: BlockPos{X: mathutil.Min(fa.X, fb.X), Y: mathutil.Min(fa.Y, fb.Y), Z: mathutil.Min(fa.Z, fb.Z)},
		Max: BlockPos{X: mathutil.Max(fa.X, fb.X), Y: mathutil.Max(fa.Y, fb.Y), Z: mathutil.Max(fa.Z, fb.Z)},
	}
}

// Contains reports whether p lies inside the region, bounds included.
func (r Region) Contains(p BlockPos) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// CageShell returns the hollow box of blocks around center with the given full width and height.
// Every position on the outer faces is included, the interior is not.
func CageShell(center Vec3, width, height int) []BlockPos {
	c := center.Floor()
	hw, hh := width/2, height/2

	minX, maxX := c.X-hw, c.X+hw
	minY, maxY := c.Y-hh, c.Y+hh
	minZ, maxZ := c.Z-hw, c.Z+hw

	positions := make([]BlockPos, 0, (maxX-minX+1)*(maxY-minY+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				inner := x != minX && x != maxX && y != minY && y != maxY && z != minZ && z != maxZ
				if inner {
					continue
				}
				positions = append(positions, BlockPos{X: x, Y: y, Z: z})
			}
		}
	}

	return positions
}
