// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AccelByte/extend-bridge-match/pkg/mathutil"
)

const separator = ":"

var ErrMalformedCoordinates = errors.New("malformed coordinates")

// Vec3 is a point in continuous world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(x, y, z float64) Vec3 {
	return Vec3{X: v.X + x, Y: v.Y + y, Z: v.Z + z}
}

// Floor returns the block containing v.
func (v Vec3) Floor() BlockPos {
	return BlockPos{X: mathutil.FloorInt(v.X), Y: mathutil.FloorInt(v.Y), Z: mathutil.FloorInt(v.Z)}
}

func (v Vec3) String() string {
	return strings.Join([]string{formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z)}, separator)
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// String returns the "x:y:z" key of the block.
func (b BlockPos) String() string {
	return strconv.Itoa(b.X) + separator + strconv.Itoa(b.Y) + separator + strconv.Itoa(b.Z)
}

func (b BlockPos) Vec() Vec3 {
	return Vec3{X: float64(b.X), Y: float64(b.Y), Z: float64(b.Z)}
}

// Location is a position with a facing. Yaw and pitch are in degrees.
type Location struct {
	Vec3
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

func (l Location) String() string {
	return strings.Join([]string{l.Vec3.String(), formatFloat(l.Yaw), formatFloat(l.Pitch)}, separator)
}

// ParseVec3 parses "x:y:z". Components are truncated to whole blocks.
func ParseVec3(s string) (Vec3, error) {
	values, err := parseInts(s, 3, 3)
	if err != nil {
		return Vec3{}, err
	}

	return Vec3{X: float64(values[0]), Y: float64(values[1]), Z: float64(values[2])}, nil
}

// ParseLocation parses "x:y:z[:yaw[:pitch]]". Missing facing defaults to zero.
func ParseLocation(s string) (Location, error) {
	values, err := parseInts(s, 3, 5)
	if err != nil {
		return Location{}, err
	}
	values = append(values, 0, 0)

	return Location{
		Vec3:  Vec3{X: float64(values[0]), Y: float64(values[1]), Z: float64(values[2])},
		Yaw:   float64(values[3]),
		Pitch: float64(values[4]),
	}, nil
}

func parseInts(s string, minParts, maxParts int) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), separator)
	if len(parts) < minParts || len(parts) > maxParts {
		return nil, fmt.Errorf("%w: %q", ErrMalformedCoordinates, s)
	}

	values := make([]int, 0, maxParts)
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCoordinates, s)
		}
		values = append(values, int(f))
	}

	return values, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
