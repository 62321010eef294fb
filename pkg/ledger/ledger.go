// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-bridge-match/pkg/geom"
)

// BlockLedger tracks blocks placed by participants inside the buildable region.
// Only recorded blocks may be broken.
type BlockLedger struct {
	region geom.Region
	blocks map[geom.BlockPos]struct{}
}

func New(region geom.Region) *BlockLedger {
	return &BlockLedger{
		region: region,
		blocks: make(map[geom.BlockPos]struct{}),
	}
}

func (l *BlockLedger) Region() geom.Region {
	return l.region
}

// IsWithin reports whether pos is inside the buildable region.
func (l *BlockLedger) IsWithin(pos geom.BlockPos) bool {
	return l.region.Contains(pos)
}

// AddBlock records a placement. It returns false when pos is outside the region.
func (l *BlockLedger) AddBlock(pos geom.BlockPos) bool {
	if !l.IsWithin(pos) {
		return false
	}
	l.blocks[pos] = struct{}{}

	return true
}

// RemoveBlock forgets a placement. It returns false when pos was never recorded.
func (l *BlockLedger) RemoveBlock(pos geom.BlockPos) bool {
	if !l.IsBreakable(pos) {
		return false
	}
	delete(l.blocks, pos)

	return true
}

// IsBreakable reports whether pos holds a recorded placement.
func (l *BlockLedger) IsBreakable(pos geom.BlockPos) bool {
	_, ok := l.blocks[pos]
	return ok
}

func (l *BlockLedger) Len() int {
	return len(l.blocks)
}

// Blocks returns the recorded positions ordered by their "x:y:z" key.
func (l *BlockLedger) Blocks() []geom.BlockPos {
	blocks := pie.Keys(l.blocks)

	return pie.SortUsing(blocks, func(a, b geom.BlockPos) bool {
		return a.String() < b.String()
	})
}

// Reset forgets every recorded placement.
func (l *BlockLedger) Reset() {
	clear(l.blocks)
}
