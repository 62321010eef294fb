// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AccelByte/extend-bridge-match/pkg/geom"
)

func newTestLedger() *BlockLedger {
	return New(geom.NewRegion(geom.Vec3{X: 0, Y: 60, Z: -10}, geom.Vec3{X: 20, Y: 80, Z: 10}))
}

func TestAddBlock(t *testing.T) {
	tests := []struct {
		name string
		pos  geom.BlockPos
		want bool
	}{
		{name: "inside", pos: geom.BlockPos{X: 5, Y: 65, Z: 0}, want: true},
		{name: "on min corner", pos: geom.BlockPos{X: 0, Y: 60, Z: -10}, want: true},
		{name: "on max corner", pos: geom.BlockPos{X: 20, Y: 80, Z: 10}, want: true},
		{name: "below region", pos: geom.BlockPos{X: 5, Y: 59, Z: 0}, want: false},
		{name: "beyond x", pos: geom.BlockPos{X: 21, Y: 65, Z: 0}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			assert.Equal(t, tt.want, l.AddBlock(tt.pos))
			assert.Equal(t, tt.want, l.IsBreakable(tt.pos))
		})
	}
}

func TestRemoveBlockOnlyRecorded(t *testing.T) {
	l := newTestLedger()
	pos := geom.BlockPos{X: 1, Y: 61, Z: 1}

	assert.False(t, l.IsBreakable(pos))
	assert.False(t, l.RemoveBlock(pos), "map blocks are never breakable")

	assert.True(t, l.AddBlock(pos))
	assert.True(t, l.IsBreakable(pos))
	assert.True(t, l.RemoveBlock(pos))
	assert.False(t, l.IsBreakable(pos))
	assert.False(t, l.RemoveBlock(pos), "a block can only be removed once")
	assert.Equal(t, 0, l.Len())
}

func TestAddThenRemoveRestoresLedger(t *testing.T) {
	l := newTestLedger()
	existing := geom.BlockPos{X: 2, Y: 62, Z: 2}
	l.AddBlock(existing)
	before := l.Blocks()

	p := geom.BlockPos{X: 3, Y: 63, Z: 3}
	assert.True(t, l.AddBlock(p))
	assert.True(t, l.RemoveBlock(p))

	assert.Equal(t, before, l.Blocks())
}

func TestBlocksOrderedAndReset(t *testing.T) {
	l := newTestLedger()
	l.AddBlock(geom.BlockPos{X: 3, Y: 61, Z: 0})
	l.AddBlock(geom.BlockPos{X: 1, Y: 61, Z: 0})
	l.AddBlock(geom.BlockPos{X: 1, Y: 61, Z: 0})

	assert.Equal(t, []geom.BlockPos{{X: 1, Y: 61, Z: 0}, {X: 3, Y: 61, Z: 0}}, l.Blocks())

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Blocks())
}
