// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package async

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDrainReturnsResults(t *testing.T) {
	p := NewPool(context.Background(), 2, 16)
	defer p.Close()

	for i := 0; i < 5; i++ {
		id := i
		p.Submit("square", func(ctx context.Context) any { return id * id })
	}
	p.Wait()

	results := p.Drain()
	assert.ElementsMatch(t, []any{0, 1, 4, 9, 16}, results)
	assert.Empty(t, p.Drain())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	p := NewPool(context.Background(), 2, 16)
	defer p.Close()

	var running, peak atomic.Int32
	for i := 0; i < 8; i++ {
		p.Submit("busy", func(ctx context.Context) any {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}
	p.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Empty(t, p.Drain(), "nil results are not delivered")
}

func TestPoolSubmitDoesNotBlockWhenSaturated(t *testing.T) {
	p := NewPool(context.Background(), 1, 1)
	release := make(chan struct{})

	p.Submit("blocker", func(ctx context.Context) any {
		<-release
		return "done"
	})

	submitted := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			p.Submit("queued", func(ctx context.Context) any { return nil })
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		require.Fail(t, "submit blocked on a saturated pool")
	}

	close(release)
	p.Wait()
	assert.Equal(t, []any{"done"}, p.Drain())
	p.Close()
}
