// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	MatchIDs *sync2.Pool[[]int64]
}

func NewPool() *Pool {
	return &Pool{
		MatchIDs: &sync2.Pool[[]int64]{
			New: func() []int64 {
				return make([]int64, 0, 16)
			},
		},
	}
}
