// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// Stats are the lifetime counters of a player.
type Stats struct {
	Wins      int `json:"wins"`
	WinStreak int `json:"win_streak"`
	Losses    int `json:"losses"`
	Kills     int `json:"kills"`
	Deaths    int `json:"deaths"`
}
