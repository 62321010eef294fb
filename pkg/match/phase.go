// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

// Phase is the behavioral mode of a match. Every tick dispatches on it.
type Phase int

const (
	PhasePreStart Phase = iota
	PhaseRound
	PhaseGrace
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhasePreStart:
		return "prestart"
	case PhaseRound:
		return "round"
	case PhaseGrace:
		return "grace"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}
