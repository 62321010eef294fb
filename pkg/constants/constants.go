// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

const (
	// GoalThreshold is the team goal count that ends a round.
	GoalThreshold = 5

	CageWidth  = 6
	CageHeight = 4

	// EnvironmentPrefix prefixes the name of every provisioned match environment.
	EnvironmentPrefix = "TB-GAME-"

	MapDataFile     = "data.json"
	MapWorldDir     = "world"
	MinTeamsPerGame = 2

	// DefaultWorld is the shared world players return to. Maps may not be built from it.
	DefaultWorld = "world"
)

const (
	MatchTickFunction    = "matchTick"
	MovementTickFunction = "movementTick"

	// Join rejection reasons.
	ReasonMatchNotFree   = "match_not_free"
	ReasonAlreadyInMatch = "already_in_match"
	ReasonAlreadyQueued  = "already_queued"
	ReasonNoTeam         = "no_team_available"
	ReasonOffline        = "offline"

	// Destruction reasons.
	DestroyReasonFinished          = "finished"
	DestroyReasonAbandoned         = "abandoned"
	DestroyReasonProvisionFailed   = "provision_failed"
	DestroyReasonRegistryShutdown  = "shutdown"
	DestroyReasonAdministrativeEnd = "admin"
)

// Message catalog keys.
const (
	MsgPlayerJoin     = "player.join"
	MsgPlayerQuit     = "player.quit"
	MsgCountdown      = "lobby.countdown"
	MsgGraceTitle     = "grace.title"
	MsgGraceSubtitle  = "grace.subtitle"
	MsgGraceMessage   = "grace.message"
	MsgFightTitle     = "fight.title"
	MsgFightSubtitle  = "fight.subtitle"
	MsgFightMessage   = "fight.message"
	MsgDeathVoid      = "death.void"
	MsgDeathSlain     = "death.slain"
	MsgDeathShot      = "death.shot"
	MsgDeathDefault   = "death.default"
	MsgDeathKnocked   = "death.knocked"
	MsgWinnerTitle    = "end.winner.title"
	MsgWinnerMessage  = "end.winner.message"
	MsgDrawMessage    = "end.draw.message"
	MsgQueueCancelled = "queue.cancelled"
	MsgQueueJoined    = "queue.joined"
	MsgQueueFailed    = "queue.failed"
	MsgChatMatch      = "chat.match"
	MsgChatEnd        = "chat.end"
)
