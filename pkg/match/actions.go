// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// PlaceBlock records a block placed by p. Only Round allows building and only inside the build region.
func (i *Instance) PlaceBlock(p *session.Participant, pos geom.BlockPos) bool {
	if i.destroyed || i.phase != PhaseRound || !p.IsIn(i.id) {
		return false
	}
	return i.ledger.AddBlock(pos)
}

// BreakBlock allows breaking only blocks players placed during the match.
func (i *Instance) BreakBlock(p *session.Participant, pos geom.BlockPos) bool {
	if i.destroyed || i.phase != PhaseRound || !p.IsIn(i.id) {
		return false
	}
	return i.ledger.RemoveBlock(pos)
}

// AllowInventoryChange reports whether p may move items around.
func (i *Instance) AllowInventoryChange(p *session.Participant) bool {
	if i.destroyed || !p.IsIn(i.id) {
		return true
	}
	return i.phase == PhaseRound || i.phase == PhaseGrace
}

// FormatChat renders a chat line of p for the other participants.
func (i *Instance) FormatChat(p *session.Participant, message string) string {
	subs := messages.Substitutions{
		messages.TokenPlayer:  p.Player().DisplayName(),
		messages.TokenMessage: message,
		messages.TokenTeam:    string(p.Match.Team),
	}
	if i.phase == PhaseEnd {
		return i.host.Messages.Translate(constants.MsgChatEnd, subs)
	}
	return i.host.Messages.Translate(constants.MsgChatMatch, subs)
}

// Chat sends a chat line of p to every participant.
func (i *Instance) Chat(p *session.Participant, message string) bool {
	if i.destroyed || !p.IsIn(i.id) {
		return false
	}
	line := i.FormatChat(p, message)
	for _, player := range i.players() {
		player.SendMessage(line)
	}

	return true
}
