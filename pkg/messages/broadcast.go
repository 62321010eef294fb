// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package messages

import "strings"

type Recipient interface {
	SendMessage(message string)
	SendTitle(title string)
	SendSubtitle(subtitle string)
}

type Kind int

const (
	KindMessage Kind = iota
	KindTitle
	KindSubtitle
)

// Broadcast renders key once and sends it to every recipient. Blank messages are not sent.
func Broadcast[R Recipient](c *Catalog, recipients []R, kind Kind, key string, subs Substitutions) {
	text := c.Translate(key, subs)
	if strings.TrimSpace(text) == "" {
		return
	}

	for _, r := range recipients {
		switch kind {
		case KindTitle:
			r.SendTitle(text)
		case KindSubtitle:
			r.SendSubtitle(text)
		default:
			r.SendMessage(text)
		}
	}
}
