// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"github.com/AccelByte/extend-bridge-match/pkg/events"
)

// RecordingPublisher keeps every published event in order.
type RecordingPublisher struct {
	Events []events.Event
}

func (r *RecordingPublisher) Publish(event events.Event) {
	r.Events = append(r.Events, event)
}

// Topics returns the topics of the recorded events in publish order.
func (r *RecordingPublisher) Topics() []string {
	topics := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		topics = append(topics, e.Topic)
	}

	return topics
}

// Last returns the most recent event of topic.
func (r *RecordingPublisher) Last(topic string) (events.Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Topic == topic {
			return r.Events[i], true
		}
	}

	return events.Event{}, false
}
