// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Bus publishes lifecycle events on a watermill pub/sub.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	log        *logrus.Entry
}

// NewInProcessBus returns a Bus backed by an in-memory gochannel pub/sub.
func NewInProcessBus(logger *logrus.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLoggerWithOut(logger.Out, false, false),
	)

	return NewBus(pubSub, pubSub, logger)
}

func NewBus(publisher message.Publisher, subscriber message.Subscriber, logger *logrus.Logger) *Bus {
	return &Bus{
		publisher:  publisher,
		subscriber: subscriber,
		log:        logger.WithField("component", "events"),
	}
}

func (b *Bus) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.log.WithError(err).WithField("topic", event.Topic).Error("failed to marshal event")
		return
	}

	msg := message.NewMessage(ulid.Make().String(), payload)
	if err := b.publisher.Publish(event.Topic, msg); err != nil {
		b.log.WithError(err).WithField("topic", event.Topic).Error("failed to publish event")
	}
}

// Subscribe returns decoded events of topic until ctx is done.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan Event, error) {
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.log.WithError(err).WithField("topic", topic).Warn("dropping malformed event")
				msg.Ack()
				continue
			}
			select {
			case out <- event:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()

	return out, nil
}

func (b *Bus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return err
	}
	return b.subscriber.Close()
}
