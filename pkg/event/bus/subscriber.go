/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bus

import (
	"context"
	"fmt"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	"github.com/trustbloc/vcs-issuance/pkg/lifecycle"
)

// EventHandler processes a single event received from a topic.
type EventHandler func(event *spi.Event) error

type eventSubscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *spi.Event, error)
}

// Subscriber dispatches the events of one topic to a handler.
type Subscriber struct {
	*lifecycle.Lifecycle

	handler   EventHandler
	eventChan <-chan *spi.Event
	done      chan struct{}
}

// NewEventSubscriber subscribes to topic. Events are delivered to handler
// after Start.
func NewEventSubscriber(sub eventSubscriber, topic string, handler EventHandler) (*Subscriber, error) {
	h := &Subscriber{
		handler: handler,
		done:    make(chan struct{}),
	}

	h.Lifecycle = lifecycle.New("event-subscriber",
		lifecycle.WithStart(h.start),
	)

	ch, err := sub.Subscribe(context.Background(), topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic [%s]: %w", topic, err)
	}

	h.eventChan = ch

	return h, nil
}

// Done is closed once the event channel has been closed and drained.
func (h *Subscriber) Done() <-chan struct{} {
	return h.done
}

func (h *Subscriber) start() {
	go h.listen()
}

func (h *Subscriber) listen() {
	defer close(h.done)

	for e := range h.eventChan {
		h.handleEvent(e)
	}

	logger.Info("Event channel closed")
}

func (h *Subscriber) handleEvent(e *spi.Event) {
	if err := h.handler(e); err != nil {
		logger.Error("Failed to handle event", log.WithID(e.ID), logfields.WithEvent(e), log.WithError(err))
	}
}

// LogEvent is an EventHandler that writes the event to the audit log.
func LogEvent(e *spi.Event) error {
	logger.Info("Issuer event", log.WithID(e.ID), logfields.WithEvent(e))

	return nil
}
