/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bus

import (
	"context"
	"sync"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	"github.com/trustbloc/vcs-issuance/pkg/lifecycle"
)

var logger = log.New("event-bus")

const (
	defaultBufferSize = 250
)

// Config holds the configuration for the bus.
type Config struct {
	BufferSize int
}

// DefaultConfig returns the default bus configuration.
func DefaultConfig() Config {
	return Config{BufferSize: defaultBufferSize}
}

// Bus implements a publisher/subscriber using Go channels. Handlers are not
// distributed: every subscriber lives in this process.
type Bus struct {
	*lifecycle.Lifecycle
	Config

	subscribers map[string][]chan *spi.Event
	mutex       sync.RWMutex

	publishChan chan *entry
	doneChan    chan struct{}
}

type entry struct {
	topic    string
	messages []*spi.Event
}

// NewEventBus returns in-memory event bus.
func NewEventBus(cfg Config) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	m := &Bus{
		Config:      cfg,
		subscribers: make(map[string][]chan *spi.Event),
		publishChan: make(chan *entry, cfg.BufferSize),
		doneChan:    make(chan struct{}),
	}

	m.Lifecycle = lifecycle.New("event-bus", lifecycle.WithStop(m.stop))

	go m.processMessages()

	m.Start()

	return m
}

// Close closes all resources.
func (b *Bus) Close() error {
	b.Stop()

	return nil
}

// IsConnected return true is connected.
func (b *Bus) IsConnected() bool {
	return b.IsRunning()
}

func (b *Bus) stop() {
	logger.Info("Stopping event bus")

	b.doneChan <- struct{}{}

	<-b.doneChan

	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, msgChans := range b.subscribers {
		for _, msgChan := range msgChans {
			close(msgChan)
		}
	}

	b.subscribers = nil

	logger.Info("Event bus stopped")
}

// Subscribe subscribes to a topic and returns the channel over which messages
// are sent. The channel is closed when the bus is closed.
func (b *Bus) Subscribe(_ context.Context, topic string) (<-chan *spi.Event, error) {
	if !b.IsRunning() {
		return nil, lifecycle.ErrNotStarted
	}

	logger.Debug("Subscribing to topic", log.WithTopic(topic))

	b.mutex.Lock()
	defer b.mutex.Unlock()

	msgChan := make(chan *spi.Event, b.BufferSize)

	b.subscribers[topic] = append(b.subscribers[topic], msgChan)

	return msgChan, nil
}

// Publish hands the messages to the dispatch loop. It blocks only while the
// publish buffer is full, and gives up when ctx is done.
func (b *Bus) Publish(ctx context.Context, topic string, messages ...*spi.Event) error {
	if !b.IsRunning() {
		return lifecycle.ErrNotStarted
	}

	select {
	case b.publishChan <- &entry{topic: topic, messages: messages}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) processMessages() {
	for {
		select {
		case e := <-b.publishChan:
			b.publish(e)

		case <-b.doneChan:
			b.doneChan <- struct{}{}

			return
		}
	}
}

func (b *Bus) publish(e *entry) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	subscribers := b.subscribers[e.topic]

	if len(subscribers) == 0 {
		logger.Debug("No subscribers for topic", log.WithTopic(e.topic))

		return
	}

	for _, subscriber := range subscribers {
		for _, m := range e.messages {
			msg := m.Copy()

			logger.Debug("Publishing message", logfields.WithEvent(msg))

			subscriber <- msg
		}
	}
}
