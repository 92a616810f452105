/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"errors"
	"sync/atomic"

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"
)

var logger = log.New("lifecycle")

// ErrNotStarted is returned when a component is used before Start or after Stop.
var ErrNotStarted = errors.New("service has not started")

// State of a component.
type State = uint32

const (
	StateNotStarted State = 0
	StateStarting   State = 1
	StateStarted    State = 2
	StateStopped    State = 3
)

type options struct {
	start func()
	stop  func()
}

// Lifecycle tracks Start and Stop of a long running component (event bus,
// background sweepers).
type Lifecycle struct {
	*options
	name  string
	state atomic.Uint32
}

// Opt sets a Lifecycle option.
type Opt func(opts *options)

// WithStart sets the function invoked by Start.
func WithStart(start func()) Opt {
	return func(opts *options) {
		opts.start = start
	}
}

// WithStop sets the function invoked by Stop.
func WithStop(stop func()) Opt {
	return func(opts *options) {
		opts.stop = stop
	}
}

// New returns a new Lifecycle.
func New(name string, opts ...Opt) *Lifecycle {
	o := &options{
		start: func() {},
		stop:  func() {},
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Lifecycle{
		options: o,
		name:    name,
	}
}

// Start runs the start function once.
func (h *Lifecycle) Start() {
	if !h.state.CompareAndSwap(StateNotStarted, StateStarting) {
		logger.Debug("Service already started", zap.String("service", h.name))

		return
	}

	h.start()

	h.state.Store(StateStarted)

	logger.Debug("Service started", zap.String("service", h.name))
}

// Stop runs the stop function once, only if the component was started.
func (h *Lifecycle) Stop() {
	if !h.state.CompareAndSwap(StateStarted, StateStopped) {
		logger.Debug("Service not running", zap.String("service", h.name))

		return
	}

	h.stop()

	logger.Debug("Service stopped", zap.String("service", h.name))
}

// State returns the current state.
func (h *Lifecycle) State() State {
	return h.state.Load()
}

// IsRunning reports whether Start completed and Stop has not been called.
func (h *Lifecycle) IsRunning() bool {
	return h.state.Load() == StateStarted
}

// Name returns the component name used in logs.
func (h *Lifecycle) Name() string {
	return h.name
}
