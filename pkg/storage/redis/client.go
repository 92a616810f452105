/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const defaultDialTimeout = 15 * time.Second

type clientOpts struct {
	masterName    string
	password      string
	tlsConfig     *tls.Config
	poolSize      int
	dialTimeout   time.Duration
	traceProvider trace.TracerProvider
}

// ClientOpt configures the redis client.
type ClientOpt func(opts *clientOpts)

// WithTraceProvider instruments every command with spans.
func WithTraceProvider(traceProvider trace.TracerProvider) ClientOpt {
	return func(opts *clientOpts) {
		opts.traceProvider = traceProvider
	}
}

// WithMasterName selects sentinel mode.
func WithMasterName(masterName string) ClientOpt {
	return func(opts *clientOpts) {
		opts.masterName = masterName
	}
}

func WithPassword(password string) ClientOpt {
	return func(opts *clientOpts) {
		opts.password = password
	}
}

func WithTLSConfig(tlsConfig *tls.Config) ClientOpt {
	return func(opts *clientOpts) {
		opts.tlsConfig = tlsConfig
	}
}

// WithPoolSize caps connections per node. Zero keeps the driver default.
func WithPoolSize(size int) ClientOpt {
	return func(opts *clientOpts) {
		opts.poolSize = size
	}
}

// WithDialTimeout bounds the initial connectivity check.
func WithDialTimeout(timeout time.Duration) ClientOpt {
	return func(opts *clientOpts) {
		opts.dialTimeout = timeout
	}
}

// Client is the redis connection shared by the nonce and session stores.
type Client struct {
	client redis.UniversalClient
}

// New connects to redis. A sentinel client is created when a master name is
// set, a cluster client for two or more addresses, otherwise a single-node client.
func New(addrs []string, opts ...ClientOpt) (*Client, error) {
	o := &clientOpts{dialTimeout: defaultDialTimeout}

	for _, f := range opts {
		f(o)
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:                 addrs,
		ContextTimeoutEnabled: true,
		MasterName:            o.masterName,
		Password:              o.password,
		TLSConfig:             o.tlsConfig,
		PoolSize:              o.poolSize,
	})

	if o.traceProvider != nil {
		if err := redisotel.InstrumentTracing(client, redisotel.WithTracerProvider(o.traceProvider)); err != nil {
			_ = client.Close()

			return nil, fmt.Errorf("instrument with tracing: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: client}, nil
}

// Ping verifies the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// API exposes the underlying client for store commands and locks.
func (c *Client) API() redis.UniversalClient {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ResolveKey joins prefix and parts with '-'.
func ResolveKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), "-")
}
