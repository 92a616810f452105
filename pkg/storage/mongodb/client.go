/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxPoolSize = 200
)

// Client is a MongoDB connection bound to one database.
type Client struct {
	client       *mongo.Client
	databaseName string
	timeout      time.Duration
}

// New connects to MongoDB and pings the primary. Reads go to the primary so
// that index reservations and bit updates observe their own writes.
func New(connString string, databaseName string, opts ...ClientOpt) (*Client, error) {
	o := &clientOpts{
		timeout:     defaultTimeout,
		maxPoolSize: defaultMaxPoolSize,
	}

	for _, fn := range opts {
		fn(o)
	}

	mongoOpts := mongooptions.Client().
		ApplyURI(connString).
		SetReadPreference(readpref.Primary()).
		SetMaxPoolSize(o.maxPoolSize)

	if o.traceProvider != nil {
		mongoOpts.SetMonitor(otelmongo.NewMonitor(otelmongo.WithTracerProvider(o.traceProvider)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client:       client,
		databaseName: databaseName,
		timeout:      o.timeout,
	}, nil
}

// Database returns the configured database.
func (c *Client) Database() *mongo.Database {
	return c.client.Database(c.databaseName)
}

// Collection returns a collection of the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database().Collection(name)
}

// Ping verifies the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client. Closing twice is not an error.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}

type clientOpts struct {
	timeout       time.Duration
	maxPoolSize   uint64
	traceProvider trace.TracerProvider
}

// ClientOpt configures the MongoDB client.
type ClientOpt func(opts *clientOpts)

// WithTimeout bounds connecting and disconnecting.
func WithTimeout(timeout time.Duration) ClientOpt {
	return func(opts *clientOpts) {
		opts.timeout = timeout
	}
}

func WithMaxPoolSize(size uint64) ClientOpt {
	return func(opts *clientOpts) {
		opts.maxPoolSize = size
	}
}

// WithTraceProvider adds command spans through otelmongo.
func WithTraceProvider(traceProvider trace.TracerProvider) ClientOpt {
	return func(opts *clientOpts) {
		opts.traceProvider = traceProvider
	}
}
