/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mongotest starts a disposable MongoDB container for storage tests.
package mongotest

import (
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	dctest "github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vcs-issuance/pkg/storage/mongodb"
)

const (
	image       = "mongo"
	tag         = "6.0"
	mongoPort   = "27017/tcp"
	pingTimeout = 3 * time.Second
	maxRetries  = 30
)

// Start runs a MongoDB container on a random host port and returns its
// connection string. The container is purged when the test ends. The test is
// skipped when docker is not reachable.
func Start(t *testing.T) string {
	t.Helper()

	pool, err := dctest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: image,
		Tag:        tag,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource), "failed to purge MongoDB resource")
	})

	connString := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort(mongoPort))

	require.NoError(t, backoff.Retry(func() error {
		client, pingErr := mongodb.New(connString, "ping", mongodb.WithTimeout(pingTimeout))
		if pingErr != nil {
			return pingErr
		}

		return client.Close()
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), maxRetries)))

	return connString
}
