/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vcs-issuance/internal/logfields"
)

const (
	// DatabaseURLFlagName is the database url.
	DatabaseURLFlagName = "database-url"
	// DatabaseURLFlagUsage describes the usage.
	DatabaseURLFlagUsage = "Status list database URL with credentials if required." +
		" Format must be <driver>:[//]<driver-specific-dsn>." +
		" Examples: 'mem://', 'mongodb://mongodb.example.com:27017'." +
		" Supported drivers are [mem, mongodb]. Default: mem://." +
		" Alternatively, this can be set with the following environment variable: " + DatabaseURLEnvKey
	// DatabaseURLEnvKey is the database url.
	DatabaseURLEnvKey = "DATABASE_URL"

	// DatabaseNameFlagName is the mongodb database name.
	DatabaseNameFlagName = "database-name"
	// DatabaseNameFlagUsage describes the usage.
	DatabaseNameFlagUsage = "Database name used by the mongodb driver. Default: " + DatabaseNameDefault + "." +
		" Alternatively, this can be set with the following environment variable: " + DatabaseNameEnvKey
	// DatabaseNameEnvKey is the database name.
	DatabaseNameEnvKey = "DATABASE_NAME"

	// DatabaseTimeoutFlagName is the database timeout.
	DatabaseTimeoutFlagName = "database-timeout"
	// DatabaseTimeoutFlagUsage describes the usage.
	DatabaseTimeoutFlagUsage = "Number of one second retries to wait until the datasource is available" +
		" before giving up. Default: 30." +
		" Alternatively, this can be set with the following environment variable: " + DatabaseTimeoutEnvKey
	// DatabaseTimeoutEnvKey is the database timeout.
	DatabaseTimeoutEnvKey = "DATABASE_TIMEOUT"

	// RedisAddrsFlagName lists redis addresses. Nonces and sessions stay in memory when unset.
	RedisAddrsFlagName = "redis-addrs"
	// RedisAddrsFlagUsage describes the usage.
	RedisAddrsFlagUsage = "Comma-separated redis addresses (host:port). When set, nonces and deferred sessions" +
		" are kept in redis and status list allocation is serialized with a redis lock." +
		" Alternatively, this can be set with the following environment variable: " + RedisAddrsEnvKey
	// RedisAddrsEnvKey is the redis addresses.
	RedisAddrsEnvKey = "REDIS_ADDRS"

	// RedisMasterNameFlagName is the sentinel master name.
	RedisMasterNameFlagName = "redis-master-name"
	// RedisMasterNameFlagUsage describes the usage.
	RedisMasterNameFlagUsage = "Redis sentinel master name." +
		" Alternatively, this can be set with the following environment variable: " + RedisMasterNameEnvKey
	// RedisMasterNameEnvKey is the sentinel master name.
	RedisMasterNameEnvKey = "REDIS_MASTER_NAME"

	// RedisPasswordFlagName is the redis password.
	RedisPasswordFlagName = "redis-password"
	// RedisPasswordFlagUsage describes the usage.
	RedisPasswordFlagUsage = "Redis password." +
		" Alternatively, this can be set with the following environment variable: " + RedisPasswordEnvKey
	// RedisPasswordEnvKey is the redis password.
	RedisPasswordEnvKey = "REDIS_PASSWORD"

	// DatabaseTimeoutDefault is the default number of connection retries.
	DatabaseTimeoutDefault = 30
	// DatabaseNameDefault is the default mongodb database.
	DatabaseNameDefault = "vcs-issuance"

	DriverMem     = "mem"
	DriverMongoDB = "mongodb"
)

// DBParameters holds database configuration.
type DBParameters struct {
	Driver  string
	URL     string
	Name    string
	Timeout uint64
}

// RedisParameters holds redis configuration. Empty Addrs disables redis.
type RedisParameters struct {
	Addrs      []string
	MasterName string
	Password   string
}

// Enabled reports whether redis addresses are configured.
func (p *RedisParameters) Enabled() bool {
	return len(p.Addrs) > 0
}

// Flags registers storage command flags.
func Flags(cmd *cobra.Command) {
	cmd.Flags().StringP(DatabaseURLFlagName, "", "", DatabaseURLFlagUsage)
	cmd.Flags().StringP(DatabaseNameFlagName, "", "", DatabaseNameFlagUsage)
	cmd.Flags().StringP(DatabaseTimeoutFlagName, "", "", DatabaseTimeoutFlagUsage)
	cmd.Flags().StringP(RedisAddrsFlagName, "", "", RedisAddrsFlagUsage)
	cmd.Flags().StringP(RedisMasterNameFlagName, "", "", RedisMasterNameFlagUsage)
	cmd.Flags().StringP(RedisPasswordFlagName, "", "", RedisPasswordFlagUsage)
}

// DBParams fetches the DB parameters configured for this command.
func DBParams(cmd *cobra.Command) (*DBParameters, error) {
	params := &DBParameters{
		URL:     cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseURLFlagName, DatabaseURLEnvKey),
		Name:    cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseNameFlagName, DatabaseNameEnvKey),
		Timeout: DatabaseTimeoutDefault,
	}

	if params.URL == "" {
		params.URL = DriverMem + "://"
	}

	if params.Name == "" {
		params.Name = DatabaseNameDefault
	}

	var err error

	params.Driver, err = parseDriver(params.URL)
	if err != nil {
		return nil, err
	}

	timeout := cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseTimeoutFlagName, DatabaseTimeoutEnvKey)
	if timeout != "" {
		params.Timeout, err = strconv.ParseUint(timeout, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dbTimeout %s: %w", timeout, err)
		}
	}

	return params, nil
}

// RedisParams fetches the redis parameters configured for this command.
func RedisParams(cmd *cobra.Command) *RedisParameters {
	params := &RedisParameters{
		MasterName: cmdutils.GetUserSetOptionalVarFromString(cmd, RedisMasterNameFlagName, RedisMasterNameEnvKey),
		Password:   cmdutils.GetUserSetOptionalVarFromString(cmd, RedisPasswordFlagName, RedisPasswordEnvKey),
	}

	for _, addr := range strings.Split(
		cmdutils.GetUserSetOptionalVarFromString(cmd, RedisAddrsFlagName, RedisAddrsEnvKey), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			params.Addrs = append(params.Addrs, addr)
		}
	}

	return params
}

func parseDriver(u string) (string, error) {
	const urlParts = 2

	parsed := strings.SplitN(u, ":", urlParts)
	if len(parsed) != urlParts {
		return "", fmt.Errorf("invalid dbURL %s", u)
	}

	switch parsed[0] {
	case DriverMem, DriverMongoDB:
		return parsed[0], nil
	default:
		return "", fmt.Errorf("unsupported storage driver: %s", parsed[0])
	}
}

// Retry runs task once a second until it succeeds or numRetries is exhausted.
func Retry(task func() error, numRetries uint64, logger *log.Log) error {
	const sleep = 1 * time.Second

	return backoff.RetryNotify(
		task,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(sleep), numRetries),
		func(retryErr error, t time.Duration) {
			logger.Warn("Failed to connect to storage, will sleep before trying again.",
				logfields.WithSleep(t), log.WithError(retryErr))
		},
	)
}
