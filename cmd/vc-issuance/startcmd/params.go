/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/vcs-issuance/cmd/common"
	"github.com/trustbloc/vcs-issuance/pkg/kms"
	"github.com/trustbloc/vcs-issuance/pkg/observability/tracing"
	profilereader "github.com/trustbloc/vcs-issuance/pkg/profile/reader/file"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the vc-issuance instance on. Format: HostName:Port. " +
		commonEnvVarUsageText + hostURLEnvKey
	hostURLEnvKey = "VC_ISSUANCE_HOST_URL"

	hostURLExternalFlagName  = "host-url-external"
	hostURLExternalFlagUsage = "Public base URL used to build status list URIs. Defaults to http://<host-url>. " +
		commonEnvVarUsageText + hostURLExternalEnvKey
	hostURLExternalEnvKey = "VC_ISSUANCE_HOST_URL_EXTERNAL"

	tlsCertificateFlagName  = "tls-certificate"
	tlsCertificateFlagUsage = "TLS certificate file path. " + commonEnvVarUsageText + tlsCertificateEnvKey
	tlsCertificateEnvKey    = "VC_ISSUANCE_TLS_CERTIFICATE"

	tlsKeyFlagName  = "tls-key"
	tlsKeyFlagUsage = "TLS key file path. " + commonEnvVarUsageText + tlsKeyEnvKey
	tlsKeyEnvKey    = "VC_ISSUANCE_TLS_KEY"

	accessTokenSecretFlagName  = "access-token-secret"
	accessTokenSecretFlagUsage = "HMAC secret shared with the authorization server to validate access tokens. " +
		commonEnvVarUsageText + accessTokenSecretEnvKey
	accessTokenSecretEnvKey = "VC_ISSUANCE_ACCESS_TOKEN_SECRET" //nolint:gosec

	accessTokenIssuerFlagName  = "access-token-issuer"
	accessTokenIssuerFlagUsage = "Expected iss claim of access tokens. Not checked when empty. " +
		commonEnvVarUsageText + accessTokenIssuerEnvKey
	accessTokenIssuerEnvKey = "VC_ISSUANCE_ACCESS_TOKEN_ISSUER" //nolint:gosec

	adminAPIKeyFlagName  = "admin-api-key"
	adminAPIKeyFlagUsage = "API key required in the X-API-Key header of admin routes. Admin routes are open when empty. " +
		commonEnvVarUsageText + adminAPIKeyEnvKey
	adminAPIKeyEnvKey = "VC_ISSUANCE_ADMIN_API_KEY"

	kmsTypeFlagName  = "default-kms-type"
	kmsTypeFlagUsage = "Default KMS type (local). " + commonEnvVarUsageText + kmsTypeEnvKey
	kmsTypeEnvKey    = "VC_ISSUANCE_DEFAULT_KMS_TYPE"

	kmsMasterKeyFlagName  = "kms-master-key"
	kmsMasterKeyFlagUsage = "Master key the local KMS derives signing keys from. " +
		commonEnvVarUsageText + kmsMasterKeyEnvKey
	kmsMasterKeyEnvKey = "VC_ISSUANCE_KMS_MASTER_KEY"

	nonceTTLFlagName  = "nonce-ttl"
	nonceTTLFlagUsage = "c_nonce lifetime, e.g. 5m. " + commonEnvVarUsageText + nonceTTLEnvKey
	nonceTTLEnvKey    = "VC_ISSUANCE_NONCE_TTL"

	sweepIntervalFlagName  = "sweep-interval"
	sweepIntervalFlagUsage = "Interval between expired nonce and session sweeps, e.g. 1m. " +
		commonEnvVarUsageText + sweepIntervalEnvKey
	sweepIntervalEnvKey = "VC_ISSUANCE_SWEEP_INTERVAL"

	sessionLifetimeFlagName  = "session-lifetime"
	sessionLifetimeFlagUsage = "Default lifetime of a deferred issuance session, e.g. 24h. " +
		commonEnvVarUsageText + sessionLifetimeEnvKey
	sessionLifetimeEnvKey = "VC_ISSUANCE_SESSION_LIFETIME"

	pollIntervalFlagName  = "default-poll-interval"
	pollIntervalFlagUsage = "Deferred poll interval in seconds when the tenant does not set one. " +
		commonEnvVarUsageText + pollIntervalEnvKey
	pollIntervalEnvKey = "VC_ISSUANCE_DEFAULT_POLL_INTERVAL"

	claimsTimeoutFlagName  = "claims-timeout"
	claimsTimeoutFlagUsage = "Time to wait for the claims endpoint before deferring issuance, e.g. 5s. " +
		commonEnvVarUsageText + claimsTimeoutEnvKey
	claimsTimeoutEnvKey = "VC_ISSUANCE_CLAIMS_TIMEOUT"

	signingTimeoutFlagName  = "signing-timeout"
	signingTimeoutFlagUsage = "Time to wait for the credential signer, e.g. 10s. " +
		commonEnvVarUsageText + signingTimeoutEnvKey
	signingTimeoutEnvKey = "VC_ISSUANCE_SIGNING_TIMEOUT"

	statusListSizeFlagName  = "status-list-size"
	statusListSizeFlagUsage = "Number of entries of a new status list. " + commonEnvVarUsageText + statusListSizeEnvKey
	statusListSizeEnvKey    = "VC_ISSUANCE_STATUS_LIST_SIZE"

	statusListBitsFlagName  = "status-list-bits"
	statusListBitsFlagUsage = "Bits per entry of a new status list (1, 2, 4 or 8) when the tenant does not set one. " +
		commonEnvVarUsageText + statusListBitsEnvKey
	statusListBitsEnvKey = "VC_ISSUANCE_STATUS_LIST_BITS"

	statusListBucketFlagName  = "status-list-bucket"
	statusListBucketFlagUsage = "S3 bucket status lists are published to. Publishing is disabled when empty. " +
		commonEnvVarUsageText + statusListBucketEnvKey
	statusListBucketEnvKey = "VC_ISSUANCE_STATUS_LIST_BUCKET"

	awsRegionFlagName  = "aws-region"
	awsRegionFlagUsage = "AWS region of the status list bucket. " + commonEnvVarUsageText + awsRegionEnvKey
	awsRegionEnvKey    = "VC_ISSUANCE_AWS_REGION"

	statusListHostNameFlagName  = "status-list-host-name"
	statusListHostNameFlagUsage = "Host name published status lists are served from. Defaults to the bucket domain. " +
		commonEnvVarUsageText + statusListHostNameEnvKey
	statusListHostNameEnvKey = "VC_ISSUANCE_STATUS_LIST_HOST_NAME"

	issuerEventTopicFlagName  = "issuer-event-topic"
	issuerEventTopicFlagUsage = "Topic issuance events are published to. " + commonEnvVarUsageText + issuerEventTopicEnvKey
	issuerEventTopicEnvKey    = "VC_ISSUANCE_ISSUER_EVENT_TOPIC"

	metricsProviderFlagName  = "metrics-provider-name"
	metricsProviderFlagUsage = "Metrics provider name (prometheus). Metrics are disabled when empty. " +
		commonEnvVarUsageText + metricsProviderEnvKey
	metricsProviderEnvKey = "VC_ISSUANCE_METRICS_PROVIDER_NAME"

	promHTTPURLFlagName  = "prom-http-url"
	promHTTPURLFlagUsage = "Dedicated host:port of the prometheus /metrics endpoint." +
		" Served on the API host when empty. " + commonEnvVarUsageText + promHTTPURLEnvKey
	promHTTPURLEnvKey = "VC_ISSUANCE_PROM_HTTP_URL"

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderFlagUsage = "Tracing provider (STDOUT). Tracing is disabled when empty. " +
		commonEnvVarUsageText + tracingProviderEnvKey
	tracingProviderEnvKey = "VC_ISSUANCE_TRACING_PROVIDER"

	tracingServiceNameFlagName  = "tracing-service-name"
	tracingServiceNameFlagUsage = "Service name reported with spans. " + commonEnvVarUsageText + tracingServiceNameEnvKey
	tracingServiceNameEnvKey    = "VC_ISSUANCE_TRACING_SERVICE_NAME"

	defaultTracingServiceName = "vc-issuance"
	prometheusProvider        = "prometheus"
)

type tlsParameters struct {
	serveCertPath string
	serveKeyPath  string
}

type prometheusMetricsProviderParams struct {
	url string
}

type tracingParams struct {
	provider    tracing.SpanExporterType
	serviceName string
}

type issuanceParameters struct {
	nonceTTL        time.Duration
	sweepInterval   time.Duration
	sessionLifetime time.Duration
	claimsTimeout   time.Duration
	signingTimeout  time.Duration
	pollInterval    int
	statusListSize  int
	statusListBits  int
	eventTopic      string
}

type statusListBucketParameters struct {
	bucket   string
	region   string
	hostName string
}

type startupParameters struct {
	hostURL             string
	hostURLExternal     string
	logLevel            string
	tlsParameters       *tlsParameters
	dbParameters        *common.DBParameters
	redisParameters     *common.RedisParameters
	kmsParameters       *kms.Config
	accessTokenSecret   string
	accessTokenIssuer   string
	adminAPIKey         string
	issuance            *issuanceParameters
	statusListBucket    *statusListBucketParameters
	metricsProviderName string
	prometheusParams    *prometheusMetricsProviderParams
	tracingParams       *tracingParams
}

func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	hostURLExternal := cmdutils.GetUserSetOptionalVarFromString(cmd, hostURLExternalFlagName, hostURLExternalEnvKey)
	if hostURLExternal == "" {
		hostURLExternal = "http://" + hostURL
	}

	accessTokenSecret, err := cmdutils.GetUserSetVarFromString(cmd, accessTokenSecretFlagName,
		accessTokenSecretEnvKey, false)
	if err != nil {
		return nil, err
	}

	dbParams, err := common.DBParams(cmd)
	if err != nil {
		return nil, err
	}

	kmsParams, err := getKMSParameters(cmd)
	if err != nil {
		return nil, err
	}

	issuance, err := getIssuanceParameters(cmd)
	if err != nil {
		return nil, err
	}

	metricsProviderName, err := getMetricsProviderName(cmd)
	if err != nil {
		return nil, err
	}

	tracingParams, err := getTracingParams(cmd)
	if err != nil {
		return nil, err
	}

	return &startupParameters{
		hostURL:           hostURL,
		hostURLExternal:   hostURLExternal,
		logLevel:          cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey),
		tlsParameters:     getTLS(cmd),
		dbParameters:      dbParams,
		redisParameters:   common.RedisParams(cmd),
		kmsParameters:     kmsParams,
		accessTokenSecret: accessTokenSecret,
		accessTokenIssuer: cmdutils.GetUserSetOptionalVarFromString(cmd, accessTokenIssuerFlagName,
			accessTokenIssuerEnvKey),
		adminAPIKey: cmdutils.GetUserSetOptionalVarFromString(cmd, adminAPIKeyFlagName, adminAPIKeyEnvKey),
		issuance:    issuance,
		statusListBucket: &statusListBucketParameters{
			bucket: cmdutils.GetUserSetOptionalVarFromString(cmd, statusListBucketFlagName, statusListBucketEnvKey),
			region: cmdutils.GetUserSetOptionalVarFromString(cmd, awsRegionFlagName, awsRegionEnvKey),
			hostName: cmdutils.GetUserSetOptionalVarFromString(cmd, statusListHostNameFlagName,
				statusListHostNameEnvKey),
		},
		metricsProviderName: metricsProviderName,
		prometheusParams: &prometheusMetricsProviderParams{
			url: cmdutils.GetUserSetOptionalVarFromString(cmd, promHTTPURLFlagName, promHTTPURLEnvKey),
		},
		tracingParams: tracingParams,
	}, nil
}

func getTLS(cmd *cobra.Command) *tlsParameters {
	return &tlsParameters{
		serveCertPath: cmdutils.GetUserSetOptionalVarFromString(cmd, tlsCertificateFlagName, tlsCertificateEnvKey),
		serveKeyPath:  cmdutils.GetUserSetOptionalVarFromString(cmd, tlsKeyFlagName, tlsKeyEnvKey),
	}
}

func getKMSParameters(cmd *cobra.Command) (*kms.Config, error) {
	kmsType := kms.Type(cmdutils.GetUserSetOptionalVarFromString(cmd, kmsTypeFlagName, kmsTypeEnvKey))
	if kmsType == "" {
		kmsType = kms.Local
	}

	if kmsType != kms.Local {
		return nil, fmt.Errorf("unsupported kms type: %s", kmsType)
	}

	masterKey, err := cmdutils.GetUserSetVarFromString(cmd, kmsMasterKeyFlagName, kmsMasterKeyEnvKey, false)
	if err != nil {
		return nil, err
	}

	return &kms.Config{
		KMSType:   kmsType,
		MasterKey: masterKey,
	}, nil
}

func getIssuanceParameters(cmd *cobra.Command) (*issuanceParameters, error) {
	var (
		p   = &issuanceParameters{}
		err error
	)

	durations := []struct {
		target *time.Duration
		flag   string
		envKey string
	}{
		{&p.nonceTTL, nonceTTLFlagName, nonceTTLEnvKey},
		{&p.sweepInterval, sweepIntervalFlagName, sweepIntervalEnvKey},
		{&p.sessionLifetime, sessionLifetimeFlagName, sessionLifetimeEnvKey},
		{&p.claimsTimeout, claimsTimeoutFlagName, claimsTimeoutEnvKey},
		{&p.signingTimeout, signingTimeoutFlagName, signingTimeoutEnvKey},
	}

	// Zero leaves the service default in place.
	for _, d := range durations {
		*d.target, err = getDuration(cmd, d.flag, d.envKey, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.flag, err)
		}
	}

	if p.pollInterval, err = getInt(cmd, pollIntervalFlagName, pollIntervalEnvKey); err != nil {
		return nil, err
	}

	if p.statusListSize, err = getInt(cmd, statusListSizeFlagName, statusListSizeEnvKey); err != nil {
		return nil, err
	}

	if p.statusListBits, err = getInt(cmd, statusListBitsFlagName, statusListBitsEnvKey); err != nil {
		return nil, err
	}

	switch p.statusListBits {
	case 0, 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%s: unsupported bits per entry %d", statusListBitsFlagName, p.statusListBits)
	}

	p.eventTopic = cmdutils.GetUserSetOptionalVarFromString(cmd, issuerEventTopicFlagName, issuerEventTopicEnvKey)

	return p, nil
}

func getDuration(cmd *cobra.Command, flagName, envKey string,
	defaultDuration time.Duration) (time.Duration, error) {
	timeoutStr := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if timeoutStr == "" {
		return defaultDuration, nil
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return -1, fmt.Errorf("invalid value [%s]: %w", timeoutStr, err)
	}

	return timeout, nil
}

func getInt(cmd *cobra.Command, flagName, envKey string) (int, error) {
	s := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s: invalid value [%s]", flagName, s)
	}

	return v, nil
}

func getMetricsProviderName(cmd *cobra.Command) (string, error) {
	name := cmdutils.GetUserSetOptionalVarFromString(cmd, metricsProviderFlagName, metricsProviderEnvKey)
	if name != "" && name != prometheusProvider {
		return "", fmt.Errorf("unsupported metrics provider: %s", name)
	}

	return name, nil
}

func getTracingParams(cmd *cobra.Command) (*tracingParams, error) {
	serviceName := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingServiceNameFlagName, tracingServiceNameEnvKey)
	if serviceName == "" {
		serviceName = defaultTracingServiceName
	}

	params := &tracingParams{
		provider:    cmdutils.GetUserSetOptionalVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey),
		serviceName: serviceName,
	}

	if !tracing.IsExportedSupported(params.provider) {
		return nil, fmt.Errorf("unsupported tracing provider: %s", params.provider)
	}

	return params, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().String(hostURLExternalFlagName, "", hostURLExternalFlagUsage)
	startCmd.Flags().String(tlsCertificateFlagName, "", tlsCertificateFlagUsage)
	startCmd.Flags().String(tlsKeyFlagName, "", tlsKeyFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "",
		common.LogLevelPrefixFlagUsage)
	startCmd.Flags().String(accessTokenSecretFlagName, "", accessTokenSecretFlagUsage)
	startCmd.Flags().String(accessTokenIssuerFlagName, "", accessTokenIssuerFlagUsage)
	startCmd.Flags().String(adminAPIKeyFlagName, "", adminAPIKeyFlagUsage)
	startCmd.Flags().String(kmsTypeFlagName, "", kmsTypeFlagUsage)
	startCmd.Flags().String(kmsMasterKeyFlagName, "", kmsMasterKeyFlagUsage)
	startCmd.Flags().String(nonceTTLFlagName, "", nonceTTLFlagUsage)
	startCmd.Flags().String(sweepIntervalFlagName, "", sweepIntervalFlagUsage)
	startCmd.Flags().String(sessionLifetimeFlagName, "", sessionLifetimeFlagUsage)
	startCmd.Flags().String(pollIntervalFlagName, "", pollIntervalFlagUsage)
	startCmd.Flags().String(claimsTimeoutFlagName, "", claimsTimeoutFlagUsage)
	startCmd.Flags().String(signingTimeoutFlagName, "", signingTimeoutFlagUsage)
	startCmd.Flags().String(statusListSizeFlagName, "", statusListSizeFlagUsage)
	startCmd.Flags().String(statusListBitsFlagName, "", statusListBitsFlagUsage)
	startCmd.Flags().String(statusListBucketFlagName, "", statusListBucketFlagUsage)
	startCmd.Flags().String(awsRegionFlagName, "", awsRegionFlagUsage)
	startCmd.Flags().String(statusListHostNameFlagName, "", statusListHostNameFlagUsage)
	startCmd.Flags().String(issuerEventTopicFlagName, "", issuerEventTopicFlagUsage)
	startCmd.Flags().String(metricsProviderFlagName, "", metricsProviderFlagUsage)
	startCmd.Flags().String(promHTTPURLFlagName, "", promHTTPURLFlagUsage)
	startCmd.Flags().String(tracingProviderFlagName, "", tracingProviderFlagUsage)
	startCmd.Flags().String(tracingServiceNameFlagName, "", tracingServiceNameFlagUsage)

	common.Flags(startCmd)
	profilereader.AddFlags(startCmd)
}
