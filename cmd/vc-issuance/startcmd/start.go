/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/trustbloc/vcs-issuance/cmd/common"
	"github.com/trustbloc/vcs-issuance/pkg/event/bus"
	"github.com/trustbloc/vcs-issuance/pkg/event/spi"
	"github.com/trustbloc/vcs-issuance/pkg/kms"
	"github.com/trustbloc/vcs-issuance/pkg/kms/signer"
	"github.com/trustbloc/vcs-issuance/pkg/locker"
	"github.com/trustbloc/vcs-issuance/pkg/oauth2/accesstoken"
	"github.com/trustbloc/vcs-issuance/pkg/observability/metrics"
	metricsnoop "github.com/trustbloc/vcs-issuance/pkg/observability/metrics/noop"
	metricsprovider "github.com/trustbloc/vcs-issuance/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/vcs-issuance/pkg/observability/tracing"
	oidc4ciwrapper "github.com/trustbloc/vcs-issuance/pkg/observability/tracing/wrappers/oidc4ci"
	profilereader "github.com/trustbloc/vcs-issuance/pkg/profile/reader/file"
	"github.com/trustbloc/vcs-issuance/pkg/proof/jwtproof"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/resterr"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/healthcheck"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/logapi"
	"github.com/trustbloc/vcs-issuance/pkg/restapi/v1/mw"
	oidc4cictrl "github.com/trustbloc/vcs-issuance/pkg/restapi/v1/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/claims"
	"github.com/trustbloc/vcs-issuance/pkg/service/nonce"
	"github.com/trustbloc/vcs-issuance/pkg/service/oidc4ci"
	"github.com/trustbloc/vcs-issuance/pkg/service/statuslist"
	"github.com/trustbloc/vcs-issuance/pkg/service/tenant"
	memnoncestore "github.com/trustbloc/vcs-issuance/pkg/storage/mem/noncestore"
	memsessionstore "github.com/trustbloc/vcs-issuance/pkg/storage/mem/sessionstore"
	memstatusliststore "github.com/trustbloc/vcs-issuance/pkg/storage/mem/statusliststore"
	"github.com/trustbloc/vcs-issuance/pkg/storage/mongodb"
	mongostatusliststore "github.com/trustbloc/vcs-issuance/pkg/storage/mongodb/statusliststore"
	"github.com/trustbloc/vcs-issuance/pkg/storage/redis"
	redisnoncestore "github.com/trustbloc/vcs-issuance/pkg/storage/redis/noncestore"
	redissessionstore "github.com/trustbloc/vcs-issuance/pkg/storage/redis/sessionstore"
	"github.com/trustbloc/vcs-issuance/pkg/storage/s3/statuslistpublisher"
)

var logger = log.New("vc-issuance")

const (
	shutdownTimeout   = 10 * time.Second
	claimsHTTPTimeout = 30 * time.Second
	// Larger than the credential request limit so that endpoint can answer with a protocol error.
	maxRequestBodySize = "2M"
)

// Options configures the start command.
type Options struct {
	version       string
	serverVersion string
}

// StartOpts sets an option of the start command.
type StartOpts func(opts *Options)

// WithVersion sets the build version reported by GET /version.
func WithVersion(version string) StartOpts {
	return func(opts *Options) {
		opts.version = version
	}
}

// WithServerVersion sets the deployment version that is logged at startup.
func WithServerVersion(version string) StartOpts {
	return func(opts *Options) {
		opts.serverVersion = version
	}
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(opts ...StartOpts) *cobra.Command {
	startCmd := createStartCmd(opts...)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(opts ...StartOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start vc-issuance",
		Long:  "Start the OID4VCI credential issuance service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return fmt.Errorf("failed to get startup parameters: %w", err)
			}

			options := &Options{}
			for _, opt := range opts {
				opt(options)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return startServer(ctx, cmd, params, options)
		},
	}
}

// dependencies holds the stores whose lifetime is bound to the process.
type dependencies struct {
	redisClient *redis.Client
	mongoClient *mongodb.Client
}

func (d *dependencies) close() {
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", log.WithError(err))
		}
	}

	if d.mongoClient != nil {
		if err := d.mongoClient.Close(); err != nil {
			logger.Warn("Failed to close mongodb client", log.WithError(err))
		}
	}
}

//nolint:funlen,gocyclo
func startServer(ctx context.Context, cmd *cobra.Command, params *startupParameters, opts *Options) error {
	if params.logLevel != "" {
		common.SetDefaultLogLevel(logger, params.logLevel)
	}

	logger.Info("Starting vc-issuance", log.WithURL(params.hostURL))

	if opts.serverVersion != "" {
		logger.Info("Server version: " + opts.serverVersion)
	}

	shutdownTracer, tracer, err := tracing.Initialize(params.tracingParams.provider, params.tracingParams.serviceName,
		tracing.WithServiceVersion(opts.version))
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}

	defer shutdownTracer()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = resterr.HTTPErrorHandler(tracer)
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(maxRequestBodySize))

	if params.tracingParams.provider != tracing.None {
		e.Use(otelecho.Middleware(params.tracingParams.serviceName))
	}

	readyCtrl := newReadinessController(e)

	metricsProvider, err := createMetricsProvider(e, params)
	if err != nil {
		return err
	}

	defer func() {
		if destroyErr := metricsProvider.Destroy(); destroyErr != nil {
			logger.Warn("Failed to destroy metrics provider", log.WithError(destroyErr))
		}
	}()

	profiles, err := profilereader.NewTenantReader(&profilereader.Config{CMD: cmd})
	if err != nil {
		return fmt.Errorf("read tenant profiles: %w", err)
	}

	clk := clock.New()

	eventBus := bus.NewEventBus(bus.DefaultConfig())
	defer eventBus.Stop()

	eventTopic := params.issuance.eventTopic
	if eventTopic == "" {
		eventTopic = spi.IssuerEventTopic
	}

	for _, topic := range []string{eventTopic, spi.CredentialStatusEventTopic} {
		subscriber, subErr := bus.NewEventSubscriber(eventBus, topic, bus.LogEvent)
		if subErr != nil {
			return subErr
		}

		subscriber.Start()
	}

	deps := &dependencies{}
	defer deps.close()

	healthChecks := map[string]healthcheck.Check{}

	var (
		nonceStore   nonce.Store
		sessionStore oidc4ci.SessionStore
		lock         locker.Locker
	)

	if params.redisParameters.Enabled() {
		deps.redisClient, err = openRedis(params.redisParameters)
		if err != nil {
			return err
		}

		nonceStore = redisnoncestore.New(deps.redisClient)
		sessionStore = redissessionstore.New(deps.redisClient)
		lock = locker.NewRedisLocker(deps.redisClient.API())
		healthChecks["redis"] = deps.redisClient.Ping
	} else {
		nonceStore = memnoncestore.NewStore()
		sessionStore = memsessionstore.NewStore()
		lock = locker.NewKeyedMutex()
	}

	var statusStore statuslist.Store

	switch params.dbParameters.Driver {
	case common.DriverMongoDB:
		if err = common.Retry(func() error {
			var openErr error
			deps.mongoClient, openErr = mongodb.New(params.dbParameters.URL, params.dbParameters.Name,
				mongodb.WithTraceProvider(otel.GetTracerProvider()))

			return openErr
		}, params.dbParameters.Timeout, logger); err != nil {
			return fmt.Errorf("connect to mongodb: %w", err)
		}

		statusStore, err = mongostatusliststore.NewStore(ctx, deps.mongoClient)
		if err != nil {
			return fmt.Errorf("create status list store: %w", err)
		}

		healthChecks["mongodb"] = deps.mongoClient.Ping
	default:
		statusStore = memstatusliststore.NewStore()
	}

	publisher, err := createStatusListPublisher(ctx, params.statusListBucket)
	if err != nil {
		return err
	}

	nonceSvc := nonce.New(&nonce.Config{
		Store:         nonceStore,
		Clock:         clk,
		TTL:           params.issuance.nonceTTL,
		SweepInterval: params.issuance.sweepInterval,
	})

	statusRegistry := statuslist.New(&statuslist.Config{
		Store:       statusStore,
		Publisher:   publisher,
		Locker:      lock,
		Clock:       clk,
		Metrics:     metricsProvider.Metrics(),
		ExternalURL: params.hostURLExternal,
		DefaultSize: params.issuance.statusListSize,
	})

	keyManager, err := kms.NewRegistry(params.kmsParameters).GetKeyManager(nil)
	if err != nil {
		return fmt.Errorf("create key manager: %w", err)
	}

	engine := oidc4ci.NewService(&oidc4ci.Config{
		Nonces:      nonceSvc,
		StatusLists: statusRegistry,
		Sessions:    sessionStore,
		Profiles:    profiles,
		ClaimsResolver: claims.NewService(&claims.Config{
			HTTPClient: &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
				Timeout:   claimsHTTPTimeout,
			},
			Profiles: profiles,
		}),
		Signer:              signer.New(&signer.Config{KeyManager: keyManager, Clock: clk}),
		ProofChecker:        jwtproof.New(&jwtproof.Config{Clock: clk}),
		Locker:              lock,
		EventService:        eventBus,
		EventTopic:          eventTopic,
		Metrics:             metricsProvider.Metrics(),
		Clock:               clk,
		ClaimsTimeout:       params.issuance.claimsTimeout,
		SigningTimeout:      params.issuance.signingTimeout,
		SessionLifetime:     params.issuance.sessionLifetime,
		SweepInterval:       params.issuance.sweepInterval,
		DefaultInterval:     params.issuance.pollInterval,
		DefaultBitsPerEntry: params.issuance.statusListBits,
		DefaultListSize:     params.issuance.statusListSize,
	})

	tenantSvc := tenant.NewService(&tenant.Config{
		Nonces:      nonceSvc,
		Sessions:    engine,
		StatusLists: statusRegistry,
		Profiles:    profiles,
		EventSvc:    eventBus,
		EventTopic:  eventTopic,
	})

	oidc4cictrl.NewController(e, &oidc4cictrl.Config{
		IssuanceService: oidc4ciwrapper.Wrap(engine, tracer),
		StatusLists:     statusRegistry,
		Tenants:         tenantSvc,
		Profiles:        profiles,
		AccessTokens: accesstoken.New(&accesstoken.Config{
			Secret: []byte(params.accessTokenSecret),
			Issuer: params.accessTokenIssuer,
			Clock:  clk,
		}),
		AdminAPIKey: params.adminAPIKey,
		Tracer:      tracer,
	})

	healthController := healthcheck.NewController(e, &healthcheck.Config{
		Version: opts.version,
		Checks:  healthChecks,
		Clock:   clk,
	})
	defer healthController.Stop()

	logapi.NewController(e, mw.APIKeyAuth(params.adminAPIKey))

	go nonceSvc.Run(ctx)
	go engine.Run(ctx)

	return serve(ctx, e, params, readyCtrl)
}

func serve(ctx context.Context, e *echo.Echo, params *startupParameters, ready *readiness) error {
	srvErr := make(chan error, 1)

	go func() {
		if params.tlsParameters.serveCertPath != "" && params.tlsParameters.serveKeyPath != "" {
			srvErr <- e.StartTLS(params.hostURL, params.tlsParameters.serveCertPath,
				params.tlsParameters.serveKeyPath)

			return
		}

		srvErr <- e.Start(params.hostURL)
	}()

	ready.Ready(true)

	select {
	case err := <-srvErr:
		ready.Ready(false)

		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
	}

	ready.Ready(false)

	logger.Info("Shutting down vc-issuance")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}

func openRedis(params *common.RedisParameters) (*redis.Client, error) {
	opts := []redis.ClientOpt{redis.WithTraceProvider(otel.GetTracerProvider())}

	if params.MasterName != "" {
		opts = append(opts, redis.WithMasterName(params.MasterName))
	}

	if params.Password != "" {
		opts = append(opts, redis.WithPassword(params.Password))
	}

	client, err := redis.New(params.Addrs, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return client, nil
}

func createMetricsProvider(e *echo.Echo, params *startupParameters) (metrics.Provider, error) {
	var provider metrics.Provider

	switch params.metricsProviderName {
	case prometheusProvider:
		var metricsServer *http.Server

		handler := metricsprovider.NewHandler()

		if params.prometheusParams.url != "" {
			metricsServer = &http.Server{
				Addr:              params.prometheusParams.url,
				Handler:           handler.Mux(),
				ReadHeaderTimeout: time.Second,
			}
		} else {
			handler.Register(e)
		}

		provider = metricsprovider.NewPrometheusProvider(metricsServer)
	default:
		provider = metricsnoop.NewNoMetricsProvider()
	}

	if err := provider.Create(); err != nil {
		return nil, fmt.Errorf("create metrics provider: %w", err)
	}

	return provider, nil
}

func createStatusListPublisher(
	ctx context.Context,
	params *statusListBucketParameters,
) (statuslist.Publisher, error) {
	if params.bucket == "" {
		return nil, nil //nolint:nilnil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if params.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(params.region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	otelaws.AppendMiddlewares(&awsCfg.APIOptions, otelaws.WithTracerProvider(otel.GetTracerProvider()))

	return statuslistpublisher.New(s3.NewFromConfig(awsCfg), params.bucket, awsCfg.Region, params.hostName), nil
}
